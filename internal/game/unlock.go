package game

// Status represents the derived state of a timeline event for a player.
type Status string

const (
	// StatusLocked means the event's prerequisites are not all completed.
	StatusLocked Status = "locked"
	// StatusAvailable means the event can be played.
	StatusAvailable Status = "available"
	// StatusCompleted means the event's mission has been finished.
	StatusCompleted Status = "completed"
)

// Progress is the per-player overlay on the shared catalog. Only the reward
// ledger mutates it.
type Progress struct {
	completed map[int]bool
}

// NewProgress creates an empty progress overlay.
func NewProgress() *Progress {
	return &Progress{completed: make(map[int]bool)}
}

// Completed reports whether the event for a year has been finished.
func (p *Progress) Completed(year int) bool {
	return p.completed[year]
}

// markCompleted records a completion. Callers go through the reward ledger.
func (p *Progress) markCompleted(year int) {
	p.completed[year] = true
}

// CompletedCount returns how many events have been finished.
func (p *Progress) CompletedCount() int {
	return len(p.completed)
}

// Unlocked derives the unlock flag for one event: true iff the event has no
// prerequisites or every prerequisite year is completed.
func Unlocked(ev *FinancialEvent, progress *Progress) bool {
	for _, req := range ev.UnlockRequirements {
		if !progress.Completed(req) {
			return false
		}
	}
	return true
}

// EvaluateUnlocks computes the status of every event in the catalog against
// the progress overlay. The evaluation is pure and idempotent: it reads the
// overlay and never mutates it, so running it twice yields the same result.
func EvaluateUnlocks(catalog *Catalog, progress *Progress) map[int]Status {
	statuses := make(map[int]Status, len(catalog.Events))
	for _, ev := range catalog.Events {
		switch {
		case progress.Completed(ev.Year):
			statuses[ev.Year] = StatusCompleted
		case Unlocked(ev, progress):
			statuses[ev.Year] = StatusAvailable
		default:
			statuses[ev.Year] = StatusLocked
		}
	}
	return statuses
}

// AllCompleted reports whether every event in the catalog is done. Used to
// trigger the end-of-game summary.
func AllCompleted(catalog *Catalog, progress *Progress) bool {
	for _, ev := range catalog.Events {
		if !progress.Completed(ev.Year) {
			return false
		}
	}
	return true
}
