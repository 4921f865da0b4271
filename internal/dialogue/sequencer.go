package dialogue

import (
	"time"
	"unicode/utf8"

	"LegacyGuardians/internal/game"
)

// DefaultCharInterval is the canonical typing speed.
const DefaultCharInterval = 30 * time.Millisecond

// Sequencer walks a teaching script. All time-dependent state is derived
// from timestamps recorded on transitions, so callers pass `now` explicitly
// and tests drive it with a virtual clock.
type Sequencer struct {
	script       []Message
	result       game.MissionResult
	charInterval time.Duration
	metricXP     int

	index     int
	enteredAt time.Time

	// viewed tracks first-ever clicks per button. Shared buttons are keyed
	// by bare ID so the bonus pays once across all steps; step-specific
	// buttons are keyed by step+ID. The map is owned by the session, not
	// the sequencer: passing the same map into every mission's sequencer
	// keeps the bonus a once-per-session grant.
	viewed map[string]bool

	activeMetric    string
	metricText      string
	metricEnteredAt time.Time
}

// NewSequencer starts a sequencer at step 0, entered at now. metricXP is the
// bonus paid on each first metric-button view; viewed is the session-level
// set of buttons already paid out (nil starts a fresh set).
func NewSequencer(script []Message, result game.MissionResult, charInterval time.Duration, metricXP int, viewed map[string]bool, now time.Time) *Sequencer {
	if charInterval <= 0 {
		charInterval = DefaultCharInterval
	}
	if viewed == nil {
		viewed = make(map[string]bool)
	}
	return &Sequencer{
		script:       script,
		result:       result,
		charInterval: charInterval,
		metricXP:     metricXP,
		enteredAt:    now,
		viewed:       viewed,
	}
}

// Index reports the current step position.
func (s *Sequencer) Index() int { return s.index }

// Current returns the current step.
func (s *Sequencer) Current() Message { return s.script[s.index] }

// revealedCount is the number of characters of text visible at now, given
// the reveal began at start.
func (s *Sequencer) revealedCount(text string, start, now time.Time) int {
	total := utf8.RuneCountInString(text)
	if !now.After(start) {
		return 0
	}
	n := int(now.Sub(start) / s.charInterval)
	if n > total {
		n = total
	}
	return n
}

// Revealed returns the visible prefix of the current step's text at now.
func (s *Sequencer) Revealed(now time.Time) string {
	content := s.script[s.index].Content
	n := s.revealedCount(content, s.enteredAt, now)
	i := 0
	for pos := range content {
		if i == n {
			return content[:pos]
		}
		i++
	}
	return content
}

// TypingDone reports whether the current step's text is fully revealed.
func (s *Sequencer) TypingDone(now time.Time) bool {
	content := s.script[s.index].Content
	return s.revealedCount(content, s.enteredAt, now) == utf8.RuneCountInString(content)
}

// CanContinue reports whether Continue would advance at now.
func (s *Sequencer) CanContinue(now time.Time) bool {
	return s.TypingDone(now) && s.index < len(s.script)-1
}

// Continue advances to the next step. It is a no-op while typing is in
// progress and on the terminal step, reporting whether it advanced.
func (s *Sequencer) Continue(now time.Time) bool {
	if !s.CanContinue(now) {
		return false
	}
	s.index++
	s.enteredAt = now
	s.clearMetric()
	return true
}

// Back retreats one step, clearing any selected metric explanation. It is a
// no-op on step 0.
func (s *Sequencer) Back(now time.Time) bool {
	if s.index == 0 {
		return false
	}
	s.index--
	s.enteredAt = now
	s.clearMetric()
	return true
}

// CanComplete reports whether the terminal step is reached and fully typed.
// Completing is the caller's job; the sequencer only gates it.
func (s *Sequencer) CanComplete(now time.Time) bool {
	return s.index == len(s.script)-1 && s.TypingDone(now)
}

func (s *Sequencer) clearMetric() {
	s.activeMetric = ""
	s.metricText = ""
}

func (s *Sequencer) buttonKey(b MetricButton) string {
	if b.Shared {
		return b.ID
	}
	return string(s.script[s.index].Type) + "/" + b.ID
}

// AskMetric selects a metric button on the current step, starting its own
// typing effect. The returned XP is nonzero only on the first-ever view of
// that button in the session. Unknown or unavailable buttons award nothing
// and report false.
func (s *Sequencer) AskMetric(id string, explanation string, now time.Time) (xp int, ok bool) {
	var button MetricButton
	for _, b := range ButtonsForStep(s.script[s.index].Type) {
		if b.ID == id {
			button = b
			ok = true
			break
		}
	}
	if !ok {
		return 0, false
	}
	if explanation == "" {
		explanation = ExplainMetric(id, s.result)
	}
	s.activeMetric = id
	s.metricText = explanation
	s.metricEnteredAt = now

	key := s.buttonKey(button)
	if !s.viewed[key] {
		s.viewed[key] = true
		xp = s.metricXP
	}
	return xp, true
}

// MetricView is the snapshot of the selected metric explanation.
type MetricView struct {
	ID       string `json:"id"`
	Revealed string `json:"revealed"`
	Done     bool   `json:"done"`
}

// ActiveMetric returns the selected explanation's typing snapshot, or false
// when nothing is selected.
func (s *Sequencer) ActiveMetric(now time.Time) (MetricView, bool) {
	if s.activeMetric == "" {
		return MetricView{}, false
	}
	n := s.revealedCount(s.metricText, s.metricEnteredAt, now)
	i := 0
	revealed := s.metricText
	for pos := range s.metricText {
		if i == n {
			revealed = s.metricText[:pos]
			break
		}
		i++
	}
	return MetricView{
		ID:       s.activeMetric,
		Revealed: revealed,
		Done:     n == utf8.RuneCountInString(s.metricText),
	}, true
}

// View is the full serializable snapshot the server pushes to clients.
type View struct {
	Step         Message        `json:"step"`
	Index        int            `json:"index"`
	Total        int            `json:"total"`
	Revealed     string         `json:"revealed"`
	TypingDone   bool           `json:"typing_done"`
	CanContinue  bool           `json:"can_continue"`
	CanBack      bool           `json:"can_back"`
	CanComplete  bool           `json:"can_complete"`
	Buttons      []MetricButton `json:"buttons,omitempty"`
	ActiveMetric *MetricView    `json:"active_metric,omitempty"`
}

// Snapshot captures the whole dialogue state at now.
func (s *Sequencer) Snapshot(now time.Time) View {
	v := View{
		Step:        s.script[s.index],
		Index:       s.index,
		Total:       len(s.script),
		Revealed:    s.Revealed(now),
		TypingDone:  s.TypingDone(now),
		CanContinue: s.CanContinue(now),
		CanBack:     s.index > 0,
		CanComplete: s.CanComplete(now),
		Buttons:     ButtonsForStep(s.script[s.index].Type),
	}
	if mv, ok := s.ActiveMetric(now); ok {
		v.ActiveMetric = &mv
	}
	return v
}
