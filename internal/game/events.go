// Package game implements the core timeline logic for Legacy Guardians:
// the historical event catalog, unlock gating, mission resolution, and the
// reward ledger.
//
// The event catalog is immutable and validated at boot time. Player progress
// lives in a separate overlay so that multiple sessions can share the same
// catalog; unlock status is always derived, never stored.
package game

import (
	"errors"
	"fmt"
)

// Impact describes how an event affected markets overall.
type Impact string

const (
	ImpactNegative Impact = "negative"
	ImpactMixed    Impact = "mixed"
	ImpactPositive Impact = "positive"
)

// Difficulty buckets events for presentation and coach tone.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyExpert       Difficulty = "expert"
)

// FinancialEvent is one node on the timeline. Prerequisites reference other
// events by year.
type FinancialEvent struct {
	Year               int        `json:"year"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Impact             Impact     `json:"impact"`
	Difficulty         Difficulty `json:"difficulty"`
	Reward             int        `json:"reward"` // base XP on completion
	UnlockRequirements []int      `json:"unlock_requirements"`
	UnlockDescription  string     `json:"unlock_description,omitempty"`
}

// Catalog is the validated, immutable set of timeline events.
type Catalog struct {
	Events []*FinancialEvent
	byYear map[int]*FinancialEvent
}

var (
	// ErrUnknownYear is returned when a year has no event in the catalog.
	ErrUnknownYear = errors.New("game: unknown event year")
	// ErrCycleDetected is returned when unlock requirements form a cycle.
	ErrCycleDetected = errors.New("game: cycle detected in unlock requirements")
	// ErrDuplicateYear is returned when two events share a year.
	ErrDuplicateYear = errors.New("game: duplicate event year")
)

// NewCatalog indexes and validates the event list: years must be unique,
// every prerequisite must reference an existing event, and the prerequisite
// graph must be acyclic.
func NewCatalog(events []*FinancialEvent) (*Catalog, error) {
	c := &Catalog{
		Events: events,
		byYear: make(map[int]*FinancialEvent, len(events)),
	}
	for _, ev := range events {
		if _, exists := c.byYear[ev.Year]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateYear, ev.Year)
		}
		c.byYear[ev.Year] = ev
	}
	for _, ev := range events {
		for _, req := range ev.UnlockRequirements {
			if _, exists := c.byYear[req]; !exists {
				return nil, fmt.Errorf("%w: event %d requires missing year %d", ErrUnknownYear, ev.Year, req)
			}
		}
	}
	if err := c.checkAcyclic(); err != nil {
		return nil, err
	}
	return c, nil
}

// ByYear returns the event for a year, or nil if not found.
func (c *Catalog) ByYear(year int) *FinancialEvent {
	return c.byYear[year]
}

// FinalYear returns the last year on the timeline. Completing it unlocks the
// competition mode.
func (c *Catalog) FinalYear() int {
	final := 0
	for _, ev := range c.Events {
		if ev.Year > final {
			final = ev.Year
		}
	}
	return final
}

// checkAcyclic runs Kahn's algorithm over the prerequisite edges.
func (c *Catalog) checkAcyclic() error {
	inDegree := make(map[int]int, len(c.Events))
	dependents := make(map[int][]int)
	for _, ev := range c.Events {
		inDegree[ev.Year] += 0
		for _, req := range ev.UnlockRequirements {
			inDegree[ev.Year]++
			dependents[req] = append(dependents[req], ev.Year)
		}
	}

	var queue []int
	for year, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, year)
		}
	}

	processed := 0
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		processed++
		for _, dep := range dependents[curr] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if processed != len(c.Events) {
		return ErrCycleDetected
	}
	return nil
}

// SeedFinancialEvents defines the six timeline events. The first two decades
// are open from the start; later crises unlock as their prerequisites are
// completed.
func SeedFinancialEvents() []*FinancialEvent {
	return []*FinancialEvent{
		{
			Year:        1990,
			Title:       "Japanese Bubble Economy Collapse",
			Description: "Japan's real estate and stock market bubbles burst. The Nikkei lost over half its value and land prices collapsed, opening the Lost Decade.",
			Impact:      ImpactNegative,
			Difficulty:  DifficultyBeginner,
			Reward:      100,
		},
		{
			Year:        1997,
			Title:       "Asian Financial Crisis",
			Description: "Currency collapses swept from Thailand across East Asia. Pegged exchange rates broke and capital fled emerging markets.",
			Impact:      ImpactNegative,
			Difficulty:  DifficultyBeginner,
			Reward:      100,
		},
		{
			Year:               2000,
			Title:              "Dot-com Bubble Burst",
			Description:        "Tech stocks plummeted and the Nasdaq fell 78% from its peak as internet valuations collapsed.",
			Impact:             ImpactNegative,
			Difficulty:         DifficultyIntermediate,
			Reward:             150,
			UnlockRequirements: []int{1990},
			UnlockDescription:  "Complete the 1990 Japanese Bubble mission first",
		},
		{
			Year:               2008,
			Title:              "Global Financial Crisis",
			Description:        "The subprime mortgage collapse took down Lehman Brothers and froze world credit markets. Governments launched unprecedented bailouts.",
			Impact:             ImpactNegative,
			Difficulty:         DifficultyAdvanced,
			Reward:             150,
			UnlockRequirements: []int{1997, 2000},
			UnlockDescription:  "Complete the 1997 and 2000 missions first",
		},
		{
			Year:               2020,
			Title:              "COVID-19 Market Crash",
			Description:        "A pandemic shut the world economy. Markets fell faster than ever before, then rebounded on historic stimulus.",
			Impact:             ImpactMixed,
			Difficulty:         DifficultyAdvanced,
			Reward:             200,
			UnlockRequirements: []int{2008},
			UnlockDescription:  "Complete the 2008 Global Financial Crisis mission first",
		},
		{
			Year:               2025,
			Title:              "Current Challenges",
			Description:        "Inflation, AI disruption, and geopolitical tension shape today's markets. Apply everything you have learned.",
			Impact:             ImpactMixed,
			Difficulty:         DifficultyExpert,
			Reward:             200,
			UnlockRequirements: []int{2020},
			UnlockDescription:  "Complete the 2020 COVID-19 mission first",
		},
	}
}
