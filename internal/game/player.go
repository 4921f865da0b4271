package game

// PlayerState tracks session-scoped player progress. It is owned by a single
// game session and guarded by the session lock; nothing here is persisted,
// so a reload starts over.
type PlayerState struct {
	Level               int      `json:"level"`
	XP                  int      `json:"xp"`
	TotalScore          int      `json:"total_score"`
	CompletedMissions   []string `json:"completed_missions"`
	RedeemedRewards     []string `json:"redeemed_rewards"`
	CompetitionUnlocked bool     `json:"competition_unlocked"`

	Progress *Progress `json:"-"`
}

// NewPlayerState creates a fresh level-1 player with an empty progress
// overlay.
func NewPlayerState() *PlayerState {
	return &PlayerState{
		Level:    1,
		Progress: NewProgress(),
	}
}

// AddXP credits experience and score and re-derives the level. Levels never
// decrease: the derived value only applies when it exceeds the current one.
func (p *PlayerState) AddXP(amount int) {
	p.XP += amount
	p.TotalScore += amount
	if lvl := p.XP/1000 + 1; lvl > p.Level {
		p.Level = lvl
	}
}

// SpendXP deducts experience for a rewards-store redemption. Score is
// untouched; it records what was earned, not what remains.
func (p *PlayerState) SpendXP(amount int) bool {
	if amount > p.XP {
		return false
	}
	p.XP -= amount
	return true
}

// LevelLabel maps the numeric level onto the coaching tiers the backend
// understands.
func (p *PlayerState) LevelLabel() string {
	switch p.Level {
	case 1:
		return "beginner"
	case 2:
		return "intermediate"
	default:
		return "advanced"
	}
}
