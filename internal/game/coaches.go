package game

// Personality identifies a coach's investment style. The mission resolver
// keys its adjustment factor off this value.
type Personality string

const (
	PersonalityConservative Personality = "Conservative Coach"
	PersonalityBalanced     Personality = "Balanced Coach"
	PersonalityAggressive   Personality = "Aggressive Coach"
	PersonalityIncome       Personality = "Income Coach"
)

// Coach is one entry in the immutable coach catalog. Selection is a pure UI
// choice; nothing about it persists across sessions.
type Coach struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Personality Personality `json:"personality"`
	Description string      `json:"description"`
	Avatar      string      `json:"avatar"`
}

// adjustmentFactors scales an option's historical return by coach style.
// Unknown personalities fall through to 1.0.
var adjustmentFactors = map[Personality]float64{
	PersonalityConservative: 0.8, // dampen extreme losses and gains
	PersonalityBalanced:     1.0,
	PersonalityAggressive:   1.3, // amplify returns
	PersonalityIncome:       0.9, // slight tilt toward stability
}

// AdjustmentFactor returns the return multiplier for a personality.
func AdjustmentFactor(p Personality) float64 {
	if f, ok := adjustmentFactors[p]; ok {
		return f
	}
	return 1.0
}

// SeedCoaches defines the four selectable coaches.
func SeedCoaches() []Coach {
	return []Coach{
		{
			ID:          "conservative",
			Name:        "Steady Sam",
			Personality: PersonalityConservative,
			Description: "Focuses on risk control and stable returns",
			Avatar:      "🛡️",
		},
		{
			ID:          "balanced",
			Name:        "Balanced Bella",
			Personality: PersonalityBalanced,
			Description: "Finds the best balance between risk and return",
			Avatar:      "⚖️",
		},
		{
			ID:          "aggressive",
			Name:        "Adventure Alex",
			Personality: PersonalityAggressive,
			Description: "Pursues high returns, willing to take risks",
			Avatar:      "🚀",
		},
		{
			ID:          "income",
			Name:        "Income Ivy",
			Personality: PersonalityIncome,
			Description: "Builds wealth through dividends and steady cash flow",
			Avatar:      "💰",
		},
	}
}

// CoachByID looks a coach up in a seeded list, defaulting to the first entry
// when the id is unknown.
func CoachByID(coaches []Coach, id string) Coach {
	for _, c := range coaches {
		if c.ID == id {
			return c
		}
	}
	return coaches[0]
}
