package advice

import (
	"LegacyGuardians/internal/api"
	"LegacyGuardians/internal/game"
)

// Fallback returns the static advice used when the backend is unreachable.
// The dialogue must never block or go blank, so every personality has a
// canned response keyed by outcome.
func Fallback(perf game.Performance, personality game.Personality) api.CoachResponse {
	resp := api.CoachResponse{
		RiskAssessment:      "Your portfolio shows reasonable diversification for this stage.",
		EducationalInsights: []string{"Diversification helps reduce overall portfolio risk", "Time in the market beats timing the market"},
		Encouragement:       "You're building great financial habits! Keep learning and practicing.",
		NextSteps: []string{
			"Complete more missions to unlock new events",
			"Try different portfolio combinations",
		},
	}

	switch personality {
	case game.PersonalityConservative:
		resp.Advice = "Steady as she goes. Keep risk small and focus on capital preservation — slow and steady compounding wins."
		resp.Recommendations = []string{
			"Start with low-risk assets like bonds and defensive stocks",
			"Avoid overconcentration in any single asset",
			"Set simple rules for position sizing and rebalancing",
		}
	case game.PersonalityAggressive:
		resp.Advice = "High risk, high reward. Embrace growth opportunities, but manage the downside with position limits and spare cash."
		resp.Recommendations = []string{
			"Track catalysts before committing capital",
			"Use staggered entries to handle volatility",
			"Keep some cash ready for pullbacks",
		}
	case game.PersonalityIncome:
		resp.Advice = "Let compounding do the work. Favor dividend payers and steady cash flow over chasing price swings."
		resp.Recommendations = []string{
			"Look for investments that pay you to hold them",
			"Reinvest income to accelerate compounding",
			"Judge positions by yield stability, not headlines",
		}
	default:
		resp.Advice = "Balance is key. Review your mix of growth versus stability and keep allocations aligned with your plan."
		resp.Recommendations = []string{
			"Pair growth positions with something defensive",
			"Rebalance when any position drifts too far from target",
			"Focus on long-term goals rather than short-term swings",
		}
	}

	if perf == game.PerformanceLoss {
		resp.Encouragement = "Every investor learns from losses — what matters is what you do next. Keep going!"
	}
	return resp
}
