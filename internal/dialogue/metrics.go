package dialogue

import (
	"fmt"

	"LegacyGuardians/internal/game"
)

// MetricButton is an "ask the coach about X" affordance. Shared buttons
// appear on every panel-bearing step; the rest belong to a single step.
type MetricButton struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Shared bool   `json:"shared"`
}

var sharedButtons = []MetricButton{
	{ID: "total-return", Label: "Total Return", Shared: true},
	{ID: "final-value", Label: "Final Value", Shared: true},
}

var stepButtons = map[StepType][]MetricButton{
	StepMetrics: {
		{ID: "volatility", Label: "Volatility"},
		{ID: "best-day", Label: "Best Day"},
	},
	StepChart: {
		{ID: "trend", Label: "Price Trend"},
	},
	StepAnalysis: {
		{ID: "max-drawdown", Label: "Max Drawdown"},
		{ID: "risk-level", Label: "Risk Level"},
	},
}

// ButtonsForStep lists the buttons available on a step, shared ones first.
// Steps without auxiliary panels have none.
func ButtonsForStep(step StepType) []MetricButton {
	specific, ok := stepButtons[step]
	if !ok {
		return nil
	}
	out := make([]MetricButton, 0, len(sharedButtons)+len(specific))
	out = append(out, sharedButtons...)
	out = append(out, specific...)
	return out
}

// ExplainMetric synthesizes the coach's short explanation for a metric
// button, grounded in the player's actual numbers. Used directly when the
// backend has nothing better to offer.
func ExplainMetric(id string, result game.MissionResult) string {
	switch id {
	case "total-return":
		return fmt.Sprintf(
			"Total return is how much your money grew or shrank, as a percentage. Yours was %.1f%%: for every $100 you invested, you ended with $%.2f.",
			result.ActualReturn, 100*(1+result.ActualReturn/100))
	case "final-value":
		return fmt.Sprintf(
			"Final value is simply what your investment is worth at the end. Starting from $100,000, your %s position finished at $%.0f.",
			result.Option.Name, result.FinalAmount)
	case "volatility":
		return "Volatility measures how much prices bounce around. High volatility means bigger swings both up and down. It's not bad by itself, but it tests your nerves!"
	case "best-day":
		return "The best day is the single biggest daily gain during the period. One great day rarely makes an investment, but it shows what the asset is capable of."
	case "trend":
		if result.Performance == game.PerformanceProfit {
			return "The trend is the overall direction of the line. Yours slopes upward: despite daily wiggles, your investment gained value over the period."
		}
		return "The trend is the overall direction of the line. Yours slopes downward this time, which is why the final value came in below where you started."
	case "max-drawdown":
		return "Max drawdown is the worst peak-to-trough fall during the period. It answers the scariest question: how much could I have been down at the lowest point?"
	case "risk-level":
		return fmt.Sprintf(
			"Risk level summarizes how likely an investment is to lose value. %s was rated %s risk, which matches the kind of swings you saw.",
			result.Option.Name, result.Option.Risk)
	default:
		return "I don't have an explanation for that one yet, but great instinct to ask questions about what you see!"
	}
}
