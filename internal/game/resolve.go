package game

import (
	"math"
)

// Performance classifies a mission outcome. An adjusted return of exactly
// zero counts as a loss.
type Performance string

const (
	PerformanceProfit Performance = "profit"
	PerformanceLoss   Performance = "loss"
)

// ResolveConfig fixes the outcome policy. The canonical policy works in
// percentage points on a $100,000 principal; the legacy fractional variant
// (principal 10,000, clamp [-0.8, 2.0] scaled to points) is reachable by
// constructing a different config.
type ResolveConfig struct {
	Principal    float64 // starting amount invested in a mission
	MinReturnPct float64 // lower clamp on the adjusted return, in points
	MaxReturnPct float64 // upper clamp
}

// DefaultResolveConfig returns the canonical outcome policy.
func DefaultResolveConfig() ResolveConfig {
	return ResolveConfig{
		Principal:    100_000,
		MinReturnPct: -80,
		MaxReturnPct: 100,
	}
}

// MissionResult is the outcome of one confirmed investment decision. It is
// created fresh per decision and discarded when the dialogue closes.
type MissionResult struct {
	Option       InvestmentOption `json:"option"`
	ActualReturn float64          `json:"actual_return"` // coach-adjusted, percentage points
	FinalAmount  float64          `json:"final_amount"`
	Performance  Performance      `json:"performance"`
}

// ResolveMission computes the coach-adjusted outcome for a chosen option.
//
// roll must return a uniform value in [0, 1); it is injected so tests can pin
// the market-variance multiplier (roll 0.5 yields exactly 1.0). The
// multiplier spans [0.9, 1.1] and simulates market variance, so identical
// inputs produce different outputs across calls.
func ResolveMission(option InvestmentOption, coach Coach, cfg ResolveConfig, roll func() float64) MissionResult {
	factor := AdjustmentFactor(coach.Personality)
	multiplier := 0.9 + roll()*0.2

	adjusted := option.ActualReturn * factor * multiplier
	adjusted = clamp(adjusted, cfg.MinReturnPct, cfg.MaxReturnPct)

	final := cfg.Principal * (1 + adjusted/100)

	perf := PerformanceLoss
	if adjusted > 0 {
		perf = PerformanceProfit
	}

	return MissionResult{
		Option:       option,
		ActualReturn: adjusted,
		FinalAmount:  final,
		Performance:  perf,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
