// Package dialogue drives the post-decision teaching conversation: an
// ordered script of coach messages revealed with a typing effect, auxiliary
// metric/chart/analysis panels, and "ask the coach" buttons that pay a small
// XP bonus on first use.
//
// The sequencer holds no timers. Typing progress is a pure function of
// (step entry time, now, per-character interval), so the whole machine can
// be tested with a virtual clock.
package dialogue

import (
	"fmt"

	"LegacyGuardians/internal/game"
)

// StepType names the fixed teaching beats.
type StepType string

const (
	StepGreeting   StepType = "greeting"
	StepResult     StepType = "result"
	StepMetrics    StepType = "metrics"
	StepChart      StepType = "chart"
	StepAnalysis   StepType = "analysis"
	StepLesson     StepType = "lesson"
	StepCompletion StepType = "completion"
)

// Message is one immutable step of the teaching script.
type Message struct {
	ID           string   `json:"id"`
	Type         StepType `json:"type"`
	Content      string   `json:"content"`
	ShowMetrics  bool     `json:"show_metrics,omitempty"`
	ShowChart    bool     `json:"show_chart,omitempty"`
	ShowAnalysis bool     `json:"show_analysis,omitempty"`
	ShowComplete bool     `json:"show_complete,omitempty"`
}

// BuildScript generates the full teaching dialogue for a mission result.
// The script is created once per result and never mutated; the sequencer
// walks it forward and backward.
func BuildScript(coach game.Coach, result game.MissionResult, ev *game.FinancialEvent, rewardXP int) []Message {
	opt := result.Option.Name
	ret := result.ActualReturn
	final := result.FinalAmount

	var resultText string
	if result.Performance == game.PerformanceProfit {
		resultText = fmt.Sprintf(
			"Great news! Your %s investment earned you %.1f%% return. You turned $100,000 into $%.0f. That's solid performance!",
			opt, ret, final)
	} else {
		resultText = fmt.Sprintf(
			"Your %s investment resulted in a %.1f%% loss, reducing your $100,000 to $%.0f. But don't worry - every investor learns from losses!",
			opt, -ret, final)
	}

	var lessonText string
	if result.Performance == game.PerformanceProfit {
		lessonText = fmt.Sprintf(
			"The %s taught us that sometimes the safest choice pays off. Remember: diversification and patience are your best friends in investing.",
			ev.Title)
	} else {
		lessonText = fmt.Sprintf(
			"The %s showed us that markets can be unpredictable. This teaches us the importance of research, diversification, and not putting all our eggs in one basket.",
			ev.Title)
	}

	return []Message{
		{
			ID:   "greeting",
			Type: StepGreeting,
			Content: fmt.Sprintf(
				"Hey there, young investor! I'm %s. Let's review your %s investment together. I'll walk you through what happened and what we can learn from it.",
				coach.Name, opt),
		},
		{
			ID:      "result",
			Type:    StepResult,
			Content: resultText,
		},
		{
			ID:          "metrics",
			Type:        StepMetrics,
			Content:     "Let me show you some key metrics that help us understand your investment performance. These numbers tell us the story of your investment journey. Tap any card if you want me to explain it.",
			ShowMetrics: true,
		},
		{
			ID:        "chart",
			Type:      StepChart,
			Content:   "Now, let's look at your portfolio performance over time. This chart shows how your investment value changed throughout the period. See those ups and downs? That's normal in investing!",
			ShowChart: true,
		},
		{
			ID:           "analysis",
			Type:         StepAnalysis,
			Content:      "Finally, let's talk about risk. Every investment has risk, and understanding it helps you make better decisions. Let me explain what these risk metrics mean for you.",
			ShowAnalysis: true,
		},
		{
			ID:      "lesson",
			Type:    StepLesson,
			Content: lessonText,
		},
		{
			ID:   "completion",
			Type: StepCompletion,
			Content: fmt.Sprintf(
				"Excellent work! You've earned %d XP and learned valuable investment lessons. Keep practicing, and you'll become a confident investor. Ready for your next challenge?",
				rewardXP),
			ShowComplete: true,
		},
	}
}
