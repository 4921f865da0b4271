package dialogue

import (
	"testing"
	"time"

	"LegacyGuardians/internal/game"
)

func testScript(t *testing.T) ([]Message, game.MissionResult) {
	t.Helper()
	result := game.MissionResult{
		Option:       game.InvestmentOption{ID: "us-bonds", Name: "US Treasury Bonds", Risk: game.RiskLow},
		ActualReturn: 25,
		FinalAmount:  125000,
		Performance:  game.PerformanceProfit,
	}
	coach := game.CoachByID(game.SeedCoaches(), "balanced")
	ev := &game.FinancialEvent{Year: 2008, Title: "2008 Global Financial Crisis", Reward: 150}
	return BuildScript(coach, result, ev, ev.Reward), result
}

// advancePast returns a time far enough after start for text to fully type
func advancePast(start time.Time, text string, interval time.Duration) time.Time {
	return start.Add(time.Duration(len(text)+1) * interval)
}

// TestTypingProgress tests that revealed text is a pure function of elapsed time
func TestTypingProgress(t *testing.T) {
	script, result := testScript(t)
	start := time.Unix(0, 0)
	seq := NewSequencer(script, result, 30*time.Millisecond, 5, nil, start)

	if got := seq.Revealed(start); got != "" {
		t.Errorf("Expected nothing revealed at entry, got %q", got)
	}
	at := start.Add(10 * 30 * time.Millisecond)
	if got := seq.Revealed(at); len([]rune(got)) != 10 {
		t.Errorf("Expected 10 characters after 10 intervals, got %d (%q)", len([]rune(got)), got)
	}
	// Same instant, same answer: no hidden timer state.
	if first, second := seq.Revealed(at), seq.Revealed(at); first != second {
		t.Errorf("Revealed is not deterministic: %q vs %q", first, second)
	}

	done := advancePast(start, script[0].Content, 30*time.Millisecond)
	if !seq.TypingDone(done) {
		t.Error("Typing should be done after content length * interval")
	}
	if got := seq.Revealed(done); got != script[0].Content {
		t.Errorf("Expected full content revealed, got %q", got)
	}
}

// TestContinueGatedOnTyping tests that Continue is a no-op mid-animation
func TestContinueGatedOnTyping(t *testing.T) {
	script, result := testScript(t)
	start := time.Unix(0, 0)
	seq := NewSequencer(script, result, 30*time.Millisecond, 5, nil, start)

	if seq.Continue(start.Add(30 * time.Millisecond)) {
		t.Error("Continue should be a no-op while typing")
	}
	if seq.Index() != 0 {
		t.Errorf("Index moved to %d on a gated Continue", seq.Index())
	}

	done := advancePast(start, script[0].Content, 30*time.Millisecond)
	if !seq.Continue(done) {
		t.Error("Continue should advance once typing finished")
	}
	if seq.Index() != 1 {
		t.Errorf("Expected index 1, got %d", seq.Index())
	}
	// The next step restarts its own animation.
	if seq.TypingDone(done) {
		t.Error("Typing should restart on the new step")
	}
}

// TestIndexBounds tests that Back and Continue never leave [0, len-1]
func TestIndexBounds(t *testing.T) {
	script, result := testScript(t)
	now := time.Unix(0, 0)
	seq := NewSequencer(script, result, 30*time.Millisecond, 5, nil, now)

	if seq.Back(now) {
		t.Error("Back should be a no-op on step 0")
	}
	if seq.Index() != 0 {
		t.Errorf("Expected index 0, got %d", seq.Index())
	}

	for i := 0; i < len(script)+5; i++ {
		now = advancePast(now, seq.Current().Content, 30*time.Millisecond)
		seq.Continue(now)
	}
	if seq.Index() != len(script)-1 {
		t.Errorf("Expected terminal index %d, got %d", len(script)-1, seq.Index())
	}
	now = advancePast(now, seq.Current().Content, 30*time.Millisecond)
	if seq.Continue(now) {
		t.Error("Continue should be a no-op on the terminal step")
	}
	if !seq.CanComplete(now) {
		t.Error("CanComplete should be true on the fully typed terminal step")
	}
}

// seekStep drives the sequencer forward until the given step type
func seekStep(t *testing.T, seq *Sequencer, step StepType, now time.Time) time.Time {
	t.Helper()
	for seq.Current().Type != step {
		now = advancePast(now, seq.Current().Content, 30*time.Millisecond)
		if !seq.Continue(now) {
			t.Fatalf("could not reach step %s", step)
		}
	}
	return now
}

// TestMetricBonusOncePerButton tests the first-view XP grant and dedup
func TestMetricBonusOncePerButton(t *testing.T) {
	script, result := testScript(t)
	now := time.Unix(0, 0)
	seq := NewSequencer(script, result, 30*time.Millisecond, 5, nil, now)
	now = seekStep(t, seq, StepMetrics, now)

	xp, ok := seq.AskMetric("volatility", "", now)
	if !ok || xp != 5 {
		t.Errorf("Expected first view to grant 5 XP, got %d (ok=%v)", xp, ok)
	}
	xp, ok = seq.AskMetric("volatility", "", now)
	if !ok || xp != 0 {
		t.Errorf("Expected repeat view to grant 0 XP, got %d (ok=%v)", xp, ok)
	}

	// Shared buttons pay once across steps.
	if xp, _ := seq.AskMetric("total-return", "", now); xp != 5 {
		t.Errorf("Expected shared button first view to grant 5 XP, got %d", xp)
	}
	now = seekStep(t, seq, StepChart, now)
	if xp, _ := seq.AskMetric("total-return", "", now); xp != 0 {
		t.Errorf("Shared button should not pay again on another step, got %d", xp)
	}

	// Step-specific buttons are only valid on their step.
	if _, ok := seq.AskMetric("volatility", "", now); ok {
		t.Error("volatility button should not be available on the chart step")
	}
	if _, ok := seq.AskMetric("nope", "", now); ok {
		t.Error("Unknown button should report not ok")
	}
}

// TestMetricBonusSharedAcrossDialogues tests that a viewed set carried from
// one dialogue to the next keeps the bonus a once-per-session grant
func TestMetricBonusSharedAcrossDialogues(t *testing.T) {
	script, result := testScript(t)
	now := time.Unix(0, 0)
	viewed := map[string]bool{}

	first := NewSequencer(script, result, 30*time.Millisecond, 5, viewed, now)
	now = seekStep(t, first, StepMetrics, now)
	if xp, _ := first.AskMetric("total-return", "", now); xp != 5 {
		t.Errorf("Expected 5 XP on the first-ever view, got %d", xp)
	}
	if xp, _ := first.AskMetric("volatility", "", now); xp != 5 {
		t.Errorf("Expected 5 XP for a second distinct button, got %d", xp)
	}

	second := NewSequencer(script, result, 30*time.Millisecond, 5, viewed, now)
	now = seekStep(t, second, StepMetrics, now)
	if xp, _ := second.AskMetric("total-return", "", now); xp != 0 {
		t.Errorf("Shared button should not pay again in a later dialogue, got %d", xp)
	}
	if xp, _ := second.AskMetric("volatility", "", now); xp != 0 {
		t.Errorf("Step-specific button should not pay again in a later dialogue, got %d", xp)
	}
	if xp, _ := second.AskMetric("best-day", "", now); xp != 5 {
		t.Errorf("A button never viewed before should still pay, got %d", xp)
	}
}

// TestBackClearsMetricSelection tests that navigation drops the explanation
func TestBackClearsMetricSelection(t *testing.T) {
	script, result := testScript(t)
	now := time.Unix(0, 0)
	seq := NewSequencer(script, result, 30*time.Millisecond, 5, nil, now)
	now = seekStep(t, seq, StepMetrics, now)

	if _, ok := seq.AskMetric("volatility", "", now); !ok {
		t.Fatal("AskMetric failed on the metrics step")
	}
	if _, ok := seq.ActiveMetric(now); !ok {
		t.Fatal("Expected an active metric after AskMetric")
	}

	seq.Back(now)
	if _, ok := seq.ActiveMetric(now); ok {
		t.Error("Back should clear the selected metric")
	}

	now = seekStep(t, seq, StepMetrics, now)
	if _, ok := seq.AskMetric("best-day", "", now); !ok {
		t.Fatal("AskMetric failed after returning to the metrics step")
	}
	done := advancePast(now, seq.Current().Content, 30*time.Millisecond)
	seq.Continue(done)
	if _, ok := seq.ActiveMetric(done); ok {
		t.Error("Continue should clear the selected metric")
	}
}

// TestMetricTypingIndependent tests the explanation's own typing effect
func TestMetricTypingIndependent(t *testing.T) {
	script, result := testScript(t)
	now := time.Unix(0, 0)
	seq := NewSequencer(script, result, 30*time.Millisecond, 5, nil, now)
	now = seekStep(t, seq, StepMetrics, now)

	if _, ok := seq.AskMetric("volatility", "short text", now); !ok {
		t.Fatal("AskMetric failed")
	}
	view, ok := seq.ActiveMetric(now)
	if !ok {
		t.Fatal("Expected an active metric")
	}
	if view.Revealed != "" || view.Done {
		t.Errorf("Explanation should start untyped, got %q done=%v", view.Revealed, view.Done)
	}

	later := now.Add(time.Duration(len("short text")+1) * 30 * time.Millisecond)
	view, _ = seq.ActiveMetric(later)
	if view.Revealed != "short text" || !view.Done {
		t.Errorf("Expected fully typed explanation, got %q done=%v", view.Revealed, view.Done)
	}
}
