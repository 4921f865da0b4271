package trading

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"
)

// TestNewSessionAllocation tests the allocation split and residual cash
func TestNewSessionAllocation(t *testing.T) {
	s, err := NewSession(map[Asset]float64{
		AssetApple:   1000,
		AssetBitcoin: 2000,
	}, StartingCapital, rand.Float64)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	if got := s.Cash(); math.Abs(got-2000) > 1e-9 {
		t.Errorf("Expected 2000 residual cash, got %v", got)
	}
	holdings := s.Holdings()
	apple := holdings[AssetApple]
	if math.Abs(apple.Shares-1000/230.45) > 1e-9 {
		t.Errorf("Expected %v Apple shares, got %v", 1000/230.45, apple.Shares)
	}
	if apple.AvgPrice != 230.45 {
		t.Errorf("Expected avg price 230.45, got %v", apple.AvgPrice)
	}
	if math.Abs(s.Value()-StartingCapital) > 1e-6 {
		t.Errorf("Initial value should equal capital, got %v", s.Value())
	}
	series := s.Series()
	if len(series) != 1 || series[0].Tick != 0 {
		t.Errorf("Expected one tick-0 performance point, got %v", series)
	}
}

// TestNewSessionRejections tests unknown assets and overallocation
func TestNewSessionRejections(t *testing.T) {
	if _, err := NewSession(map[Asset]float64{"dogecoin": 100}, StartingCapital, nil); !errors.Is(err, ErrUnknownAsset) {
		t.Errorf("Expected ErrUnknownAsset, got %v", err)
	}
	if _, err := NewSession(map[Asset]float64{AssetApple: 6000}, StartingCapital, nil); !errors.Is(err, ErrInsufficientCash) {
		t.Errorf("Expected ErrInsufficientCash, got %v", err)
	}
}

// TestBuyAveragesCostBasis tests the weighted-average cost computation
func TestBuyAveragesCostBasis(t *testing.T) {
	s, err := NewSession(nil, StartingCapital, func() float64 { return 0.5 })
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	if err := s.Buy(AssetGlobalETF, 10); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}
	h := s.Holdings()[AssetGlobalETF]
	if h.Shares != 10 || h.AvgPrice != 134.18 {
		t.Fatalf("Expected 10 shares at 134.18, got %v at %v", h.Shares, h.AvgPrice)
	}

	// roll 0.5 leaves prices unchanged, so a second buy at the same price
	// keeps the basis.
	s.AdvanceTick()
	if err := s.Buy(AssetGlobalETF, 10); err != nil {
		t.Fatalf("second Buy failed: %v", err)
	}
	h = s.Holdings()[AssetGlobalETF]
	if h.Shares != 20 || math.Abs(h.AvgPrice-134.18) > 1e-9 {
		t.Errorf("Expected 20 shares at 134.18, got %v at %v", h.Shares, h.AvgPrice)
	}

	wantCash := StartingCapital - 20*134.18
	if math.Abs(s.Cash()-wantCash) > 1e-9 {
		t.Errorf("Expected cash %v, got %v", wantCash, s.Cash())
	}
}

// TestBuyInsufficientCash tests the cash guard
func TestBuyInsufficientCash(t *testing.T) {
	s, _ := NewSession(nil, StartingCapital, nil)
	if err := s.Buy(AssetBitcoin, 1); !errors.Is(err, ErrInsufficientCash) {
		t.Errorf("Expected ErrInsufficientCash buying 1 BTC with $5000, got %v", err)
	}
	if err := s.Buy(AssetApple, -3); !errors.Is(err, ErrInsufficientCash) {
		t.Errorf("Expected negative amounts rejected, got %v", err)
	}
}

// TestSellGuards tests overselling and proceeds
func TestSellGuards(t *testing.T) {
	s, _ := NewSession(nil, StartingCapital, func() float64 { return 0.5 })
	if err := s.Sell(AssetApple, 1); !errors.Is(err, ErrInsufficientShares) {
		t.Errorf("Expected ErrInsufficientShares with no position, got %v", err)
	}

	if err := s.Buy(AssetApple, 5); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}
	if err := s.Sell(AssetApple, 6); !errors.Is(err, ErrInsufficientShares) {
		t.Errorf("Expected ErrInsufficientShares selling 6 of 5, got %v", err)
	}
	if err := s.Sell(AssetApple, 5); err != nil {
		t.Fatalf("Sell failed: %v", err)
	}
	if math.Abs(s.Cash()-StartingCapital) > 1e-9 {
		t.Errorf("Round-trip at a flat price should restore cash, got %v", s.Cash())
	}
}

// TestTickCeiling tests that the walk stops at MaxTicks
func TestTickCeiling(t *testing.T) {
	s, _ := NewSession(nil, StartingCapital, rand.New(rand.NewSource(3)).Float64)
	for i := 0; i < MaxTicks*2; i++ {
		s.AdvanceTick()
	}
	if s.Tick() != MaxTicks {
		t.Errorf("Expected tick count pinned at %d, got %d", MaxTicks, s.Tick())
	}
	if got := len(s.Series()); got != MaxTicks+1 {
		t.Errorf("Expected %d performance points, got %d", MaxTicks+1, got)
	}
}

// TestTickPerturbationBounds tests the 5 percent per-tick move limit
func TestTickPerturbationBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	s, _ := NewSession(nil, StartingCapital, rng.Float64)

	prev := map[Asset]float64{}
	for a, h := range s.Holdings() {
		prev[a] = h.CurrentPrice
	}
	for i := 0; i < MaxTicks; i++ {
		s.AdvanceTick()
		for a, h := range s.Holdings() {
			lo, hi := prev[a]*0.95, prev[a]*1.05
			if h.CurrentPrice < lo-1e-9 || h.CurrentPrice > hi+1e-9 {
				t.Fatalf("tick %d: %s price %v outside [%v, %v]", i+1, a, h.CurrentPrice, lo, hi)
			}
			prev[a] = h.CurrentPrice
		}
	}
}

// TestValuationIdentity tests value == sum(shares*price) + cash after ticks
func TestValuationIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	s, _ := NewSession(map[Asset]float64{
		AssetApple: 1500,
		AssetSP500: 1500,
	}, StartingCapital, rng.Float64)

	for i := 0; i < 10; i++ {
		s.AdvanceTick()
	}
	want := s.Cash()
	for _, h := range s.Holdings() {
		want += h.Shares * h.CurrentPrice
	}
	if math.Abs(s.Value()-want) > 1e-9 {
		t.Errorf("Expected value %v, got %v", want, s.Value())
	}
	last := s.Series()[len(s.Series())-1]
	if math.Abs(last.Value-s.Value()) > 1e-9 {
		t.Errorf("Last performance point %v should match value %v", last.Value, s.Value())
	}
}

// TestEndSummary tests the packaged outcome and post-end rejections
func TestEndSummary(t *testing.T) {
	s, _ := NewSession(map[Asset]float64{AssetApple: 1000}, StartingCapital, func() float64 { return 0.5 })

	summary := s.End()
	if math.Abs(summary.FinalValue-StartingCapital) > 1e-6 {
		t.Errorf("Expected final value %v, got %v", StartingCapital, summary.FinalValue)
	}
	if math.Abs(summary.TotalReturn) > 1e-9 {
		t.Errorf("Expected 0%% return, got %v", summary.TotalReturn)
	}
	if math.Abs(summary.Cash-4000) > 1e-9 {
		t.Errorf("Expected 4000 cash, got %v", summary.Cash)
	}
	if len(summary.Portfolio) != 1 {
		t.Errorf("Summary should only list held positions, got %v", summary.Portfolio)
	}

	if err := s.Buy(AssetApple, 1); !errors.Is(err, ErrSessionEnded) {
		t.Errorf("Expected ErrSessionEnded after End, got %v", err)
	}
	if s.AdvanceTick() {
		t.Error("AdvanceTick should refuse after End")
	}
}

// TestRunStopsOnCancel tests that the tick loop honors its context
func TestRunStopsOnCancel(t *testing.T) {
	s, _ := NewSession(nil, StartingCapital, rand.Float64)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Millisecond, nil)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancellation")
	}

	// Even uncancelled, the loop self-terminates at the ceiling.
	s2, _ := NewSession(nil, StartingCapital, rand.Float64)
	done2 := make(chan struct{})
	go func() {
		s2.Run(context.Background(), time.Millisecond, nil)
		close(done2)
	}()
	select {
	case <-done2:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop at the tick ceiling")
	}
	if s2.Tick() != MaxTicks {
		t.Errorf("Expected %d ticks, got %d", MaxTicks, s2.Tick())
	}
}
