package trading

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

var (
	ErrInsufficientCash   = errors.New("trading: insufficient cash")
	ErrInsufficientShares = errors.New("trading: insufficient shares")
	ErrUnknownAsset       = errors.New("trading: unknown asset")
	ErrSessionEnded       = errors.New("trading: session ended")
)

// Holding is one position: share count, weighted-average cost, and the
// latest tick price.
type Holding struct {
	Shares       float64 `json:"shares"`
	AvgPrice     float64 `json:"avg_price"`
	CurrentPrice float64 `json:"current_price"`
}

// PerformancePoint is one sample of the portfolio value series.
type PerformancePoint struct {
	Tick  int     `json:"tick"`
	Value float64 `json:"value"`
}

// Summary is the packaged outcome of an ended session.
type Summary struct {
	FinalValue  float64            `json:"final_value"`
	TotalReturn float64            `json:"total_return"`
	Portfolio   map[Asset]Holding  `json:"portfolio"`
	Cash        float64            `json:"cash"`
	Performance []PerformancePoint `json:"performance"`
}

// Session is one competition run. It is safe for concurrent use: the tick
// loop and command handlers share the mutex.
type Session struct {
	mu sync.Mutex

	cash     float64
	initial  float64
	holdings map[Asset]Holding
	series   []PerformancePoint
	tick     int
	ended    bool

	roll func() float64
}

// NewSession starts a session from an allocation map over the starting
// capital; whatever the allocation does not claim stays as cash. roll must
// return values in [0,1); nil means math/rand. Allocation of unknown assets
// is an error.
func NewSession(allocation map[Asset]float64, capital float64, roll func() float64) (*Session, error) {
	if capital <= 0 {
		capital = StartingCapital
	}
	if roll == nil {
		roll = rand.Float64
	}
	s := &Session{
		cash:     capital,
		initial:  capital,
		holdings: make(map[Asset]Holding),
		roll:     roll,
	}
	for asset, amount := range allocation {
		price := StartingPrice(asset)
		if price == 0 {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAsset, asset)
		}
		if amount <= 0 {
			continue
		}
		if amount > s.cash {
			return nil, fmt.Errorf("%w: allocating %.2f to %s with %.2f cash", ErrInsufficientCash, amount, asset, s.cash)
		}
		s.cash -= amount
		s.holdings[asset] = Holding{
			Shares:       amount / price,
			AvgPrice:     price,
			CurrentPrice: price,
		}
	}
	for _, asset := range Assets() {
		if _, ok := s.holdings[asset]; !ok {
			s.holdings[asset] = Holding{CurrentPrice: StartingPrice(asset)}
		}
	}
	s.series = append(s.series, PerformancePoint{Tick: 0, Value: s.valueLocked()})
	return s, nil
}

func (s *Session) valueLocked() float64 {
	total := s.cash
	for _, h := range s.holdings {
		total += h.Shares * h.CurrentPrice
	}
	return total
}

// Value returns the current portfolio valuation, cash included.
func (s *Session) Value() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.valueLocked()
}

// Cash returns the uninvested balance.
func (s *Session) Cash() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cash
}

// Tick reports how many price ticks have elapsed.
func (s *Session) Tick() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick
}

// Buy purchases shares of an asset at its current price. The cost must not
// exceed available cash. The average cost basis is share-weighted.
func (s *Session) Buy(asset Asset, shares float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return ErrSessionEnded
	}
	h, ok := s.holdings[asset]
	if !ok || h.CurrentPrice <= 0 {
		return fmt.Errorf("%w: %s", ErrUnknownAsset, asset)
	}
	cost := shares * h.CurrentPrice
	if shares <= 0 || cost > s.cash {
		return fmt.Errorf("%w: need %.2f, have %.2f", ErrInsufficientCash, cost, s.cash)
	}
	newShares := h.Shares + shares
	h.AvgPrice = (h.AvgPrice*h.Shares + cost) / newShares
	h.Shares = newShares
	s.holdings[asset] = h
	s.cash -= cost
	return nil
}

// Sell disposes shares of an asset at its current price.
func (s *Session) Sell(asset Asset, shares float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return ErrSessionEnded
	}
	h, ok := s.holdings[asset]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAsset, asset)
	}
	if shares <= 0 || shares > h.Shares {
		return fmt.Errorf("%w: selling %.4f of %.4f held", ErrInsufficientShares, shares, h.Shares)
	}
	h.Shares -= shares
	s.holdings[asset] = h
	s.cash += shares * h.CurrentPrice
	return nil
}

// AdvanceTick perturbs every price by a uniform factor in [-5%, +5%],
// floored at zero, revalues the portfolio, and appends a performance point.
// It reports false once the tick ceiling is reached or the session ended.
func (s *Session) AdvanceTick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended || s.tick >= MaxTicks {
		return false
	}
	s.tick++
	for asset, h := range s.holdings {
		factor := 1 + (s.roll()*0.1 - 0.05)
		h.CurrentPrice *= factor
		if h.CurrentPrice < 0 {
			h.CurrentPrice = 0
		}
		s.holdings[asset] = h
	}
	s.series = append(s.series, PerformancePoint{Tick: s.tick, Value: s.valueLocked()})
	return s.tick < MaxTicks
}

// Run drives the tick loop until the context is cancelled or the ceiling is
// reached. onTick, if non-nil, fires after each tick outside the lock.
func (s *Session) Run(ctx context.Context, interval time.Duration, onTick func(tick int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			more := s.AdvanceTick()
			if onTick != nil {
				onTick(s.Tick())
			}
			if !more {
				return
			}
		}
	}
}

// Holdings returns a copy of the current positions.
func (s *Session) Holdings() map[Asset]Holding {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[Asset]Holding, len(s.holdings))
	for a, h := range s.holdings {
		out[a] = h
	}
	return out
}

// Series returns a copy of the performance time series.
func (s *Session) Series() []PerformancePoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PerformancePoint, len(s.series))
	copy(out, s.series)
	return out
}

// End closes the session and packages the outcome. Further trades and ticks
// are rejected. Ending twice returns the same summary.
func (s *Session) End() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ended = true
	final := s.valueLocked()
	portfolio := make(map[Asset]Holding, len(s.holdings))
	for a, h := range s.holdings {
		if h.Shares > 0 {
			portfolio[a] = h
		}
	}
	series := make([]PerformancePoint, len(s.series))
	copy(series, s.series)
	return Summary{
		FinalValue:  final,
		TotalReturn: (final - s.initial) / s.initial * 100,
		Portfolio:   portfolio,
		Cash:        s.cash,
		Performance: series,
	}
}
