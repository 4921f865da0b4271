package server

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"LegacyGuardians/internal/advice"
	"LegacyGuardians/internal/api"
	"LegacyGuardians/internal/dialogue"
	"LegacyGuardians/internal/game"
	"LegacyGuardians/internal/trading"
)

// GameSession is one player's run: state, progress, the active mission and
// dialogue, and the optional competition. One session per websocket
// connection; all access goes through Mu.
type GameSession struct {
	Mu sync.Mutex

	ID     string
	Player *game.PlayerState

	Coach game.Coach

	// Active mission, set by start_mission and cleared on completion.
	ActiveYear   int
	ActiveResult *game.MissionResult
	Sequencer    *dialogue.Sequencer

	// Metric buttons already paid out, shared by every mission's dialogue
	// so the first-view bonus is once per session.
	MetricViews map[string]bool

	// Latest advice/fallback text surfaced with the dialogue.
	Advice *advice.Result

	// Backend's view of how the chosen asset really performed. Nil while
	// pending or failed; the panels fall back to the local result.
	Historical *api.HistoricalPerformance

	// Competition state, set while the trading mini-game runs.
	Trading     *trading.Session
	TradeCancel context.CancelFunc
	LastSummary *trading.Summary

	// Deferred "all events done" banner.
	SummaryAt        time.Time
	SummaryDismissed bool

	LastSeen time.Time

	// One-shot events queued for the push loop.
	pending []outboundEvent
}

// Hub tracks live sessions and owns the shared services they use.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]*GameSession

	Catalog *game.Catalog
	Coaches []game.Coach
	Rewards []game.StoreReward
	Client  *api.Client
	Advice  *advice.Service
	Cfg     AppConfig
}

func NewHub(catalog *game.Catalog, client *api.Client, adviceSvc *advice.Service, cfg AppConfig) *Hub {
	return &Hub{
		sessions: map[string]*GameSession{},
		Catalog:  catalog,
		Coaches:  game.SeedCoaches(),
		Rewards:  game.SeedRewardsStore(),
		Client:   client,
		Advice:   adviceSvc,
		Cfg:      cfg,
	}
}

// NewSession registers a fresh session with a generated ID.
func (h *Hub) NewSession() *GameSession {
	s := &GameSession{
		ID:          uuid.NewString(),
		Player:      game.NewPlayerState(),
		Coach:       game.CoachByID(h.Coaches, ""),
		MetricViews: map[string]bool{},
		LastSeen:    time.Now(),
	}
	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()
	return s
}

// RemoveSession drops a session, cancelling any running competition.
func (h *Hub) RemoveSession(id string) {
	h.mu.Lock()
	s, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()
	if ok {
		s.Mu.Lock()
		if s.TradeCancel != nil {
			s.TradeCancel()
			s.TradeCancel = nil
		}
		s.Mu.Unlock()
	}
}

// SessionCount reports live sessions.
func (h *Hub) SessionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// CleanupIdleSessions removes sessions not touched within maxIdle and
// returns how many were dropped.
func (h *Hub) CleanupIdleSessions(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	h.mu.Lock()
	var stale []*GameSession
	for id, s := range h.sessions {
		s.Mu.Lock()
		idle := s.LastSeen.Before(cutoff)
		s.Mu.Unlock()
		if idle {
			stale = append(stale, s)
			delete(h.sessions, id)
		}
	}
	h.mu.Unlock()
	for _, s := range stale {
		s.Mu.Lock()
		if s.TradeCancel != nil {
			s.TradeCancel()
			s.TradeCancel = nil
		}
		s.Mu.Unlock()
	}
	return len(stale)
}

// Touch bumps the session's idle timer. Callers hold s.Mu.
func (s *GameSession) touchLocked() { s.LastSeen = time.Now() }

// roll is the shared randomness source for mission resolution and price
// ticks. Tests never go through the hub, so an unseeded source is fine here.
func roll() float64 { return rand.Float64() }
