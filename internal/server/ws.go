package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"LegacyGuardians/internal/advice"
	"LegacyGuardians/internal/api"
	"LegacyGuardians/internal/dialogue"
	"LegacyGuardians/internal/game"
	"LegacyGuardians/internal/trading"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// pushInterval paces state snapshots to the client.
const pushInterval = 250 * time.Millisecond

// idleTimeout is how long a session may sit untouched before cleanup.
const idleTimeout = 30 * time.Minute

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type joinDTO struct {
	CoachID string `json:"coach_id"`
}

type startMissionDTO struct {
	Year int `json:"year"`
}

type chooseInvestmentDTO struct {
	OptionID string `json:"option_id"`
}

type askMetricDTO struct {
	MetricID string `json:"metric_id"`
}

type redeemDTO struct {
	RewardID string `json:"reward_id"`
}

type startCompetitionDTO struct {
	Allocation map[trading.Asset]float64 `json:"allocation"`
}

type tradeDTO struct {
	Asset  trading.Asset `json:"asset"`
	Shares float64       `json:"shares"`
}

type leaderboardDTO struct {
	Season string `json:"season"`
	Limit  int    `json:"limit"`
}

func serveWS(h *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}

	s := h.NewSession()
	log.Printf("session %s connected", s.ID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		defer cancel()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var inbound inboundMessage
			if err := json.Unmarshal(data, &inbound); err != nil {
				log.Printf("session %s: invalid JSON message: %v", s.ID, err)
				continue
			}
			h.dispatch(ctx, s, inbound)
		}
	}()

	sendTick := time.NewTicker(pushInterval)
	defer sendTick.Stop()

	for {
		select {
		case <-ctx.Done():
			h.RemoveSession(s.ID)
			conn.Close()
			log.Printf("session %s disconnected", s.ID)
			return
		case <-sendTick.C:
			s.Mu.Lock()
			state := h.buildState(s, time.Now())
			events := s.pending
			s.pending = nil
			s.Mu.Unlock()

			frames := make([]outboundEvent, 0, len(events)+1)
			frames = append(frames, outboundEvent{Type: "state", Payload: state})
			frames = append(frames, events...)
			for _, frame := range frames {
				data, err := json.Marshal(frame)
				if err != nil {
					log.Printf("session %s: marshal error: %v", s.ID, err)
					continue
				}
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					cancel()
					break
				}
			}
		}
	}
}

// queue appends a one-shot event for the push loop. Caller holds s.Mu.
func (s *GameSession) queueLocked(typ string, payload interface{}) {
	s.pending = append(s.pending, outboundEvent{Type: typ, Payload: payload})
}

func (s *GameSession) queueErrorLocked(msg string) {
	s.queueLocked("error", map[string]string{"message": msg})
}

func (h *Hub) dispatch(ctx context.Context, s *GameSession, inbound inboundMessage) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.touchLocked()

	switch inbound.Type {
	case "join", "select_coach":
		var payload joinDTO
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			s.queueErrorLocked("invalid payload")
			return
		}
		s.Coach = game.CoachByID(h.Coaches, payload.CoachID)

	case "start_mission":
		var payload startMissionDTO
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			s.queueErrorLocked("invalid payload")
			return
		}
		h.handleStartMission(s, payload.Year)

	case "choose_investment":
		var payload chooseInvestmentDTO
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			s.queueErrorLocked("invalid payload")
			return
		}
		h.handleChooseInvestment(s, payload.OptionID)

	case "dialogue_continue":
		if s.Sequencer != nil {
			s.Sequencer.Continue(time.Now())
		}

	case "dialogue_back":
		if s.Sequencer != nil {
			s.Sequencer.Back(time.Now())
		}

	case "dialogue_ask":
		var payload askMetricDTO
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			s.queueErrorLocked("invalid payload")
			return
		}
		h.handleAskMetric(s, payload.MetricID)

	case "complete_mission":
		h.handleCompleteMission(s)

	case "dismiss_summary":
		s.SummaryDismissed = true

	case "redeem_reward":
		var payload redeemDTO
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			s.queueErrorLocked("invalid payload")
			return
		}
		var reward *game.StoreReward
		for i := range h.Rewards {
			if h.Rewards[i].ID == payload.RewardID {
				reward = &h.Rewards[i]
				break
			}
		}
		if reward == nil {
			s.queueErrorLocked(fmt.Sprintf("unknown reward %q", payload.RewardID))
			return
		}
		if err := s.Player.RedeemReward(*reward); err != nil {
			s.queueErrorLocked(err.Error())
		}

	case "start_competition":
		var payload startCompetitionDTO
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			s.queueErrorLocked("invalid payload")
			return
		}
		h.handleStartCompetition(ctx, s, payload.Allocation)

	case "trade_buy", "trade_sell":
		var payload tradeDTO
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			s.queueErrorLocked("invalid payload")
			return
		}
		if s.Trading == nil {
			s.queueErrorLocked("no competition in progress")
			return
		}
		var err error
		if inbound.Type == "trade_buy" {
			err = s.Trading.Buy(payload.Asset, payload.Shares)
		} else {
			err = s.Trading.Sell(payload.Asset, payload.Shares)
		}
		if err != nil {
			s.queueErrorLocked(err.Error())
		}

	case "end_competition":
		h.handleEndCompetition(s)

	case "leaderboard":
		var payload leaderboardDTO
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			s.queueErrorLocked("invalid payload")
			return
		}
		go h.fetchLeaderboard(s, payload.Season, payload.Limit)

	default:
		log.Printf("session %s: unknown message type %q", s.ID, inbound.Type)
	}
}

func (h *Hub) handleAskMetric(s *GameSession, metricID string) {
	if s.Sequencer == nil {
		return
	}
	xp, ok := s.Sequencer.AskMetric(metricID, "", time.Now())
	if ok && xp > 0 {
		s.Player.AddXP(xp)
	}
}

func (h *Hub) handleStartMission(s *GameSession, year int) {
	ev := h.Catalog.ByYear(year)
	if ev == nil {
		s.queueErrorLocked(fmt.Sprintf("unknown event year %d", year))
		return
	}
	statuses := game.EvaluateUnlocks(h.Catalog, s.Player.Progress)
	switch statuses[year] {
	case game.StatusLocked:
		s.queueErrorLocked(fmt.Sprintf("event %d is locked: %s", year, ev.UnlockDescription))
		return
	case game.StatusCompleted:
		s.queueErrorLocked(fmt.Sprintf("event %d is already completed", year))
		return
	}
	if _, err := game.GetMission(year); err != nil {
		s.queueErrorLocked(err.Error())
		return
	}
	s.ActiveYear = year
	s.ActiveResult = nil
	s.Sequencer = nil
	s.Advice = nil
	s.Historical = nil
}

func (h *Hub) handleChooseInvestment(s *GameSession, optionID string) {
	if s.ActiveYear == 0 {
		s.queueErrorLocked("no mission in progress")
		return
	}
	mission, err := game.GetMission(s.ActiveYear)
	if err != nil {
		s.queueErrorLocked(err.Error())
		return
	}
	option := mission.OptionByID(optionID)
	if option == nil {
		s.queueErrorLocked(fmt.Sprintf("unknown investment option %q", optionID))
		return
	}

	result := game.ResolveMission(*option, s.Coach, h.Cfg.ResolveConfig, roll)
	s.ActiveResult = &result

	ev := h.Catalog.ByYear(s.ActiveYear)
	script := dialogue.BuildScript(s.Coach, result, ev, ev.Reward)
	s.Sequencer = dialogue.NewSequencer(script, result, h.Cfg.CharInterval, h.Cfg.RewardPolicy.MetricBonusXP, s.MetricViews, time.Now())
	s.Historical = nil

	go h.fetchAdvice(s, result, ev)
	go h.fetchHistorical(s, result, ev.Year)
}

// fetchHistorical asks the backend how the chosen asset really performed
// around the event. Best effort: on failure the panels keep showing the
// locally computed numbers.
func (h *Hub) fetchHistorical(s *GameSession, result game.MissionResult, year int) {
	perf, err := h.Client.HistoricalPerformance(api.TickerForOption(result.Option.Name), year)
	if err != nil {
		log.Printf("session %s: historical lookup: %v", s.ID, err)
		return
	}
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if s.ActiveResult != nil && s.ActiveResult.Option.ID == result.Option.ID {
		s.Historical = perf
	}
}

// fetchAdvice pulls coach advice off the hot path. The result lands in the
// session and rides out with the next state push; failures surface as the
// cached fallback.
func (h *Hub) fetchAdvice(s *GameSession, result game.MissionResult, ev *game.FinancialEvent) {
	s.Mu.Lock()
	coach := s.Coach
	level := s.Player.LevelLabel()
	completed := append([]string(nil), s.Player.CompletedMissions...)
	s.Mu.Unlock()

	key := advice.Key{
		CoachID:     coach.ID,
		OptionID:    result.Option.ID,
		EventYear:   ev.Year,
		Return:      result.ActualReturn,
		FinalAmount: result.FinalAmount,
		Performance: result.Performance,
	}
	req := api.CoachRequest{
		PlayerLevel:       level,
		CompletedMissions: completed,
		CurrentMission:    ev.Title,
		PlayerContext: fmt.Sprintf("%s reviewing %s during %s: %.1f%% return, $%.0f final (%s)",
			string(coach.Personality), result.Option.Name, ev.Title,
			result.ActualReturn, result.FinalAmount, result.Performance),
	}
	got := h.Advice.Get(key, req)

	s.Mu.Lock()
	defer s.Mu.Unlock()
	// The mission may have moved on while the fetch was in flight.
	if s.ActiveResult != nil && s.ActiveResult.Option.ID == result.Option.ID {
		s.Advice = &got
	}
}

func (h *Hub) handleCompleteMission(s *GameSession) {
	if s.ActiveYear == 0 || s.ActiveResult == nil || s.Sequencer == nil {
		s.queueErrorLocked("no mission to complete")
		return
	}
	if !s.Sequencer.CanComplete(time.Now()) {
		return
	}
	ev := h.Catalog.ByYear(s.ActiveYear)
	earned, err := s.Player.CompleteMission(h.Catalog, ev, *s.ActiveResult, h.Cfg.RewardPolicy)
	if err != nil {
		s.queueErrorLocked(err.Error())
		return
	}
	s.queueLocked("mission_completed", map[string]interface{}{
		"year":   ev.Year,
		"title":  ev.Title,
		"earned": earned,
	})
	s.ActiveYear = 0
	s.ActiveResult = nil
	s.Sequencer = nil
	s.Advice = nil
	s.Historical = nil

	if game.AllCompleted(h.Catalog, s.Player.Progress) && s.SummaryAt.IsZero() {
		s.SummaryAt = time.Now().Add(h.Cfg.SummaryDelay)
	}
}

func (h *Hub) handleStartCompetition(ctx context.Context, s *GameSession, allocation map[trading.Asset]float64) {
	if !s.Player.CompetitionUnlocked {
		s.queueErrorLocked("competition is locked until the timeline is finished")
		return
	}
	if s.Trading != nil {
		s.queueErrorLocked("competition already in progress")
		return
	}
	session, err := trading.NewSession(allocation, trading.StartingCapital, roll)
	if err != nil {
		s.queueErrorLocked(err.Error())
		return
	}
	s.Trading = session
	s.LastSummary = nil

	tradeCtx, tradeCancel := context.WithCancel(ctx)
	s.TradeCancel = tradeCancel
	go session.Run(tradeCtx, h.Cfg.TradeTick, nil)
}

func (h *Hub) handleEndCompetition(s *GameSession) {
	if s.Trading == nil {
		s.queueErrorLocked("no competition in progress")
		return
	}
	if s.TradeCancel != nil {
		s.TradeCancel()
		s.TradeCancel = nil
	}
	summary := s.Trading.End()
	s.Trading = nil
	s.LastSummary = &summary

	playerID := s.ID
	totalScore := s.Player.TotalScore
	completedCount := len(s.Player.CompletedMissions)
	performance := make(map[string]float64, len(summary.Portfolio))
	for asset, holding := range summary.Portfolio {
		performance[string(asset)] = holding.Shares * holding.CurrentPrice
	}
	go func() {
		err := h.Client.LeaderboardSubmit(api.LeaderboardSubmit{
			PlayerID:             playerID,
			PlayerName:           "Guardian",
			Season:               "current",
			TotalScore:           totalScore,
			RiskAdjustedReturn:   summary.TotalReturn,
			CompletedMissions:    completedCount,
			ExplorationBreadth:   len(summary.Portfolio),
			PortfolioPerformance: performance,
		})
		if err != nil {
			log.Printf("session %s: leaderboard submit: %v", playerID, err)
		}
	}()
}

func (h *Hub) fetchLeaderboard(s *GameSession, season string, limit int) {
	entries, err := h.Client.LeaderboardTop(season, limit)
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if err != nil {
		s.queueErrorLocked(api.DisplayError(err))
		return
	}
	s.queueLocked("leaderboard", entries)
}
