package server

import (
	"time"

	"LegacyGuardians/internal/advice"
	"LegacyGuardians/internal/api"
	"LegacyGuardians/internal/dialogue"
	"LegacyGuardians/internal/game"
	"LegacyGuardians/internal/trading"
)

type eventDTO struct {
	Year              int             `json:"year"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Impact            game.Impact     `json:"impact"`
	Difficulty        game.Difficulty `json:"difficulty"`
	Reward            int             `json:"reward"`
	Status            game.Status     `json:"status"`
	UnlockDescription string          `json:"unlock_description,omitempty"`
}

type coachDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Personality string `json:"personality"`
	Description string `json:"description"`
}

type playerDTO struct {
	Level               int      `json:"level"`
	LevelLabel          string   `json:"level_label"`
	XP                  int      `json:"xp"`
	TotalScore          int      `json:"total_score"`
	CompletedMissions   []string `json:"completed_missions"`
	RedeemedRewards     []string `json:"redeemed_rewards"`
	CompetitionUnlocked bool     `json:"competition_unlocked"`
}

type missionDTO struct {
	Year     int                     `json:"year"`
	Briefing string                  `json:"briefing"`
	Options  []game.InvestmentOption `json:"options"`
}

type resultDTO struct {
	OptionID     string           `json:"option_id"`
	OptionName   string           `json:"option_name"`
	ActualReturn float64          `json:"actual_return"`
	FinalAmount  float64          `json:"final_amount"`
	Performance  game.Performance `json:"performance"`
}

type adviceDTO struct {
	Advice          string   `json:"advice"`
	Recommendations []string `json:"recommendations,omitempty"`
	Encouragement   string   `json:"encouragement,omitempty"`
	Fallback        bool     `json:"fallback"`
	Error           string   `json:"error,omitempty"`
}

type tradingDTO struct {
	Tick        int                               `json:"tick"`
	MaxTicks    int                               `json:"max_ticks"`
	Cash        float64                           `json:"cash"`
	Value       float64                           `json:"value"`
	Holdings    map[trading.Asset]trading.Holding `json:"holdings"`
	Performance []trading.PerformancePoint        `json:"performance"`
}

type storeRewardDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Cost     int    `json:"cost"`
	Redeemed bool   `json:"redeemed"`
}

// stateDTO is the full snapshot streamed to the client on every push tick.
type stateDTO struct {
	SessionID   string                     `json:"session_id"`
	Player      playerDTO                  `json:"player"`
	Coach       coachDTO                   `json:"coach"`
	Events      []eventDTO                 `json:"events"`
	Mission     *missionDTO                `json:"mission,omitempty"`
	Result      *resultDTO                 `json:"result,omitempty"`
	Dialogue    *dialogue.View             `json:"dialogue,omitempty"`
	Advice      *adviceDTO                 `json:"advice,omitempty"`
	Historical  *api.HistoricalPerformance `json:"historical,omitempty"`
	Trading     *tradingDTO                `json:"trading,omitempty"`
	Summary     *trading.Summary           `json:"trade_summary,omitempty"`
	Store       []storeRewardDTO           `json:"store"`
	ShowSummary bool                       `json:"show_summary"`
}

// buildState assembles the snapshot for one session. Caller holds s.Mu.
func (h *Hub) buildState(s *GameSession, now time.Time) stateDTO {
	statuses := game.EvaluateUnlocks(h.Catalog, s.Player.Progress)
	events := make([]eventDTO, 0, len(h.Catalog.Events))
	for _, ev := range h.Catalog.Events {
		events = append(events, eventDTO{
			Year:              ev.Year,
			Title:             ev.Title,
			Description:       ev.Description,
			Impact:            ev.Impact,
			Difficulty:        ev.Difficulty,
			Reward:            ev.Reward,
			Status:            statuses[ev.Year],
			UnlockDescription: ev.UnlockDescription,
		})
	}

	state := stateDTO{
		SessionID: s.ID,
		Player: playerDTO{
			Level:               s.Player.Level,
			LevelLabel:          s.Player.LevelLabel(),
			XP:                  s.Player.XP,
			TotalScore:          s.Player.TotalScore,
			CompletedMissions:   s.Player.CompletedMissions,
			RedeemedRewards:     s.Player.RedeemedRewards,
			CompetitionUnlocked: s.Player.CompetitionUnlocked,
		},
		Coach: coachDTO{
			ID:          s.Coach.ID,
			Name:        s.Coach.Name,
			Personality: string(s.Coach.Personality),
			Description: s.Coach.Description,
		},
		Events: events,
	}

	for _, r := range h.Rewards {
		redeemed := false
		for _, id := range s.Player.RedeemedRewards {
			if id == r.ID {
				redeemed = true
				break
			}
		}
		state.Store = append(state.Store, storeRewardDTO{
			ID: r.ID, Name: r.Name, Cost: r.Cost, Redeemed: redeemed,
		})
	}

	if s.ActiveYear != 0 && s.ActiveResult == nil {
		if mission, err := game.GetMission(s.ActiveYear); err == nil {
			state.Mission = &missionDTO{
				Year:     mission.Year,
				Briefing: mission.Briefing,
				Options:  mission.Options,
			}
		}
	}
	if s.ActiveResult != nil {
		state.Result = &resultDTO{
			OptionID:     s.ActiveResult.Option.ID,
			OptionName:   s.ActiveResult.Option.Name,
			ActualReturn: s.ActiveResult.ActualReturn,
			FinalAmount:  s.ActiveResult.FinalAmount,
			Performance:  s.ActiveResult.Performance,
		}
	}
	if s.Sequencer != nil {
		view := s.Sequencer.Snapshot(now)
		state.Dialogue = &view
	}
	if s.Advice != nil {
		state.Advice = adviceResultDTO(*s.Advice)
	}
	if s.Historical != nil {
		state.Historical = s.Historical
	}
	if s.Trading != nil {
		state.Trading = &tradingDTO{
			Tick:        s.Trading.Tick(),
			MaxTicks:    trading.MaxTicks,
			Cash:        s.Trading.Cash(),
			Value:       s.Trading.Value(),
			Holdings:    s.Trading.Holdings(),
			Performance: s.Trading.Series(),
		}
	}
	if s.LastSummary != nil {
		state.Summary = s.LastSummary
	}
	if !s.SummaryAt.IsZero() && !s.SummaryDismissed && now.After(s.SummaryAt) {
		state.ShowSummary = true
	}
	return state
}

func adviceResultDTO(r advice.Result) *adviceDTO {
	return &adviceDTO{
		Advice:          r.Advice.Advice,
		Recommendations: r.Advice.Recommendations,
		Encouragement:   r.Advice.Encouragement,
		Fallback:        r.Fallback,
		Error:           r.Err,
	}
}
