package game

import (
	"errors"
	"fmt"
)

// RewardPolicy fixes how mission completions pay out. The canonical policy
// awards only the event's base XP on completion and lets the dialogue grant
// MetricBonusXP per first-time metric interaction; the legacy policy instead
// paid a flat ProfitBonusXP on profitable missions.
type RewardPolicy struct {
	ProfitBonusXP int // flat bonus when performance is profit (0 or 50)
	MetricBonusXP int // per first-time "explain this metric" interaction
}

// DefaultRewardPolicy returns the canonical payout policy.
func DefaultRewardPolicy() RewardPolicy {
	return RewardPolicy{ProfitBonusXP: 0, MetricBonusXP: 5}
}

// ErrAlreadyCompleted is returned when a mission is completed twice.
// Completions are idempotent: replaying an event never re-awards XP.
var ErrAlreadyCompleted = errors.New("game: mission already completed")

// CompleteMission settles a finished mission against the player state:
// credits the reward, records the completion, marks the event done in the
// progress overlay, and unlocks the competition when the final event falls.
// Callers re-run EvaluateUnlocks afterwards to open dependent events.
func (p *PlayerState) CompleteMission(catalog *Catalog, ev *FinancialEvent, result MissionResult, policy RewardPolicy) (int, error) {
	if p.Progress.Completed(ev.Year) {
		return 0, fmt.Errorf("%w: %d %s", ErrAlreadyCompleted, ev.Year, ev.Title)
	}

	reward := ev.Reward
	if result.Performance == PerformanceProfit {
		reward += policy.ProfitBonusXP
	}

	p.AddXP(reward)
	p.CompletedMissions = append(p.CompletedMissions, ev.Title)
	p.Progress.markCompleted(ev.Year)

	if ev.Year == catalog.FinalYear() {
		p.CompetitionUnlocked = true
	}
	return reward, nil
}

// StoreReward is one redeemable item in the rewards store.
type StoreReward struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Partner     string `json:"partner"`
	Cost        int    `json:"cost"` // XP
	Image       string `json:"image"`
}

// SeedRewardsStore defines the fixed redeemable catalog.
func SeedRewardsStore() []StoreReward {
	return []StoreReward{
		{ID: "movie-voucher", Name: "Movie Ticket Voucher", Description: "One standard session at participating cinemas", Partner: "Event Cinemas", Cost: 200, Image: "🎬"},
		{ID: "music-month", Name: "1 Month Music Streaming", Description: "One month of ad-free streaming", Partner: "Spotify", Cost: 300, Image: "🎵"},
		{ID: "book-voucher", Name: "$20 Book Voucher", Description: "Spend it on anything, though an investing classic is a good start", Partner: "Dymocks", Cost: 400, Image: "📚"},
		{ID: "theme-park", Name: "Theme Park Day Pass", Description: "Full day entry for one", Partner: "Luna Park", Cost: 800, Image: "🎢"},
	}
}

var (
	// ErrRewardUnaffordable is returned when the player lacks the XP.
	ErrRewardUnaffordable = errors.New("game: not enough XP for reward")
	// ErrRewardRedeemed is returned on a second redemption of the same item.
	ErrRewardRedeemed = errors.New("game: reward already redeemed")
)

// RedeemReward exchanges XP for a store item, at most once per item.
func (p *PlayerState) RedeemReward(reward StoreReward) error {
	for _, id := range p.RedeemedRewards {
		if id == reward.ID {
			return fmt.Errorf("%w: %s", ErrRewardRedeemed, reward.ID)
		}
	}
	if !p.SpendXP(reward.Cost) {
		return fmt.Errorf("%w: need %d XP, have %d", ErrRewardUnaffordable, reward.Cost, p.XP)
	}
	p.RedeemedRewards = append(p.RedeemedRewards, reward.ID)
	return nil
}
