package server

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"LegacyGuardians/internal/game"
)

// AppConfig carries everything tunable about a running instance. Values come
// from an optional .env file, the environment, then command-line overrides.
type AppConfig struct {
	APIBaseURL    string
	APITimeout    time.Duration
	AdviceTTL     time.Duration
	CharInterval  time.Duration
	TradeTick     time.Duration
	SummaryDelay  time.Duration
	ResolveConfig game.ResolveConfig
	RewardPolicy  game.RewardPolicy
}

func DefaultAppConfig() AppConfig {
	return AppConfig{
		APIBaseURL:    "http://localhost:8000",
		APITimeout:    10 * time.Second,
		AdviceTTL:     5 * time.Minute,
		CharInterval:  30 * time.Millisecond,
		TradeTick:     3 * time.Second,
		SummaryDelay:  time.Second,
		ResolveConfig: game.DefaultResolveConfig(),
		RewardPolicy:  game.DefaultRewardPolicy(),
	}
}

// LoadAppConfig merges .env (if present) and environment variables over the
// defaults. A missing .env is not an error.
func LoadAppConfig() AppConfig {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("env file: %v (using environment)", err)
	}
	cfg := DefaultAppConfig()
	if v := os.Getenv("LG_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	cfg.APITimeout = envDuration("LG_API_TIMEOUT", cfg.APITimeout)
	cfg.AdviceTTL = envDuration("LG_ADVICE_TTL", cfg.AdviceTTL)
	cfg.CharInterval = envDuration("LG_CHAR_INTERVAL", cfg.CharInterval)
	cfg.TradeTick = envDuration("LG_TRADE_TICK", cfg.TradeTick)
	cfg.SummaryDelay = envDuration("LG_SUMMARY_DELAY", cfg.SummaryDelay)
	cfg.RewardPolicy.ProfitBonusXP = envInt("LG_PROFIT_BONUS_XP", cfg.RewardPolicy.ProfitBonusXP)
	cfg.RewardPolicy.MetricBonusXP = envInt("LG_METRIC_BONUS_XP", cfg.RewardPolicy.MetricBonusXP)
	return cfg
}

func envDuration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("%s=%q: invalid duration (using %s)", key, raw, def)
		return def
	}
	return d
}

func envInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		log.Printf("%s=%q: invalid integer (using %d)", key, raw, def)
		return def
	}
	return n
}
