package main

import (
	"flag"
	"time"

	"LegacyGuardians/internal/server"
)

func main() {
	addr := flag.String("addr", ":8080", "address to listen on (e.g., 127.0.0.1:8080)")
	apiBase := flag.String("api-base", "", "backend API base URL (overrides LG_API_BASE_URL)")
	charMs := flag.Int("char-ms", 0, "dialogue typing interval in milliseconds (15-30 typical)")
	tickSec := flag.Int("tick-sec", 0, "competition price tick interval in seconds")
	profitBonus := flag.Int("profit-bonus", -1, "flat XP bonus on profitable missions (legacy policy: 50)")
	flag.Parse()

	cfg := server.LoadAppConfig()
	if *apiBase != "" {
		cfg.APIBaseURL = *apiBase
	}
	if *charMs > 0 {
		cfg.CharInterval = time.Duration(*charMs) * time.Millisecond
	}
	if *tickSec > 0 {
		cfg.TradeTick = time.Duration(*tickSec) * time.Second
	}
	if *profitBonus >= 0 {
		cfg.RewardPolicy.ProfitBonusXP = *profitBonus
	}

	server.StartApp(*addr, cfg)
}
