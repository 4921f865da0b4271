package server

import (
	"log"
	"time"

	"LegacyGuardians/internal/advice"
	"LegacyGuardians/internal/api"
	"LegacyGuardians/internal/game"
)

// StartApp seeds the content catalog, wires the shared services, and serves
// until the process exits.
func StartApp(addr string, cfg AppConfig) {
	catalog, err := game.NewCatalog(game.SeedFinancialEvents())
	if err != nil {
		log.Fatalf("event catalog: %v", err)
	}
	log.Printf("event catalog loaded: %d events, final year %d",
		len(catalog.Events), catalog.FinalYear())

	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout)
	cache := advice.NewCache(cfg.AdviceTTL, nil)
	adviceSvc := advice.NewService(client, cache)

	hub := NewHub(catalog, client, adviceSvc, cfg)

	// Periodic cleanup of idle sessions (every 60 seconds).
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			if n := hub.CleanupIdleSessions(idleTimeout); n > 0 {
				log.Printf("cleaned up %d idle sessions", n)
			}
		}
	}()

	log.Printf("starting web server on %s (backend %s)", addr, cfg.APIBaseURL)
	startServer(hub, addr)
}
