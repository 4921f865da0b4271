package advice

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"LegacyGuardians/internal/api"
	"LegacyGuardians/internal/game"
)

// DefaultTTL is how long a piece of advice stays fresh in the cache.
const DefaultTTL = 5 * time.Minute

// Key identifies one advice request. Identical keys share a cache slot and
// collapse into a single in-flight backend call.
type Key struct {
	CoachID     string
	OptionID    string
	EventYear   int
	Return      float64
	FinalAmount float64
	Performance game.Performance
}

func (k Key) String() string {
	return fmt.Sprintf("%s|%s|%d|%.2f|%.2f|%s",
		k.CoachID, k.OptionID, k.EventYear, k.Return, k.FinalAmount, k.Performance)
}

// Result carries advice plus whether it came from the static fallback. When
// Fallback is true, Err holds the displayable reason the backend was skipped.
type Result struct {
	Advice   api.CoachResponse
	Fallback bool
	Err      string
}

// Backend is the slice of the API client the service needs. Tests substitute
// a stub.
type Backend interface {
	CoachAdvice(req api.CoachRequest) (*api.CoachResponse, error)
}

// Service fetches coach advice with caching and in-flight de-duplication.
// There is no retry or backoff: a failed call falls back to static text and
// the next distinct request tries the backend again.
type Service struct {
	backend Backend
	cache   *Cache
	group   singleflight.Group
}

// NewService wires a service over a backend and cache.
func NewService(backend Backend, cache *Cache) *Service {
	return &Service{backend: backend, cache: cache}
}

// Get returns advice for the key, building the backend request from the
// player snapshot. Concurrent identical requests share one backend call.
func (s *Service) Get(key Key, req api.CoachRequest) Result {
	if cached, ok := s.cache.Get(key.String()); ok {
		return cached.(Result)
	}

	value, _, _ := s.group.Do(key.String(), func() (interface{}, error) {
		// Re-check under the flight: a concurrent caller may have
		// populated the cache while this one queued.
		if cached, ok := s.cache.Get(key.String()); ok {
			return cached, nil
		}
		var result Result
		resp, err := s.backend.CoachAdvice(req)
		if err != nil {
			result = Result{
				Advice:   Fallback(key.Performance, coachPersonalityFromContext(req.PlayerContext)),
				Fallback: true,
				Err:      api.DisplayError(err),
			}
		} else {
			result = Result{Advice: *resp}
		}
		s.cache.Set(key.String(), result)
		return result, nil
	})
	return value.(Result)
}

// coachPersonalityFromContext recovers the personality tag embedded in the
// free-form player context, mirroring how the backend reads it.
func coachPersonalityFromContext(ctx string) game.Personality {
	for _, p := range []game.Personality{
		game.PersonalityConservative,
		game.PersonalityBalanced,
		game.PersonalityAggressive,
		game.PersonalityIncome,
	} {
		if strings.Contains(ctx, string(p)) {
			return p
		}
	}
	return game.PersonalityBalanced
}
