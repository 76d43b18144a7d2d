package services

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"
)

// Simulated weather states, ordered from benign to severe.
type WeatherState string

const (
	WeatherClear  WeatherState = "CLEAR"
	WeatherCloudy WeatherState = "CLOUDY"
	WeatherRain   WeatherState = "RAIN"
	WeatherFog    WeatherState = "FOG"
	WeatherStorm  WeatherState = "STORM"
)

// Risk contribution per weather state, normalized to [0,1].
var weatherImpact = map[WeatherState]float64{
	WeatherClear:  0.0,
	WeatherCloudy: 0.1,
	WeatherRain:   0.3,
	WeatherFog:    0.5,
	WeatherStorm:  0.8,
}

// WeatherSim produces the current simulated weather state via a weighted
// random draw, re-rolled on a fixed wall-clock interval. The draw uses
// cumulative thresholds: clear 60%, cloudy 20%, rain 10%, fog 5%, storm 5%.
type WeatherSim struct {
	mu      sync.RWMutex
	current WeatherState
	rng     *rand.Rand
}

func NewWeatherSim(rng *rand.Rand) *WeatherSim {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &WeatherSim{rng: rng}
	s.Reroll()
	return s
}

// Current returns the weather state from the most recent draw.
func (s *WeatherSim) Current() WeatherState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Reroll draws a new weather state and returns it.
func (s *WeatherSim) Reroll() WeatherState {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.rng.Float64()
	switch {
	case r < 0.60:
		s.current = WeatherClear
	case r < 0.80:
		s.current = WeatherCloudy
	case r < 0.90:
		s.current = WeatherRain
	case r < 0.95:
		s.current = WeatherFog
	default:
		s.current = WeatherStorm
	}

	return s.current
}

// Run re-rolls the weather on every tick until the context is cancelled.
// Fire-and-forget: no coordination with callers beyond Current().
func (s *WeatherSim) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			state := s.Reroll()
			log.Printf("weather update: state=%s", state)
		}
	}
}

// ThreatLevel maps the current weather to the qualitative readiness scale
// shown on the command displays.
func (s *WeatherSim) ThreatLevel() string {
	switch s.Current() {
	case WeatherStorm:
		return "DEFCON 2"
	case WeatherFog:
		return "DEFCON 3"
	default:
		return "DEFCON 4"
	}
}
