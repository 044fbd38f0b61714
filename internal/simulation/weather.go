// AngelaMos | 2026
// weather.go

package simulation

import (
	"math/rand/v2"
	"sync"
)

type Condition string

const (
	WeatherNormal Condition = "normal"
	WeatherHotDry Condition = "hot_dry"
	WeatherCold   Condition = "cold"
	WeatherRainy  Condition = "rainy"
)

func (c Condition) Label() string {
	switch c {
	case WeatherNormal:
		return "Normal"
	case WeatherHotDry:
		return "Hot and dry"
	case WeatherCold:
		return "Cold"
	case WeatherRainy:
		return "Rainy"
	}
	return string(c)
}

func (c Condition) Valid() bool {
	for _, w := range conditionWeights {
		if w.condition == c {
			return true
		}
	}
	return false
}

const (
	MinWeatherDays = 1
	MaxWeatherDays = 5
)

type weightedCondition struct {
	condition Condition
	weight    int
}

var conditionWeights = []weightedCondition{
	{condition: WeatherNormal, weight: 70},
	{condition: WeatherHotDry, weight: 10},
	{condition: WeatherCold, weight: 10},
	{condition: WeatherRainy, weight: 10},
}

type Forecast struct {
	Condition Condition
	Days      int
}

type Forecaster interface {
	Next() Forecast
}

// WeatherGenerator draws conditions proportionally to their weights and a
// duration uniformly from [MinWeatherDays, MaxWeatherDays]. It keeps no
// state between draws other than its random source.
type WeatherGenerator struct {
	mu          sync.Mutex
	rng         *rand.Rand
	totalWeight int
}

// NewWeatherGenerator seeds the generator. A zero seed picks a random one.
func NewWeatherGenerator(seed uint64) *WeatherGenerator {
	if seed == 0 {
		//nolint:gosec // G404: weather is gameplay randomness
		seed = rand.Uint64()
	}

	total := 0
	for _, w := range conditionWeights {
		total += w.weight
	}

	return &WeatherGenerator{
		//nolint:gosec // G404: weather is gameplay randomness
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		totalWeight: total,
	}
}

func (g *WeatherGenerator) Next() Forecast {
	g.mu.Lock()
	defer g.mu.Unlock()

	pick := g.rng.IntN(g.totalWeight)
	condition := WeatherNormal
	for _, w := range conditionWeights {
		if pick < w.weight {
			condition = w.condition
			break
		}
		pick -= w.weight
	}

	return Forecast{
		Condition: condition,
		Days:      MinWeatherDays + g.rng.IntN(MaxWeatherDays-MinWeatherDays+1),
	}
}
