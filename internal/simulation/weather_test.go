// AngelaMos | 2026
// weather_test.go

package simulation

import (
	"math"
	"testing"
)

func TestWeatherGeneratorDistribution(t *testing.T) {
	const samples = 100_000

	gen := NewWeatherGenerator(42)
	counts := make(map[Condition]int)

	for range samples {
		f := gen.Next()
		if f.Days < MinWeatherDays || f.Days > MaxWeatherDays {
			t.Fatalf("duration %d outside [%d, %d]", f.Days, MinWeatherDays, MaxWeatherDays)
		}
		if !f.Condition.Valid() {
			t.Fatalf("unexpected condition %q", f.Condition)
		}
		counts[f.Condition]++
	}

	want := map[Condition]float64{
		WeatherNormal: 0.70,
		WeatherHotDry: 0.10,
		WeatherCold:   0.10,
		WeatherRainy:  0.10,
	}

	for cond, p := range want {
		got := float64(counts[cond]) / samples
		if math.Abs(got-p) > 0.01 {
			t.Errorf("%s frequency = %.4f, want %.2f +/- 0.01", cond, got, p)
		}
	}
}

func TestWeatherGeneratorCoversAllDurations(t *testing.T) {
	gen := NewWeatherGenerator(7)
	seen := make(map[int]bool)

	for range 1_000 {
		seen[gen.Next().Days] = true
	}

	for d := MinWeatherDays; d <= MaxWeatherDays; d++ {
		if !seen[d] {
			t.Errorf("duration %d never drawn", d)
		}
	}
}

func TestWeatherGeneratorSeedIsReproducible(t *testing.T) {
	a := NewWeatherGenerator(99)
	b := NewWeatherGenerator(99)

	for i := range 50 {
		if fa, fb := a.Next(), b.Next(); fa != fb {
			t.Fatalf("draw %d differs: %+v vs %+v", i, fa, fb)
		}
	}
}
