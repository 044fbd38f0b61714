// AngelaMos | 2026
// health_test.go

package simulation

import "testing"

const acaiIdeal = 300

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name       string
		plant      Plant
		ideal      int
		wantStage  Stage
		wantHealth Health
	}{
		{
			name:       "ideal water is healthy",
			plant:      Plant{Stage: StageSeed, WaterLevel: 300},
			ideal:      acaiIdeal,
			wantStage:  StageSeed,
			wantHealth: HealthGood,
		},
		{
			name:       "outside margin is unhealthy",
			plant:      Plant{Stage: StageGrowing, Health: HealthGood, WaterLevel: 200},
			ideal:      acaiIdeal,
			wantStage:  StageGrowing,
			wantHealth: HealthBad,
		},
		{
			name:       "upper margin edge is healthy",
			plant:      Plant{Stage: StageSeed, WaterLevel: 330},
			ideal:      acaiIdeal,
			wantStage:  StageSeed,
			wantHealth: HealthGood,
		},
		{
			name:       "lower margin edge is healthy",
			plant:      Plant{Stage: StageSeed, WaterLevel: 270},
			ideal:      acaiIdeal,
			wantStage:  StageSeed,
			wantHealth: HealthGood,
		},
		{
			name:       "just past margin is unhealthy",
			plant:      Plant{Stage: StageSeed, WaterLevel: 331},
			ideal:      acaiIdeal,
			wantStage:  StageSeed,
			wantHealth: HealthBad,
		},
		{
			name:       "fractional margin edge is healthy",
			plant:      Plant{Stage: StageSeed, WaterLevel: 170},
			ideal:      155,
			wantStage:  StageSeed,
			wantHealth: HealthGood,
		},
		{
			name:       "double ideal kills",
			plant:      Plant{Stage: StageAdult, Health: HealthGood, WaterLevel: 600},
			ideal:      acaiIdeal,
			wantStage:  StageDead,
			wantHealth: HealthBad,
		},
		{
			name:       "three dry days kill regardless of water",
			plant:      Plant{Stage: StageSprouting, WaterLevel: 300, DaysWithoutWater: 3},
			ideal:      acaiIdeal,
			wantStage:  StageDead,
			wantHealth: HealthBad,
		},
		{
			name:       "two dry days survive",
			plant:      Plant{Stage: StageSprouting, WaterLevel: 300, DaysWithoutWater: 2},
			ideal:      acaiIdeal,
			wantStage:  StageSprouting,
			wantHealth: HealthGood,
		},
		{
			name:       "dead plant is not revived",
			plant:      Plant{Stage: StageDead, Health: HealthBad, WaterLevel: 300},
			ideal:      acaiIdeal,
			wantStage:  StageDead,
			wantHealth: HealthBad,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.plant
			Evaluate(&p, tt.ideal)

			if p.Stage != tt.wantStage {
				t.Errorf("stage = %s, want %s", p.Stage, tt.wantStage)
			}
			if p.Health != tt.wantHealth {
				t.Errorf("health = %s, want %s", p.Health, tt.wantHealth)
			}
		})
	}
}

func TestEvaluateOverwateringIgnoresDryDays(t *testing.T) {
	for ideal := 1; ideal <= 500; ideal += 37 {
		for days := 0; days < DroughtDays; days++ {
			p := Plant{
				Stage:            StageSeed,
				WaterLevel:       OverwaterFactor * ideal,
				DaysWithoutWater: days,
			}
			Evaluate(&p, ideal)
			if p.Stage != StageDead || p.Health != HealthBad {
				t.Fatalf("ideal=%d days=%d: got %s/%s, want dead/bad",
					ideal, days, p.Stage, p.Health)
			}
		}
	}
}

func TestEvaluateDroughtIgnoresWaterLevel(t *testing.T) {
	for _, water := range []int{0, 150, 300, 330, 599, 10_000} {
		p := Plant{Stage: StageGrowing, WaterLevel: water, DaysWithoutWater: 4}
		Evaluate(&p, acaiIdeal)
		if p.Stage != StageDead || p.Health != HealthBad {
			t.Fatalf("water=%d: got %s/%s, want dead/bad", water, p.Stage, p.Health)
		}
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	for water := 0; water <= 700; water += 25 {
		for days := 0; days <= 3; days++ {
			p := Plant{Stage: StageSeed, WaterLevel: water, DaysWithoutWater: days}
			Evaluate(&p, acaiIdeal)
			first := p
			Evaluate(&p, acaiIdeal)
			if p != first {
				t.Fatalf("water=%d days=%d: second evaluation changed %+v to %+v",
					water, days, first, p)
			}
		}
	}
}

func TestToleranceMargin(t *testing.T) {
	tests := map[int]int{
		300: 30,
		150: 15,
		155: 15,
		9:   0,
		0:   0,
	}

	for ideal, want := range tests {
		if got := ToleranceMargin(ideal); got != want {
			t.Errorf("ToleranceMargin(%d) = %d, want %d", ideal, got, want)
		}
	}
}
