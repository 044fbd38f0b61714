// AngelaMos | 2026
// health.go

package simulation

const (
	DroughtDays     = 3
	OverwaterFactor = 2

	tolerancePercent = 10
)

// ToleranceMargin is floor(10% of ideal).
func ToleranceMargin(idealWater int) int {
	return idealWater * tolerancePercent / 100
}

// Evaluate recomputes stage and health in place. Drought is checked before
// overwatering; both are terminal. A dead plant is left untouched.
func Evaluate(p *Plant, idealWater int) {
	if p.Stage.IsTerminal() {
		return
	}

	switch {
	case p.DaysWithoutWater >= DroughtDays:
		kill(p)
	case p.WaterLevel >= OverwaterFactor*idealWater:
		kill(p)
	default:
		if abs(p.WaterLevel-idealWater) <= ToleranceMargin(idealWater) {
			p.Health = HealthGood
		} else {
			p.Health = HealthBad
		}
	}
}

func kill(p *Plant) {
	p.Stage = StageDead
	p.Health = HealthBad
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
