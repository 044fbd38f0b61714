// AngelaMos | 2026
// types.go

package simulation

type Stage string

const (
	StageSeed      Stage = "seed"
	StageSprouting Stage = "sprouting"
	StageGrowing   Stage = "growing"
	StageAdult     Stage = "adult"
	StageDead      Stage = "dead"
)

func (s Stage) IsTerminal() bool {
	return s == StageDead
}

func (s Stage) Valid() bool {
	switch s {
	case StageSeed, StageSprouting, StageGrowing, StageAdult, StageDead:
		return true
	}
	return false
}

type Health string

const (
	HealthGood Health = "good"
	HealthBad  Health = "bad"
)

// Plant is the mutable part of a user plant that a simulated day can touch.
type Plant struct {
	Name             string
	ScientificName   string
	Stage            Stage
	Health           Health
	WaterLevel       int
	DaysWithoutWater int
}

// Species carries the reference values a step needs. IdealWater is in mL.
type Species struct {
	Name           string
	ScientificName string
	IdealWater     int
}

// State is the simulation clock owned by the caller and threaded through
// every step.
type State struct {
	Weather         Condition
	WeatherDaysLeft int
	DaysElapsed     int
}

type Outcome struct {
	Plant          Plant
	State          State
	Message        string
	Terminal       bool
	Died           bool
	WeatherChanged bool
}

// NewPlant returns a freshly sown plant. A blank name falls back to the
// species name.
func NewPlant(name string, species Species) Plant {
	if name == "" {
		name = species.Name
	}

	return Plant{
		Name:           name,
		ScientificName: species.ScientificName,
		Stage:          StageSeed,
		Health:         HealthGood,
	}
}
