// AngelaMos | 2026
// entity.go

package plant

import (
	"time"

	"github.com/carterperez-dev/plantsim/internal/simulation"
)

// Plant is a gardener's plant instance together with its simulation clock.
type Plant struct {
	ID               string               `db:"id"`
	OwnerID          string               `db:"owner_id"`
	SpeciesID        int                  `db:"species_id"`
	Name             string               `db:"name"`
	ScientificName   string               `db:"scientific_name"`
	Stage            simulation.Stage     `db:"stage"`
	Health           simulation.Health    `db:"health"`
	WaterLevel       int                  `db:"water_level"`
	DaysWithoutWater int                  `db:"days_without_water"`
	DaysElapsed      int                  `db:"days_elapsed"`
	Weather          simulation.Condition `db:"weather"`
	WeatherDaysLeft  int                  `db:"weather_days_left"`
	Version          int                  `db:"version"`
	CreatedAt        time.Time            `db:"created_at"`
	UpdatedAt        time.Time            `db:"updated_at"`
}

func (p *Plant) SimPlant() simulation.Plant {
	return simulation.Plant{
		Name:             p.Name,
		ScientificName:   p.ScientificName,
		Stage:            p.Stage,
		Health:           p.Health,
		WaterLevel:       p.WaterLevel,
		DaysWithoutWater: p.DaysWithoutWater,
	}
}

func (p *Plant) SimState() simulation.State {
	return simulation.State{
		Weather:         p.Weather,
		WeatherDaysLeft: p.WeatherDaysLeft,
		DaysElapsed:     p.DaysElapsed,
	}
}

func (p *Plant) apply(sp simulation.Plant, st simulation.State) {
	p.Name = sp.Name
	p.ScientificName = sp.ScientificName
	p.Stage = sp.Stage
	p.Health = sp.Health
	p.WaterLevel = sp.WaterLevel
	p.DaysWithoutWater = sp.DaysWithoutWater
	p.Weather = st.Weather
	p.WeatherDaysLeft = st.WeatherDaysLeft
	p.DaysElapsed = st.DaysElapsed
}
