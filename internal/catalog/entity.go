// AngelaMos | 2026
// entity.go

package catalog

import (
	"github.com/carterperez-dev/plantsim/internal/simulation"
)

type Region struct {
	ID   int    `db:"id"   json:"id"`
	Name string `db:"name" json:"name"`
}

type Species struct {
	ID             int    `db:"id"              json:"id"`
	RegionID       int    `db:"region_id"       json:"region_id"`
	Name           string `db:"name"            json:"name"`
	ScientificName string `db:"scientific_name" json:"scientific_name"`
	IdealWater     int    `db:"ideal_water"     json:"ideal_water"`
}

func (s *Species) Simulation() simulation.Species {
	return simulation.Species{
		Name:           s.Name,
		ScientificName: s.ScientificName,
		IdealWater:     s.IdealWater,
	}
}
