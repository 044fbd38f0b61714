// AngelaMos | 2026
// dto.go

package plant

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/carterperez-dev/plantsim/internal/simulation"
)

type CreatePlantRequest struct {
	SpeciesID int    `json:"species_id" validate:"required,min=1"`
	Name      string `json:"name"       validate:"max=100"`
}

// WaterAmount holds the raw amount as typed by the gardener. It accepts a
// JSON number or a JSON string so that non-numeric input reaches the
// simulation's own validation instead of failing JSON decoding.
type WaterAmount string

func (w *WaterAmount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*w = WaterAmount(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*w = ""
		return nil
	}
	*w = WaterAmount(data)
	return nil
}

type WaterRequest struct {
	Amount WaterAmount `json:"amount"`
}

type PlantResponse struct {
	ID               string    `json:"id"`
	SpeciesID        int       `json:"species_id"`
	Name             string    `json:"name"`
	ScientificName   string    `json:"scientific_name"`
	Stage            string    `json:"stage"`
	Health           string    `json:"health"`
	WaterLevel       int       `json:"water_level"`
	DaysWithoutWater int       `json:"days_without_water"`
	DaysElapsed      int       `json:"days_elapsed"`
	Weather          string    `json:"weather"`
	WeatherLabel     string    `json:"weather_label"`
	WeatherDaysLeft  int       `json:"weather_days_left"`
	Dead             bool      `json:"dead"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type PlantDetailResponse struct {
	Plant   PlantResponse `json:"plant"`
	Message string        `json:"message"`
}

type OutcomeResponse struct {
	Plant          PlantResponse `json:"plant"`
	Message        string        `json:"message"`
	Terminal       bool          `json:"terminal"`
	Died           bool          `json:"died"`
	WeatherChanged bool          `json:"weather_changed"`
}

func ToResponse(p *Plant) PlantResponse {
	return PlantResponse{
		ID:               p.ID,
		SpeciesID:        p.SpeciesID,
		Name:             p.Name,
		ScientificName:   p.ScientificName,
		Stage:            string(p.Stage),
		Health:           string(p.Health),
		WaterLevel:       p.WaterLevel,
		DaysWithoutWater: p.DaysWithoutWater,
		DaysElapsed:      p.DaysElapsed,
		Weather:          string(p.Weather),
		WeatherLabel:     p.Weather.Label(),
		WeatherDaysLeft:  p.WeatherDaysLeft,
		Dead:             p.Stage.IsTerminal(),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func ToResponseList(plants []Plant) []PlantResponse {
	out := make([]PlantResponse, 0, len(plants))
	for i := range plants {
		out = append(out, ToResponse(&plants[i]))
	}
	return out
}

func ToDetailResponse(p *Plant) PlantDetailResponse {
	return PlantDetailResponse{
		Plant:   ToResponse(p),
		Message: simulation.Describe(p.SimPlant(), p.SimState()),
	}
}

func ToOutcomeResponse(res *StepResult) OutcomeResponse {
	return OutcomeResponse{
		Plant:          ToResponse(res.Plant),
		Message:        res.Outcome.Message,
		Terminal:       res.Outcome.Terminal,
		Died:           res.Outcome.Died,
		WeatherChanged: res.Outcome.WeatherChanged,
	}
}
