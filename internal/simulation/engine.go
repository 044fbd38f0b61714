// AngelaMos | 2026
// engine.go

package simulation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidWaterInput = errors.New("enter a numeric value for water")

// Growth stages are reached on these exact day counts. A day that is never
// observed skips its transition.
var stageThresholds = map[int]Stage{
	5:  StageSprouting,
	10: StageGrowing,
	15: StageAdult,
}

type Engine struct {
	forecaster Forecaster
}

func NewEngine(forecaster Forecaster) *Engine {
	return &Engine{forecaster: forecaster}
}

// NewState starts a simulation clock at day zero with a fresh forecast.
func (e *Engine) NewState() State {
	f := e.forecaster.Next()
	return State{
		Weather:         f.Condition,
		WeatherDaysLeft: f.Days,
	}
}

// AdvanceDay runs one simulated day. Inputs are values; the caller persists
// the returned plant and state.
func (e *Engine) AdvanceDay(p Plant, species Species, st State) Outcome {
	wasDead := p.Stage.IsTerminal()

	Evaluate(&p, species.IdealWater)
	if p.Stage.IsTerminal() {
		return Outcome{
			Plant:    p,
			State:    st,
			Message:  deathMessage(p),
			Terminal: true,
			Died:     !wasDead,
		}
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "Weather: %s (%d days left)\n",
		st.Weather.Label(), st.WeatherDaysLeft)

	switch st.Weather {
	case WeatherRainy:
		p.WaterLevel = species.IdealWater
		p.Health = HealthGood
		p.DaysWithoutWater = 0
		msg.WriteString("It rained! The plant was watered automatically.\n")
	case WeatherHotDry:
		// Advisory only: the evaluator keeps judging against the plain ideal.
		msg.WriteString("It is hot and dry, the plant needs 20% more water.\n")
	case WeatherCold:
		msg.WriteString("It is cold, protect your plant.\n")
	}

	msg.WriteString("\n")
	msg.WriteString(statusLine(p))

	st.DaysElapsed++
	p.DaysWithoutWater++

	if stage, ok := stageThresholds[st.DaysElapsed]; ok {
		p.Stage = stage
	}

	st.WeatherDaysLeft--
	weatherChanged := false
	if st.WeatherDaysLeft <= 0 {
		f := e.forecaster.Next()
		st.Weather = f.Condition
		st.WeatherDaysLeft = f.Days
		weatherChanged = true
	}

	return Outcome{
		Plant:          p,
		State:          st,
		Message:        msg.String(),
		WeatherChanged: weatherChanged,
	}
}

// Water sets the water level from raw user input and advances one day.
// Invalid input leaves everything untouched.
func (e *Engine) Water(
	p Plant,
	species Species,
	st State,
	raw string,
) (Outcome, error) {
	amount, err := ParseWaterAmount(raw)
	if err != nil {
		return Outcome{}, err
	}

	if p.Stage.IsTerminal() {
		return Outcome{
			Plant:    p,
			State:    st,
			Message:  deathMessage(p),
			Terminal: true,
		}, nil
	}

	p.WaterLevel = amount
	p.DaysWithoutWater = 0

	return e.AdvanceDay(p, species, st), nil
}

func ParseWaterAmount(raw string) (int, error) {
	amount, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || amount < 0 {
		return 0, fmt.Errorf("water amount %q: %w", raw, ErrInvalidWaterInput)
	}
	return amount, nil
}

// Describe renders the current status without advancing the simulation.
func Describe(p Plant, st State) string {
	if p.Stage.IsTerminal() {
		return deathMessage(p)
	}

	return fmt.Sprintf("Weather: %s (%d days left)\n\n%s",
		st.Weather.Label(), st.WeatherDaysLeft, statusLine(p))
}

func statusLine(p Plant) string {
	return fmt.Sprintf(
		"Name: %s | Species: %s\nStage: %s | Health: %s\nWater: %d mL | Days without water: %d",
		p.Name, p.ScientificName,
		p.Stage, p.Health,
		p.WaterLevel, p.DaysWithoutWater,
	)
}

func deathMessage(p Plant) string {
	return fmt.Sprintf("Your plant died! Final stage: %s", p.Stage)
}
