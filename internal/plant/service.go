// AngelaMos | 2026
// service.go

package plant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/carterperez-dev/plantsim/internal/catalog"
	"github.com/carterperez-dev/plantsim/internal/core"
	"github.com/carterperez-dev/plantsim/internal/simulation"
)

const tracerName = "github.com/carterperez-dev/plantsim/internal/plant"

const (
	WaterResultOK      = "ok"
	WaterResultInvalid = "invalid"
	WaterResultDead    = "dead"
)

type SpeciesProvider interface {
	GetSpecies(ctx context.Context, id int) (*catalog.Species, error)
}

// Recorder receives simulation events. core.Metrics implements it.
type Recorder interface {
	PlantCreated()
	DayAdvanced()
	PlantDied()
	Watered(result string)
	WeatherDrawn(condition string)
}

type StepResult struct {
	Plant   *Plant
	Outcome simulation.Outcome
}

type Service struct {
	repo    Repository
	species SpeciesProvider
	engine  *simulation.Engine
	metrics Recorder
	tracer  trace.Tracer
}

func NewService(
	repo Repository,
	species SpeciesProvider,
	engine *simulation.Engine,
	metrics Recorder,
) *Service {
	if metrics == nil {
		metrics = nopRecorder{}
	}

	return &Service{
		repo:    repo,
		species: species,
		engine:  engine,
		metrics: metrics,
		tracer:  otel.Tracer(tracerName),
	}
}

// Create sows a new plant of the given species for ownerID with a fresh
// weather forecast.
func (s *Service) Create(
	ctx context.Context,
	ownerID string,
	req CreatePlantRequest,
) (*Plant, error) {
	ctx, span := s.tracer.Start(ctx, "plant.Create",
		trace.WithAttributes(attribute.Int("species.id", req.SpeciesID)))
	defer span.End()

	sp, err := s.species.GetSpecies(ctx, req.SpeciesID)
	if err != nil {
		return nil, fmt.Errorf("create plant: %w", err)
	}

	simPlant := simulation.NewPlant(strings.TrimSpace(req.Name), sp.Simulation())
	state := s.engine.NewState()

	p := &Plant{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		SpeciesID: sp.ID,
	}
	p.apply(simPlant, state)

	if err := s.repo.Create(ctx, p); err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}

	s.metrics.PlantCreated()
	s.metrics.WeatherDrawn(string(state.Weather))
	span.SetAttributes(attribute.String("plant.id", p.ID))

	return p, nil
}

func (s *Service) List(ctx context.Context, ownerID string) ([]Plant, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Get loads a plant owned by ownerID. Plants of other gardeners are
// reported as not found.
func (s *Service) Get(ctx context.Context, ownerID, id string) (*Plant, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.OwnerID != ownerID {
		return nil, fmt.Errorf("get plant: %w", core.ErrNotFound)
	}

	return p, nil
}

// Water applies raw as the new water level and advances one day. Input
// that is not a non-negative integer fails with
// simulation.ErrInvalidWaterInput and changes nothing.
func (s *Service) Water(
	ctx context.Context,
	ownerID, id, raw string,
) (*StepResult, error) {
	ctx, span := s.tracer.Start(ctx, "plant.Water",
		trace.WithAttributes(attribute.String("plant.id", id)))
	defer span.End()

	return s.step(ctx, ownerID, id, func(
		p simulation.Plant,
		sp simulation.Species,
		st simulation.State,
	) (simulation.Outcome, error) {
		out, err := s.engine.Water(p, sp, st, raw)
		switch {
		case errors.Is(err, simulation.ErrInvalidWaterInput):
			s.metrics.Watered(WaterResultInvalid)
		case err != nil:
		case out.Terminal && !out.Died:
			s.metrics.Watered(WaterResultDead)
		default:
			s.metrics.Watered(WaterResultOK)
		}
		return out, err
	})
}

// Advance runs one simulated day without watering.
func (s *Service) Advance(
	ctx context.Context,
	ownerID, id string,
) (*StepResult, error) {
	ctx, span := s.tracer.Start(ctx, "plant.Advance",
		trace.WithAttributes(attribute.String("plant.id", id)))
	defer span.End()

	return s.step(ctx, ownerID, id, func(
		p simulation.Plant,
		sp simulation.Species,
		st simulation.State,
	) (simulation.Outcome, error) {
		return s.engine.AdvanceDay(p, sp, st), nil
	})
}

type stepFunc func(
	simulation.Plant,
	simulation.Species,
	simulation.State,
) (simulation.Outcome, error)

// step loads the plant and its species, runs fn and saves the result under
// the version read. A terminal outcome on an already dead plant is not
// saved since nothing changed.
func (s *Service) step(
	ctx context.Context,
	ownerID, id string,
	fn stepFunc,
) (*StepResult, error) {
	p, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	sp, err := s.species.GetSpecies(ctx, p.SpeciesID)
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("load species %d: %w", p.SpeciesID, err)
	}

	out, err := fn(p.SimPlant(), sp.Simulation(), p.SimState())
	if err != nil {
		return nil, err
	}

	if out.Terminal && !out.Died {
		return &StepResult{Plant: p, Outcome: out}, nil
	}

	p.apply(out.Plant, out.State)
	if err := s.repo.Update(ctx, p); err != nil {
		if !errors.Is(err, core.ErrConflict) {
			core.SetSpanError(ctx, err)
		}
		return nil, err
	}

	s.record(ctx, out)

	return &StepResult{Plant: p, Outcome: out}, nil
}

func (s *Service) record(ctx context.Context, out simulation.Outcome) {
	if out.Died {
		s.metrics.PlantDied()
		core.AddSpanEvent(ctx, "plant.died",
			attribute.Int("days_without_water", out.Plant.DaysWithoutWater),
			attribute.Int("water_level", out.Plant.WaterLevel),
		)
		return
	}

	s.metrics.DayAdvanced()

	if out.WeatherChanged {
		s.metrics.WeatherDrawn(string(out.State.Weather))
		core.AddSpanEvent(ctx, "weather.changed",
			attribute.String("weather", string(out.State.Weather)),
			attribute.Int("days", out.State.WeatherDaysLeft),
		)
	}
}

// CountByStage reports how many plants sit in each stage across all
// gardeners.
func (s *Service) CountByStage(ctx context.Context) (map[string]int, error) {
	return s.repo.CountByStage(ctx)
}

type nopRecorder struct{}

func (nopRecorder) PlantCreated()       {}
func (nopRecorder) DayAdvanced()        {}
func (nopRecorder) PlantDied()          {}
func (nopRecorder) Watered(string)      {}
func (nopRecorder) WeatherDrawn(string) {}
