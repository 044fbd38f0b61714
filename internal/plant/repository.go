// AngelaMos | 2026
// repository.go

package plant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/plantsim/internal/core"
)

type Repository interface {
	Create(ctx context.Context, p *Plant) error
	GetByID(ctx context.Context, id string) (*Plant, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Plant, error)
	Update(ctx context.Context, p *Plant) error
	CountByStage(ctx context.Context) (map[string]int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const plantColumns = `id, owner_id, species_id, name, scientific_name, stage, health,
		       water_level, days_without_water, days_elapsed, weather,
		       weather_days_left, version, created_at, updated_at`

func (r *repository) Create(ctx context.Context, p *Plant) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.Version = 1

	query := r.db.Rebind(`
		INSERT INTO plants (` + plantColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.OwnerID,
		p.SpeciesID,
		p.Name,
		p.ScientificName,
		string(p.Stage),
		string(p.Health),
		p.WaterLevel,
		p.DaysWithoutWater,
		p.DaysElapsed,
		string(p.Weather),
		p.WeatherDaysLeft,
		p.Version,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create plant: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create plant: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Plant, error) {
	query := r.db.Rebind(`
		SELECT ` + plantColumns + `
		FROM plants
		WHERE id = ?`)

	var p Plant
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get plant: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get plant: %w", err)
	}

	return &p, nil
}

func (r *repository) ListByOwner(
	ctx context.Context,
	ownerID string,
) ([]Plant, error) {
	query := r.db.Rebind(`
		SELECT ` + plantColumns + `
		FROM plants
		WHERE owner_id = ?
		ORDER BY created_at, id`)

	plants := []Plant{}
	if err := r.db.SelectContext(ctx, &plants, query, ownerID); err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}

	return plants, nil
}

// Update saves p if nobody else saved it since it was read. On success
// p.Version is bumped; a stale version yields core.ErrConflict.
func (r *repository) Update(ctx context.Context, p *Plant) error {
	updatedAt := time.Now().UTC()

	query := r.db.Rebind(`
		UPDATE plants
		SET name = ?, scientific_name = ?, stage = ?, health = ?,
		    water_level = ?, days_without_water = ?, days_elapsed = ?,
		    weather = ?, weather_days_left = ?,
		    version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`)

	result, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.ScientificName,
		string(p.Stage),
		string(p.Health),
		p.WaterLevel,
		p.DaysWithoutWater,
		p.DaysElapsed,
		string(p.Weather),
		p.WeatherDaysLeft,
		updatedAt,
		p.ID,
		p.Version,
	)
	if err != nil {
		return fmt.Errorf("update plant: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update plant: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update plant %s at version %d: %w", p.ID, p.Version, core.ErrConflict)
	}

	p.Version++
	p.UpdatedAt = updatedAt
	return nil
}

func (r *repository) CountByStage(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Stage string `db:"stage"`
		Count int    `db:"count"`
	}

	query := `SELECT stage, COUNT(*) AS count FROM plants GROUP BY stage`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count plants by stage: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Stage] = row.Count
	}
	return counts, nil
}
