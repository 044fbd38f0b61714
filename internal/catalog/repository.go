// AngelaMos | 2026
// repository.go

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/plantsim/internal/core"
)

// Repository reads the seeded reference data. Nothing writes to it at
// runtime.
type Repository interface {
	ListRegions(ctx context.Context) ([]Region, error)
	GetRegion(ctx context.Context, id int) (*Region, error)
	ListSpeciesByRegion(ctx context.Context, regionID int) ([]Species, error)
	GetSpecies(ctx context.Context, id int) (*Species, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) ListRegions(ctx context.Context) ([]Region, error) {
	var regions []Region
	err := r.db.SelectContext(ctx, &regions, `SELECT id, name FROM regions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}
	return regions, nil
}

func (r *repository) GetRegion(ctx context.Context, id int) (*Region, error) {
	var region Region
	err := r.db.GetContext(ctx, &region,
		r.db.Rebind(`SELECT id, name FROM regions WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get region %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get region %d: %w", id, err)
	}
	return &region, nil
}

func (r *repository) ListSpeciesByRegion(
	ctx context.Context,
	regionID int,
) ([]Species, error) {
	query := r.db.Rebind(`
		SELECT id, region_id, name, scientific_name, ideal_water
		FROM species
		WHERE region_id = ?
		ORDER BY id`)

	var species []Species
	if err := r.db.SelectContext(ctx, &species, query, regionID); err != nil {
		return nil, fmt.Errorf("list species for region %d: %w", regionID, err)
	}
	return species, nil
}

func (r *repository) GetSpecies(ctx context.Context, id int) (*Species, error) {
	query := r.db.Rebind(`
		SELECT id, region_id, name, scientific_name, ideal_water
		FROM species
		WHERE id = ?`)

	var sp Species
	err := r.db.GetContext(ctx, &sp, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get species %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get species %d: %w", id, err)
	}
	return &sp, nil
}
