// AngelaMos | 2026
// repository.go

package gardener

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/carterperez-dev/plantsim/internal/core"
)

type Repository interface {
	Create(ctx context.Context, g *Gardener) error
	GetByID(ctx context.Context, id string) (*Gardener, error)
	GetByEmail(ctx context.Context, email string) (*Gardener, error)
	Update(ctx context.Context, g *Gardener) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	IncrementTokenVersion(ctx context.Context, id string) error
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context, params ListParams) ([]Gardener, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const gardenerColumns = `id, email, password_hash, name, role, token_version,
		       created_at, updated_at, deleted_at`

func (r *repository) Create(ctx context.Context, g *Gardener) error {
	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now

	query := r.db.Rebind(`
		INSERT INTO gardeners
		    (id, email, password_hash, name, role, token_version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		g.ID,
		g.Email,
		g.PasswordHash,
		g.Name,
		g.Role,
		g.TokenVersion,
		g.CreatedAt,
		g.UpdatedAt,
	)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create gardener: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create gardener: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Gardener, error) {
	query := r.db.Rebind(`
		SELECT ` + gardenerColumns + `
		FROM gardeners
		WHERE id = ? AND deleted_at IS NULL`)

	var g Gardener
	err := r.db.GetContext(ctx, &g, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get gardener: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get gardener: %w", err)
	}

	return &g, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*Gardener, error) {
	query := r.db.Rebind(`
		SELECT ` + gardenerColumns + `
		FROM gardeners
		WHERE email = ? AND deleted_at IS NULL`)

	var g Gardener
	err := r.db.GetContext(ctx, &g, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get gardener by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get gardener by email: %w", err)
	}

	return &g, nil
}

func (r *repository) Update(ctx context.Context, g *Gardener) error {
	g.UpdatedAt = time.Now().UTC()

	query := r.db.Rebind(`
		UPDATE gardeners
		SET name = ?, role = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`)

	return r.execOne(ctx, "update gardener", query,
		g.Name,
		g.Role,
		g.UpdatedAt,
		g.ID,
	)
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	query := r.db.Rebind(`
		UPDATE gardeners
		SET password_hash = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`)

	return r.execOne(ctx, "update password", query,
		passwordHash,
		time.Now().UTC(),
		id,
	)
}

func (r *repository) IncrementTokenVersion(
	ctx context.Context,
	id string,
) error {
	query := r.db.Rebind(`
		UPDATE gardeners
		SET token_version = token_version + 1, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`)

	return r.execOne(ctx, "increment token version", query,
		time.Now().UTC(),
		id,
	)
}

func (r *repository) SoftDelete(ctx context.Context, id string) error {
	now := time.Now().UTC()

	query := r.db.Rebind(`
		UPDATE gardeners
		SET deleted_at = ?, updated_at = ?, token_version = token_version + 1
		WHERE id = ? AND deleted_at IS NULL`)

	return r.execOne(ctx, "delete gardener", query, now, now, id)
}

func (r *repository) List(
	ctx context.Context,
	params ListParams,
) ([]Gardener, int, error) {
	params.Normalize()

	conditions := []string{"deleted_at IS NULL"}
	var args []any

	if params.Search != "" {
		conditions = append(conditions,
			`(LOWER(email) LIKE ? ESCAPE '\' OR LOWER(name) LIKE ? ESCAPE '\')`)
		pattern := "%" + escapeLike(strings.ToLower(params.Search)) + "%"
		args = append(args, pattern, pattern)
	}

	if params.Role != "" {
		conditions = append(conditions, "role = ?")
		args = append(args, params.Role)
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := r.db.Rebind("SELECT COUNT(*) FROM gardeners WHERE " + where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count gardeners: %w", err)
	}

	query := r.db.Rebind(`
		SELECT ` + gardenerColumns + `
		FROM gardeners
		WHERE ` + where + `
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`)

	args = append(args, params.PageSize, params.Offset())

	var gardeners []Gardener
	if err := r.db.SelectContext(ctx, &gardeners, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list gardeners: %w", err)
	}

	return gardeners, total, nil
}

func (r *repository) execOne(
	ctx context.Context,
	op, query string,
	args ...any,
) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
