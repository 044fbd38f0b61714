// AngelaMos | 2026
// service.go

package gardener

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/plantsim/internal/auth"
	"github.com/carterperez-dev/plantsim/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.GardenerInfo, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInfo(g), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.GardenerInfo, error) {
	g, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	return toInfo(g), nil
}

func (s *Service) Create(
	ctx context.Context,
	email, passwordHash, name string,
) (*auth.GardenerInfo, error) {
	g := &Gardener{
		ID:           uuid.New().String(),
		Email:        normalizeEmail(email),
		PasswordHash: passwordHash,
		Name:         strings.TrimSpace(name),
		Role:         RoleGardener,
	}

	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}

	return toInfo(g), nil
}

func (s *Service) IncrementTokenVersion(ctx context.Context, id string) error {
	return s.repo.IncrementTokenVersion(ctx, id)
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, id, passwordHash)
}

func (s *Service) GetMe(ctx context.Context, id string) (*Gardener, error) {
	if id == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateMe(
	ctx context.Context,
	id string,
	req UpdateGardenerRequest,
) (*Gardener, error) {
	if id == "" {
		return nil, fmt.Errorf("update me: %w", core.ErrUnauthorized)
	}

	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		g.Name = strings.TrimSpace(*req.Name)
	}

	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Gardener, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	params ListParams,
) ([]Gardener, int, error) {
	return s.repo.List(ctx, params)
}

// UpdateRole changes a gardener's role and invalidates their tokens, which
// still carry the old role.
func (s *Service) UpdateRole(
	ctx context.Context,
	id, role string,
) (*Gardener, error) {
	if role != RoleGardener && role != RoleAdmin {
		return nil, fmt.Errorf(
			"update role: invalid role %q: %w",
			role,
			core.ErrInvalidInput,
		)
	}

	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if g.Role == role {
		return g, nil
	}

	g.Role = role
	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}

	if err := s.repo.IncrementTokenVersion(ctx, id); err != nil {
		return nil, err
	}
	g.TokenVersion++

	return g, nil
}

// Delete soft deletes a gardener. Admins cannot be deleted through the
// API and nobody can delete themselves here.
func (s *Service) Delete(ctx context.Context, requesterID, targetID string) error {
	if requesterID == targetID {
		return fmt.Errorf("delete gardener: cannot delete self: %w", core.ErrForbidden)
	}

	target, err := s.repo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	if target.IsAdmin() {
		return fmt.Errorf("delete gardener: target is admin: %w", core.ErrForbidden)
	}

	return s.repo.SoftDelete(ctx, targetID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toInfo(g *Gardener) *auth.GardenerInfo {
	return &auth.GardenerInfo{
		ID:           g.ID,
		Email:        g.Email,
		Name:         g.Name,
		PasswordHash: g.PasswordHash,
		Role:         g.Role,
		TokenVersion: g.TokenVersion,
		CreatedAt:    g.CreatedAt,
	}
}

var _ auth.GardenerProvider = (*Service)(nil)
