// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/carterperez-dev/plantsim/internal/core"
	"github.com/carterperez-dev/plantsim/internal/middleware"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
)

type GardenerInfo struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	TokenVersion int
	CreatedAt    time.Time
}

type GardenerProvider interface {
	GetByEmail(ctx context.Context, email string) (*GardenerInfo, error)
	GetByID(ctx context.Context, id string) (*GardenerInfo, error)
	Create(
		ctx context.Context,
		email, passwordHash, name string,
	) (*GardenerInfo, error)
	IncrementTokenVersion(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type Service struct {
	jwt       *JWTManager
	gardeners GardenerProvider
	denylist  Denylist
	hasher    *core.PasswordHasher
}

func NewService(
	jwt *JWTManager,
	gardeners GardenerProvider,
	denylist Denylist,
	hasher *core.PasswordHasher,
) *Service {
	return &Service{
		jwt:       jwt,
		gardeners: gardeners,
		denylist:  denylist,
		hasher:    hasher,
	}
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*AuthResponse, error) {
	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	g, err := s.gardeners.Create(ctx, req.Email, passwordHash, req.Name)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create gardener: %w", err)
	}

	return s.issue(g)
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, error) {
	g, err := s.gardeners.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // burn the same time as a real check
			_, _, _ = s.hasher.VerifyTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get gardener: %w", err)
	}

	valid, rehash, err := s.hasher.VerifyTimingSafe(req.Password, &g.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	if rehash != "" {
		if err := s.gardeners.UpdatePassword(ctx, g.ID, rehash); err != nil {
			slog.WarnContext(ctx, "password rehash failed",
				"gardener_id", g.ID,
				"error", err,
			)
		}
	}

	return s.issue(g)
}

// VerifyAccessToken validates the token itself, then rejects it if its id
// was revoked or the gardener's token version moved past it.
func (s *Service) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	claims, err := s.jwt.ParseAccessToken(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		slog.WarnContext(ctx, "revocation check failed, relying on token version",
			"error", err,
		)
	}
	if revoked {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenRevoked)
	}

	g, err := s.gardeners.GetByID(ctx, claims.GardenerID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("verify token: %w", core.ErrTokenRevoked)
		}
		return nil, fmt.Errorf("verify token: %w", err)
	}

	if claims.TokenVersion < g.TokenVersion {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenRevoked)
	}

	return claims, nil
}

// Logout revokes only the presented access token.
func (s *Service) Logout(
	ctx context.Context,
	claims *middleware.AccessTokenClaims,
) error {
	if claims == nil {
		return fmt.Errorf("logout: %w", core.ErrUnauthorized)
	}

	if err := s.denylist.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// LogoutAll invalidates every token issued to the gardener so far.
func (s *Service) LogoutAll(ctx context.Context, gardenerID string) error {
	if err := s.gardeners.IncrementTokenVersion(ctx, gardenerID); err != nil {
		return fmt.Errorf("increment token version: %w", err)
	}
	return nil
}

func (s *Service) ChangePassword(
	ctx context.Context,
	gardenerID string,
	req ChangePasswordRequest,
) error {
	g, err := s.gardeners.GetByID(ctx, gardenerID)
	if err != nil {
		return fmt.Errorf("get gardener: %w", err)
	}

	valid, _, err := s.hasher.Verify(req.CurrentPassword, g.PasswordHash)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return ErrInvalidCredentials
	}

	newHash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.gardeners.UpdatePassword(ctx, gardenerID, newHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return s.LogoutAll(ctx, gardenerID)
}

func (s *Service) GetCurrentGardener(
	ctx context.Context,
	gardenerID string,
) (*GardenerResponse, error) {
	g, err := s.gardeners.GetByID(ctx, gardenerID)
	if err != nil {
		return nil, err
	}

	resp := toGardenerResponse(g)
	return &resp, nil
}

func (s *Service) issue(g *GardenerInfo) (*AuthResponse, error) {
	issued, err := s.jwt.CreateAccessToken(AccessTokenClaims{
		GardenerID:   g.ID,
		Role:         g.Role,
		TokenVersion: g.TokenVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	return &AuthResponse{
		Gardener: toGardenerResponse(g),
		Tokens: TokenResponse{
			AccessToken: issued.Token,
			TokenType:   "Bearer",
			ExpiresIn:   int(s.jwt.AccessTokenTTL() / time.Second),
			ExpiresAt:   issued.ExpiresAt,
		},
	}, nil
}

func toGardenerResponse(g *GardenerInfo) GardenerResponse {
	return GardenerResponse{
		ID:        g.ID,
		Email:     g.Email,
		Name:      g.Name,
		Role:      g.Role,
		CreatedAt: g.CreatedAt,
	}
}
