// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/plantsim/internal/config"
	"github.com/carterperez-dev/plantsim/internal/core"
)

type memoryGardeners struct {
	mu     sync.Mutex
	byID   map[string]*GardenerInfo
	nextID int
}

func newMemoryGardeners() *memoryGardeners {
	return &memoryGardeners{byID: make(map[string]*GardenerInfo)}
}

func (m *memoryGardeners) GetByEmail(_ context.Context, email string) (*GardenerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.byID {
		if g.Email == strings.ToLower(email) {
			cp := *g
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (m *memoryGardeners) GetByID(_ context.Context, id string) (*GardenerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (m *memoryGardeners) Create(
	_ context.Context,
	email, passwordHash, name string,
) (*GardenerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.byID {
		if g.Email == strings.ToLower(email) {
			return nil, fmt.Errorf("create: %w", core.ErrDuplicateKey)
		}
	}
	m.nextID++
	g := &GardenerInfo{
		ID:           fmt.Sprintf("g-%d", m.nextID),
		Email:        strings.ToLower(email),
		Name:         name,
		PasswordHash: passwordHash,
		Role:         "gardener",
		CreatedAt:    time.Now(),
	}
	m.byID[g.ID] = g
	cp := *g
	return &cp, nil
}

func (m *memoryGardeners) IncrementTokenVersion(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.byID[id]
	if !ok {
		return core.ErrNotFound
	}
	g.TokenVersion++
	return nil
}

func (m *memoryGardeners) UpdatePassword(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.byID[id]
	if !ok {
		return core.ErrNotFound
	}
	g.PasswordHash = hash
	return nil
}

type memoryDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func (d *memoryDenylist) Revoke(_ context.Context, id string, until time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[id] = until
	return nil
}

func (d *memoryDenylist) IsRevoked(_ context.Context, id string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.revoked[id]
	return ok, nil
}

func testJWTConfig(t *testing.T) config.JWTConfig {
	t.Helper()
	dir := t.TempDir()
	return config.JWTConfig{
		PrivateKeyPath:    filepath.Join(dir, "keys", "private.pem"),
		PublicKeyPath:     filepath.Join(dir, "keys", "public.pem"),
		AccessTokenExpire: time.Hour,
		Issuer:            "plantsim",
		Audience:          "plantsim-api",
		GenerateKeys:      true,
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()

	jwtManager, err := NewJWTManager(testJWTConfig(t))
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	hasher := core.NewPasswordHasher(core.PasswordParams{
		Time:    1,
		Memory:  1024,
		Threads: 1,
		KeyLen:  32,
		SaltLen: 16,
	})

	return NewService(
		jwtManager,
		newMemoryGardeners(),
		&memoryDenylist{revoked: make(map[string]time.Time)},
		hasher,
	)
}

var registerReq = RegisterRequest{
	Email:    "Flora@example.com",
	Password: "correct horse battery",
	Name:     "Flora",
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerReq)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.Tokens.AccessToken == "" || reg.Tokens.TokenType != "Bearer" {
		t.Fatalf("unexpected tokens: %+v", reg.Tokens)
	}
	if reg.Tokens.ExpiresIn != int(time.Hour/time.Second) {
		t.Errorf("expires_in = %d", reg.Tokens.ExpiresIn)
	}

	login, err := svc.Login(ctx, LoginRequest{
		Email:    "flora@example.com",
		Password: registerReq.Password,
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.Gardener.ID != reg.Gardener.ID {
		t.Errorf("login gardener = %q, want %q", login.Gardener.ID, reg.Gardener.ID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerReq); err != nil {
		t.Fatalf("Register: %v", err)
	}

	tests := []LoginRequest{
		{Email: "flora@example.com", Password: "wrong password"},
		{Email: "nobody@example.com", Password: registerReq.Password},
	}
	for _, req := range tests {
		if _, err := svc.Login(ctx, req); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login(%s) error = %v, want ErrInvalidCredentials", req.Email, err)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerReq); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, registerReq); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("second Register error = %v, want ErrEmailExists", err)
	}
}

func TestLogoutRevokesOnlyPresentedToken(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Register(ctx, registerReq)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	second, err := svc.Login(ctx, LoginRequest{
		Email:    registerReq.Email,
		Password: registerReq.Password,
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	claims, err := svc.VerifyAccessToken(ctx, first.Tokens.AccessToken)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if claims.GardenerID != first.Gardener.ID || claims.Role != "gardener" {
		t.Errorf("claims = %+v", claims)
	}

	if err := svc.Logout(ctx, claims); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if _, err := svc.VerifyAccessToken(ctx, first.Tokens.AccessToken); !errors.Is(err, core.ErrTokenRevoked) {
		t.Errorf("revoked token error = %v, want ErrTokenRevoked", err)
	}
	if _, err := svc.VerifyAccessToken(ctx, second.Tokens.AccessToken); err != nil {
		t.Errorf("other session was revoked: %v", err)
	}
}

func TestLogoutAllBumpsTokenVersion(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerReq)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.LogoutAll(ctx, reg.Gardener.ID); err != nil {
		t.Fatalf("LogoutAll: %v", err)
	}

	if _, err := svc.VerifyAccessToken(ctx, reg.Tokens.AccessToken); !errors.Is(err, core.ErrTokenRevoked) {
		t.Fatalf("error = %v, want ErrTokenRevoked", err)
	}

	fresh, err := svc.Login(ctx, LoginRequest{
		Email:    registerReq.Email,
		Password: registerReq.Password,
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := svc.VerifyAccessToken(ctx, fresh.Tokens.AccessToken); err != nil {
		t.Fatalf("token issued after logout-all rejected: %v", err)
	}
}

func TestChangePasswordRevokesSessions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, registerReq)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	err = svc.ChangePassword(ctx, reg.Gardener.ID, ChangePasswordRequest{
		CurrentPassword: "not it",
		NewPassword:     "a brand new secret",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong current password error = %v", err)
	}

	err = svc.ChangePassword(ctx, reg.Gardener.ID, ChangePasswordRequest{
		CurrentPassword: registerReq.Password,
		NewPassword:     "a brand new secret",
	})
	if err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, err := svc.VerifyAccessToken(ctx, reg.Tokens.AccessToken); !errors.Is(err, core.ErrTokenRevoked) {
		t.Errorf("old token error = %v, want ErrTokenRevoked", err)
	}
	if _, err := svc.Login(ctx, LoginRequest{
		Email:    registerReq.Email,
		Password: "a brand new secret",
	}); err != nil {
		t.Errorf("login with new password: %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.VerifyAccessToken(context.Background(), "not.a.token")
	if !errors.Is(err, core.ErrTokenInvalid) {
		t.Fatalf("error = %v, want ErrTokenInvalid", err)
	}
}

func TestJWTManagerKeyIDIsStable(t *testing.T) {
	cfg := testJWTConfig(t)

	first, err := NewJWTManager(cfg)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	second, err := NewJWTManager(cfg)
	if err != nil {
		t.Fatalf("NewJWTManager reload: %v", err)
	}

	if first.GetKeyID() == "" || first.GetKeyID() != second.GetKeyID() {
		t.Fatalf("key ids differ: %q vs %q", first.GetKeyID(), second.GetKeyID())
	}

	rec := httptest.NewRecorder()
	first.GetJWKSHandler()(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var body struct {
		Keys []struct {
			KeyID string `json:"kid"`
			Use   string `json:"use"`
		} `json:"keys"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode jwks: %v", err)
	}
	if len(body.Keys) != 1 || body.Keys[0].KeyID != first.GetKeyID() || body.Keys[0].Use != "sig" {
		t.Fatalf("jwks = %+v", body.Keys)
	}
}

func TestHandlerRegisterValidation(t *testing.T) {
	h := NewHandler(newTestService(t))
	r := chi.NewRouter()
	h.RegisterRoutes(r, func(next http.Handler) http.Handler { return next })

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{`, http.StatusBadRequest},
		{"bad email", `{"email":"nope","password":"longenough","name":"A"}`, http.StatusBadRequest},
		{"short password", `{"email":"a@b.co","password":"short","name":"A"}`, http.StatusBadRequest},
		{"valid", `{"email":"a@b.co","password":"longenough","name":"A"}`, http.StatusCreated},
		{"duplicate", `{"email":"a@b.co","password":"longenough","name":"A"}`, http.StatusConflict},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(tt.body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != tt.want {
			t.Errorf("%s: status = %d, want %d (%s)", tt.name, rec.Code, tt.want, rec.Body)
		}
	}
}
