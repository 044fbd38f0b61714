// AngelaMos | 2026
// gardener_test.go

package gardener

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/plantsim/internal/config"
	"github.com/carterperez-dev/plantsim/internal/core"
	"github.com/carterperez-dev/plantsim/internal/middleware"
)

func newService(t *testing.T) (*Service, Repository) {
	t.Helper()
	ctx := context.Background()

	db, err := core.NewDatabase(ctx, config.DatabaseConfig{URL: "sqlite://:memory:"})
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := core.Migrate(ctx, db.DB); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	repo := NewRepository(db.DB)
	return NewService(repo), repo
}

func mustCreate(t *testing.T, svc *Service, email, name string) string {
	t.Helper()

	info, err := svc.Create(context.Background(), email, "hash", name)
	if err != nil {
		t.Fatalf("Create(%s): %v", email, err)
	}
	return info.ID
}

func TestCreateNormalizesEmail(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	id := mustCreate(t, svc, "  Rosa@Example.COM ", " Rosa ")

	info, err := svc.GetByEmail(ctx, "rosa@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if info.ID != id || info.Name != "Rosa" || info.Role != RoleGardener {
		t.Errorf("info = %+v", info)
	}

	_, err = svc.Create(ctx, "ROSA@example.com", "hash", "Again")
	if !errors.Is(err, core.ErrDuplicateKey) {
		t.Errorf("duplicate create err = %v", err)
	}
}

func TestTokenVersionAndPassword(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	id := mustCreate(t, svc, "fern@example.com", "Fern")

	if err := svc.IncrementTokenVersion(ctx, id); err != nil {
		t.Fatal(err)
	}
	if err := svc.UpdatePassword(ctx, id, "new-hash"); err != nil {
		t.Fatal(err)
	}

	info, err := svc.GetByID(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if info.TokenVersion != 1 || info.PasswordHash != "new-hash" {
		t.Errorf("info = %+v", info)
	}

	if err := svc.UpdatePassword(ctx, "missing", "x"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("missing gardener err = %v", err)
	}
}

func TestUpdateMe(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	id := mustCreate(t, svc, "ivy@example.com", "Ivy")

	name := "  Ivy Green "
	g, err := svc.UpdateMe(ctx, id, UpdateGardenerRequest{Name: &name})
	if err != nil {
		t.Fatal(err)
	}
	if g.Name != "Ivy Green" {
		t.Errorf("name = %q", g.Name)
	}

	if _, err := svc.UpdateMe(ctx, "", UpdateGardenerRequest{}); !errors.Is(err, core.ErrUnauthorized) {
		t.Errorf("anonymous update err = %v", err)
	}
}

func TestUpdateRoleBumpsTokenVersion(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	id := mustCreate(t, svc, "oak@example.com", "Oak")

	g, err := svc.UpdateRole(ctx, id, RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}
	if !g.IsAdmin() || g.TokenVersion != 1 {
		t.Errorf("after promote = %+v", g)
	}

	g, err = svc.UpdateRole(ctx, id, RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}
	if g.TokenVersion != 1 {
		t.Errorf("no-op role change bumped version to %d", g.TokenVersion)
	}

	if _, err := svc.UpdateRole(ctx, id, "overlord"); !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("invalid role err = %v", err)
	}
}

func TestDeleteRules(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	admin := mustCreate(t, svc, "admin@example.com", "Admin")
	other := mustCreate(t, svc, "other@example.com", "Other")
	victim := mustCreate(t, svc, "moss@example.com", "Moss")

	if _, err := svc.UpdateRole(ctx, other, RoleAdmin); err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(ctx, admin, admin); !errors.Is(err, core.ErrForbidden) {
		t.Errorf("self delete err = %v", err)
	}
	if err := svc.Delete(ctx, admin, other); !errors.Is(err, core.ErrForbidden) {
		t.Errorf("admin delete err = %v", err)
	}

	if err := svc.Delete(ctx, admin, victim); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, victim); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("deleted gardener still visible: %v", err)
	}
	if err := svc.Delete(ctx, admin, victim); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("second delete err = %v", err)
	}
}

func TestListFiltersAndPages(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	mustCreate(t, svc, "basil@example.com", "Basil")
	mustCreate(t, svc, "sage@example.com", "Sage")
	mustCreate(t, svc, "thyme_100@example.com", "Thyme")

	all, total, err := svc.List(ctx, ListParams{})
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 || len(all) != 3 {
		t.Fatalf("total = %d len = %d", total, len(all))
	}

	found, total, err := svc.List(ctx, ListParams{Search: "SAGE"})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || found[0].Name != "Sage" {
		t.Errorf("search = %d %+v", total, found)
	}

	// underscore is a literal, not a wildcard
	found, total, err = svc.List(ctx, ListParams{Search: "_"})
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || found[0].Name != "Thyme" {
		t.Errorf("escaped search = %d %+v", total, found)
	}

	page, total, err := svc.List(ctx, ListParams{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 || len(page) != 1 {
		t.Errorf("page 2 = %d rows of %d", len(page), total)
	}
}

func TestListParamsNormalize(t *testing.T) {
	p := ListParams{Page: -3, PageSize: 500}
	p.Normalize()

	if p.Page != 1 || p.PageSize != 100 || p.Offset() != 0 {
		t.Errorf("normalized = %+v", p)
	}
}

func withGardener(id string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), middleware.GardenerIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func passthrough(next http.Handler) http.Handler { return next }

func TestHandlerRoutes(t *testing.T) {
	svc, _ := newService(t)
	admin := mustCreate(t, svc, "root@example.com", "Root")
	target := mustCreate(t, svc, "leaf@example.com", "Leaf")

	r := chi.NewRouter()
	h := NewHandler(svc)
	h.RegisterRoutes(r, withGardener(admin))
	h.RegisterAdminRoutes(r, withGardener(admin), passthrough)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"me", http.MethodGet, "/gardeners/me", "", http.StatusOK},
		{"update me", http.MethodPut, "/gardeners/me", `{"name":"Root Two"}`, http.StatusOK},
		{"update me too long", http.MethodPut, "/gardeners/me", `{"name":"` + strings.Repeat("a", 101) + `"}`, http.StatusBadRequest},
		{"list", http.MethodGet, "/admin/gardeners/?page=1&page_size=10", "", http.StatusOK},
		{"get missing", http.MethodGet, "/admin/gardeners/nope", "", http.StatusNotFound},
		{"bad role", http.MethodPut, "/admin/gardeners/" + target + "/role", `{"role":"king"}`, http.StatusBadRequest},
		{"delete self", http.MethodDelete, "/admin/gardeners/" + admin, "", http.StatusForbidden},
		{"delete", http.MethodDelete, "/admin/gardeners/" + target, "", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}
