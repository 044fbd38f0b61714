// AngelaMos | 2026
// database_test.go

package core

import (
	"context"
	"testing"

	"github.com/carterperez-dev/plantsim/internal/config"
)

func TestParseDatabaseURL(t *testing.T) {
	tests := []struct {
		url        string
		wantDriver string
		wantDSN    string
		wantErr    bool
	}{
		{
			url:        "postgres://u:p@localhost:5432/plants",
			wantDriver: "pgx",
			wantDSN:    "postgres://u:p@localhost:5432/plants",
		},
		{
			url:        "sqlite://plants.db",
			wantDriver: "sqlite",
			wantDSN:    "plants.db?" + sqlitePragmas,
		},
		{
			url:        "file:plants.db?mode=rwc",
			wantDriver: "sqlite",
			wantDSN:    "file:plants.db?mode=rwc&" + sqlitePragmas,
		},
		{
			url:        "sqlite://x.db?_pragma=journal_mode(WAL)",
			wantDriver: "sqlite",
			wantDSN:    "x.db?_pragma=journal_mode(WAL)",
		},
		{url: "mysql://nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			driver, dsn, err := ParseDatabaseURL(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if driver != tt.wantDriver || dsn != tt.wantDSN {
				t.Errorf("got (%s, %s), want (%s, %s)", driver, dsn, tt.wantDriver, tt.wantDSN)
			}
		})
	}
}

func TestMigrateSeedsReferenceData(t *testing.T) {
	ctx := context.Background()

	db, err := NewDatabase(ctx, config.DatabaseConfig{URL: "sqlite://:memory:"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	for range 2 {
		if err := Migrate(ctx, db.DB); err != nil {
			t.Fatalf("migrate: %v", err)
		}
	}

	var regions, species int
	if err := db.DB.GetContext(ctx, &regions, "SELECT COUNT(*) FROM regions"); err != nil {
		t.Fatal(err)
	}
	if err := db.DB.GetContext(ctx, &species, "SELECT COUNT(*) FROM species"); err != nil {
		t.Fatal(err)
	}
	if regions != 5 || species != 10 {
		t.Fatalf("regions=%d species=%d, want 5 and 10", regions, species)
	}

	var name string
	if err := db.DB.GetContext(ctx, &name, "SELECT name FROM species WHERE id = 6"); err != nil {
		t.Fatal(err)
	}
	if name != "Pau-d'Arco" {
		t.Errorf("species 6 = %q", name)
	}
}

func TestSplitStatements(t *testing.T) {
	script := `-- comment
CREATE TABLE a (id INTEGER);

INSERT INTO a VALUES
    (1);
SELECT 1`

	got := SplitStatements(script)
	if len(got) != 3 {
		t.Fatalf("got %d statements: %q", len(got), got)
	}
	if got[1] != "INSERT INTO a VALUES\n    (1);" {
		t.Errorf("statement 1 = %q", got[1])
	}
}
