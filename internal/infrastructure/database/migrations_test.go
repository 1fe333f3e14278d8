package database

import (
	"context"
	"embed"
	"testing"
	"time"
)

//go:embed testdata/*.sql
var testMigrationsFS embed.FS

// useMigrations swaps the package migration source for the duration of a test.
func useMigrations(t *testing.T, fsys embed.FS, dir string) {
	t.Helper()
	origFS, origDir := MigrationsFS, MigrationsDir
	MigrationsFS, MigrationsDir = fsys, dir
	t.Cleanup(func() {
		MigrationsFS, MigrationsDir = origFS, origDir
	})
}

func tableExists(t *testing.T, db *DB, name string) bool {
	t.Helper()
	var count int
	err := db.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name,
	).Scan(&count)
	if err != nil {
		t.Fatalf("query error: %v", err)
	}
	return count == 1
}

func TestMigrate(t *testing.T) {
	useMigrations(t, testMigrationsFS, "testdata")
	db := openTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := db.Migrate(ctx)
	if err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Migrate() applied %d, want 1", n)
	}
	if !tableExists(t, db, "test_samples") {
		t.Fatal("table test_samples not created")
	}

	applied, pending, err := db.MigrationStatus(ctx)
	if err != nil {
		t.Fatalf("MigrationStatus() error = %v", err)
	}
	if len(applied) != 1 || len(pending) != 0 {
		t.Errorf("status = %d applied / %d pending, want 1 / 0", len(applied), len(pending))
	}
	if applied[0].Version != "20260101_000000" {
		t.Errorf("applied version = %q, want 20260101_000000", applied[0].Version)
	}

	// Running again should be idempotent
	n, err = db.Migrate(ctx)
	if err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}
	if n != 0 {
		t.Errorf("second Migrate() applied %d, want 0", n)
	}
}

func TestMigrateDown(t *testing.T) {
	useMigrations(t, testMigrationsFS, "testdata")
	db := openTestDB(t)
	ctx := context.Background()

	if _, err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if err := db.MigrateDown(ctx); err != nil {
		t.Fatalf("MigrateDown() error = %v", err)
	}

	if tableExists(t, db, "test_samples") {
		t.Error("table test_samples should have been dropped")
	}

	applied, _, err := db.MigrationStatus(ctx)
	if err != nil {
		t.Fatalf("MigrationStatus() error = %v", err)
	}
	if len(applied) != 0 {
		t.Errorf("expected 0 applied migrations after rollback, got %d", len(applied))
	}

	// Nothing left to roll back
	if err := db.MigrateDown(ctx); err != nil {
		t.Errorf("MigrateDown() on empty history error = %v", err)
	}
}

func TestMigrate_NoMigrations(t *testing.T) {
	var emptyFS embed.FS
	useMigrations(t, emptyFS, ".")
	db := openTestDB(t)

	n, err := db.Migrate(context.Background())
	if err != nil {
		t.Fatalf("Migrate() with no migrations error = %v", err)
	}
	if n != 0 {
		t.Errorf("Migrate() applied %d, want 0", n)
	}
}

func TestMigrationStatus_Pending(t *testing.T) {
	useMigrations(t, testMigrationsFS, "testdata")
	db := openTestDB(t)

	applied, pending, err := db.MigrationStatus(context.Background())
	if err != nil {
		t.Fatalf("MigrationStatus() error = %v", err)
	}
	if len(applied) != 0 {
		t.Errorf("expected 0 applied, got %d", len(applied))
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending, got %d", len(pending))
	}
	if pending[0].Name != "create_samples" || pending[0].DownSQL == "" {
		t.Errorf("pending[0] = %+v, want create_samples with down SQL", pending[0])
	}
}

func TestParseMigrationFilename(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		wantVersion string
		wantIsUp    bool
		wantOk      bool
	}{
		{"valid up migration", "20261019_120000_export_journal.up.sql", "20261019_120000", true, true},
		{"valid down migration", "20261019_120000_export_journal.down.sql", "20261019_120000", false, true},
		{"not sql file", "readme.txt", "", false, false},
		{"missing direction", "20261019_120000_export_journal.sql", "", false, false},
		{"invalid format", "invalid.up.sql", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, isUp, ok := parseMigrationFilename(tt.filename)
			if ok != tt.wantOk {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOk)
			}
			if ok && (version != tt.wantVersion || isUp != tt.wantIsUp) {
				t.Errorf("got (%q, %v), want (%q, %v)", version, isUp, tt.wantVersion, tt.wantIsUp)
			}
		})
	}
}

func TestExtractMigrationName(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"20261019_120000_export_journal.up.sql", "export_journal"},
		{"20260101_000000_create_samples.down.sql", "create_samples"},
		{"20260101_000000_add_error_to_runs.up.sql", "add_error_to_runs"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := extractMigrationName(tt.filename); got != tt.want {
				t.Errorf("extractMigrationName(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}
