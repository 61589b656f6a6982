package migrations

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindLatestMigrationVersion(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"000001_create_wheel_tables.up.sql",
		"000001_create_wheel_tables.down.sql",
		"000012_add_index.up.sql",
		"README.md",
		"7_short.up.sql",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("--"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "000099_dir"), 0o755); err != nil {
		t.Fatal(err)
	}

	if got := findLatestMigrationVersion(dir); got != 12 {
		t.Errorf("latest version = %d, want 12", got)
	}
}

func TestFindLatestMigrationVersionMissingDir(t *testing.T) {
	if got := findLatestMigrationVersion(filepath.Join(t.TempDir(), "nope")); got != 0 {
		t.Errorf("latest version = %d, want 0", got)
	}
}

func TestRepositoryMigrationsVersioned(t *testing.T) {
	if got := findLatestMigrationVersion("../../migrations"); got < 1 {
		t.Errorf("no versioned migrations found in ../../migrations")
	}
}

func TestRunMigrationsRequiresURL(t *testing.T) {
	if err := RunMigrations("", "migrations"); err == nil {
		t.Error("expected error for empty database URL")
	}
}
