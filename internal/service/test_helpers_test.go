package service_test

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/cooklang/cookcli-sub000/internal/db"
	"github.com/cooklang/cookcli-sub000/internal/service"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cook.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

// newSeededCollection writes the example collection into a temp dir.
func newSeededCollection(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if _, err := service.Seed(dir); err != nil {
		t.Fatalf("seed collection: %v", err)
	}
	return dir
}

func writeRecipe(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}
