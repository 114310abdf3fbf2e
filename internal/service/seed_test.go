package service_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cooklang/cookcli-sub000/internal/service"
)

func TestSeedNeverOverwrites(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	custom := filepath.Join(dir, "config", "aisle.conf")
	if err := os.MkdirAll(filepath.Dir(custom), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(custom, []byte("[mine]\nsalt\n"), 0o644); err != nil {
		t.Fatalf("write custom aisle: %v", err)
	}

	res, err := service.Seed(dir)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(res.Written) != 4 || len(res.Skipped) != 1 || res.Skipped[0] != "config/aisle.conf" {
		t.Fatalf("unexpected seed result: %+v", res)
	}
	data, err := os.ReadFile(custom)
	if err != nil {
		t.Fatalf("read custom aisle: %v", err)
	}
	if string(data) != "[mine]\nsalt\n" {
		t.Fatalf("expected custom aisle untouched, got %q", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "Sauces", "Tomato Sauce.cook")); err != nil {
		t.Fatalf("expected seeded recipe: %v", err)
	}

	again, err := service.Seed(dir)
	if err != nil {
		t.Fatalf("seed again: %v", err)
	}
	if len(again.Written) != 0 || len(again.Skipped) != 5 {
		t.Fatalf("expected second seed to skip everything, got %+v", again)
	}
}

func TestSeedRejectsFile(t *testing.T) {
	t.Parallel()
	file := filepath.Join(t.TempDir(), "recipes")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := service.Seed(file); err == nil {
		t.Fatalf("expected seeding into a file to fail")
	}
}
