package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/cooklang/cookcli-sub000/internal/aisle"
	"github.com/cooklang/cookcli-sub000/internal/app"
	"github.com/cooklang/cookcli-sub000/internal/catalog"
	"github.com/cooklang/cookcli-sub000/internal/cooklang"
	"github.com/cooklang/cookcli-sub000/internal/pantry"
)

func normalizeName(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}

func nopIfNil(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

func relPath(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// LoadAisle reads the aisle file at explicit, or the one found for the
// collection at base. A missing file is not an error: conf is nil and every
// ingredient lands in the "other" category.
func LoadAisle(explicit, base string, log *zap.Logger) (*aisle.Conf, string, error) {
	log = nopIfNil(log)
	path, ok, err := app.FindConfigFile(explicit, base, app.AisleFileName)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		log.Warn("no aisle file found, ingredients will not be categorized")
		return nil, "", nil
	}
	content, err := readFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read aisle file: %w", err)
	}
	conf, warnings := aisle.Parse(content)
	for _, w := range warnings {
		log.Warn("aisle file warning", zap.String("path", path), zap.Int("line", w.Line), zap.String("message", w.Message))
	}
	log.Debug("loaded aisle file", zap.String("path", path), zap.Int("categories", len(conf.Categories)))
	return conf, path, nil
}

// LoadPantry reads the pantry file at explicit, or the one found for the
// collection at base. A missing file yields a nil pantry.
func LoadPantry(explicit, base string, log *zap.Logger) (*pantry.Pantry, string, error) {
	log = nopIfNil(log)
	path, ok, err := app.FindConfigFile(explicit, base, app.PantryFileName)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		log.Debug("no pantry file found")
		return nil, "", nil
	}
	p, warnings, err := pantry.Load(path)
	if err != nil {
		return nil, "", err
	}
	for _, w := range warnings {
		log.Warn("pantry file warning", zap.String("path", path), zap.String("message", w.String()))
	}
	log.Debug("loaded pantry file", zap.String("path", path), zap.Int("sections", len(p.Sections)))
	return p, path, nil
}

func parseEntry(entry *catalog.Entry, log *zap.Logger) (*cooklang.Recipe, *cooklang.Report, error) {
	content, err := entry.Content()
	if err != nil {
		return nil, nil, err
	}
	recipe, report := cooklang.Parse(content)
	for _, d := range report.Warnings() {
		log.Warn("recipe warning", zap.String("recipe", entry.Path), zap.Int("line", d.Line), zap.String("message", d.Message))
	}
	return recipe, report, nil
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
