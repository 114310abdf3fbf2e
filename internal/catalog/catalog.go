// Package catalog locates recipe files inside a recipe collection.
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	RecipeExt = ".cook"
	MenuExt   = ".menu"
)

var ErrNotFound = errors.New("recipe not found")

// Entry is a recipe file on disk. Content re-reads the file on every call so
// edits are always picked up.
type Entry struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

func NewEntry(path string) *Entry {
	return &Entry{Path: path, Name: RecipeName(path)}
}

func (e *Entry) Content() (string, error) {
	data, err := os.ReadFile(e.Path)
	if err != nil {
		return "", fmt.Errorf("read recipe %s: %w", e.Path, err)
	}
	return string(data), nil
}

// IsMenu reports whether the entry is a menu rather than a single recipe.
func (e *Entry) IsMenu() bool {
	return strings.EqualFold(filepath.Ext(e.Path), MenuExt)
}

// RecipeName is the file name without its recipe extension.
func RecipeName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if IsRecipeFile(base) {
		return strings.TrimSuffix(base, ext)
	}
	return base
}

func IsRecipeFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == RecipeExt || ext == MenuExt
}

// GetRecipe finds name in the first search path that has it. name may be a
// relative path with or without extension; a bare name also matches any
// recipe with that stem deeper in the collection.
func GetRecipe(searchPaths []string, name string) (*Entry, error) {
	clean := strings.TrimPrefix(strings.TrimSpace(name), "./")
	if clean == "" {
		return nil, fmt.Errorf("%w: empty name", ErrNotFound)
	}

	for _, base := range searchPaths {
		if entry, ok := lookupPath(base, clean); ok {
			return entry, nil
		}
	}
	if !strings.ContainsAny(clean, `/\`) {
		for _, base := range searchPaths {
			if entry, ok := lookupStem(base, clean); ok {
				return entry, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Finder adapts GetRecipe to the lookups the resolver and server need.
type Finder struct{}

func (Finder) GetRecipe(searchPaths []string, name string) (*Entry, error) {
	return GetRecipe(searchPaths, name)
}

func lookupPath(base, name string) (*Entry, bool) {
	candidates := []string{name}
	if !IsRecipeFile(name) {
		candidates = append(candidates, name+RecipeExt, name+MenuExt)
	}
	for _, c := range candidates {
		path := c
		if !filepath.IsAbs(path) {
			path = filepath.Join(base, filepath.FromSlash(c))
		}
		info, err := os.Stat(path)
		if err == nil && info.Mode().IsRegular() {
			return NewEntry(path), true
		}
	}
	return nil, false
}

func lookupStem(base, name string) (*Entry, bool) {
	var found *Entry
	target := strings.ToLower(name)
	_ = filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != base && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsRecipeFile(d.Name()) {
			return nil
		}
		if strings.ToLower(RecipeName(path)) == target || strings.ToLower(d.Name()) == target {
			found = NewEntry(path)
			return fs.SkipAll
		}
		return nil
	})
	return found, found != nil
}

// skipDir excludes hidden directories and the collection's config dir.
func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "config"
}
