package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	appDirName    = "cook"
	dbFileName    = "cook.db"
	configDirName = "config"

	AisleFileName  = "aisle.conf"
	PantryFileName = "pantry.conf"
	ConfigFileName = "cook.yaml"
)

// GlobalConfigDir is the per-user configuration directory, e.g.
// ~/.config/cook on Linux.
func GlobalConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

func DefaultDBPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbFileName), nil
}

func EnsureDBDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return nil
}

// LocalConfigDir is the config directory inside a recipe collection.
func LocalConfigDir(base string) string {
	return filepath.Join(base, configDirName)
}

// FindConfigFile locates a collection config file such as aisle.conf. An
// explicit path wins and must exist; otherwise <base>/config/<name> and then
// the global config dir are tried. ok is false when nothing was found.
func FindConfigFile(explicit, base, name string) (path string, ok bool, err error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", false, fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, true, nil
	}
	candidates := []string{filepath.Join(LocalConfigDir(base), name)}
	if global, err := GlobalConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(global, name))
	}
	for _, c := range candidates {
		_, err := os.Stat(c)
		if err == nil {
			return c, true, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", false, fmt.Errorf("stat %s: %w", c, err)
		}
	}
	return "", false, nil
}
