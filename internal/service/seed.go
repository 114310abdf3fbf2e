package service

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed seed_data
var seedFiles embed.FS

const seedRoot = "seed_data"

type SeedResult struct {
	Written []string `json:"written"`
	Skipped []string `json:"skipped"`
}

// Seed writes the example collection into dir. Files that already exist are
// left untouched and reported as skipped.
func Seed(dir string) (*SeedResult, error) {
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create seed directory: %w", err)
	}

	res := &SeedResult{}
	err := fs.WalkDir(seedFiles, seedRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel := p[len(seedRoot)+1:]
		target := filepath.Join(dir, filepath.FromSlash(rel))
		if _, err := os.Stat(target); err == nil {
			res.Skipped = append(res.Skipped, rel)
			return nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat %s: %w", target, err)
		}
		data, err := seedFiles.ReadFile(p)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Dir(target), err)
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}
		res.Written = append(res.Written, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("seed %s: %w", dir, err)
	}
	return res, nil
}
