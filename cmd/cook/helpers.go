package cook

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cooklang/cookcli-sub000/internal/app"
	"github.com/cooklang/cookcli-sub000/internal/db"
	"github.com/cooklang/cookcli-sub000/internal/pantry"
	"github.com/cooklang/cookcli-sub000/internal/render"
	"github.com/cooklang/cookcli-sub000/internal/service"
)

func resolveDBPath() (string, error) {
	if p := strings.TrimSpace(cfg.Store.Path); p != "" {
		return p, nil
	}
	return app.DefaultDBPath()
}

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

// outputWriter returns stdout, or a created file when path is set.
func outputWriter(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output %s: %w", path, err)
	}
	return f, f.Close, nil
}

func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	w, done, err := outputWriter(cmd, path)
	if err != nil {
		return err
	}
	if err := write(w); err != nil {
		_ = done()
		return err
	}
	return done()
}

// structuredFormat accepts the formats pantry and doctor reports support.
func structuredFormat(s string) (render.Format, error) {
	f, err := render.ParseFormat(s)
	if err != nil {
		return "", err
	}
	if f == render.Markdown {
		return "", fmt.Errorf("markdown output is only supported for recipes")
	}
	return f, nil
}

func requirePantry() (*pantry.Pantry, string, error) {
	p, path, err := service.LoadPantry(cfg.Pantry, basePath, zlog)
	if err != nil {
		return nil, "", err
	}
	if p == nil {
		return nil, "", fmt.Errorf("no pantry file found (looked in %s and the global config dir)", app.LocalConfigDir(basePath))
	}
	return p, path, nil
}
