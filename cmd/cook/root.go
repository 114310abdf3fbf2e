package cook

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cooklang/cookcli-sub000/internal/config"
	"github.com/cooklang/cookcli-sub000/internal/logger"
)

var (
	basePath   string
	configPath string
	verbosity  int

	cfg  *config.Config
	zlog = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "cook",
	Short: "cook works with Cooklang recipe collections from your terminal",
	Long:  "cook reads Cooklang recipes, builds shopping lists across recipes and the recipes they reference, tracks a pantry and serves the collection over HTTP.",

	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute() {
	defer func() { _ = zlog.Sync() }()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration and the logger before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath, basePath, cmd.Flags())
	if err != nil {
		return err
	}
	level := c.Log.Level
	if verbosity > 0 {
		level = logger.LevelForVerbosity(verbosity)
	}
	cfg = c
	zlog = logger.New(logger.Config{Level: level, Format: c.Log.Format, Output: cmd.ErrOrStderr()})
	zlog.Debug("configuration loaded", zap.Strings("files", c.Files), zap.String("base_path", basePath))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&basePath, "base-path", "b", ".", "Recipe collection directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a cook.yaml config file")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
}
