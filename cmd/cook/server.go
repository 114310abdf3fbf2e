package cook

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cooklang/cookcli-sub000/internal/server"
)

var serverCmd = &cobra.Command{
	Use:     "server",
	Aliases: []string{"s"},
	Short:   "Serve the recipe collection over HTTP",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return withDB(func(sqldb *sql.DB) error {
			opts := server.Options{
				BasePath:   basePath,
				AislePath:  cfg.Aisle,
				PantryPath: cfg.Pantry,
				Host:       cfg.Server.Host,
				Port:       cfg.Server.Port,
			}
			srv := server.New(opts, sqldb, zlog)
			url := fmt.Sprintf("http://%s/", opts.Addr())
			fmt.Fprintf(cmd.OutOrStdout(), "Serving %s at %s\n", basePath, url)
			if cfg.Server.Open {
				go func() {
					time.Sleep(300 * time.Millisecond)
					if err := openBrowser(ctx, url); err != nil {
						zlog.Warn("open browser", zap.Error(err))
					}
				}()
			}
			return srv.Run(ctx)
		})
	},
}

func openBrowser(ctx context.Context, url string) error {
	var name string
	var args []string
	switch runtime.GOOS {
	case "darwin":
		name = "open"
	case "windows":
		name, args = "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		name = "xdg-open"
	}
	return exec.CommandContext(ctx, name, append(args, url)...).Start()
}

func init() {
	rootCmd.AddCommand(serverCmd)
	f := serverCmd.Flags()
	f.String("host", "127.0.0.1", "Address to listen on")
	f.Int("port", 9080, "Port to listen on")
	f.Bool("open", false, "Open the browser once the server is up")
	f.StringP("aisle", "a", "", "Path to an aisle file")
	f.String("pantry", "", "Path to a pantry file")
	f.String("store", "", "Path to the SQLite store for the saved shopping list")
}
