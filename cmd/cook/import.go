package cook

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/cooklang/cookcli-sub000/internal/provider/webrecipe"
	"github.com/cooklang/cookcli-sub000/internal/service"
)

var (
	importSkipConversion bool
	importOutput         string
	importTimeout        time.Duration
)

var importCmd = &cobra.Command{
	Use:   "import <url>",
	Short: "Import a recipe from a web page as Cooklang",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), importTimeout)
		defer cancel()

		client := &webrecipe.Client{HTTPClient: &http.Client{Timeout: importTimeout}}
		res, err := service.ImportRecipe(ctx, client, args[0], service.ImportOptions{SkipConversion: importSkipConversion})
		if err != nil {
			return err
		}
		return writeOutput(cmd, importOutput, func(w io.Writer) error {
			_, err := io.WriteString(w, res.Text)
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVar(&importSkipConversion, "skip-conversion", false, "Print the extracted recipe text without converting to Cooklang")
	importCmd.Flags().StringVarP(&importOutput, "output", "o", "", "Write to a file instead of stdout")
	importCmd.Flags().DurationVar(&importTimeout, "timeout", 20*time.Second, "HTTP timeout")
}
