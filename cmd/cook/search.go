package cook

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cooklang/cookcli-sub000/internal/render"
	"github.com/cooklang/cookcli-sub000/internal/service"
)

var (
	searchLimit  int
	searchFormat string
)

var searchCmd = &cobra.Command{
	Use:     "search <term>...",
	Aliases: []string{"f"},
	Short:   "Search recipe names and text",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := structuredFormat(searchFormat)
		if err != nil {
			return err
		}
		results, err := service.SearchRecipes(basePath, strings.Join(args, " "), searchLimit)
		if err != nil {
			return err
		}
		if format != render.Human {
			return render.Encode(cmd.OutOrStdout(), format, results, false)
		}
		if len(results) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "No recipes found")
			return nil
		}
		for _, r := range results {
			fmt.Fprintln(cmd.OutOrStdout(), r.Path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum results (0 for all)")
	searchCmd.Flags().StringVarP(&searchFormat, "format", "f", "", "Output format: human|json|yaml")
}
