package cook

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cooklang/cookcli-sub000/internal/render"
)

var configFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := structuredFormat(configFormat)
		if err != nil {
			return err
		}
		settings := cfg.Settings()
		if format != render.Human {
			return render.Encode(cmd.OutOrStdout(), format, settings, false)
		}
		out := cmd.OutOrStdout()
		if len(cfg.Files) == 0 {
			fmt.Fprintln(out, "# no config files found, using defaults")
		}
		for _, f := range cfg.Files {
			fmt.Fprintf(out, "# %s\n", f)
		}
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, s := range settings {
			fmt.Fprintf(tw, "%s\t%v\n", s.Key, s.Value)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringVarP(&configFormat, "format", "f", "", "Output format: human|json|yaml")
}
