package cook

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cooklang/cookcli-sub000/internal/service"
)

var seedCmd = &cobra.Command{
	Use:   "seed [dir]",
	Short: "Write an example recipe collection",
	Long:  "Write a small example collection, with a recipe reference, an aisle file and a pantry file, into dir (default: the base path). Existing files are never overwritten.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := basePath
		if len(args) == 1 {
			dir = args[0]
		}
		res, err := service.Seed(dir)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, f := range res.Written {
			fmt.Fprintf(out, "created %s\n", f)
		}
		for _, f := range res.Skipped {
			fmt.Fprintf(out, "skipped %s (exists)\n", f)
		}
		fmt.Fprintf(out, "Seeded %s: %d created, %d skipped\n", dir, len(res.Written), len(res.Skipped))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
