package cook

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/cooklang/cookcli-sub000/internal/render"
	"github.com/cooklang/cookcli-sub000/internal/service"
)

var (
	pantryFormat string
	pantryPretty bool

	depletedAll bool

	expiringDays           int
	expiringIncludeUnknown bool

	pantryRecipesPartial   bool
	pantryRecipesThreshold int
)

var pantryCmd = &cobra.Command{
	Use:     "pantry",
	Aliases: []string{"p"},
	Short:   "Report on pantry stock",
}

var pantryDepletedCmd = &cobra.Command{
	Use:   "depleted",
	Short: "List items that are out or running low",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := structuredFormat(pantryFormat)
		if err != nil {
			return err
		}
		p, _, err := requirePantry()
		if err != nil {
			return err
		}
		return render.Depleted(cmd.OutOrStdout(), p.Depleted(depletedAll), format, pantryPretty)
	},
}

var pantryExpiringCmd = &cobra.Command{
	Use:   "expiring",
	Short: "List items expiring soon",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := structuredFormat(pantryFormat)
		if err != nil {
			return err
		}
		p, _, err := requirePantry()
		if err != nil {
			return err
		}
		items := p.Expiring(time.Now(), expiringDays, expiringIncludeUnknown)
		return render.Expiring(cmd.OutOrStdout(), items, expiringDays, format, pantryPretty)
	},
}

var pantryRecipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "List recipes that can be made from the pantry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := structuredFormat(pantryFormat)
		if err != nil {
			return err
		}
		p, _, err := requirePantry()
		if err != nil {
			return err
		}
		res, err := service.MatchPantryRecipes(basePath, p, service.PantryRecipesOptions{
			Partial:   pantryRecipesPartial,
			Threshold: pantryRecipesThreshold,
		}, zlog)
		if err != nil {
			return err
		}
		return render.PantryRecipes(cmd.OutOrStdout(), res, pantryRecipesThreshold, format, pantryPretty)
	},
}

func init() {
	rootCmd.AddCommand(pantryCmd)
	pantryCmd.AddCommand(pantryDepletedCmd, pantryExpiringCmd, pantryRecipesCmd)

	pf := pantryCmd.PersistentFlags()
	pf.StringVarP(&pantryFormat, "format", "f", "", "Output format: human|json|yaml")
	pf.BoolVar(&pantryPretty, "pretty", false, "Indent JSON output")
	pf.String("pantry", "", "Path to a pantry file")

	pantryDepletedCmd.Flags().BoolVar(&depletedAll, "all", false, "List every item with its low stock status")
	pantryExpiringCmd.Flags().IntVarP(&expiringDays, "days", "d", 7, "Days ahead to look")
	pantryExpiringCmd.Flags().BoolVar(&expiringIncludeUnknown, "include-unknown", false, "Include items without an expiry date")
	pantryRecipesCmd.Flags().BoolVar(&pantryRecipesPartial, "partial", false, "Include recipes missing some ingredients")
	pantryRecipesCmd.Flags().IntVar(&pantryRecipesThreshold, "threshold", service.DefaultPartialThreshold, "Minimum percentage of ingredients on hand for partial matches")
}
