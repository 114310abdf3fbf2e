package cook

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cooklang/cookcli-sub000/internal/pantry"
	"github.com/cooklang/cookcli-sub000/internal/render"
	"github.com/cooklang/cookcli-sub000/internal/service"
	"github.com/cooklang/cookcli-sub000/internal/shopping"
	"github.com/cooklang/cookcli-sub000/internal/units"
)

var (
	slOutput            string
	slFormat            string
	slPlain             bool
	slPretty            bool
	slIgnoreReferences  bool
	slShallowReferences bool
	slIngredientsOnly   bool
	slNoPantry          bool
)

var shoppingListCmd = &cobra.Command{
	Use:     "shopping-list <recipe[:scale]>...",
	Aliases: []string{"sl"},
	Short:   "Build a shopping list from one or more recipes",
	Long: `Build a shopping list from one or more recipes.

Each recipe may carry a scale ("Pancakes:2"). Recipes referenced from a recipe
(@./Sauces/Tomato Sauce{250%ml}) are expanded and scaled to the requested
amount. Ingredients already in the pantry are left out, and the rest is grouped
by the aisle file's categories.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := render.Resolve(slFormat, slOutput)
		if err != nil {
			return err
		}

		conf, _, err := service.LoadAisle(cfg.Aisle, basePath, zlog)
		if err != nil {
			return err
		}
		var p *pantry.Pantry
		if !slNoPantry {
			if p, _, err = service.LoadPantry(cfg.Pantry, basePath, zlog); err != nil {
				return err
			}
		}

		res, err := service.BuildShoppingList(shopping.NewResolver(units.New(), zlog), service.ShoppingListRequest{
			Specs:             args,
			BasePath:          basePath,
			IgnoreReferences:  slIgnoreReferences,
			ShallowReferences: slShallowReferences,
			Aisle:             conf,
			Pantry:            p,
		})
		if err != nil {
			return err
		}
		if len(res.InPantry) > 0 {
			zlog.Info("left out ingredients found in pantry", zap.Strings("ingredients", res.InPantry))
		}

		return writeOutput(cmd, slOutput, func(w io.Writer) error {
			return render.ShoppingList(w, res.List, res.Categories, render.ShoppingOptions{
				Format:          format,
				Plain:           slPlain,
				IngredientsOnly: slIngredientsOnly,
				Pretty:          slPretty,
			})
		})
	},
}

func init() {
	rootCmd.AddCommand(shoppingListCmd)
	f := shoppingListCmd.Flags()
	f.StringVarP(&slOutput, "output", "o", "", "Write to a file instead of stdout (format inferred from extension)")
	f.StringVarP(&slFormat, "format", "f", "", "Output format: human|json|yaml")
	f.BoolVarP(&slPlain, "plain", "p", false, "Do not group by aisle category")
	f.BoolVar(&slPretty, "pretty", false, "Indent JSON output")
	f.StringP("aisle", "a", "", "Path to an aisle file")
	f.String("pantry", "", "Path to a pantry file")
	f.BoolVarP(&slIgnoreReferences, "ignore-references", "i", false, "List recipe references as ingredients instead of expanding them")
	f.BoolVar(&slShallowReferences, "shallow-references", false, "Expand only references made directly by the requested recipes")
	f.BoolVar(&slIngredientsOnly, "ingredients-only", false, "Print ingredient names only")
	f.BoolVar(&slNoPantry, "no-pantry", false, "Do not leave out ingredients found in the pantry")
}
