package cook

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cooklang/cookcli-sub000/internal/catalog"
	"github.com/cooklang/cookcli-sub000/internal/cooklang"
	"github.com/cooklang/cookcli-sub000/internal/render"
	"github.com/cooklang/cookcli-sub000/internal/shopping"
)

var (
	recipeScale  float64
	recipeFormat string
	recipeOutput string
	recipePretty bool
)

var recipeCmd = &cobra.Command{
	Use:     "recipe <name[:scale]>",
	Aliases: []string{"r"},
	Short:   "Show a recipe",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, scale, err := shopping.ParseRecipeSpec(args[0])
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("scale") {
			scale *= recipeScale
		}
		format, err := render.Resolve(recipeFormat, recipeOutput)
		if err != nil {
			return err
		}

		entry, err := catalog.GetRecipe([]string{basePath}, name)
		if err != nil {
			return err
		}
		content, err := entry.Content()
		if err != nil {
			return err
		}
		recipe, report := cooklang.Parse(content)
		for _, d := range report.Warnings() {
			zlog.Warn("recipe warning", zap.String("recipe", entry.Path), zap.Int("line", d.Line), zap.String("message", d.Message))
		}
		if errs := report.Errors(); len(errs) > 0 {
			return fmt.Errorf("%w: %s: %s", shopping.ErrParse, entry.Path, errs[0])
		}
		recipe.Scale(scale)

		return writeOutput(cmd, recipeOutput, func(w io.Writer) error {
			return render.Recipe(w, entry.Name, recipe, format, recipePretty)
		})
	},
}

func init() {
	rootCmd.AddCommand(recipeCmd)
	f := recipeCmd.Flags()
	f.Float64VarP(&recipeScale, "scale", "s", 1, "Scale factor, multiplied with any :scale in the name")
	f.StringVarP(&recipeFormat, "format", "f", "", "Output format: human|json|yaml|markdown")
	f.StringVarP(&recipeOutput, "output", "o", "", "Write to a file instead of stdout (format inferred from extension)")
	f.BoolVar(&recipePretty, "pretty", false, "Indent JSON output")
}
