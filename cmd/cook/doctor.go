package cook

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cooklang/cookcli-sub000/internal/catalog"
	"github.com/cooklang/cookcli-sub000/internal/render"
	"github.com/cooklang/cookcli-sub000/internal/service"
	"github.com/cooklang/cookcli-sub000/internal/units"
)

var doctorFormat string

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the recipe collection for problems",
}

var doctorAisleCmd = &cobra.Command{
	Use:   "aisle",
	Short: "List ingredients missing from the aisle file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := structuredFormat(doctorFormat)
		if err != nil {
			return err
		}
		conf, _, err := service.LoadAisle(cfg.Aisle, basePath, zlog)
		if err != nil {
			return err
		}
		missing, err := service.DoctorAisle(basePath, conf, zlog)
		if err != nil {
			return err
		}
		if format != render.Human {
			return render.Encode(cmd.OutOrStdout(), format, missing, false)
		}
		out := cmd.OutOrStdout()
		if len(missing) == 0 {
			fmt.Fprintln(out, "Every ingredient has an aisle category.")
			return nil
		}
		fmt.Fprintf(out, "%d ingredient(s) missing from the aisle file:\n", len(missing))
		for _, m := range missing {
			fmt.Fprintf(out, "  %s (%s)\n", m.Name, strings.Join(m.Recipes, ", "))
		}
		return nil
	},
}

var doctorValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Parse every recipe and check references and units",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := structuredFormat(doctorFormat)
		if err != nil {
			return err
		}
		report, err := service.ValidateCollection(basePath, units.New(), catalog.Finder{})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if format != render.Human {
			if err := render.Encode(out, format, report, false); err != nil {
				return err
			}
		} else {
			for _, rv := range report.Recipes {
				fmt.Fprintln(out, rv.Path)
				for _, is := range rv.Issues {
					if is.Line > 0 {
						fmt.Fprintf(out, "  %s: line %d: %s\n", is.Severity, is.Line, is.Message)
					} else {
						fmt.Fprintf(out, "  %s: %s\n", is.Severity, is.Message)
					}
				}
			}
			fmt.Fprintf(out, "Checked %d recipe(s): %d error(s), %d warning(s)\n", report.Checked, report.Errors, report.Warnings)
		}
		if report.HasErrors() {
			return fmt.Errorf("doctor found %d error(s)", report.Errors)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.AddCommand(doctorAisleCmd, doctorValidateCmd)
	doctorCmd.PersistentFlags().StringVarP(&doctorFormat, "format", "f", "", "Output format: human|json|yaml")
	doctorAisleCmd.Flags().StringP("aisle", "a", "", "Path to an aisle file")
}
