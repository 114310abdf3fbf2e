package service

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/cooklang/cookcli-sub000/internal/aisle"
	"github.com/cooklang/cookcli-sub000/internal/catalog"
	"github.com/cooklang/cookcli-sub000/internal/units"
)

type UncategorizedIngredient struct {
	Name    string   `json:"name" yaml:"name"`
	Recipes []string `json:"recipes" yaml:"recipes"`
}

// DoctorAisle lists the ingredients used by recipes under base that conf
// does not categorize, sorted by name.
func DoctorAisle(base string, conf *aisle.Conf, log *zap.Logger) ([]UncategorizedIngredient, error) {
	log = nopIfNil(log)
	tree, err := catalog.BuildTree(base)
	if err != nil {
		return nil, fmt.Errorf("build recipe tree: %w", err)
	}

	byName := map[string]*UncategorizedIngredient{}
	for _, node := range tree.Recipes() {
		recipe, _, err := parseEntry(node.Recipe, log)
		if err != nil {
			return nil, err
		}
		for _, ing := range recipe.Ingredients {
			if ing.IsReference() || !ing.Listed() {
				continue
			}
			if _, ok := conf.CategoryOf(ing.Name); ok {
				continue
			}
			key := normalizeName(ing.Name)
			u, ok := byName[key]
			if !ok {
				u = &UncategorizedIngredient{Name: ing.Name}
				byName[key] = u
			}
			if len(u.Recipes) == 0 || u.Recipes[len(u.Recipes)-1] != node.Path {
				u.Recipes = append(u.Recipes, node.Path)
			}
		}
	}

	out := make([]UncategorizedIngredient, 0, len(byName))
	for _, u := range byName {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return normalizeName(out[i].Name) < normalizeName(out[j].Name) })
	return out, nil
}

type Issue struct {
	Severity string `json:"severity" yaml:"severity"`
	Line     int    `json:"line,omitempty" yaml:"line,omitempty"`
	Message  string `json:"message" yaml:"message"`
}

type RecipeValidation struct {
	Path   string  `json:"path" yaml:"path"`
	Issues []Issue `json:"issues" yaml:"issues"`
}

type ValidationReport struct {
	Recipes  []RecipeValidation `json:"recipes" yaml:"recipes"`
	Checked  int                `json:"checked" yaml:"checked"`
	Errors   int                `json:"errors" yaml:"errors"`
	Warnings int                `json:"warnings" yaml:"warnings"`
}

func (r *ValidationReport) HasErrors() bool { return r.Errors > 0 }

// ValidateCollection parses every recipe under base and reports parse
// diagnostics, references that do not resolve, and units conv does not know.
// Only recipes with issues are listed.
func ValidateCollection(base string, conv *units.Converter, finder catalog.Finder) (*ValidationReport, error) {
	tree, err := catalog.BuildTree(base)
	if err != nil {
		return nil, fmt.Errorf("build recipe tree: %w", err)
	}

	report := &ValidationReport{Recipes: []RecipeValidation{}}
	for _, node := range tree.Recipes() {
		report.Checked++
		recipe, diag, err := parseEntry(node.Recipe, zap.NewNop())
		if err != nil {
			return nil, err
		}
		rv := RecipeValidation{Path: node.Path}
		for _, d := range diag.Diagnostics {
			rv.Issues = append(rv.Issues, Issue{Severity: string(d.Severity), Line: d.Line, Message: d.Message})
		}
		for _, ing := range recipe.Ingredients {
			if ing.IsReference() {
				searchBase := base
				if ing.Reference.IsRelative() {
					searchBase = filepath.Dir(node.Recipe.Path)
				}
				if _, err := finder.GetRecipe([]string{searchBase}, ing.Reference.Path()); err != nil {
					rv.Issues = append(rv.Issues, Issue{Severity: "error", Message: fmt.Sprintf("reference %q does not resolve", ing.Reference.Path())})
				}
			}
			if q := ing.Quantity; q != nil && q.HasUnit() && !ing.IsReference() && !conv.Known(q.Unit) {
				rv.Issues = append(rv.Issues, Issue{Severity: "warning", Message: fmt.Sprintf("unknown unit %q for %s", q.Unit, ing.Name)})
			}
		}
		if len(rv.Issues) == 0 {
			continue
		}
		for _, is := range rv.Issues {
			if strings.EqualFold(is.Severity, "error") {
				report.Errors++
			} else {
				report.Warnings++
			}
		}
		report.Recipes = append(report.Recipes, rv)
	}
	return report, nil
}
