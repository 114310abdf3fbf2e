package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cooklang/cookcli-sub000/internal/catalog"
	"github.com/cooklang/cookcli-sub000/internal/pantry"
)

const DefaultPartialThreshold = 75

type PartialMatch struct {
	Recipe             string   `json:"recipe" yaml:"recipe"`
	Percentage         int      `json:"percentage" yaml:"percentage"`
	MissingIngredients []string `json:"missing_ingredients" yaml:"missing_ingredients"`
}

type PantryRecipesResult struct {
	FullMatches    []string       `json:"full_matches" yaml:"full_matches"`
	PartialMatches []PartialMatch `json:"partial_matches" yaml:"partial_matches"`
}

type PantryRecipesOptions struct {
	Partial   bool
	Threshold int
}

// MatchPantryRecipes finds the recipes under base that can be cooked from
// the pantry. Only listed ingredients count; recipe references do not.
// Recipes that fail to parse are skipped.
func MatchPantryRecipes(base string, p *pantry.Pantry, opts PantryRecipesOptions, log *zap.Logger) (*PantryRecipesResult, error) {
	log = nopIfNil(log)
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultPartialThreshold
	}
	tree, err := catalog.BuildTree(base)
	if err != nil {
		return nil, fmt.Errorf("build recipe tree: %w", err)
	}

	out := &PantryRecipesResult{FullMatches: []string{}, PartialMatches: []PartialMatch{}}
	for _, node := range tree.Recipes() {
		recipe, report, err := parseEntry(node.Recipe, log)
		if err != nil || report.HasErrors() {
			log.Debug("skipping recipe", zap.String("recipe", node.Recipe.Path))
			continue
		}

		var needed []string
		seen := map[string]bool{}
		for _, ing := range recipe.Ingredients {
			if ing.IsReference() || !ing.Listed() {
				continue
			}
			name := normalizeName(ing.DisplayName())
			if !seen[name] {
				seen[name] = true
				needed = append(needed, name)
			}
		}
		if len(needed) == 0 {
			continue
		}

		var missing []string
		for _, name := range needed {
			if !p.Has(name) {
				missing = append(missing, name)
			}
		}
		available := len(needed) - len(missing)
		percentage := available * 100 / len(needed)
		switch {
		case len(missing) == 0:
			out.FullMatches = append(out.FullMatches, node.Recipe.Name)
		case opts.Partial && percentage >= opts.Threshold:
			out.PartialMatches = append(out.PartialMatches, PartialMatch{
				Recipe:             node.Recipe.Name,
				Percentage:         percentage,
				MissingIngredients: missing,
			})
		}
	}
	return out, nil
}
