package service_test

import (
	"strings"
	"testing"

	"github.com/cooklang/cookcli-sub000/internal/pantry"
	"github.com/cooklang/cookcli-sub000/internal/service"
)

func TestMatchPantryRecipes(t *testing.T) {
	t.Parallel()
	dir := newSeededCollection(t)
	p, _, err := pantry.Parse([]byte(`
[baking]
flour = "1%kg"
sugar = "500%g"

[dairy]
Milk = { quantity = "1%l" }
eggs = { quantity = "6" }

[pantry]
"olive oil" = { quantity = "1%l" }
garlic = "a few"
`))
	if err != nil {
		t.Fatalf("parse pantry: %v", err)
	}

	res, err := service.MatchPantryRecipes(dir, p, service.PantryRecipesOptions{}, nil)
	if err != nil {
		t.Fatalf("match recipes: %v", err)
	}
	if strings.Join(res.FullMatches, ",") != "Pancakes" {
		t.Fatalf("unexpected full matches: %v", res.FullMatches)
	}
	if len(res.PartialMatches) != 0 {
		t.Fatalf("expected no partial matches without --partial, got %+v", res.PartialMatches)
	}

	res, err = service.MatchPantryRecipes(dir, p, service.PantryRecipesOptions{Partial: true, Threshold: 60}, nil)
	if err != nil {
		t.Fatalf("match partial recipes: %v", err)
	}
	if len(res.PartialMatches) != 1 {
		t.Fatalf("expected one partial match, got %+v", res.PartialMatches)
	}
	got := res.PartialMatches[0]
	if got.Recipe != "Tomato Sauce" || got.Percentage != 66 || strings.Join(got.MissingIngredients, ",") != "canned tomatoes" {
		t.Fatalf("unexpected partial match: %+v", got)
	}

	res, err = service.MatchPantryRecipes(dir, p, service.PantryRecipesOptions{Partial: true}, nil)
	if err != nil {
		t.Fatalf("match with default threshold: %v", err)
	}
	if len(res.PartialMatches) != 0 {
		t.Fatalf("expected default threshold %d to exclude 66%%, got %+v", service.DefaultPartialThreshold, res.PartialMatches)
	}
}
