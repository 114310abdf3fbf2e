package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cooklang/cookcli-sub000/internal/aisle"
	"github.com/cooklang/cookcli-sub000/internal/cooklang"
	"github.com/cooklang/cookcli-sub000/internal/pantry"
	"github.com/cooklang/cookcli-sub000/internal/service"
	"github.com/cooklang/cookcli-sub000/internal/shopping"
	"github.com/cooklang/cookcli-sub000/internal/units"
)

func TestResolveFormat(t *testing.T) {
	f, err := Resolve("", "list.json")
	require.NoError(t, err)
	assert.Equal(t, JSON, f)

	f, err = Resolve("yaml", "list.json")
	require.NoError(t, err)
	assert.Equal(t, YAML, f)

	f, err = Resolve("", "list.txt")
	require.NoError(t, err)
	assert.Equal(t, Human, f)

	_, err = Resolve("csv", "")
	assert.Error(t, err)
}

func sampleList(t *testing.T) (*shopping.IngredientList, []shopping.Category) {
	t.Helper()
	recipe, report := cooklang.Parse("Mix @flour{200%g}, @milk{1%cup} and @flour{100%g}.\nAdd @salt.\n")
	require.False(t, report.HasErrors())
	list := shopping.NewIngredientList()
	list.AddRecipe(recipe, units.New(), false)
	conf, _ := aisle.Parse("[baking]\nflour\nsalt\n\n[dairy]\nmilk\n")
	return list, list.Categorize(conf)
}

func TestShoppingListHuman(t *testing.T) {
	list, cats := sampleList(t)

	var buf bytes.Buffer
	require.NoError(t, ShoppingList(&buf, list, cats, ShoppingOptions{Format: Human}))
	out := buf.String()
	assert.Contains(t, out, "[baking]\n")
	assert.Contains(t, out, "[dairy]\n")
	assert.Regexp(t, `flour\s+300 g`, out)
	assert.Less(t, strings.Index(out, "[baking]"), strings.Index(out, "[dairy]"))

	buf.Reset()
	require.NoError(t, ShoppingList(&buf, list, cats, ShoppingOptions{Format: Human, Plain: true}))
	assert.NotContains(t, buf.String(), "[baking]")

	buf.Reset()
	require.NoError(t, ShoppingList(&buf, list, cats, ShoppingOptions{Format: Human, IngredientsOnly: true}))
	assert.Equal(t, "flour\nmilk\nsalt\n", buf.String())
}

func TestShoppingListJSON(t *testing.T) {
	list, cats := sampleList(t)

	var buf bytes.Buffer
	require.NoError(t, ShoppingList(&buf, list, cats, ShoppingOptions{Format: JSON}))
	var got []struct {
		Category string `json:"category"`
		Items    []struct {
			Name string `json:"name"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "baking", got[0].Category)
	assert.Equal(t, "flour", got[0].Items[0].Name)

	buf.Reset()
	require.NoError(t, ShoppingList(&buf, list, cats, ShoppingOptions{Format: YAML, IngredientsOnly: true}))
	assert.Equal(t, "- flour\n- milk\n- salt\n", buf.String())

	assert.Error(t, ShoppingList(&buf, list, cats, ShoppingOptions{Format: Markdown}))
}

func TestRecipeMarkdown(t *testing.T) {
	recipe, _ := cooklang.Parse("---\ntitle: Toast\nservings: 2\n---\nToast @bread{2%slices} in a #toaster for ~{3%minutes}.\n")
	recipe.Scale(2)

	var buf bytes.Buffer
	require.NoError(t, Recipe(&buf, "toast", recipe, Markdown, false))
	out := buf.String()
	assert.Contains(t, out, "# Toast\n")
	assert.Contains(t, out, "Servings: 4\n")
	assert.Contains(t, out, "- *4 slices* bread\n")
	assert.Contains(t, out, "- toaster\n")
	assert.Contains(t, out, "1. Toast bread in a toaster for 3 minutes.\n")
}

func TestRecipeHumanShowsScale(t *testing.T) {
	recipe, _ := cooklang.Parse("---\nservings: 2\n---\nEat @apple{1}.\n")
	recipe.Scale(3)

	var buf bytes.Buffer
	require.NoError(t, Recipe(&buf, "Snack", recipe, Human, false))
	out := buf.String()
	assert.Contains(t, out, "Snack @ 3")
	assert.Regexp(t, `servings:\s+6`, out)
	assert.Contains(t, out, " 1. Eat apple.")
}

func TestDepletedHuman(t *testing.T) {
	items := []pantry.DepletedItem{
		{Name: "honey", Section: "baking", Quantity: "0", LowThreshold: "100%g", IsLow: true},
		{Name: "milk", Section: "dairy", Quantity: "200%ml", IsLow: true},
	}
	var buf bytes.Buffer
	require.NoError(t, Depleted(&buf, items, Human, false))
	out := buf.String()
	assert.Contains(t, out, "Depleted or Low Stock Items:")
	assert.Contains(t, out, "BAKING:\n  • honey (0) [low when < 100%g]\n")
	assert.Contains(t, out, "DAIRY:\n  • milk (200%ml)\n")
	assert.NotContains(t, out, "LOW\n")

	buf.Reset()
	require.NoError(t, Depleted(&buf, nil, Human, false))
	assert.Equal(t, "All pantry items are well stocked.\n", buf.String())

	buf.Reset()
	require.NoError(t, Depleted(&buf, nil, JSON, false))
	assert.JSONEq(t, `{"items": []}`, buf.String())
}

func TestExpiringHuman(t *testing.T) {
	two := 2
	items := []pantry.ExpiringItem{
		{Name: "eggs", Section: "dairy", ExpireDate: "2024-05-03", DaysLeft: &two, Status: "expires in 2 days"},
		{Name: "rice", Section: "pantry", Status: "No expiry date"},
	}
	var buf bytes.Buffer
	require.NoError(t, Expiring(&buf, items, 7, Human, false))
	out := buf.String()
	assert.Contains(t, out, "Items expiring within 7 days:")
	assert.Contains(t, out, "  • eggs (dairy) - 2024-05-03: expires in 2 days\n")
	assert.Contains(t, out, "  • rice (pantry): No expiry date\n")

	buf.Reset()
	require.NoError(t, Expiring(&buf, items[:1], 7, YAML, false))
	assert.Contains(t, buf.String(), "days_until_expiry: 2")
}

func TestPantryRecipesHuman(t *testing.T) {
	res := &service.PantryRecipesResult{
		FullMatches:    []string{"Pancakes"},
		PartialMatches: []service.PartialMatch{{Recipe: "Tomato Sauce", Percentage: 66, MissingIngredients: []string{"canned tomatoes"}}},
	}
	var buf bytes.Buffer
	require.NoError(t, PantryRecipes(&buf, res, 60, Human, false))
	out := buf.String()
	assert.Contains(t, out, "Recipes you can make:\n  • Pancakes\n")
	assert.Contains(t, out, "Partial matches (at least 60%):\n  • Tomato Sauce (66%) missing: canned tomatoes\n")
}
