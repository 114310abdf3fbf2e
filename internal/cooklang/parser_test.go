package cooklang_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cooklang/cookcli-sub000/internal/cooklang"
	"github.com/cooklang/cookcli-sub000/internal/quantity"
	"github.com/cooklang/cookcli-sub000/internal/units"
)

const simpleRecipe = `---
title: Simple Recipe
servings: 2
tags: [quick, pasta]
---

Boil @water{2%cups} for ~{5%minutes}.
Add @salt{1%tsp} and @pasta{200%g}.
Cook in a #pot for another ~{10%minutes}.
`

func TestParseSimpleRecipe(t *testing.T) {
	t.Parallel()

	recipe, report := cooklang.Parse(simpleRecipe)
	require.Empty(t, report.Errors())

	assert.Equal(t, "Simple Recipe", recipe.Metadata.Title())
	servings, ok := recipe.Metadata.Servings()
	require.True(t, ok)
	assert.Equal(t, 2.0, servings)
	assert.Equal(t, []string{"quick", "pasta"}, recipe.Metadata.Tags())

	require.Len(t, recipe.Ingredients, 3)
	assert.Equal(t, "water", recipe.Ingredients[0].Name)
	assert.Equal(t, "2 cups", recipe.Ingredients[0].Quantity.String())
	assert.Equal(t, "salt", recipe.Ingredients[1].Name)
	assert.Equal(t, "200 g", recipe.Ingredients[2].Quantity.String())

	require.Len(t, recipe.Cookware, 1)
	assert.Equal(t, "pot", recipe.Cookware[0].Name)
	require.Len(t, recipe.Timers, 2)
	assert.Equal(t, "5 minutes", recipe.Timers[0].Quantity.String())

	require.Len(t, recipe.Sections, 1)
	require.Len(t, recipe.Sections[0].Content, 1)
	step := recipe.Sections[0].Content[0].Step
	require.NotNil(t, step)
	assert.Equal(t, 1, step.Number)
	assert.Equal(t, cooklang.ItemText, step.Items[0].Kind)
	assert.Equal(t, "Boil ", step.Items[0].Text)
	assert.Equal(t, cooklang.ItemIngredient, step.Items[1].Kind)
}

func TestParseMultiWordNamesAliasesAndNotes(t *testing.T) {
	t.Parallel()

	recipe, _ := cooklang.Parse("Heat @olive oil{2%tbsp} in a #large pot{}. Add @spring onions|scallions{3}(sliced).")

	require.Len(t, recipe.Ingredients, 2)
	assert.Equal(t, "olive oil", recipe.Ingredients[0].Name)
	assert.Equal(t, "spring onions", recipe.Ingredients[1].Name)
	assert.Equal(t, "scallions", recipe.Ingredients[1].DisplayName())
	assert.Equal(t, "sliced", recipe.Ingredients[1].Note)
	require.Len(t, recipe.Cookware, 1)
	assert.Equal(t, "large pot", recipe.Cookware[0].Name)
}

func TestParseSingleWordStopsAtPunctuation(t *testing.T) {
	t.Parallel()

	recipe, _ := cooklang.Parse("Season with @salt, then add @pepper{} and @ingredient with no quantity.")

	require.Len(t, recipe.Ingredients, 3)
	assert.Equal(t, "salt", recipe.Ingredients[0].Name)
	assert.Nil(t, recipe.Ingredients[0].Quantity)
	assert.Equal(t, "pepper", recipe.Ingredients[1].Name)
	assert.Equal(t, "ingredient", recipe.Ingredients[2].Name)
}

func TestParseModifiers(t *testing.T) {
	t.Parallel()

	recipe, _ := cooklang.Parse("Add @flour{200%g}, @?nuts{50%g}, @-pepper{} and more @&flour{100%g}.")

	require.Len(t, recipe.Ingredients, 4)
	assert.True(t, recipe.Ingredients[0].Listed())
	assert.True(t, recipe.Ingredients[1].Modifiers.Has(cooklang.ModOptional))
	assert.True(t, recipe.Ingredients[1].Listed())
	assert.True(t, recipe.Ingredients[2].Modifiers.Has(cooklang.ModHidden))
	assert.False(t, recipe.Ingredients[2].Listed())
	assert.True(t, recipe.Ingredients[3].Modifiers.Has(cooklang.ModRef))
	assert.False(t, recipe.Ingredients[3].Listed())
}

func TestParseReferences(t *testing.T) {
	t.Parallel()

	recipe, report := cooklang.Parse("Make @./sauce{}. Serve with @./Sides/Mashed Potatoes{2}. Add @../shared/stock{500%ml}.")
	require.Empty(t, report.Errors())
	require.Len(t, recipe.Ingredients, 3)

	sauce := recipe.Ingredients[0]
	require.True(t, sauce.IsReference())
	assert.Equal(t, "sauce", sauce.Name)
	assert.Equal(t, []string{"."}, sauce.Reference.Components)
	assert.Equal(t, "./sauce", sauce.Reference.Path())
	assert.True(t, sauce.Reference.IsRelative())
	assert.Nil(t, sauce.Quantity)

	sides := recipe.Ingredients[1]
	assert.Equal(t, "Mashed Potatoes", sides.Name)
	assert.Equal(t, "./Sides/Mashed Potatoes", sides.Reference.Path())
	assert.Equal(t, quantity.Number(2), sides.Quantity.Value)

	stock := recipe.Ingredients[2]
	assert.Equal(t, "../shared/stock", stock.Reference.Path())
	assert.Equal(t, "ml", stock.Quantity.Unit)
}

func TestParseReferenceWithoutBraces(t *testing.T) {
	t.Parallel()

	recipe, _ := cooklang.Parse("Wednesday\n- @./with_ref\n")
	require.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, "./with_ref", recipe.Ingredients[0].Reference.Path())
}

func TestReferencePathWithoutComponents(t *testing.T) {
	t.Parallel()

	ref := cooklang.Reference{Name: "soup"}
	assert.Equal(t, "soup", ref.Path())
	assert.False(t, ref.IsRelative())
}

func TestParseCommentsSectionsNotesAndLegacyMetadata(t *testing.T) {
	t.Parallel()

	text := `>> servings: 4
>> source: grandma

= Dough =
Mix @flour{500%g} -- sift first
with [- lukewarm -] @water{300%ml}.

> Let it rest overnight.

== Topping ==
Spread @tomato sauce{1/2%cup}.
`
	recipe, report := cooklang.Parse(text)
	require.Empty(t, report.Diagnostics)

	servings, ok := recipe.Metadata.Servings()
	require.True(t, ok)
	assert.Equal(t, 4.0, servings)
	source, _ := recipe.Metadata.String("source")
	assert.Equal(t, "grandma", source)

	require.Len(t, recipe.Sections, 2)
	assert.Equal(t, "Dough", recipe.Sections[0].Name)
	require.Len(t, recipe.Sections[0].Content, 2)
	assert.Equal(t, cooklang.ContentText, recipe.Sections[0].Content[1].Kind)
	assert.Equal(t, "Let it rest overnight.", recipe.Sections[0].Content[1].Text)
	assert.Equal(t, "Topping", recipe.Sections[1].Name)

	require.Len(t, recipe.Ingredients, 3)
	assert.Equal(t, "water", recipe.Ingredients[1].Name)
	assert.Equal(t, "1/2 cup", recipe.Ingredients[2].Quantity.String())
	assert.Equal(t, 2, recipe.Sections[1].Content[0].Step.Number)
}

func TestParseRecordsDiagnostics(t *testing.T) {
	t.Parallel()

	recipe, report := cooklang.Parse("---\ntitle: [unclosed\n---\nAdd @flour{2%cups and stir.\n\nBad ref @./{}.\n")
	require.NotNil(t, recipe)

	assert.NotEmpty(t, report.Warnings())
	assert.True(t, report.HasErrors())
	assert.Len(t, report.Warnings(), 2)
	assert.Equal(t, 6, report.Errors()[0].Line)
}

func TestParseRangesTextAndFixed(t *testing.T) {
	t.Parallel()

	recipe, _ := cooklang.Parse("Add @eggs{2-3}, @salt{a pinch} and @yeast{7%g*}.")

	require.Len(t, recipe.Ingredients, 3)
	assert.Equal(t, quantity.Range(2, 3), recipe.Ingredients[0].Quantity.Value)
	assert.Equal(t, quantity.Text("a pinch"), recipe.Ingredients[1].Quantity.Value)
	assert.True(t, recipe.Ingredients[2].Fixed)

	recipe.Scale(2)
	assert.Equal(t, quantity.Range(4, 6), recipe.Ingredients[0].Quantity.Value)
	assert.Equal(t, quantity.Text("a pinch"), recipe.Ingredients[1].Quantity.Value)
	assert.Equal(t, "7 g", recipe.Ingredients[2].Quantity.String())
	assert.Equal(t, 2.0, recipe.ScaleFactor)
}

func TestTargetFactorServings(t *testing.T) {
	t.Parallel()

	recipe, _ := cooklang.Parse(simpleRecipe)
	factor, err := recipe.TargetFactor(6, "", units.New())
	require.NoError(t, err)
	assert.Equal(t, 3.0, factor)

	factor, err = recipe.TargetFactor(1, "servings", units.New())
	require.NoError(t, err)
	assert.Equal(t, 0.5, factor)
}

func TestTargetFactorYield(t *testing.T) {
	t.Parallel()

	recipe, _ := cooklang.Parse("---\nyield: 500%g\n---\nMix @flour{250%g}.\n")

	factor, err := recipe.TargetFactor(1, "kg", units.New())
	require.NoError(t, err)
	assert.InDelta(t, 2.0, factor, 1e-9)

	factor, err = recipe.ScaleToTarget(250, "g", units.New())
	require.NoError(t, err)
	assert.Equal(t, 0.5, factor)
	assert.Equal(t, "125 g", recipe.Ingredients[0].Quantity.String())
}

func TestTargetFactorErrors(t *testing.T) {
	t.Parallel()

	recipe, _ := cooklang.Parse("---\nyield: 500%g\n---\nMix @flour{250%g}.\n")

	_, err := recipe.TargetFactor(2, "cups", units.New())
	require.True(t, errors.Is(err, cooklang.ErrUnitMismatch))
	var scaleErr *cooklang.ScaleError
	require.True(t, errors.As(err, &scaleErr))
	assert.Equal(t, "cups", scaleErr.TargetUnit)
	assert.Equal(t, "g", scaleErr.BaseUnit)

	_, err = recipe.TargetFactor(2, "", units.New())
	assert.True(t, errors.Is(err, cooklang.ErrNoBaseQuantity))

	bare, _ := cooklang.Parse("Mix @flour{250%g}.")
	_, err = bare.TargetFactor(1, "kg", units.New())
	assert.True(t, errors.Is(err, cooklang.ErrNoBaseQuantity))
}
