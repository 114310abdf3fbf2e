package webrecipe

import (
	"strings"
	"testing"
)

func TestParseIngredient(t *testing.T) {
	t.Parallel()
	tests := []struct {
		line string
		want Ingredient
	}{
		{"2 1/2 cups flour, sifted", Ingredient{Name: "flour", Quantity: "2.5", Unit: "cups", Note: "sifted"}},
		{"3 cloves garlic (minced)", Ingredient{Name: "garlic", Quantity: "3", Unit: "cloves", Note: "minced"}},
		{"½ tsp salt", Ingredient{Name: "salt", Quantity: "1/2", Unit: "tsp"}},
		{"1 fl oz milk", Ingredient{Name: "milk", Quantity: "1", Unit: "fl oz"}},
		{"1-2 tbsp. honey", Ingredient{Name: "honey", Quantity: "1-2", Unit: "tbsp"}},
		{"1 cup of sugar", Ingredient{Name: "sugar", Quantity: "1", Unit: "cup"}},
		{"2 eggs", Ingredient{Name: "eggs", Quantity: "2"}},
		{"1,5 kg potatoes", Ingredient{Name: "potatoes", Quantity: "1.5", Unit: "kg"}},
		{"Salt and pepper to taste", Ingredient{Name: "Salt and pepper to taste"}},
		{"#1 @best {oil}", Ingredient{Name: "1 best oil"}},
	}
	for _, tc := range tests {
		if got := ParseIngredient(tc.line); got != tc.want {
			t.Fatalf("ParseIngredient(%q) = %+v, want %+v", tc.line, got, tc.want)
		}
	}
}

func TestIngredientCooklang(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   Ingredient
		want string
	}{
		{Ingredient{Name: "flour", Quantity: "2.5", Unit: "cups", Note: "sifted"}, "@flour{2.5%cups}(sifted)"},
		{Ingredient{Name: "eggs", Quantity: "2"}, "@eggs{2}"},
		{Ingredient{Name: "salt"}, "@salt{}"},
	}
	for _, tc := range tests {
		if got := tc.in.Cooklang(); got != tc.want {
			t.Fatalf("Cooklang() = %q, want %q", got, tc.want)
		}
	}
}

func TestRecipeCooklang(t *testing.T) {
	t.Parallel()
	r := Recipe{
		Name:         "Fluffy Pancakes",
		URL:          "https://example.com/pancakes",
		Yield:        "4",
		CookTime:     "PT15M",
		Ingredients:  []string{"2 eggs", "1 cup milk"},
		Instructions: []string{"Whisk everything.", "Cook @ medium heat."},
	}
	out, err := r.Cooklang()
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	for _, want := range []string{
		"---\ntitle: Fluffy Pancakes\n",
		"source: https://example.com/pancakes\n",
		"servings: \"4\"\n",
		"cook time: PT15M\n",
		"= Ingredients =\n\n@eggs{2}\n\n@milk{1%cup}\n\n= Method =\n\n",
		"Whisk everything.\n\nCook at  medium heat.\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRecipePlain(t *testing.T) {
	t.Parallel()
	r := Recipe{Name: "Toast", Ingredients: []string{"1 slice bread"}, Instructions: []string{"Toast it."}}
	want := "Toast\n\n[Ingredients]\n1 slice bread\n\n[Instructions]\nToast it.\n"
	if got := r.Plain(); got != want {
		t.Fatalf("Plain() = %q, want %q", got, want)
	}
}
