package service_test

import (
	"testing"

	"github.com/cooklang/cookcli-sub000/internal/service"
)

func TestSearchRecipesRanksNameMatchesFirst(t *testing.T) {
	t.Parallel()
	dir := newSeededCollection(t)

	results, err := service.SearchRecipes(dir, "tomato", 0)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %+v", results)
	}
	if results[0].Path != "Sauces/Tomato Sauce.cook" || results[1].Path != "Spaghetti Pomodoro.cook" {
		t.Fatalf("unexpected ranking: %+v", results)
	}

	limited, err := service.SearchRecipes(dir, "tomato", 1)
	if err != nil {
		t.Fatalf("search with limit: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(limited))
	}

	none, err := service.SearchRecipes(dir, "tomato lasagne", 0)
	if err != nil {
		t.Fatalf("search without matches: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", none)
	}

	if _, err := service.SearchRecipes(dir, "  ", 0); err == nil {
		t.Fatalf("expected empty query to fail")
	}
}
