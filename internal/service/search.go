package service

import (
	"fmt"
	"strings"

	"github.com/cooklang/cookcli-sub000/internal/catalog"
)

func SearchRecipes(base, query string, limit int) ([]catalog.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query is required")
	}
	results, err := catalog.Search(base, query)
	if err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}
	if results == nil {
		results = []catalog.SearchResult{}
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
