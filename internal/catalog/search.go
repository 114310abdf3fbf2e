package catalog

import (
	"sort"
	"strings"
)

type SearchResult struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	Score int    `json:"score"`
	Entry *Entry `json:"-"`
}

// Search returns recipes under base whose name or text contains every term
// of query, best matches first. Name hits weigh more than text hits.
func Search(base, query string) ([]SearchResult, error) {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil, nil
	}
	tree, err := BuildTree(base)
	if err != nil {
		return nil, err
	}

	var results []SearchResult
	for _, node := range tree.Recipes() {
		content, err := node.Recipe.Content()
		if err != nil {
			continue
		}
		name := strings.ToLower(node.Recipe.Name)
		text := strings.ToLower(content)
		score := 0
		for _, term := range terms {
			inName := strings.Count(name, term)
			inText := strings.Count(text, term)
			if inName == 0 && inText == 0 {
				score = 0
				break
			}
			score += inName*10 + inText
		}
		if score == 0 {
			continue
		}
		results = append(results, SearchResult{Name: node.Recipe.Name, Path: node.Path, Score: score, Entry: node.Recipe})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results, nil
}
