package webrecipe

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type Recipe struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	URL          string   `json:"url,omitempty"`
	Yield        string   `json:"yield,omitempty"`
	PrepTime     string   `json:"prep_time,omitempty"`
	CookTime     string   `json:"cook_time,omitempty"`
	TotalTime    string   `json:"total_time,omitempty"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// Extract finds the first schema.org Recipe in the page's JSON-LD scripts.
func Extract(r io.Reader) (Recipe, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Recipe{}, fmt.Errorf("parse recipe page: %w", err)
	}
	for _, script := range jsonLDScripts(doc) {
		var data any
		if err := json.Unmarshal([]byte(script), &data); err != nil {
			continue
		}
		if node := findRecipe(data); node != nil {
			return decodeRecipe(node), nil
		}
	}
	return Recipe{}, ErrNoRecipe
}

func jsonLDScripts(n *html.Node) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Script && isJSONLD(n) {
			var b strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					b.WriteString(c.Data)
				}
			}
			out = append(out, b.String())
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func isJSONLD(n *html.Node) bool {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, "type") && strings.EqualFold(strings.TrimSpace(a.Val), "application/ld+json") {
			return true
		}
	}
	return false
}

// findRecipe searches arrays and @graph containers for a Recipe object.
func findRecipe(v any) map[string]any {
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			if r := findRecipe(item); r != nil {
				return r
			}
		}
	case map[string]any:
		if hasType(val["@type"], "Recipe") {
			return val
		}
		if graph, ok := val["@graph"]; ok {
			return findRecipe(graph)
		}
	}
	return nil
}

func hasType(v any, want string) bool {
	switch t := v.(type) {
	case string:
		return strings.EqualFold(t, want)
	case []any:
		for _, item := range t {
			if hasType(item, want) {
				return true
			}
		}
	}
	return false
}

func decodeRecipe(m map[string]any) Recipe {
	r := Recipe{
		Name:        cleanText(text(m["name"])),
		Description: cleanText(text(m["description"])),
		URL:         text(m["url"]),
		Yield:       firstText(m["recipeYield"]),
		PrepTime:    text(m["prepTime"]),
		CookTime:    text(m["cookTime"]),
		TotalTime:   text(m["totalTime"]),
	}
	for _, ing := range list(m["recipeIngredient"]) {
		if s := cleanText(text(ing)); s != "" {
			r.Ingredients = append(r.Ingredients, s)
		}
	}
	if len(r.Ingredients) == 0 {
		for _, ing := range list(m["ingredients"]) {
			if s := cleanText(text(ing)); s != "" {
				r.Ingredients = append(r.Ingredients, s)
			}
		}
	}
	r.Instructions = instructions(m["recipeInstructions"])
	return r
}

// instructions flattens plain strings, HowToStep and HowToSection values.
func instructions(v any) []string {
	var out []string
	switch val := v.(type) {
	case string:
		for _, line := range strings.Split(val, "\n") {
			if s := cleanText(line); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, item := range val {
			out = append(out, instructions(item)...)
		}
	case map[string]any:
		if hasType(val["@type"], "HowToSection") {
			return instructions(val["itemListElement"])
		}
		if s := cleanText(text(val["text"])); s != "" {
			out = append(out, s)
		} else if s := cleanText(text(val["name"])); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func list(v any) []any {
	switch val := v.(type) {
	case []any:
		return val
	case nil:
		return nil
	default:
		return []any{val}
	}
}

func text(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strings.TrimSpace(fmt.Sprint(val))
	case map[string]any:
		return text(val["@value"])
	default:
		return ""
	}
}

func firstText(v any) string {
	for _, item := range list(v) {
		if s := text(item); s != "" {
			return s
		}
	}
	return ""
}

// cleanText unescapes entities, strips tags and collapses whitespace.
func cleanText(s string) string {
	if !strings.Contains(s, "<") {
		return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
	}
	frag, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(frag)
	return strings.Join(strings.Fields(b.String()), " ")
}
