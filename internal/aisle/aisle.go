// Package aisle reads shopping aisle configuration files:
//
//	[produce]
//	tomatoes
//	spring onions|scallions
//
// Each line under a category lists one ingredient and its synonyms.
package aisle

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

type Ingredient struct {
	Names []string `json:"names" yaml:"names"`
}

type Category struct {
	Name        string       `json:"name" yaml:"name"`
	Ingredients []Ingredient `json:"ingredients" yaml:"ingredients"`
}

type Warning struct {
	Line    int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}

// Conf maps ingredient names to categories, ignoring case.
type Conf struct {
	Categories []Category
	index      map[string]int
}

// fold builds a new Caser per call; Casers are not safe for concurrent use.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Parse reads an aisle file leniently. Malformed lines produce warnings and
// are skipped; the first category an ingredient appears in wins.
func Parse(text string) (*Conf, []Warning) {
	conf := &Conf{index: map[string]int{}}
	var warnings []Warning
	current := -1
	byName := map[string]int{}

	for i, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				warnings = append(warnings, Warning{Line: lineNo, Message: fmt.Sprintf("unterminated category %q", line)})
				current = -1
				continue
			}
			name := strings.TrimSpace(line[1 : len(line)-1])
			if name == "" {
				warnings = append(warnings, Warning{Line: lineNo, Message: "empty category name"})
				current = -1
				continue
			}
			if idx, ok := byName[fold(name)]; ok {
				warnings = append(warnings, Warning{Line: lineNo, Message: fmt.Sprintf("duplicate category %q", name)})
				current = idx
				continue
			}
			conf.Categories = append(conf.Categories, Category{Name: name})
			current = len(conf.Categories) - 1
			byName[fold(name)] = current
			continue
		}
		if current < 0 {
			warnings = append(warnings, Warning{Line: lineNo, Message: fmt.Sprintf("ingredient %q outside of a category", line)})
			continue
		}

		var ing Ingredient
		for _, name := range strings.Split(line, "|") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			key := fold(name)
			if prev, ok := conf.index[key]; ok {
				if prev != current {
					warnings = append(warnings, Warning{Line: lineNo, Message: fmt.Sprintf("%q already listed in [%s]", name, conf.Categories[prev].Name)})
				}
				continue
			}
			conf.index[key] = current
			ing.Names = append(ing.Names, name)
		}
		if len(ing.Names) > 0 {
			conf.Categories[current].Ingredients = append(conf.Categories[current].Ingredients, ing)
		}
	}
	return conf, warnings
}

// CategoryOf returns the category listing name or any of its synonyms.
func (c *Conf) CategoryOf(name string) (string, bool) {
	if c == nil {
		return "", false
	}
	idx, ok := c.index[fold(name)]
	if !ok {
		return "", false
	}
	return c.Categories[idx].Name, true
}

// Canonical returns the first name of the aisle line that lists name.
func (c *Conf) Canonical(name string) string {
	if c == nil {
		return name
	}
	key := fold(name)
	idx, ok := c.index[key]
	if !ok {
		return name
	}
	for _, ing := range c.Categories[idx].Ingredients {
		for _, n := range ing.Names {
			if fold(n) == key {
				return ing.Names[0]
			}
		}
	}
	return name
}

func (c *Conf) Len() int {
	if c == nil {
		return 0
	}
	return len(c.index)
}
