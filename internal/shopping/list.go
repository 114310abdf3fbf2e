// Package shopping aggregates recipe ingredients into shopping lists.
package shopping

import (
	"github.com/cooklang/cookcli-sub000/internal/cooklang"
	"github.com/cooklang/cookcli-sub000/internal/quantity"
)

// Item is one line of an ingredient list.
type Item struct {
	Name     string            `json:"name" yaml:"name"`
	Quantity *quantity.Grouped `json:"quantity" yaml:"quantity"`
}

// IngredientList maps ingredient names to their accumulated quantities and
// remembers the order names were first added. Names are case-sensitive.
type IngredientList struct {
	names []string
	items map[string]*quantity.Grouped
}

func NewIngredientList() *IngredientList {
	return &IngredientList{items: map[string]*quantity.Grouped{}}
}

// AddRecipe adds every listed ingredient of recipe under its display name and
// returns the indices of the recipe references it skipped. With
// ignoreReferences the references are added like plain ingredients and no
// indices are returned.
func (l *IngredientList) AddRecipe(recipe *cooklang.Recipe, conv quantity.Converter, ignoreReferences bool) []int {
	var refs []int
	for i, ing := range recipe.Ingredients {
		if !ing.Listed() {
			continue
		}
		if ing.IsReference() && !ignoreReferences {
			refs = append(refs, i)
			continue
		}
		l.AddIngredient(ing.DisplayName(), ing.Quantity, conv)
	}
	return refs
}

// AddIngredient records name, merging q into its quantities when given. A nil
// q still lists the ingredient.
func (l *IngredientList) AddIngredient(name string, q *quantity.Quantity, conv quantity.Converter) {
	g := l.entry(name)
	if q != nil {
		g.Add(*q, conv)
	}
}

// AddGrouped merges every quantity of g under name.
func (l *IngredientList) AddGrouped(name string, g *quantity.Grouped, conv quantity.Converter) {
	l.entry(name).Merge(g, conv)
}

func (l *IngredientList) entry(name string) *quantity.Grouped {
	if l.items == nil {
		l.items = map[string]*quantity.Grouped{}
	}
	g, ok := l.items[name]
	if !ok {
		g = &quantity.Grouped{}
		l.items[name] = g
		l.names = append(l.names, name)
	}
	return g
}

func (l *IngredientList) Get(name string) (*quantity.Grouped, bool) {
	g, ok := l.items[name]
	return g, ok
}

func (l *IngredientList) Len() int { return len(l.names) }

// Names returns ingredient names in insertion order.
func (l *IngredientList) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// Items returns the list in insertion order.
func (l *IngredientList) Items() []Item {
	out := make([]Item, 0, len(l.names))
	for _, name := range l.names {
		out = append(out, Item{Name: name, Quantity: l.items[name]})
	}
	return out
}

// Filter builds a new list with the items keep accepts, in the same order.
func (l *IngredientList) Filter(keep func(name string) bool, conv quantity.Converter) *IngredientList {
	out := NewIngredientList()
	for _, name := range l.names {
		if keep(name) {
			out.AddGrouped(name, l.items[name], conv)
		}
	}
	return out
}
