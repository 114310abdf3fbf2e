// Package cooklang parses Cooklang recipe markup into a Recipe model.
package cooklang

import (
	"strings"

	"github.com/cooklang/cookcli-sub000/internal/quantity"
)

// Modifiers are the flags written between the sigil and the component name,
// e.g. "@?salt" or "@&flour".
type Modifiers uint8

const (
	// ModRef marks a reuse of an ingredient defined earlier in the recipe.
	ModRef Modifiers = 1 << iota
	ModHidden
	ModOptional
	ModNew
	// ModRecipe marks a reference to another recipe file.
	ModRecipe
)

func (m Modifiers) Has(flag Modifiers) bool { return m&flag != 0 }

type Recipe struct {
	Metadata    Metadata     `json:"metadata" yaml:"metadata"`
	Sections    []Section    `json:"sections" yaml:"sections"`
	Ingredients []Ingredient `json:"ingredients" yaml:"ingredients"`
	Cookware    []Cookware   `json:"cookware" yaml:"cookware"`
	Timers      []Timer      `json:"timers" yaml:"timers"`
	// ScaleFactor is the product of every factor applied with Scale.
	ScaleFactor float64 `json:"scale" yaml:"scale"`
}

type Section struct {
	Name    string    `json:"name,omitempty" yaml:"name,omitempty"`
	Content []Content `json:"content" yaml:"content"`
}

type ContentKind string

const (
	ContentStep ContentKind = "step"
	ContentText ContentKind = "text"
)

// Content is either a numbered step or a free-standing note paragraph.
type Content struct {
	Kind ContentKind `json:"type" yaml:"type"`
	Step *Step       `json:"step,omitempty" yaml:"step,omitempty"`
	Text string      `json:"text,omitempty" yaml:"text,omitempty"`
}

type Step struct {
	Number int    `json:"number" yaml:"number"`
	Items  []Item `json:"items" yaml:"items"`
}

type ItemKind string

const (
	ItemText       ItemKind = "text"
	ItemIngredient ItemKind = "ingredient"
	ItemCookware   ItemKind = "cookware"
	ItemTimer      ItemKind = "timer"
)

// Item is a fragment of a step. Component items point into the recipe's
// Ingredients, Cookware or Timers slice via Index.
type Item struct {
	Kind  ItemKind `json:"type" yaml:"type"`
	Text  string   `json:"value,omitempty" yaml:"value,omitempty"`
	Index int      `json:"index,omitempty" yaml:"index,omitempty"`
}

type Ingredient struct {
	Name      string             `json:"name" yaml:"name"`
	Alias     string             `json:"alias,omitempty" yaml:"alias,omitempty"`
	Quantity  *quantity.Quantity `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Fixed     bool               `json:"fixed,omitempty" yaml:"fixed,omitempty"`
	Note      string             `json:"note,omitempty" yaml:"note,omitempty"`
	Modifiers Modifiers          `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Reference *Reference         `json:"reference,omitempty" yaml:"reference,omitempty"`
}

// DisplayName is the alias when one was given, else the name.
func (i Ingredient) DisplayName() string {
	if i.Alias != "" {
		return i.Alias
	}
	return i.Name
}

func (i Ingredient) IsReference() bool { return i.Reference != nil }

// Listed reports whether the ingredient belongs on an ingredient list.
// Reuses of an earlier ingredient and hidden ingredients do not.
func (i Ingredient) Listed() bool {
	return !i.Modifiers.Has(ModRef) && !i.Modifiers.Has(ModHidden)
}

// Reference locates another recipe, e.g. "@./sauces/tomato{}" has
// Components [".", "sauces"] and Name "tomato".
type Reference struct {
	Components []string `json:"components" yaml:"components"`
	Name       string   `json:"name" yaml:"name"`
}

// Path joins the components and name with "/". A lone "." component yields
// "./name".
func (r Reference) Path() string {
	if len(r.Components) == 0 {
		return r.Name
	}
	return strings.Join(r.Components, "/") + "/" + r.Name
}

// IsRelative reports whether the reference is relative to the referencing
// recipe rather than the collection root.
func (r Reference) IsRelative() bool {
	return len(r.Components) > 0 && (r.Components[0] == "." || r.Components[0] == "..")
}

type Cookware struct {
	Name      string             `json:"name" yaml:"name"`
	Alias     string             `json:"alias,omitempty" yaml:"alias,omitempty"`
	Quantity  *quantity.Quantity `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Note      string             `json:"note,omitempty" yaml:"note,omitempty"`
	Modifiers Modifiers          `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
}

func (c Cookware) DisplayName() string {
	if c.Alias != "" {
		return c.Alias
	}
	return c.Name
}

type Timer struct {
	Name     string             `json:"name,omitempty" yaml:"name,omitempty"`
	Quantity *quantity.Quantity `json:"quantity,omitempty" yaml:"quantity,omitempty"`
}
