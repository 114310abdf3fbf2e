package shopping

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/cooklang/cookcli-sub000/internal/catalog"
	"github.com/cooklang/cookcli-sub000/internal/cooklang"
	"github.com/cooklang/cookcli-sub000/internal/quantity"
)

var ErrParse = errors.New("recipe has errors")

// RecipeFinder looks a recipe up by name in the given directories.
type RecipeFinder interface {
	GetRecipe(searchPaths []string, name string) (*catalog.Entry, error)
}

// SeenSet holds the recipes on the current resolution path, in the order
// they were entered.
type SeenSet struct {
	keys   []string
	labels []string
}

func NewSeenSet() *SeenSet { return &SeenSet{} }

func (s *SeenSet) Contains(key string) bool {
	for _, k := range s.keys {
		if k == key {
			return true
		}
	}
	return false
}

// Push records key with a human readable label and returns its position.
func (s *SeenSet) Push(key, label string) int {
	s.keys = append(s.keys, key)
	s.labels = append(s.labels, label)
	return len(s.keys) - 1
}

func (s *SeenSet) Pop(key string) {
	for i := len(s.keys) - 1; i >= 0; i-- {
		if s.keys[i] == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			s.labels = append(s.labels[:i], s.labels[i+1:]...)
			return
		}
	}
}

func (s *SeenSet) Len() int { return len(s.keys) }

// Chain returns the labels in insertion order.
func (s *SeenSet) Chain() []string {
	out := make([]string, len(s.labels))
	copy(out, s.labels)
	return out
}

// Resolver expands recipe specs, and the recipes they reference, into an
// IngredientList.
type Resolver struct {
	Finder    RecipeFinder
	Converter quantity.Converter
	Logger    *zap.Logger
	// Shallow stops at the first level of references: references inside a
	// referenced recipe are listed as plain ingredients.
	Shallow bool
}

func NewResolver(conv quantity.Converter, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{Finder: catalog.Finder{}, Converter: conv, Logger: logger}
}

// ExtractIngredients adds the ingredients of spec ("name[:scale]") to list.
// References are expanded where they appear, scaled by the requested scale and,
// when the reference has a quantity, by the factor that makes the referenced
// recipe produce that quantity. seen guards against reference cycles and is
// left as it was found on return.
func (r *Resolver) ExtractIngredients(spec string, list *IngredientList, seen *SeenSet, basePath string, ignoreReferences bool) error {
	name, scale, err := ParseRecipeSpec(spec)
	if err != nil {
		return err
	}
	entry, err := r.Finder.GetRecipe([]string{basePath}, name)
	if err != nil {
		return fmt.Errorf("get recipe %q: %w", name, err)
	}
	recipe, err := r.load(entry)
	if err != nil {
		return err
	}
	recipe.Scale(scale)
	r.Logger.Debug("extracting ingredients", zap.String("recipe", entry.Path), zap.Float64("scale", scale))
	return r.visit(entry, name, recipe, list, seen, basePath, ignoreReferences)
}

func (r *Resolver) visit(entry *catalog.Entry, label string, recipe *cooklang.Recipe, list *IngredientList, seen *SeenSet, basePath string, ignoreReferences bool) error {
	key := seenKey(entry)
	if seen.Contains(key) {
		return &CircularDependencyError{Chain: append(seen.Chain(), label)}
	}
	seen.Push(key, label)
	defer seen.Pop(key)

	if ignoreReferences {
		list.AddRecipe(recipe, r.Converter, true)
		return nil
	}
	for _, ing := range recipe.Ingredients {
		if !ing.Listed() {
			continue
		}
		if !ing.IsReference() {
			list.AddIngredient(ing.DisplayName(), ing.Quantity, r.Converter)
			continue
		}
		if err := r.reference(entry, ing, recipe.ScaleFactor, list, seen, basePath); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) reference(parent *catalog.Entry, ing cooklang.Ingredient, inherited float64, list *IngredientList, seen *SeenSet, basePath string) error {
	refPath := ing.Reference.Path()
	searchBase := basePath
	if ing.Reference.IsRelative() {
		searchBase = filepath.Dir(parent.Path)
	}
	entry, err := r.Finder.GetRecipe([]string{searchBase}, refPath)
	if err != nil {
		return fmt.Errorf("resolve reference %q in %s: %w", refPath, parent.Name, err)
	}
	recipe, err := r.load(entry)
	if err != nil {
		return err
	}

	factor := inherited
	if q := ing.Quantity; q != nil {
		if !q.Value.IsNumber() {
			return fmt.Errorf("%w: reference %q in %s has quantity %q", ErrInvalidReferenceQuantity, refPath, parent.Name, q.String())
		}
		ratio, err := recipe.TargetFactor(q.Value.Num, q.Unit, r.Converter)
		if err != nil {
			return fmt.Errorf("scale reference %q in %s to %s: %w", refPath, parent.Name, q.String(), err)
		}
		factor = ratio * inherited
	}
	recipe.Scale(factor)

	r.Logger.Debug("resolved reference",
		zap.String("from", parent.Path),
		zap.String("reference", refPath),
		zap.String("path", entry.Path),
		zap.Float64("scale", factor),
	)
	return r.visit(entry, refPath, recipe, list, seen, basePath, r.Shallow)
}

func (r *Resolver) load(entry *catalog.Entry) (*cooklang.Recipe, error) {
	content, err := entry.Content()
	if err != nil {
		return nil, err
	}
	recipe, report := cooklang.Parse(content)
	for _, d := range report.Warnings() {
		r.Logger.Warn("recipe warning", zap.String("recipe", entry.Path), zap.Int("line", d.Line), zap.String("message", d.Message))
	}
	if errs := report.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s: %s", ErrParse, entry.Path, errs[0])
	}
	return recipe, nil
}

func seenKey(entry *catalog.Entry) string {
	if abs, err := filepath.Abs(entry.Path); err == nil {
		return filepath.Clean(abs)
	}
	return filepath.Clean(entry.Path)
}
