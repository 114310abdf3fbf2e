package service

import (
	"go.uber.org/zap"

	"github.com/cooklang/cookcli-sub000/internal/aisle"
	"github.com/cooklang/cookcli-sub000/internal/pantry"
	"github.com/cooklang/cookcli-sub000/internal/shopping"
)

type ShoppingListRequest struct {
	// Specs are "name[:scale]" recipe specs.
	Specs            []string
	BasePath         string
	IgnoreReferences bool
	// ShallowReferences lists references found inside referenced recipes as
	// plain items instead of following them.
	ShallowReferences bool
	Aisle             *aisle.Conf
	// Pantry, when set, removes ingredients already in stock.
	Pantry *pantry.Pantry
}

type ShoppingListResult struct {
	List       *shopping.IngredientList
	Categories []shopping.Category
	// InPantry lists ingredients dropped because the pantry has them.
	InPantry []string
}

// BuildShoppingList aggregates the ingredients of every spec into one list.
// All specs share one seen-set so a cycle through any of them is reported.
func BuildShoppingList(resolver *shopping.Resolver, req ShoppingListRequest) (*ShoppingListResult, error) {
	r := *resolver
	r.Shallow = req.ShallowReferences
	log := nopIfNil(r.Logger)

	list := shopping.NewIngredientList()
	seen := shopping.NewSeenSet()
	for _, spec := range req.Specs {
		if err := r.ExtractIngredients(spec, list, seen, req.BasePath, req.IgnoreReferences); err != nil {
			return nil, err
		}
	}

	out := &ShoppingListResult{List: list}
	if req.Pantry != nil {
		out.List = list.Filter(func(name string) bool {
			if req.Pantry.Has(name) {
				log.Debug("removing ingredient found in pantry", zap.String("ingredient", name))
				out.InPantry = append(out.InPantry, name)
				return false
			}
			return true
		}, r.Converter)
	}
	out.Categories = out.List.Categorize(req.Aisle)
	return out, nil
}
