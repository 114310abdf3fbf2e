package shopping

import "github.com/cooklang/cookcli-sub000/internal/aisle"

// OtherCategory collects ingredients no aisle category lists.
const OtherCategory = "other"

type Category struct {
	Name  string `json:"category" yaml:"category"`
	Items []Item `json:"items" yaml:"items"`
}

// Categorize groups the list by aisle category. Categories appear in the
// order they first receive an item; within a category items keep list order.
// A nil conf puts everything in OtherCategory.
func (l *IngredientList) Categorize(conf *aisle.Conf) []Category {
	var out []Category
	index := map[string]int{}
	for _, item := range l.Items() {
		name, ok := conf.CategoryOf(item.Name)
		if !ok {
			name = OtherCategory
		}
		i, seen := index[name]
		if !seen {
			out = append(out, Category{Name: name})
			i = len(out) - 1
			index[name] = i
		}
		out[i].Items = append(out[i].Items, item)
	}
	return out
}
