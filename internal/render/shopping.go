package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cooklang/cookcli-sub000/internal/shopping"
)

type ShoppingOptions struct {
	Format Format
	// Plain skips aisle categories.
	Plain           bool
	IngredientsOnly bool
	Pretty          bool
}

// ShoppingList writes list, grouped by categories unless opts.Plain is set.
// categories must come from list.Categorize.
func ShoppingList(w io.Writer, list *shopping.IngredientList, categories []shopping.Category, opts ShoppingOptions) error {
	if opts.IngredientsOnly {
		names := list.Names()
		if opts.Format == Human {
			for _, name := range names {
				if _, err := fmt.Fprintln(w, name); err != nil {
					return err
				}
			}
			return nil
		}
		return Encode(w, opts.Format, names, opts.Pretty)
	}

	switch opts.Format {
	case JSON:
		if opts.Plain {
			return Encode(w, JSON, list.Items(), opts.Pretty)
		}
		return Encode(w, JSON, nonNilCategories(categories), opts.Pretty)
	case YAML:
		return Encode(w, YAML, nonNilCategories(categories), opts.Pretty)
	case Human:
		return shoppingTable(w, list, categories, opts.Plain)
	default:
		return fmt.Errorf("format %s is not supported for shopping lists", opts.Format)
	}
}

func nonNilCategories(c []shopping.Category) []shopping.Category {
	if c == nil {
		return []shopping.Category{}
	}
	return c
}

func shoppingTable(w io.Writer, list *shopping.IngredientList, categories []shopping.Category, plain bool) error {
	st := newStyles(w)
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	if plain {
		for _, item := range list.Items() {
			fmt.Fprintf(tw, "%s\t%s\n", item.Name, item.Quantity.String())
		}
		return tw.Flush()
	}
	for _, c := range categories {
		fmt.Fprintf(tw, "[%s]\n", st.heading.Render(c.Name))
		for _, item := range c.Items {
			fmt.Fprintf(tw, "%s\t%s\n", item.Name, item.Quantity.String())
		}
	}
	return tw.Flush()
}
