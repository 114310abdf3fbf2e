package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/cooklang/cookcli-sub000/internal/pantry"
	"github.com/cooklang/cookcli-sub000/internal/service"
)

type pantryItems[T any] struct {
	Items []T `json:"items" yaml:"items"`
}

// Depleted writes low stock items grouped by section.
func Depleted(w io.Writer, items []pantry.DepletedItem, f Format, pretty bool) error {
	if items == nil {
		items = []pantry.DepletedItem{}
	}
	switch f {
	case JSON, YAML:
		return Encode(w, f, pantryItems[pantry.DepletedItem]{Items: items}, pretty)
	case Human:
	default:
		return fmt.Errorf("format %s is not supported for pantry reports", f)
	}

	st := newStyles(w)
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "All pantry items are well stocked.")
		return err
	}
	mixed := false
	for _, it := range items {
		if !it.IsLow {
			mixed = true
		}
	}
	fmt.Fprintln(w, st.title.Render("Depleted or Low Stock Items:"))
	section := ""
	for _, it := range items {
		if it.Section != section {
			section = it.Section
			fmt.Fprintf(w, "\n%s:\n", st.heading.Render(strings.ToUpper(section)))
		}
		line := "  • " + it.Name
		if it.Quantity != "" {
			line += " (" + it.Quantity + ")"
		}
		if it.LowThreshold != "" {
			line += st.muted.Render(" [low when < " + it.LowThreshold + "]")
		}
		if mixed && it.IsLow {
			line += " " + st.warn.Render("LOW")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Expiring writes items by days left, soonest first.
func Expiring(w io.Writer, items []pantry.ExpiringItem, days int, f Format, pretty bool) error {
	if items == nil {
		items = []pantry.ExpiringItem{}
	}
	switch f {
	case JSON, YAML:
		return Encode(w, f, pantryItems[pantry.ExpiringItem]{Items: items}, pretty)
	case Human:
	default:
		return fmt.Errorf("format %s is not supported for pantry reports", f)
	}

	st := newStyles(w)
	if len(items) == 0 {
		_, err := fmt.Fprintf(w, "No items expiring within %d days.\n", days)
		return err
	}
	fmt.Fprintln(w, st.title.Render(fmt.Sprintf("Items expiring within %d days:", days)))
	fmt.Fprintln(w)
	for _, it := range items {
		status := it.Status
		if it.DaysLeft != nil && *it.DaysLeft <= 0 {
			status = st.warn.Render(status)
		}
		line := fmt.Sprintf("  • %s (%s)", it.Name, it.Section)
		if it.ExpireDate != "" {
			line += " - " + it.ExpireDate
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", line, status); err != nil {
			return err
		}
	}
	return nil
}

// PantryRecipes writes the recipes that can be cooked from the pantry.
func PantryRecipes(w io.Writer, res *service.PantryRecipesResult, threshold int, f Format, pretty bool) error {
	switch f {
	case JSON, YAML:
		return Encode(w, f, res, pretty)
	case Human:
	default:
		return fmt.Errorf("format %s is not supported for pantry reports", f)
	}

	st := newStyles(w)
	if len(res.FullMatches) == 0 && len(res.PartialMatches) == 0 {
		_, err := fmt.Fprintln(w, "No recipes can be made with the current pantry.")
		return err
	}
	if len(res.FullMatches) > 0 {
		fmt.Fprintln(w, st.title.Render("Recipes you can make:"))
		for _, name := range res.FullMatches {
			fmt.Fprintf(w, "  • %s\n", name)
		}
	}
	if len(res.PartialMatches) > 0 {
		if len(res.FullMatches) > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, st.title.Render(fmt.Sprintf("Partial matches (at least %d%%):", threshold)))
		for _, m := range res.PartialMatches {
			fmt.Fprintf(w, "  • %s (%d%%) %s\n", m.Recipe, m.Percentage,
				st.muted.Render("missing: "+strings.Join(m.MissingIngredients, ", ")))
		}
	}
	return nil
}
