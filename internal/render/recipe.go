package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cooklang/cookcli-sub000/internal/cooklang"
	"github.com/cooklang/cookcli-sub000/internal/quantity"
)

// RecipeView is the structured form of a recipe for JSON and YAML output.
type RecipeView struct {
	Name   string           `json:"name" yaml:"name"`
	Scale  float64          `json:"scale" yaml:"scale"`
	Recipe *cooklang.Recipe `json:"recipe" yaml:"recipe"`
}

func Recipe(w io.Writer, name string, r *cooklang.Recipe, f Format, pretty bool) error {
	switch f {
	case JSON, YAML:
		return Encode(w, f, RecipeView{Name: name, Scale: r.ScaleFactor, Recipe: r}, pretty)
	case Markdown:
		_, err := io.WriteString(w, RecipeMarkdown(name, r))
		return err
	case Human:
		return recipeHuman(w, name, r)
	default:
		return fmt.Errorf("format %s is not supported for recipes", f)
	}
}

func displayTitle(name string, r *cooklang.Recipe) string {
	if t := r.Metadata.Title(); t != "" {
		return t
	}
	return name
}

func recipeHuman(w io.Writer, name string, r *cooklang.Recipe) error {
	st := newStyles(w)
	title := displayTitle(name, r)
	if r.ScaleFactor != 1 && r.ScaleFactor != 0 {
		title += " @ " + quantity.FormatNumber(r.ScaleFactor)
	}
	fmt.Fprintln(w, st.title.Render(" "+title+" "))
	if tags := r.Metadata.Tags(); len(tags) > 0 {
		fmt.Fprintln(w, st.muted.Render("#"+strings.Join(tags, " #")))
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if len(r.Metadata.Entries) > 0 {
		for _, e := range r.Metadata.Entries {
			if strings.EqualFold(e.Key, "title") || strings.EqualFold(e.Key, "tags") {
				continue
			}
			fmt.Fprintf(tw, "%s:\t%v\n", e.Key, metaValue(r, e))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	if listed := listedIngredients(r); len(listed) > 0 {
		fmt.Fprintln(w, "Ingredients:")
		for _, ing := range listed {
			marker := ""
			if ing.Reference != nil {
				marker = st.reference.Render("(recipe: " + ing.Reference.Path() + ")")
			}
			if ing.Modifiers.Has(cooklang.ModOptional) {
				marker = strings.TrimSpace(marker + " (optional)")
			}
			note := ""
			if ing.Note != "" {
				note = "(" + ing.Note + ")"
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", ing.DisplayName(), marker, quantityText(ing.Quantity), note)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	if len(r.Cookware) > 0 {
		fmt.Fprintln(w, "Cookware:")
		for _, c := range r.Cookware {
			if !c.Modifiers.Has(cooklang.ModRef) && !c.Modifiers.Has(cooklang.ModHidden) {
				fmt.Fprintf(tw, "  %s\t%s\n", c.DisplayName(), quantityText(c.Quantity))
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Steps:")
	for _, s := range r.Sections {
		if s.Name != "" {
			fmt.Fprintf(w, "%s:\n", st.heading.Render(s.Name))
		}
		for _, c := range s.Content {
			switch c.Kind {
			case cooklang.ContentStep:
				fmt.Fprintf(w, "%2d. %s\n", c.Step.Number, StepText(r, c.Step))
			case cooklang.ContentText:
				fmt.Fprintf(w, "\n  %s\n\n", c.Text)
			}
		}
	}
	return nil
}

func metaValue(r *cooklang.Recipe, e cooklang.MetaEntry) any {
	if strings.EqualFold(e.Key, "servings") && r.ScaleFactor != 1 {
		if n, ok := r.Metadata.Servings(); ok {
			return quantity.FormatNumber(n * r.ScaleFactor)
		}
	}
	return e.Value
}

func listedIngredients(r *cooklang.Recipe) []cooklang.Ingredient {
	var out []cooklang.Ingredient
	for _, ing := range r.Ingredients {
		if ing.Listed() {
			out = append(out, ing)
		}
	}
	return out
}

func quantityText(q *quantity.Quantity) string {
	if q == nil {
		return ""
	}
	return q.String()
}

// StepText renders a step's items back to readable text.
func StepText(r *cooklang.Recipe, s *cooklang.Step) string {
	var b strings.Builder
	for _, it := range s.Items {
		switch it.Kind {
		case cooklang.ItemText:
			b.WriteString(it.Text)
		case cooklang.ItemIngredient:
			b.WriteString(r.Ingredients[it.Index].DisplayName())
		case cooklang.ItemCookware:
			b.WriteString(r.Cookware[it.Index].DisplayName())
		case cooklang.ItemTimer:
			t := r.Timers[it.Index]
			switch {
			case t.Quantity != nil:
				b.WriteString(t.Quantity.String())
			default:
				b.WriteString(t.Name)
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// RecipeMarkdown renders r as a Markdown document.
func RecipeMarkdown(name string, r *cooklang.Recipe) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", displayTitle(name, r))
	if tags := r.Metadata.Tags(); len(tags) > 0 {
		fmt.Fprintf(&b, "#%s\n\n", strings.Join(tags, " #"))
	}
	if d, ok := r.Metadata.String("description"); ok {
		fmt.Fprintf(&b, "> %s\n\n", d)
	}
	if n, ok := r.Metadata.Servings(); ok {
		fmt.Fprintf(&b, "Servings: %s\n\n", quantity.FormatNumber(n*scaleOrOne(r.ScaleFactor)))
	}

	if listed := listedIngredients(r); len(listed) > 0 {
		fmt.Fprintf(&b, "## Ingredients\n\n")
		for _, ing := range listed {
			line := ing.DisplayName()
			if q := quantityText(ing.Quantity); q != "" {
				line = "*" + q + "* " + line
			}
			if ing.Reference != nil {
				line += " (recipe: " + ing.Reference.Path() + ")"
			}
			if ing.Modifiers.Has(cooklang.ModOptional) {
				line += " (optional)"
			}
			if ing.Note != "" {
				line += " (" + ing.Note + ")"
			}
			fmt.Fprintf(&b, "- %s\n", line)
		}
		b.WriteString("\n")
	}

	if len(r.Cookware) > 0 {
		fmt.Fprintf(&b, "## Cookware\n\n")
		for _, c := range r.Cookware {
			if c.Modifiers.Has(cooklang.ModRef) || c.Modifiers.Has(cooklang.ModHidden) {
				continue
			}
			fmt.Fprintf(&b, "- %s\n", c.DisplayName())
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Steps\n\n")
	for _, s := range r.Sections {
		if s.Name != "" {
			fmt.Fprintf(&b, "### %s\n\n", s.Name)
		}
		for _, c := range s.Content {
			switch c.Kind {
			case cooklang.ContentStep:
				fmt.Fprintf(&b, "%d. %s\n", c.Step.Number, StepText(r, c.Step))
			case cooklang.ContentText:
				fmt.Fprintf(&b, "\n%s\n\n", c.Text)
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func scaleOrOne(f float64) float64 {
	if f == 0 {
		return 1
	}
	return f
}
