package webrecipe

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cooklang/cookcli-sub000/internal/units"
)

var vulgarFractions = strings.NewReplacer(
	"½", " 1/2", "⅓", " 1/3", "⅔", " 2/3", "¼", " 1/4", "¾", " 3/4",
	"⅛", " 1/8", "⅜", " 3/8", "⅝", " 5/8", "⅞", " 7/8", "⅕", " 1/5",
)

var leadingAmount = regexp.MustCompile(`^((?:\d+\s+)?\d+/\d+|\d+(?:[.,]\d+)?(?:\s*(?:-|–|to)\s*\d+(?:[.,]\d+)?)?)\s*(.*)$`)

// kitchenUnits are measures that do not convert but still read as units.
var kitchenUnits = map[string]bool{
	"clove": true, "cloves": true, "can": true, "cans": true, "pinch": true,
	"pinches": true, "slice": true, "slices": true, "bunch": true, "bunches": true,
	"handful": true, "handfuls": true, "sprig": true, "sprigs": true, "stick": true,
	"sticks": true, "dash": true, "dashes": true, "head": true, "heads": true,
	"leaf": true, "leaves": true, "package": true, "packages": true,
}

// Ingredient is one recipe ingredient line split into Cooklang parts.
type Ingredient struct {
	Name     string
	Quantity string
	Unit     string
	Note     string
}

var conv = units.New()

// ParseIngredient splits a line such as "2 1/2 cups flour, sifted".
func ParseIngredient(line string) Ingredient {
	line = strings.TrimSpace(vulgarFractions.Replace(line))
	line = strings.Join(strings.Fields(line), " ")

	var ing Ingredient
	if m := leadingAmount.FindStringSubmatch(line); m != nil {
		ing.Quantity = normalizeAmount(m[1])
		line = m[2]
		word, rest, _ := strings.Cut(line, " ")
		unit := strings.TrimSuffix(word, ".")
		if rest != "" && (conv.Known(unit) || kitchenUnits[strings.ToLower(unit)]) {
			ing.Unit = unit
			line = rest
		} else if rest != "" {
			two := word + " " + strings.SplitN(rest, " ", 2)[0]
			if conv.Known(two) {
				ing.Unit = two
				line = strings.TrimSpace(strings.TrimPrefix(rest, strings.SplitN(rest, " ", 2)[0]))
			}
		}
		line = strings.TrimPrefix(line, "of ")
	}

	var notes []string
	for {
		open := strings.Index(line, "(")
		end := strings.Index(line, ")")
		if open < 0 || end < open {
			break
		}
		notes = append(notes, strings.TrimSpace(line[open+1:end]))
		line = strings.TrimSpace(line[:open] + " " + line[end+1:])
	}
	if name, note, ok := strings.Cut(line, ","); ok {
		line = name
		notes = append([]string{strings.TrimSpace(note)}, notes...)
	}

	ing.Name = sanitize(line)
	ing.Note = sanitize(strings.Join(notes, "; "))
	return ing
}

// normalizeAmount turns mixed numbers into decimals ("1 1/2" is "1.5") and
// ranges into "a-b".
func normalizeAmount(s string) string {
	if whole, frac, ok := strings.Cut(s, " "); ok && strings.Contains(frac, "/") {
		w, err1 := strconv.Atoi(whole)
		num, den, _ := strings.Cut(frac, "/")
		n, err2 := strconv.Atoi(num)
		d, err3 := strconv.Atoi(den)
		if err1 == nil && err2 == nil && err3 == nil && d != 0 {
			return strconv.FormatFloat(float64(w)+float64(n)/float64(d), 'f', -1, 64)
		}
	}
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.ReplaceAll(s, "–", "-")
	s = strings.ReplaceAll(s, " to ", "-")
	s = strings.ReplaceAll(s, " - ", "-")
	return strings.TrimSpace(s)
}

// sanitize drops characters that carry meaning in Cooklang markup.
func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '@', '#', '~', '{', '}', '(', ')', '%', '|':
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// Cooklang renders the ingredient as a Cooklang component.
func (i Ingredient) Cooklang() string {
	name := i.Name
	if name == "" {
		name = "ingredient"
	}
	var b strings.Builder
	b.WriteString("@" + name + "{")
	if i.Quantity != "" {
		b.WriteString(i.Quantity)
		if i.Unit != "" {
			b.WriteString("%" + i.Unit)
		}
	}
	b.WriteString("}")
	if i.Note != "" {
		b.WriteString("(" + i.Note + ")")
	}
	return b.String()
}

type frontMatter struct {
	Title       string `yaml:"title,omitempty"`
	Source      string `yaml:"source,omitempty"`
	Description string `yaml:"description,omitempty"`
	Servings    string `yaml:"servings,omitempty"`
	PrepTime    string `yaml:"prep time,omitempty"`
	CookTime    string `yaml:"cook time,omitempty"`
	TotalTime   string `yaml:"time,omitempty"`
}

// Cooklang converts the recipe to Cooklang text: metadata front matter, an
// Ingredients section with one component per line, and the method steps.
func (r Recipe) Cooklang() (string, error) {
	fm, err := yaml.Marshal(frontMatter{
		Title:       r.Name,
		Source:      r.URL,
		Description: r.Description,
		Servings:    r.Yield,
		PrepTime:    r.PrepTime,
		CookTime:    r.CookTime,
		TotalTime:   r.TotalTime,
	})
	if err != nil {
		return "", fmt.Errorf("encode front matter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")
	if len(r.Ingredients) > 0 {
		b.WriteString("= Ingredients =\n\n")
		for _, line := range r.Ingredients {
			b.WriteString(ParseIngredient(line).Cooklang())
			b.WriteString("\n\n")
		}
		b.WriteString("= Method =\n\n")
	}
	for _, step := range r.Instructions {
		b.WriteString(strings.NewReplacer("@", "at ", "#", "no. ", "~", "about ").Replace(step))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n", nil
}

// Plain renders the unconverted recipe text.
func (r Recipe) Plain() string {
	return fmt.Sprintf("%s\n\n[Ingredients]\n%s\n\n[Instructions]\n%s\n",
		r.Name, strings.Join(r.Ingredients, "\n"), strings.Join(r.Instructions, "\n"))
}
