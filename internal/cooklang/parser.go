package cooklang

import (
	"strings"
	"unicode"

	"github.com/cooklang/cookcli-sub000/internal/quantity"
)

// Parse reads Cooklang text. It never fails: problems are recorded in the
// report and the offending markup is kept as plain text.
func Parse(text string) (*Recipe, *Report) {
	p := &parser{
		recipe:  &Recipe{ScaleFactor: 1},
		report:  &Report{},
		section: -1,
	}
	p.parse(text)
	return p.recipe, p.report
}

type parser struct {
	recipe *Recipe
	report *Report

	section   int
	stepLines []string
	stepLine  int
	stepCount int
}

func (p *parser) parse(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	start := p.frontMatter(lines)
	lines = stripBlockComments(lines)

	for i := start; i < len(lines); i++ {
		lineNo := i + 1
		line := lines[i]
		if idx := strings.Index(line, "--"); idx >= 0 {
			line = line[:idx]
		}
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			p.flushStep()
		case strings.HasPrefix(trimmed, ">>"):
			p.flushStep()
			p.legacyMetadata(strings.TrimSpace(trimmed[2:]), lineNo)
		case strings.HasPrefix(trimmed, "="):
			p.flushStep()
			name := strings.TrimSpace(strings.Trim(trimmed, "="))
			p.recipe.Sections = append(p.recipe.Sections, Section{Name: name})
			p.section = len(p.recipe.Sections) - 1
		case strings.HasPrefix(trimmed, ">"):
			p.flushStep()
			p.currentSection().Content = append(p.currentSection().Content, Content{
				Kind: ContentText,
				Text: strings.TrimSpace(trimmed[1:]),
			})
		default:
			if len(p.stepLines) == 0 {
				p.stepLine = lineNo
			}
			p.stepLines = append(p.stepLines, trimmed)
		}
	}
	p.flushStep()
}

// frontMatter consumes a leading "---" YAML block and returns the index of
// the first body line.
func (p *parser) frontMatter(lines []string) int {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return 0
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != "---" {
			continue
		}
		meta, err := parseFrontMatter(strings.Join(lines[1:i], "\n"))
		if err != nil {
			p.report.warnf(1, "invalid front matter: %v", err)
			return i + 1
		}
		for _, e := range meta.Entries {
			p.recipe.Metadata.Set(e.Key, e.Value)
		}
		return i + 1
	}
	p.report.warnf(1, "unterminated front matter")
	return 0
}

func (p *parser) legacyMetadata(body string, line int) {
	key, value, ok := strings.Cut(body, ":")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		p.report.warnf(line, "invalid metadata line %q", body)
		return
	}
	p.recipe.Metadata.Set(key, strings.TrimSpace(value))
}

// stripBlockComments blanks "[- ... -]" spans, keeping line numbering.
func stripBlockComments(lines []string) []string {
	out := make([]string, len(lines))
	inComment := false
	for i, line := range lines {
		var b strings.Builder
		rest := line
		for rest != "" {
			if inComment {
				end := strings.Index(rest, "-]")
				if end < 0 {
					rest = ""
					break
				}
				rest = rest[end+2:]
				inComment = false
				continue
			}
			open := strings.Index(rest, "[-")
			if open < 0 {
				b.WriteString(rest)
				break
			}
			b.WriteString(rest[:open])
			rest = rest[open+2:]
			inComment = true
		}
		out[i] = b.String()
	}
	return out
}

func (p *parser) currentSection() *Section {
	if p.section < 0 {
		p.recipe.Sections = append(p.recipe.Sections, Section{})
		p.section = len(p.recipe.Sections) - 1
	}
	return &p.recipe.Sections[p.section]
}

func (p *parser) flushStep() {
	if len(p.stepLines) == 0 {
		return
	}
	text := strings.Join(p.stepLines, " ")
	p.stepLines = nil

	items := p.parseStep(text, p.stepLine)
	if len(items) == 0 {
		return
	}
	p.stepCount++
	section := p.currentSection()
	section.Content = append(section.Content, Content{
		Kind: ContentStep,
		Step: &Step{Number: p.stepCount, Items: items},
	})
}

func (p *parser) parseStep(text string, line int) []Item {
	rs := []rune(text)
	var items []Item
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			items = append(items, Item{Kind: ItemText, Text: buf.String()})
			buf.Reset()
		}
	}

	for i := 0; i < len(rs); {
		if rs[i] == '@' || rs[i] == '#' || rs[i] == '~' {
			if item, next, ok := p.component(rs, i, line); ok {
				flush()
				items = append(items, item)
				i = next
				continue
			}
		}
		buf.WriteRune(rs[i])
		i++
	}
	flush()
	return items
}

type rawComponent struct {
	modifiers Modifiers
	name      string
	body      *string
	note      string
}

// component parses the component starting at rs[start]. ok is false when the
// sigil turns out to be plain text.
func (p *parser) component(rs []rune, start int, line int) (Item, int, bool) {
	sigil := rs[start]
	i := start + 1
	var raw rawComponent

	if sigil == '@' || sigil == '#' {
		for ; i < len(rs); i++ {
			mod, ok := modifierFor(rs[i])
			if !ok {
				break
			}
			raw.modifiers |= mod
		}
	}
	nameStart := i
	nameEnd, braceAt := scanName(rs, i)
	raw.name = strings.TrimSpace(string(rs[nameStart:nameEnd]))
	i = nameEnd

	if braceAt >= 0 {
		closeAt := closingBrace(rs, braceAt+1)
		if closeAt < 0 {
			p.report.warnf(line, "unclosed '{' after %q", string(sigil)+raw.name)
			if raw.name == "" {
				return Item{}, 0, false
			}
		} else {
			body := string(rs[braceAt+1 : closeAt])
			raw.body = &body
			i = closeAt + 1
		}
	}
	if raw.name == "" && (sigil != '~' || raw.body == nil) {
		return Item{}, 0, false
	}
	if sigil != '~' && i < len(rs) && rs[i] == '(' {
		if closeAt := indexRune(rs, i+1, ')'); closeAt >= 0 {
			raw.note = strings.TrimSpace(string(rs[i+1 : closeAt]))
			i = closeAt + 1
		}
	}

	switch sigil {
	case '@':
		return Item{Kind: ItemIngredient, Index: p.addIngredient(raw, line)}, i, true
	case '#':
		return Item{Kind: ItemCookware, Index: p.addCookware(raw)}, i, true
	default:
		return Item{Kind: ItemTimer, Index: p.addTimer(raw, line)}, i, true
	}
}

// scanName finds where a component name ends. A multi-word name runs up to a
// '{' when no other component or brace starts before it; otherwise the name is
// a single word. braceAt is the index of the opening brace or -1.
func scanName(rs []rune, start int) (end int, braceAt int) {
	if brace := indexRune(rs, start, '{'); brace >= 0 {
		candidate := rs[start:brace]
		if !containsAny(candidate, "@#~}(),;:!?") && !strings.Contains(string(candidate), ". ") {
			return brace, brace
		}
	}
	path := hasPrefix(rs[start:], "./") || hasPrefix(rs[start:], "../")
	i := start
	for i < len(rs) && isNameRune(rs[i], path) {
		i++
	}
	end = i
	for end > start && (rs[end-1] == '.' || rs[end-1] == '-') {
		end--
	}
	if end < len(rs) && end == i && rs[end] == '{' {
		return end, end
	}
	return end, -1
}

func modifierFor(r rune) (Modifiers, bool) {
	switch r {
	case '&':
		return ModRef, true
	case '-':
		return ModHidden, true
	case '?':
		return ModOptional, true
	case '+':
		return ModNew, true
	default:
		return 0, false
	}
}

func isNameRune(r rune, path bool) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' {
		return true
	}
	return path && (r == '.' || r == '/')
}

func (p *parser) addIngredient(raw rawComponent, line int) int {
	name, alias, _ := strings.Cut(raw.name, "|")
	ing := Ingredient{
		Name:      strings.TrimSpace(name),
		Alias:     strings.TrimSpace(alias),
		Note:      raw.note,
		Modifiers: raw.modifiers,
	}
	if raw.body != nil {
		ing.Quantity, ing.Fixed = parseQuantity(*raw.body)
	}
	if ref, ok := parseReference(ing.Name); ok {
		if ref.Name == "" {
			p.report.errorf(line, "recipe reference %q has no name", ing.Name)
		} else {
			ing.Reference = &ref
			ing.Modifiers |= ModRecipe
			ing.Name = ref.Name
		}
	}
	p.recipe.Ingredients = append(p.recipe.Ingredients, ing)
	return len(p.recipe.Ingredients) - 1
}

func (p *parser) addCookware(raw rawComponent) int {
	name, alias, _ := strings.Cut(raw.name, "|")
	cw := Cookware{
		Name:      strings.TrimSpace(name),
		Alias:     strings.TrimSpace(alias),
		Note:      raw.note,
		Modifiers: raw.modifiers,
	}
	if raw.body != nil {
		cw.Quantity, _ = parseQuantity(*raw.body)
	}
	p.recipe.Cookware = append(p.recipe.Cookware, cw)
	return len(p.recipe.Cookware) - 1
}

func (p *parser) addTimer(raw rawComponent, line int) int {
	t := Timer{Name: raw.name}
	if raw.body != nil {
		t.Quantity, _ = parseQuantity(*raw.body)
	}
	if t.Quantity == nil {
		p.report.warnf(line, "timer %q has no duration", raw.name)
	}
	p.recipe.Timers = append(p.recipe.Timers, t)
	return len(p.recipe.Timers) - 1
}

// parseReference splits "./dir/name" style ingredient names.
func parseReference(name string) (Reference, bool) {
	if !strings.HasPrefix(name, "./") && !strings.HasPrefix(name, "../") {
		return Reference{}, false
	}
	parts := strings.Split(name, "/")
	return Reference{
		Components: parts[:len(parts)-1],
		Name:       strings.TrimSpace(parts[len(parts)-1]),
	}, true
}

// parseQuantity reads "value%unit". A trailing "*" or leading "=" fixes the
// quantity so scaling leaves it alone.
func parseQuantity(body string) (*quantity.Quantity, bool) {
	s := strings.TrimSpace(body)
	fixed := false
	if strings.HasSuffix(s, "*") {
		fixed = true
		s = strings.TrimSpace(strings.TrimSuffix(s, "*"))
	}
	if strings.HasPrefix(s, "=") {
		fixed = true
		s = strings.TrimSpace(strings.TrimPrefix(s, "="))
	}
	if s == "" {
		return nil, fixed
	}
	value, unit, _ := strings.Cut(s, "%")
	if strings.TrimSpace(value) == "" {
		return nil, fixed
	}
	q := quantity.New(quantity.ParseValue(value), unit)
	return &q, fixed
}

// closingBrace finds the '}' closing a brace opened before from. Another '{'
// first means the brace was never closed.
func closingBrace(rs []rune, from int) int {
	for i := from; i < len(rs); i++ {
		switch rs[i] {
		case '}':
			return i
		case '{':
			return -1
		}
	}
	return -1
}

func indexRune(rs []rune, from int, r rune) int {
	for i := from; i < len(rs); i++ {
		if rs[i] == r {
			return i
		}
	}
	return -1
}

func containsAny(rs []rune, chars string) bool {
	for _, r := range rs {
		if strings.ContainsRune(chars, r) {
			return true
		}
	}
	return false
}

func hasPrefix(rs []rune, prefix string) bool {
	return strings.HasPrefix(string(rs), prefix)
}
