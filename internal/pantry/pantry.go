// Package pantry reads and edits pantry inventory files (TOML):
//
//	[dairy]
//	milk = { quantity = "1%l", expire = "2024-05-01", low = "500%ml" }
//	water = "always available"
package pantry

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/cases"
)

type Item struct {
	Name     string `json:"name" yaml:"name"`
	Section  string `json:"section" yaml:"section"`
	Quantity string `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Low      string `json:"low,omitempty" yaml:"low,omitempty"`
	Bought   string `json:"bought,omitempty" yaml:"bought,omitempty"`
	Expire   string `json:"expire,omitempty" yaml:"expire,omitempty"`
	// Note holds the value of a plain `name = "text"` entry.
	Note string `json:"note,omitempty" yaml:"note,omitempty"`
}

func (i Item) simple() bool {
	return i.Quantity == "" && i.Low == "" && i.Bought == "" && i.Expire == ""
}

type Section struct {
	Name  string `json:"name" yaml:"name"`
	Items []Item `json:"items" yaml:"items"`
}

// Pantry keeps sections and their items sorted by name.
type Pantry struct {
	Sections []Section `json:"sections" yaml:"sections"`
}

type Warning struct {
	Section string
	Item    string
	Message string
}

func (w Warning) String() string {
	if w.Item == "" {
		return fmt.Sprintf("[%s]: %s", w.Section, w.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", w.Section, w.Item, w.Message)
}

// Parse decodes a pantry file. TOML syntax errors fail; entries of an
// unexpected shape are skipped with a warning.
func Parse(data []byte) (*Pantry, []Warning, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("parse pantry: %w", err)
	}

	p := &Pantry{}
	var warnings []Warning
	for sectionName, value := range raw {
		table, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, Warning{Section: sectionName, Message: "expected a table of items"})
			continue
		}
		section := Section{Name: sectionName}
		for name, v := range table {
			item, warns := decodeItem(sectionName, name, v)
			warnings = append(warnings, warns...)
			if item != nil {
				section.Items = append(section.Items, *item)
			}
		}
		p.Sections = append(p.Sections, section)
	}
	p.sort()
	sort.Slice(warnings, func(i, j int) bool { return warnings[i].String() < warnings[j].String() })
	return p, warnings, nil
}

func decodeItem(section, name string, v any) (*Item, []Warning) {
	item := &Item{Name: name, Section: section}
	switch val := v.(type) {
	case string:
		item.Note = val
		return item, nil
	case int64, float64:
		item.Quantity = fmt.Sprint(val)
		return item, nil
	case map[string]any:
		var warnings []Warning
		for key, attr := range val {
			text := fmt.Sprint(attr)
			switch key {
			case "quantity":
				item.Quantity = text
			case "low":
				item.Low = text
			case "bought":
				item.Bought = text
			case "expire":
				item.Expire = text
			default:
				warnings = append(warnings, Warning{Section: section, Item: name, Message: fmt.Sprintf("unknown attribute %q", key)})
			}
		}
		return item, warnings
	default:
		return nil, []Warning{{Section: section, Item: name, Message: fmt.Sprintf("unsupported value %v", v)}}
	}
}

func Load(path string) (*Pantry, []Warning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read pantry %s: %w", path, err)
	}
	return Parse(data)
}

type attrs struct {
	Quantity string `toml:"quantity,omitempty"`
	Low      string `toml:"low,omitempty"`
	Bought   string `toml:"bought,omitempty"`
	Expire   string `toml:"expire,omitempty"`
}

// Marshal renders the pantry with one inline table per item.
func (p *Pantry) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	for i, section := range p.Sections {
		if i > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(&buf, "[%s]\n", tomlKey(section.Name))
		for _, item := range section.Items {
			var value any = attrs{Quantity: item.Quantity, Low: item.Low, Bought: item.Bought, Expire: item.Expire}
			if item.simple() {
				value = item.Note
			}
			enc := toml.NewEncoder(&buf)
			enc.SetTablesInline(true)
			if err := enc.Encode(map[string]any{item.Name: value}); err != nil {
				return nil, fmt.Errorf("encode pantry item %s: %w", item.Name, err)
			}
		}
	}
	return buf.Bytes(), nil
}

// Save writes the pantry atomically.
func (p *Pantry) Save(path string) error {
	data, err := p.Marshal()
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".pantry-*.conf")
	if err != nil {
		return fmt.Errorf("create temp pantry file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write pantry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close pantry: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace pantry %s: %w", path, err)
	}
	return nil
}

func tomlKey(key string) string {
	for _, r := range key {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' || r == '-') {
			return fmt.Sprintf("%q", key)
		}
	}
	if key == "" {
		return `""`
	}
	return key
}

func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// Has reports whether any section lists name, ignoring case.
func (p *Pantry) Has(name string) bool {
	_, ok := p.Find(name)
	return ok
}

func (p *Pantry) Find(name string) (Item, bool) {
	if p == nil {
		return Item{}, false
	}
	key := fold(name)
	for _, s := range p.Sections {
		for _, item := range s.Items {
			if fold(item.Name) == key {
				return item, true
			}
		}
	}
	return Item{}, false
}

// Items lists every item, section by section.
func (p *Pantry) Items() []Item {
	var out []Item
	for _, s := range p.Sections {
		out = append(out, s.Items...)
	}
	return out
}

// Set adds item to section, replacing an item of the same name there.
func (p *Pantry) Set(section string, item Item) {
	item.Section = section
	for i := range p.Sections {
		if p.Sections[i].Name != section {
			continue
		}
		for j := range p.Sections[i].Items {
			if fold(p.Sections[i].Items[j].Name) == fold(item.Name) {
				p.Sections[i].Items[j] = item
				p.sort()
				return
			}
		}
		p.Sections[i].Items = append(p.Sections[i].Items, item)
		p.sort()
		return
	}
	p.Sections = append(p.Sections, Section{Name: section, Items: []Item{item}})
	p.sort()
}

// Remove deletes name from section and reports whether it was there. A
// section left empty is dropped.
func (p *Pantry) Remove(section, name string) bool {
	for i := range p.Sections {
		if p.Sections[i].Name != section {
			continue
		}
		items := p.Sections[i].Items
		for j := range items {
			if fold(items[j].Name) == fold(name) {
				p.Sections[i].Items = append(items[:j], items[j+1:]...)
				if len(p.Sections[i].Items) == 0 {
					p.Sections = append(p.Sections[:i], p.Sections[i+1:]...)
				}
				return true
			}
		}
	}
	return false
}

func (p *Pantry) sort() {
	sort.Slice(p.Sections, func(i, j int) bool { return p.Sections[i].Name < p.Sections[j].Name })
	for _, s := range p.Sections {
		items := s.Items
		sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	}
}
