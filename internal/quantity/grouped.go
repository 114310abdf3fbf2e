package quantity

import (
	"encoding/json"
	"strings"
)

// Grouped accumulates the quantities of one ingredient. Entries that can be
// summed are merged; the rest are kept side by side in first-seen order.
type Grouped struct {
	entries []Quantity
}

// Add merges q into the first entry it is compatible with, or appends it.
func (g *Grouped) Add(q Quantity, conv Converter) {
	for i, existing := range g.entries {
		sum, err := Add(existing, q, conv)
		if err != nil {
			continue
		}
		g.entries[i] = sum
		return
	}
	g.entries = append(g.entries, q)
}

func (g *Grouped) Merge(other *Grouped, conv Converter) {
	if other == nil {
		return
	}
	for _, q := range other.entries {
		g.Add(q, conv)
	}
}

func (g *Grouped) IsEmpty() bool { return g == nil || len(g.entries) == 0 }

func (g *Grouped) Len() int {
	if g == nil {
		return 0
	}
	return len(g.entries)
}

// Entries returns a copy of the accumulated quantities.
func (g *Grouped) Entries() []Quantity {
	if g == nil {
		return nil
	}
	out := make([]Quantity, len(g.entries))
	copy(out, g.entries)
	return out
}

type TotalKind int

const (
	TotalNone TotalKind = iota
	TotalSingle
	TotalMany
)

type Total struct {
	Kind       TotalKind
	Quantities []Quantity
}

// Single returns the only quantity of a TotalSingle.
func (t Total) Single() (Quantity, bool) {
	if t.Kind != TotalSingle {
		return Quantity{}, false
	}
	return t.Quantities[0], true
}

func (t Total) String() string {
	parts := make([]string, 0, len(t.Quantities))
	for _, q := range t.Quantities {
		parts = append(parts, q.String())
	}
	return strings.Join(parts, ", ")
}

func (g *Grouped) Total() Total {
	entries := g.Entries()
	switch len(entries) {
	case 0:
		return Total{Kind: TotalNone}
	case 1:
		return Total{Kind: TotalSingle, Quantities: entries}
	default:
		return Total{Kind: TotalMany, Quantities: entries}
	}
}

func (g *Grouped) String() string {
	return g.Total().String()
}

func (g *Grouped) MarshalJSON() ([]byte, error) {
	entries := g.Entries()
	if entries == nil {
		entries = []Quantity{}
	}
	return json.Marshal(entries)
}

func (g *Grouped) MarshalYAML() (any, error) {
	entries := g.Entries()
	if entries == nil {
		entries = []Quantity{}
	}
	return entries, nil
}
