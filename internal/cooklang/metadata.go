package cooklang

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cooklang/cookcli-sub000/internal/quantity"
)

type MetaEntry struct {
	Key   string `json:"key" yaml:"key"`
	Value any    `json:"value" yaml:"value"`
}

// Metadata keeps recipe metadata in the order it was written.
type Metadata struct {
	Entries []MetaEntry
}

func (m *Metadata) Set(key string, value any) {
	for i := range m.Entries {
		if m.Entries[i].Key == key {
			m.Entries[i].Value = value
			return
		}
	}
	m.Entries = append(m.Entries, MetaEntry{Key: key, Value: value})
}

func (m Metadata) Get(key string) (any, bool) {
	for _, e := range m.Entries {
		if strings.EqualFold(e.Key, key) {
			return e.Value, true
		}
	}
	return nil, false
}

// String returns a scalar metadata value as text.
func (m Metadata) String(key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok || v == nil {
		return "", false
	}
	switch val := v.(type) {
	case string:
		return val, true
	case int, int64, float64, bool:
		return fmt.Sprint(val), true
	default:
		return "", false
	}
}

func (m Metadata) Title() string {
	s, _ := m.String("title")
	return s
}

// Tags accepts a YAML list or a comma separated string.
func (m Metadata) Tags() []string {
	v, ok := m.Get("tags")
	if !ok {
		return nil
	}
	var out []string
	switch val := v.(type) {
	case []any:
		for _, t := range val {
			out = append(out, strings.TrimSpace(fmt.Sprint(t)))
		}
	case string:
		for _, t := range strings.Split(val, ",") {
			if t = strings.TrimSpace(t); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}

// Servings reads the first number of the servings entry ("4", 4, "4|8",
// "4 people").
func (m Metadata) Servings() (float64, bool) {
	v, ok := m.Get("servings")
	if !ok {
		return 0, false
	}
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case float64:
		return val, true
	case string:
		s := strings.TrimSpace(val)
		if head, _, found := strings.Cut(s, "|"); found {
			s = head
		}
		if fields := strings.Fields(s); len(fields) > 0 {
			s = fields[0]
		}
		n, err := quantity.ParseNumber(s)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Yield reads the yield entry ("500%g", "500 g", 500).
func (m Metadata) Yield() (quantity.Quantity, bool) {
	v, ok := m.Get("yield")
	if !ok {
		return quantity.Quantity{}, false
	}
	switch val := v.(type) {
	case int:
		return quantity.New(quantity.Number(float64(val)), ""), true
	case float64:
		return quantity.New(quantity.Number(val), ""), true
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return quantity.Quantity{}, false
		}
		if value, unit, found := strings.Cut(s, "%"); found {
			return quantity.New(quantity.ParseValue(value), unit), true
		}
		if i := strings.IndexFunc(s, func(r rune) bool { return r == ' ' }); i > 0 {
			if n, err := strconv.ParseFloat(s[:i], 64); err == nil {
				return quantity.New(quantity.Number(n), s[i+1:]), true
			}
		}
		return quantity.New(quantity.ParseValue(s), ""), true
	default:
		return quantity.Quantity{}, false
	}
}

func (m Metadata) MarshalJSON() ([]byte, error) {
	return marshalOrderedJSON(m.Entries)
}

func (m Metadata) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range m.Entries {
		var value yaml.Node
		if err := value.Encode(e.Value); err != nil {
			return nil, fmt.Errorf("encode metadata %q: %w", e.Key, err)
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: e.Key}, &value)
	}
	return node, nil
}

// parseFrontMatter decodes a YAML mapping keeping key order.
func parseFrontMatter(text string) (Metadata, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return Metadata{}, err
	}
	var meta Metadata
	if len(doc.Content) == 0 {
		return meta, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return meta, fmt.Errorf("front matter is not a mapping")
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		var value any
		if err := root.Content[i+1].Decode(&value); err != nil {
			return meta, fmt.Errorf("decode %q: %w", root.Content[i].Value, err)
		}
		meta.Set(root.Content[i].Value, value)
	}
	return meta, nil
}
