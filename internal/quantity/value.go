// Package quantity models ingredient amounts and their aggregation.
package quantity

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Kind int

const (
	KindNumber Kind = iota
	KindRange
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindRange:
		return "range"
	default:
		return "text"
	}
}

// Value is an amount: a number, an inclusive range, or free text such as
// "a pinch".
type Value struct {
	Kind  Kind
	Num   float64
	Start float64
	End   float64
	Text  string
}

func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }

func Range(start, end float64) Value { return Value{Kind: KindRange, Start: start, End: end} }

func Text(s string) Value { return Value{Kind: KindText, Text: s} }

func (v Value) IsNumber() bool { return v.Kind == KindNumber }

func (v Value) IsText() bool { return v.Kind == KindText }

// Scale multiplies numeric values by factor. Text is returned unchanged.
func (v Value) Scale(factor float64) Value {
	switch v.Kind {
	case KindNumber:
		return Number(v.Num * factor)
	case KindRange:
		return Range(v.Start*factor, v.End*factor)
	default:
		return v
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return FormatNumber(v.Num)
	case KindRange:
		return FormatNumber(v.Start) + " - " + FormatNumber(v.End)
	default:
		return v.Text
	}
}

type wireRange struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

type wireValue struct {
	Type  string `json:"type" yaml:"type"`
	Value any    `json:"value" yaml:"value"`
}

func (v Value) wire() wireValue {
	switch v.Kind {
	case KindNumber:
		return wireValue{Type: "number", Value: v.Num}
	case KindRange:
		return wireValue{Type: "range", Value: wireRange{Start: v.Start, End: v.End}}
	default:
		return wireValue{Type: "text", Value: v.Text}
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.wire())
}

func (v Value) MarshalYAML() (any, error) {
	return v.wire(), nil
}

var fractions = []struct {
	value float64
	text  string
}{
	{1.0 / 8, "1/8"},
	{1.0 / 4, "1/4"},
	{1.0 / 3, "1/3"},
	{3.0 / 8, "3/8"},
	{1.0 / 2, "1/2"},
	{5.0 / 8, "5/8"},
	{2.0 / 3, "2/3"},
	{3.0 / 4, "3/4"},
	{7.0 / 8, "7/8"},
}

const fractionEpsilon = 0.0001

// FormatNumber renders n for humans: common fractions below one, no decimal
// point for whole numbers, otherwise at most three decimals.
func FormatNumber(n float64) string {
	if n > 0 && n < 1 {
		for _, f := range fractions {
			if math.Abs(n-f.value) < fractionEpsilon {
				return f.text
			}
		}
	}
	rounded := math.Round(n*1e6) / 1e6
	if rounded == 0 {
		return "0"
	}
	if rounded == math.Trunc(rounded) {
		return strconv.FormatFloat(rounded, 'f', 0, 64)
	}
	s := strconv.FormatFloat(rounded, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// ParseNumber reads integers, decimals, fractions ("1/2") and mixed numbers
// ("1 1/2").
func ParseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n, nil
	}
	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		return parseFraction(fields[0])
	case 2:
		whole, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number %q", s)
		}
		frac, err := parseFraction(fields[1])
		if err != nil {
			return 0, fmt.Errorf("invalid number %q", s)
		}
		return whole + frac, nil
	default:
		return 0, fmt.Errorf("invalid number %q", s)
	}
}

func parseFraction(s string) (float64, error) {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
	if err != nil || d == 0 {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return n / d, nil
}

// ParseValue reads a number, a range ("1-2") or falls back to text.
func ParseValue(s string) Value {
	s = strings.TrimSpace(s)
	if n, err := ParseNumber(s); err == nil {
		return Number(n)
	}
	if start, end, ok := strings.Cut(s, "-"); ok {
		a, errA := ParseNumber(start)
		b, errB := ParseNumber(end)
		if errA == nil && errB == nil {
			return Range(a, b)
		}
	}
	return Text(s)
}
