package quantity

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIncompatible reports that two quantities cannot be summed. Aggregation
// treats it as "keep both", so it never surfaces to users.
var ErrIncompatible = errors.New("incompatible quantities")

// Converter converts a numeric amount between two unit names.
type Converter interface {
	Convert(value float64, from, to string) (float64, error)
}

// Quantity is a value with an optional unit. An empty Unit means unit-less.
type Quantity struct {
	Value Value  `json:"value" yaml:"value"`
	Unit  string `json:"unit,omitempty" yaml:"unit,omitempty"`
}

func New(v Value, unit string) Quantity {
	return Quantity{Value: v, Unit: strings.TrimSpace(unit)}
}

func (q Quantity) HasUnit() bool { return q.Unit != "" }

func (q Quantity) Scale(factor float64) Quantity {
	return Quantity{Value: q.Value.Scale(factor), Unit: q.Unit}
}

func (q Quantity) String() string {
	if q.Unit == "" {
		return q.Value.String()
	}
	return q.Value.String() + " " + q.Unit
}

// Add sums a and b in a's unit. Text never sums; differing units sum only when
// conv can express b in a's unit.
func Add(a, b Quantity, conv Converter) (Quantity, error) {
	if a.Value.IsText() || b.Value.IsText() {
		return Quantity{}, ErrIncompatible
	}
	if a.Unit != b.Unit {
		if a.Unit == "" || b.Unit == "" || conv == nil {
			return Quantity{}, ErrIncompatible
		}
		converted, err := convertValue(b.Value, b.Unit, a.Unit, conv)
		if err != nil {
			return Quantity{}, fmt.Errorf("%w: %v", ErrIncompatible, err)
		}
		b = Quantity{Value: converted, Unit: a.Unit}
	}
	return Quantity{Value: addValues(a.Value, b.Value), Unit: a.Unit}, nil
}

func convertValue(v Value, from, to string, conv Converter) (Value, error) {
	switch v.Kind {
	case KindNumber:
		n, err := conv.Convert(v.Num, from, to)
		if err != nil {
			return Value{}, err
		}
		return Number(n), nil
	case KindRange:
		start, err := conv.Convert(v.Start, from, to)
		if err != nil {
			return Value{}, err
		}
		end, err := conv.Convert(v.End, from, to)
		if err != nil {
			return Value{}, err
		}
		return Range(start, end), nil
	default:
		return Value{}, ErrIncompatible
	}
}

func addValues(a, b Value) Value {
	if a.Kind == KindNumber && b.Kind == KindNumber {
		return Number(a.Num + b.Num)
	}
	aStart, aEnd := bounds(a)
	bStart, bEnd := bounds(b)
	return Range(aStart+bStart, aEnd+bEnd)
}

func bounds(v Value) (float64, float64) {
	if v.Kind == KindRange {
		return v.Start, v.End
	}
	return v.Num, v.Num
}
