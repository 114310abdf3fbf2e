package cooklang

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cooklang/cookcli-sub000/internal/quantity"
)

var (
	ErrUnitMismatch   = errors.New("unit mismatch")
	ErrNoBaseQuantity = errors.New("no base quantity")
)

// ScaleError describes why a recipe could not be scaled to a target amount.
type ScaleError struct {
	Err        error
	TargetUnit string
	BaseUnit   string
}

func (e *ScaleError) Error() string {
	if errors.Is(e.Err, ErrUnitMismatch) {
		return fmt.Sprintf("%v: cannot scale a recipe yielding %q to %q", e.Err, e.BaseUnit, e.TargetUnit)
	}
	return fmt.Sprintf("%v: recipe has no %s to scale against", e.Err, e.baseName())
}

func (e *ScaleError) Unwrap() error { return e.Err }

func (e *ScaleError) baseName() string {
	if isServingsUnit(e.TargetUnit) {
		return "servings"
	}
	return "yield"
}

// Scale multiplies every non-fixed ingredient quantity by factor.
func (r *Recipe) Scale(factor float64) {
	if factor == 1 {
		return
	}
	for i := range r.Ingredients {
		ing := &r.Ingredients[i]
		if ing.Quantity == nil || ing.Fixed {
			continue
		}
		scaled := ing.Quantity.Scale(factor)
		ing.Quantity = &scaled
	}
	r.ScaleFactor *= factor
}

// TargetFactor returns the factor that makes the recipe produce target of
// unit. A missing unit or "servings" targets the servings metadata; any other
// unit targets the yield metadata.
func (r *Recipe) TargetFactor(target float64, unit string, conv quantity.Converter) (float64, error) {
	unit = strings.TrimSpace(unit)
	if isServingsUnit(unit) {
		servings, ok := r.Metadata.Servings()
		if !ok || servings == 0 {
			return 0, &ScaleError{Err: ErrNoBaseQuantity, TargetUnit: unit}
		}
		return target / servings, nil
	}

	yield, ok := r.Metadata.Yield()
	if !ok || !yield.Value.IsNumber() || yield.Value.Num == 0 {
		return 0, &ScaleError{Err: ErrNoBaseQuantity, TargetUnit: unit}
	}
	if yield.Unit == unit {
		return target / yield.Value.Num, nil
	}
	if yield.Unit == "" || conv == nil {
		return 0, &ScaleError{Err: ErrUnitMismatch, TargetUnit: unit, BaseUnit: yield.Unit}
	}
	converted, err := conv.Convert(target, unit, yield.Unit)
	if err != nil {
		return 0, &ScaleError{Err: ErrUnitMismatch, TargetUnit: unit, BaseUnit: yield.Unit}
	}
	return converted / yield.Value.Num, nil
}

// ScaleToTarget scales the recipe to produce target of unit and returns the
// applied factor.
func (r *Recipe) ScaleToTarget(target float64, unit string, conv quantity.Converter) (float64, error) {
	factor, err := r.TargetFactor(target, unit, conv)
	if err != nil {
		return 0, err
	}
	r.Scale(factor)
	return factor, nil
}

func isServingsUnit(unit string) bool {
	switch strings.ToLower(unit) {
	case "", "serving", "servings":
		return true
	default:
		return false
	}
}
