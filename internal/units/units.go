package units

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrIncompatible = errors.New("incompatible units")
	ErrUnknownUnit  = errors.New("unknown unit")
)

type Kind string

const (
	KindMass   Kind = "mass"
	KindVolume Kind = "volume"
	KindCount  Kind = "count"
)

type unitDef struct {
	kind       Kind
	toBaseUnit float64
}

var unitTable = map[string]unitDef{
	// mass (base = g)
	"mg": {kind: KindMass, toBaseUnit: 0.001},
	"g":  {kind: KindMass, toBaseUnit: 1},
	"kg": {kind: KindMass, toBaseUnit: 1000},
	"oz": {kind: KindMass, toBaseUnit: 28.349523125},
	"lb": {kind: KindMass, toBaseUnit: 453.59237},

	// volume (base = ml)
	"ml":     {kind: KindVolume, toBaseUnit: 1},
	"l":      {kind: KindVolume, toBaseUnit: 1000},
	"tsp":    {kind: KindVolume, toBaseUnit: 4.92892159375},
	"tbsp":   {kind: KindVolume, toBaseUnit: 14.78676478125},
	"cup":    {kind: KindVolume, toBaseUnit: 236.5882365},
	"fl-oz":  {kind: KindVolume, toBaseUnit: 29.5735295625},
	"pint":   {kind: KindVolume, toBaseUnit: 473.176473},
	"quart":  {kind: KindVolume, toBaseUnit: 946.352946},
	"gallon": {kind: KindVolume, toBaseUnit: 3785.411784},

	// count (base = piece)
	"piece": {kind: KindCount, toBaseUnit: 1},
	"dozen": {kind: KindCount, toBaseUnit: 12},
}

var aliases = map[string]string{
	"milligram":   "mg",
	"milligrams":  "mg",
	"gram":        "g",
	"grams":       "g",
	"gr":          "g",
	"kilogram":    "kg",
	"kilograms":   "kg",
	"kilo":        "kg",
	"kilos":       "kg",
	"ounce":       "oz",
	"ounces":      "oz",
	"lbs":         "lb",
	"pound":       "lb",
	"pounds":      "lb",
	"milliliter":  "ml",
	"milliliters": "ml",
	"millilitre":  "ml",
	"millilitres": "ml",
	"liter":       "l",
	"liters":      "l",
	"litre":       "l",
	"litres":      "l",
	"teaspoon":    "tsp",
	"teaspoons":   "tsp",
	"tablespoon":  "tbsp",
	"tablespoons": "tbsp",
	"tbs":         "tbsp",
	"cups":        "cup",
	"c":           "cup",
	"fl oz":       "fl-oz",
	"floz":        "fl-oz",
	"fluid ounce": "fl-oz",
	"pints":       "pint",
	"pt":          "pint",
	"quarts":      "quart",
	"qt":          "quart",
	"gallons":     "gallon",
	"gal":         "gallon",
	"pieces":      "piece",
	"pc":          "piece",
	"pcs":         "piece",
	"item":        "piece",
	"items":       "piece",
}

// Converter converts amounts between units of the same dimension. The zero
// value is not usable; build one with New.
type Converter struct {
	table   map[string]unitDef
	aliases map[string]string
}

func New() *Converter {
	return &Converter{table: unitTable, aliases: aliases}
}

// Convert expresses value (in from) in the to unit.
func (c *Converter) Convert(value float64, fromUnit, toUnit string) (float64, error) {
	from, ok := c.resolveUnit(fromUnit)
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrUnknownUnit, fromUnit)
	}
	to, ok := c.resolveUnit(toUnit)
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrUnknownUnit, toUnit)
	}
	if from.kind != to.kind {
		return 0, fmt.Errorf("%w: %s (%s) and %s (%s)", ErrIncompatible, fromUnit, from.kind, toUnit, to.kind)
	}
	base := value * from.toBaseUnit
	return base / to.toBaseUnit, nil
}

func (c *Converter) Known(unit string) bool {
	_, ok := c.resolveUnit(unit)
	return ok
}

func (c *Converter) KindOf(unit string) (Kind, bool) {
	def, ok := c.resolveUnit(unit)
	return def.kind, ok
}

// Canonical returns the table symbol for unit, or the trimmed input when the
// unit is unknown.
func (c *Converter) Canonical(unit string) string {
	u := normalize(unit)
	if alias, ok := c.aliases[u]; ok {
		return alias
	}
	if _, ok := c.table[u]; ok {
		return u
	}
	return strings.TrimSpace(unit)
}

func (c *Converter) resolveUnit(unit string) (unitDef, bool) {
	u := normalize(unit)
	if alias, ok := c.aliases[u]; ok {
		u = alias
	}
	def, ok := c.table[u]
	return def, ok
}

func normalize(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	return strings.TrimSuffix(u, ".")
}
