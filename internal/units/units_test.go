package units_test

import (
	"errors"
	"math"
	"testing"

	"github.com/cooklang/cookcli-sub000/internal/units"
)

func TestConvertSameDimension(t *testing.T) {
	t.Parallel()
	conv := units.New()
	out, err := conv.Convert(100, "g", "oz")
	if err != nil {
		t.Fatalf("convert mass units: %v", err)
	}
	if math.Abs(out-3.5274) > 0.01 {
		t.Fatalf("expected ~3.53 oz, got %.4f", out)
	}

	out, err = conv.Convert(2, "Tablespoons", "tsp")
	if err != nil {
		t.Fatalf("convert volume aliases: %v", err)
	}
	if math.Abs(out-6) > 1e-9 {
		t.Fatalf("expected 6 tsp, got %.4f", out)
	}
}

func TestConvertAcrossDimensionsIsIncompatible(t *testing.T) {
	t.Parallel()
	_, err := units.New().Convert(2, "cup", "g")
	if !errors.Is(err, units.ErrIncompatible) {
		t.Fatalf("expected ErrIncompatible, got %v", err)
	}
}

func TestConvertUnknownUnit(t *testing.T) {
	t.Parallel()
	_, err := units.New().Convert(2, "cloves", "g")
	if !errors.Is(err, units.ErrUnknownUnit) {
		t.Fatalf("expected ErrUnknownUnit, got %v", err)
	}
}

func TestKnownAndCanonical(t *testing.T) {
	t.Parallel()
	conv := units.New()
	if !conv.Known("KG") || !conv.Known(" litres ") {
		t.Fatalf("expected case and whitespace insensitive lookup")
	}
	if conv.Known("pinch") {
		t.Fatalf("did not expect pinch to be known")
	}
	if got := conv.Canonical("Grams"); got != "g" {
		t.Fatalf("expected canonical g, got %q", got)
	}
	if got := conv.Canonical("pinch"); got != "pinch" {
		t.Fatalf("expected unknown unit to pass through, got %q", got)
	}
	kind, ok := conv.KindOf("dozen")
	if !ok || kind != units.KindCount {
		t.Fatalf("expected dozen to be a count unit, got %q %v", kind, ok)
	}
}
