package shopping

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRecipeSpec splits "<name>[:<scale>]" on its last colon. A spec without
// a colon has scale 1. Any number parses, zero and negatives included.
func ParseRecipeSpec(spec string) (string, float64, error) {
	idx := strings.LastIndex(spec, ":")
	if idx < 0 {
		return spec, 1, nil
	}
	name, raw := spec[:idx], spec[idx+1:]
	scale, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", 0, fmt.Errorf("%w %q in %q", ErrInvalidScale, raw, spec)
	}
	return name, scale, nil
}

// FormatRecipeSpec is the inverse of ParseRecipeSpec.
func FormatRecipeSpec(name string, scale float64) string {
	if scale == 1 {
		return name
	}
	return name + ":" + strconv.FormatFloat(scale, 'f', -1, 64)
}
