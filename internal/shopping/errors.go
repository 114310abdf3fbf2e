package shopping

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cooklang/cookcli-sub000/internal/catalog"
)

var (
	ErrNotFound                 = catalog.ErrNotFound
	ErrInvalidScale             = errors.New("invalid scale")
	ErrCircularDependency       = errors.New("circular dependency")
	ErrInvalidReferenceQuantity = errors.New("invalid reference quantity")
)

// CircularDependencyError carries the resolution chain that looped, ending
// with the recipe that was requested again.
type CircularDependencyError struct {
	Chain []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency found: %s", strings.Join(e.Chain, " -> "))
}

func (e *CircularDependencyError) Is(target error) bool {
	return target == ErrCircularDependency
}
