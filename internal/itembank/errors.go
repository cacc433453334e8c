package itembank

import (
	"fmt"
	"strings"
)

// SchemaError reports an item bank definition that is missing required
// fields for its declared model or violates parameter invariants.
// It collects every problem found so a bad bank can be fixed in one pass.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("item bank validation failed:\n  %s", strings.Join(e.Problems, "\n  "))
}
