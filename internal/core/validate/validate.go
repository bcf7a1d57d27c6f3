// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
)

// Sides lists the accepted panel side names.
var Sides = []string{"right", "left"}

// StoreName validates a store name is non-empty after trimming whitespace
// and free of control characters.
func StoreName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.IndexFunc(name, unicode.IsControl) >= 0 {
		return fmt.Errorf("name %q contains control characters", name)
	}
	return nil
}

// Side validates a panel side name.
func Side(side string) error {
	for _, s := range Sides {
		if side == s {
			return nil
		}
	}
	return fmt.Errorf("must be one of %s, got %q", strings.Join(Sides, ", "), side)
}

// Percent validates that v lies within [lo, hi].
func Percent(v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("must be between %d and %d, got %d", lo, hi, v)
	}
	return nil
}

// GlobPattern validates a doublestar pattern.
func GlobPattern(pattern string) error {
	if pattern == "" {
		return fmt.Errorf("pattern is required")
	}
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("invalid pattern %q", pattern)
	}
	return nil
}

// GlobPatternsField validates every pattern, reporting each failure under
// field[i].
func GlobPatternsField(field string, patterns []string) error {
	var errs criterio.FieldErrorsBuilder
	for i, p := range patterns {
		if err := GlobPattern(p); err != nil {
			errs = errs.Append(fmt.Sprintf("%s[%d]", field, i), err)
		}
	}
	return errs.ToError()
}
