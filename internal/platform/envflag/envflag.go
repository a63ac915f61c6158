// Package envflag parses feature toggles read from the environment.
package envflag

import "strings"

var truthy = map[string]struct{}{
	"true": {},
	"1":    {},
	"yes":  {},
	"on":   {},
}

// Parse reports whether raw is one of the accepted truthy tokens.
// Surrounding whitespace and a single leading '=' (left behind by
// KEY==value style env files) are ignored. Anything else is false.
func Parse(raw string) bool {
	value := strings.TrimSpace(raw)
	value = strings.TrimPrefix(value, "=")
	_, ok := truthy[strings.ToLower(value)]
	return ok
}
