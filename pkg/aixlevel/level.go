// Package aixlevel parses and compares dotted AIX fileset level strings
// such as "7.1.3.49".
//
// Levels compare lexicographically, element by element. Sequences of unequal
// length are compared as-is without zero padding: a sequence that is a strict
// prefix of another sorts lower. Callers that need arity-sensitive semantics
// must normalize their inputs first.
package aixlevel

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

// Level is an ordered sequence of non-negative integers parsed from a dotted
// level string. Immutable once parsed.
type Level []int

// Parse splits raw on '.' and parses each component as an unsigned integer.
// A non-numeric trailing suffix on a component (AIX levels occasionally carry
// a trailing letter, e.g. "49a") is stripped with a warning rather than
// treated as fatal. A component with no leading digits at all is an error.
func Parse(raw string) (Level, error) {
	parts := strings.Split(raw, ".")
	level := make(Level, 0, len(parts))

	for _, part := range parts {
		digits := leadingDigits(part)
		if digits == "" {
			return nil, fmt.Errorf("level %q: component %q is not numeric", raw, part)
		}

		if digits != part {
			slog.Warn("Stripped non-numeric suffix from level component", "level", raw, "component", part)
		}

		n, err := strconv.Atoi(digits)
		if err != nil {
			return nil, fmt.Errorf("level %q: component %q: %w", raw, part, err)
		}

		level = append(level, n)
	}

	return level, nil
}

func leadingDigits(part string) string {
	for i, r := range part {
		if r < '0' || r > '9' {
			return part[:i]
		}
	}

	return part
}

// Compare returns -1, 0 or 1 ordering a against b lexicographically.
// Unequal lengths are compared raw: a strict prefix sorts lower.
func Compare(a, b Level) int {
	return slices.Compare(a, b)
}

// Less reports whether a sorts strictly before b.
func (a Level) Less(b Level) bool {
	return Compare(a, b) < 0
}

// Greater reports whether a sorts strictly after b.
func (a Level) Greater(b Level) bool {
	return Compare(a, b) > 0
}

// String renders the level back as a dotted string.
func (a Level) String() string {
	parts := make([]string, 0, len(a))
	for _, n := range a {
		parts = append(parts, strconv.Itoa(n))
	}

	return strings.Join(parts, ".")
}
