// Package coerce converts raw source values into typed canonical fields.
//
// Source fields arrive as weakly typed, inconsistently cased, sometimes
// locale-formatted strings. Every translator needs the same defaulting and
// format-variant policy, so it lives here once. Nothing in this package
// returns an error: absence or malformed input always degrades to the
// documented default, because one bad row must never abort an export.
package coerce

import (
	"strconv"
	"strings"
	"time"

	"github.com/slingshot-dev/slingshot/internal/model"
)

// Bag is the generic "named bag of raw values" every source adapter
// produces: a CSV row keyed by header, a flattened JSON object, or a SQL
// row keyed by column name. Keys are matched exactly; adapters normalize
// header casing before building bags.
type Bag map[string]string

// String returns the trimmed value for key, or "" when absent.
func String(bag Bag, key string) string {
	return strings.TrimSpace(bag[key])
}

// StringOr returns the trimmed value for key, or def when absent or blank.
func StringOr(bag Bag, key, def string) string {
	if v := String(bag, key); v != "" {
		return v
	}
	return def
}

// Bool returns true for {true, yes, on, 1, x}, false for anything else,
// case-insensitively.
func Bool(bag Bag, key string) bool {
	return ParseBool(String(bag, key), false)
}

// BoolOr is Bool with an explicit default for absent or unrecognized input.
func BoolOr(bag Bag, key string, def bool) bool {
	return ParseBool(String(bag, key), def)
}

// Int returns the integer value for key, or 0 when absent or unparsable.
func Int(bag Bag, key string) int {
	if v := ParseInt(String(bag, key)); v != nil {
		return *v
	}
	return 0
}

// IntPtr is the nullable variant of Int.
func IntPtr(bag Bag, key string) *int {
	return ParseInt(String(bag, key))
}

// ID parses a 32-bit record id for key. 0 is the unset sentinel.
func ID(bag Bag, key string) int32 {
	return ParseID(String(bag, key))
}

// Cents parses a monetary amount for key, or 0 when absent or unparsable.
func Cents(bag Bag, key string) model.Cents {
	if v := ParseCents(String(bag, key)); v != nil {
		return *v
	}
	return 0
}

// CentsPtr is the nullable variant of Cents.
func CentsPtr(bag Bag, key string) *model.Cents {
	return ParseCents(String(bag, key))
}

// Date parses a date or timestamp for key, nil when absent or unparsable.
func Date(bag Bag, key string) *time.Time {
	return ParseTime(String(bag, key))
}

// ParseBool maps {true, yes, on, 1, x} to true and {false, no, off, 0} to
// false, case-insensitively; anything else yields def. "x" covers the
// checkbox-style columns some desktop systems export.
func ParseBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1", "x":
		return true
	case "false", "no", "off", "0":
		return false
	default:
		return def
	}
}

// ParseInt parses an integer, tolerating thousands separators. Returns nil
// for absent or unparsable input.
func ParseInt(s string) *int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

// ParseID parses a 32-bit record id. Returns 0 (the unset sentinel) for
// absent, unparsable, zero or negative input.
func ParseID(s string) int32 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n <= 0 {
		return 0
	}
	return int32(n)
}

// ParseCents parses a monetary amount into hundredths. Accepts a leading
// currency symbol ($, £, €), thousands separators, leading or trailing
// sign, and accounting-style parentheses for negatives. Fractions beyond
// two digits are truncated. Returns nil for absent or unparsable input.
func ParseCents(s string) *model.Cents {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	if strings.HasSuffix(s, "-") {
		neg = true
		s = s[:len(s)-1]
	}
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	s = strings.TrimPrefix(s, "+")
	for _, sym := range []string{"$", "£", "€"} {
		s = strings.TrimPrefix(s, sym)
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return nil
	}
	cents := units * 100
	if frac != "" {
		if len(frac) > 2 {
			frac = frac[:2]
		}
		for len(frac) < 2 {
			frac += "0"
		}
		f, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return nil
		}
		cents += f
	}
	if neg {
		cents = -cents
	}
	out := model.Cents(cents)
	return &out
}

// Date formats seen across the source systems, tried in order. Time-bearing
// layouts come first so a timestamp is not truncated by a shorter match.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"1/2/2006 15:04:05",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"Jan 2 2006",
	"Jan 2, 2006",
}

// ParseTime parses a date or timestamp in any of the layouts the source
// systems emit. Returns nil when absent or unparsable.
func ParseTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
