package htmltable

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var leadingIntPattern = regexp.MustCompile(`^(\d[\d,]*)`)

// cleanNumber strips separators and decoration that the source site puts around numbers
func cleanNumber(s string) string {
	s = NormalizeText(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.TrimSuffix(s, "%")
	return s
}

// ParseInt coerces cell text to an int. Empty or malformed text reports false.
func ParseInt(s string) (int, bool) {
	s = cleanNumber(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// LeadingInt parses the digits at the start of s, e.g. "549 ballots (412 needed)" -> 549
func LeadingInt(s string) (int, bool) {
	matches := leadingIntPattern.FindStringSubmatch(NormalizeText(s))
	if matches == nil {
		return 0, false
	}
	return ParseInt(matches[1])
}

// ParseFloat coerces cell text to a float, accepting a trailing percent sign.
// NaN and infinities are rejected.
func ParseFloat(s string) (float64, bool) {
	s = cleanNumber(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseBool reads induction markers. Unknown text reports false for ok.
func ParseBool(s string) (value bool, ok bool) {
	switch strings.ToLower(NormalizeText(s)) {
	case "y", "yes", "x", "true", "inducted", "elected", "✓", "✔":
		return true, true
	case "n", "no", "false", "not elected", "not inducted", "dropped", "withdrawn":
		return false, true
	default:
		return false, false
	}
}

// IntPtr is ParseInt returning nil when the text is not a number
func IntPtr(s string) *int {
	n, ok := ParseInt(s)
	if !ok {
		return nil
	}
	return &n
}

// FloatPtr is ParseFloat returning nil when the text is not a number
func FloatPtr(s string) *float64 {
	f, ok := ParseFloat(s)
	if !ok {
		return nil
	}
	return &f
}

// BoolPtr is ParseBool returning nil for unknown text
func BoolPtr(s string) *bool {
	b, ok := ParseBool(s)
	if !ok {
		return nil
	}
	return &b
}
