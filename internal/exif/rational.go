// Package exif extracts capture metadata (GPS position, timestamp,
// camera identity) from the tag dictionaries produced by an image
// metadata reader.
package exif

import (
	"strconv"
	"strings"
)

// ParseRational converts a single raw tag value into a float64.
// EXIF readers hand values through in several shapes: plain numbers,
// numeric strings, or "numerator/denominator" rational strings.
// The second return value is false when the input cannot be parsed;
// a malformed value never yields a partial or default number.
func ParseRational(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		return parseRationalString(n)
	default:
		return 0, false
	}
}

func parseRationalString(s string) (float64, bool) {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}

	num, den, found := strings.Cut(s, "/")
	if !found {
		return 0, false
	}

	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, false
	}

	return n / d, true
}
