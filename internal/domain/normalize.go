package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// NormalizeInteger coerces loosely typed numeric input (JSON numbers arrive
// as float64, forms send strings) into a positive integer. Non-numeric and
// non-positive values fall back to fallback, never to a non-positive result.
func NormalizeInteger(raw interface{}, fallback int) int {
	var n int
	switch v := raw.(type) {
	case nil:
		return fallback
	case int:
		n = v
	case int32:
		n = int(v)
	case int64:
		n = int(v)
	case float64:
		n = int(v)
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			return fallback
		}
		n = int(parsed)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fallback
		}
		n = parsed
	default:
		return fallback
	}
	if n <= 0 {
		return fallback
	}
	return n
}
