package tools

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// StringArg returns the trimmed string argument key, or "" when absent or not a string.
func StringArg(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return strings.TrimSpace(s)
}

// StringArgOrDefault returns StringArg, or def when the argument is empty.
func StringArgOrDefault(args map[string]interface{}, key, def string) string {
	if s := StringArg(args, key); s != "" {
		return s
	}
	return def
}

// IntArg returns the integer argument key, or def when it is absent.
//
// JSON numbers arrive as float64; values with a fractional part are rejected.
// Numeric strings are accepted for clients that send every argument as text.
func IntArg(args map[string]interface{}, key string, def int) (int, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return def, nil
	}

	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, fmt.Errorf("%s must be a whole number, got %v", key, v)
		}
		if v > math.MaxInt32 || v < math.MinInt32 {
			return 0, fmt.Errorf("%s is out of range: %v", key, v)
		}
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case string:
		if strings.TrimSpace(v) == "" {
			return def, nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%s must be a whole number, got %q", key, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%s must be a number", key)
	}
}
