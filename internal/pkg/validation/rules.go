package validation

import (
	"strconv"
	"strings"
)

// Name validation bounds for students and medicines
var (
	NameMinLength = 1
	NameMaxLength = 100
)

// ParseGradeLevel coerces a raw payload value into a grade level.
// Accepted shapes: integers, whole floats (JSON numbers), numeric strings
// ("3") and descriptive strings containing a digit run ("Year 3", "Grade 10").
// Returns ok=false for anything else, including nil. Never fails.
func ParseGradeLevel(raw interface{}) (int, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		// JSON numbers decode as float64; only whole values qualify
		if v == float64(int(v)) {
			return int(v), true
		}
		return 0, false
	case string:
		return parseGradeFromString(v)
	default:
		return 0, false
	}
}

// parseGradeFromString extracts the first contiguous digit run of a string.
func parseGradeFromString(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	start := -1
	end := len(s)
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			end = i
			break
		}
	}
	if start < 0 {
		return 0, false
	}

	n, err := strconv.Atoi(s[start:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ValidName checks a display-name field against the shared length bounds.
func ValidName(name string) bool {
	name = strings.TrimSpace(name)
	return len(name) >= NameMinLength && len(name) <= NameMaxLength
}
