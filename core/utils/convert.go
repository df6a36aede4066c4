package utils

import "strconv"

// ToNumberWithDefault parses s as an int, falling back to def.
func ToNumberWithDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
