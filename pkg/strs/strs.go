package strs

import "strings"

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}

func IsNotBlank(s string) bool {
	return !IsBlank(s)
}

// AnyBlank reports whether any of the given strings is blank. Used by the
// create paths to reject requests with missing required fields.
func AnyBlank(ss ...string) bool {
	for _, s := range ss {
		if IsBlank(s) {
			return true
		}
	}
	return false
}
