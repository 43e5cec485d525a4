package cmd

import "strings"

// normalize applies a pipeline of string transforms left to right.
func normalize(s string, fns ...func(string) string) string {
	for _, fn := range fns {
		s = fn(s)
	}
	return s
}

// cleanArg is the normalization every free-text argument goes through
// before it reaches the store or the matcher.
func cleanArg(s string) string {
	return normalize(s, strings.TrimSpace, strings.ToLower)
}
