// Package textnorm provides the case normalisation shared by every
// label-matching rule: health condition lookups and allergen detection.
package textnorm

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold trims s and applies Unicode case folding, so "Peanut", "PEANUT"
// and "peanut" all normalise to the same key.
//
// A Caser is stateful, so a fresh one is built per call.
func Fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return cases.Fold().String(s)
}

// ContainsFold reports whether needle occurs in haystack, ignoring case.
// A blank needle never matches.
func ContainsFold(haystack, needle string) bool {
	n := Fold(needle)
	if n == "" {
		return false
	}
	return strings.Contains(cases.Fold().String(haystack), n)
}

// ContainsAnyFold reports whether any of needles occurs in haystack
func ContainsAnyFold(haystack string, needles []string) bool {
	if haystack == "" || len(needles) == 0 {
		return false
	}
	folded := cases.Fold().String(haystack)
	for _, needle := range needles {
		n := Fold(needle)
		if n != "" && strings.Contains(folded, n) {
			return true
		}
	}
	return false
}
