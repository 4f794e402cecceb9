package util

import (
	"regexp"
	"strings"
)

var (
	reSpaces    = regexp.MustCompile(`\s+`)
	reNonWord   = regexp.MustCompile(`[^a-z0-9]+`)
	reUnderRuns = regexp.MustCompile(`_+`)
)

// NormalizeSpaces collapses runs of whitespace to a single space and
// trims the ends.
func NormalizeSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

// CleanColumnName rewrites an arbitrary header cell into a lowercase
// snake_case identifier: "Country / Territory" -> "country_territory".
func CleanColumnName(input string) string {
	s := strings.ToLower(NormalizeSpaces(input))
	s = reNonWord.ReplaceAllString(s, "_")
	s = reUnderRuns.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// BlankToNil coerces a blank cell to an absent value, trimming the
// kept ones.
func BlankToNil(input string) *string {
	s := NormalizeSpaces(input)
	if s == "" {
		return nil
	}
	return &s
}

func StringPtr(v string) *string { return &v }

func IntPtr(v int) *int { return &v }
