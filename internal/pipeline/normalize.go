package pipeline

import (
	"regexp"
	"strings"

	"psephos/internal"
)

// A country's answers cell enumerates up to three voting systems, each
// introduced by a lowercase letter prefix: "a. Party-list V. b. AV".
// The split is deliberately loose (no word-boundary check) and any
// text before the first prefix is treated as preamble and discarded.
var segmentSep = regexp.MustCompile(`[a-z]+\. `)

const maxSegments = 3

// NormalizeRows unpivots the scraped table into one row per
// (country, voting-system) pair. Row order follows the input, segment
// order follows the enumeration. Countries with a blank answers cell
// contribute nothing.
func NormalizeRows(rows []internal.RawSystemsRow) []internal.NormalizedSystemsRow {
	out := make([]internal.NormalizedSystemsRow, 0, len(rows))
	for _, row := range rows {
		for _, system := range SplitAnswers(row.Answers) {
			out = append(out, internal.NormalizedSystemsRow{
				CountryTerritory: row.CountryTerritory,
				VotingSystem:     ExpandSystemName(system),
			})
		}
	}
	return out
}

// SplitAnswers breaks an answers cell into its enumerated system
// names. A cell that never matches the prefix pattern yields nothing;
// this is a best-effort transform and malformed text never errors.
func SplitAnswers(answers *string) []string {
	if answers == nil {
		return nil
	}
	parts := segmentSep.Split(*answers, maxSegments+1)
	if len(parts) < 2 {
		return nil
	}

	out := make([]string, 0, len(parts)-1)
	for _, part := range parts[1:] {
		part = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(part), "."))
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// ExpandSystemName rewrites the abbreviated suffixes the source table
// uses: a trailing " V" becomes " Vote" and a trailing " R" becomes
// " Representation". Pure suffix match, applied at most once, so the
// rewrite is idempotent.
func ExpandSystemName(name string) string {
	if strings.HasSuffix(name, " V") {
		return strings.TrimSuffix(name, " V") + " Vote"
	}
	if strings.HasSuffix(name, " R") {
		return strings.TrimSuffix(name, " R") + " Representation"
	}
	return name
}
