package pipeline

import (
	"sort"

	"psephos/internal"
)

// CountSystems aggregates the normalized table into (voting-system,
// count) pairs, sorted count descending with name as tie-breaker so
// the chart order is deterministic.
func CountSystems(rows []internal.NormalizedSystemsRow) []internal.SystemCount {
	counts := map[string]int{}
	for _, row := range rows {
		counts[row.VotingSystem]++
	}

	out := make([]internal.SystemCount, 0, len(counts))
	for system, count := range counts {
		out = append(out, internal.SystemCount{VotingSystem: system, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].VotingSystem < out[j].VotingSystem
	})
	return out
}

// DistinctCountries reports how many countries contributed at least
// one normalized row.
func DistinctCountries(rows []internal.NormalizedSystemsRow) int {
	seen := map[string]struct{}{}
	for _, row := range rows {
		seen[row.CountryTerritory] = struct{}{}
	}
	return len(seen)
}
