package speaker

import (
	"slices"

	"campaign-speeches/backend/internal/speech"
)

// Count counts speeches per raw row label, skipping ambiguous labels.
// The result is sorted by count descending, then name ascending.
func (r *Resolver) Count(speeches []speech.Speech) []speech.Count {
	counts := make(map[string]int)
	for _, s := range speeches {
		if r.IsAmbiguous(s.Speaker) {
			continue
		}
		counts[normalize(s.Speaker)]++
	}
	return speech.SortCounts(counts)
}

// CountShared counts speeches per canonical speaker. Shared rows
// ("Joe Biden, Kamala Harris") count once for every listed name when
// includeShared is set and are skipped otherwise. Excluded names are
// dropped after resolution.
func (r *Resolver) CountShared(speeches []speech.Speech, includeShared bool, exclude []string) []speech.Count {
	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		skip[r.Canonical(e)] = true
	}

	counts := make(map[string]int)
	for _, s := range speeches {
		if r.IsAmbiguous(s.Speaker) {
			continue
		}
		names := r.Resolve(s.Speaker)
		if len(names) > 1 && !includeShared {
			continue
		}
		for _, name := range names {
			if !skip[name] {
				counts[name]++
			}
		}
	}
	return speech.SortCounts(counts)
}

// Top returns the first n labels of a sorted count list
func Top(counts []speech.Count, n int) []string {
	n = max(0, min(n, len(counts)))
	out := make([]string, 0, n)
	for _, c := range counts[:n] {
		out = append(out, c.Label)
	}
	return out
}

// Group returns name when it is one of the top speakers and other otherwise
func Group(name string, top []string, other string) string {
	if slices.Contains(top, name) {
		return name
	}
	return other
}
