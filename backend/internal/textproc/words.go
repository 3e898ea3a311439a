package textproc

import "campaign-speeches/backend/internal/speech"

// WordCounts counts words of cleaned text, skipping stop words
func WordCounts(text string, stop map[string]struct{}) map[string]int {
	counts := make(map[string]int)
	for _, w := range Words(text) {
		if _, skip := stop[w]; skip {
			continue
		}
		counts[w]++
	}
	return counts
}

// TopWords returns the n most frequent words, ties alphabetical
func TopWords(counts map[string]int, n int) []speech.Count {
	sorted := speech.SortCounts(counts)
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// TotalWords counts all words per speaker, sorted descending
func TotalWords(aggregated map[string]string) []speech.Count {
	counts := make(map[string]int, len(aggregated))
	for name, text := range aggregated {
		counts[name] = len(Words(text))
	}
	return speech.SortCounts(counts)
}
