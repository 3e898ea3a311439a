// Package textproc normalizes utterance text for word counting and
// aggregates it per speaker.
package textproc

import (
	"sort"
	"strings"
	"unicode"

	"campaign-speeches/backend/internal/speech"
)

// punctuationReplacer maps every ASCII punctuation mark except the
// apostrophe, and every line break, to a space.
var punctuationReplacer = func() *strings.Replacer {
	var pairs []string
	for r := rune(0x21); r <= 0x7e; r++ {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			if r == '\'' {
				continue
			}
			pairs = append(pairs, string(r), " ")
		}
	}
	pairs = append(pairs, "\r", " ", "\n", " ")
	return strings.NewReplacer(pairs...)
}()

// CleanText lowercases s and blanks out punctuation, keeping apostrophes so
// contractions such as "don't" stay one word.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "’", "'")
	return punctuationReplacer.Replace(strings.ToLower(s))
}

// Punctuation returns the sorted set of ASCII punctuation characters that
// appear in texts.
func Punctuation(texts []string) []string {
	seen := make(map[rune]bool)
	for _, t := range texts {
		for _, r := range t {
			if r < 0x80 && (unicode.IsPunct(r) || unicode.IsSymbol(r)) {
				seen[r] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for r := range seen {
		out = append(out, string(r))
	}
	sort.Strings(out)
	return out
}

// Words splits cleaned text on whitespace
func Words(s string) []string {
	return strings.Fields(s)
}

// Aggregate joins the cleaned text of every segment per speaker, in
// segment order. Speakers outside keep (when keep is non-nil) are skipped.
func Aggregate(segments []speech.Segment, keep []string) map[string]string {
	allowed := make(map[string]bool, len(keep))
	for _, k := range keep {
		allowed[k] = true
	}

	parts := make(map[string][]string)
	for _, seg := range segments {
		if keep != nil && !allowed[seg.Speaker] {
			continue
		}
		parts[seg.Speaker] = append(parts[seg.Speaker], CleanText(seg.Text))
	}

	out := make(map[string]string, len(parts))
	for name, texts := range parts {
		out[name] = strings.Join(texts, " ")
	}
	return out
}
