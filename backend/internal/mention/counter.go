package mention

import (
	"regexp"
	"sort"
	"strings"

	apperrors "campaign-speeches/backend/pkg/errors"
)

// Options tunes Count
type Options struct {
	// ExcludeSelf zeroes the diagonal
	ExcludeSelf bool
}

// Counter holds one compiled pattern per candidate
type Counter struct {
	patterns map[string]*regexp.Regexp
	opts     Options
}

// NewCounter compiles the mention phrases of every candidate into a single
// word-bounded alternation, longest phrase first, so overlapping phrases
// such as "vice president joe biden" and "biden" match once.
func NewCounter(phrases map[string][]string, opts Options) (*Counter, error) {
	c := &Counter{patterns: make(map[string]*regexp.Regexp, len(phrases)), opts: opts}
	for name, list := range phrases {
		re, err := compile(list)
		if err != nil {
			return nil, apperrors.NewLexiconPattern(name, err)
		}
		if re != nil {
			c.patterns[name] = re
		}
	}
	return c, nil
}

func compile(phrases []string) (*regexp.Regexp, error) {
	var alts []string
	seen := make(map[string]bool)
	for _, p := range phrases {
		words := strings.Fields(strings.ToLower(p))
		if len(words) == 0 {
			continue
		}
		key := strings.Join(words, " ")
		if seen[key] {
			continue
		}
		seen[key] = true
		alts = append(alts, key)
	}
	if len(alts) == 0 {
		return nil, nil
	}

	sort.Slice(alts, func(i, j int) bool {
		if len(alts[i]) != len(alts[j]) {
			return len(alts[i]) > len(alts[j])
		}
		return alts[i] < alts[j]
	})
	// A single-letter middle initial may sit between any two words, so
	// "donald j trump" is one reference to "donald trump".
	for i, a := range alts {
		quoted := make([]string, 0)
		for _, w := range strings.Fields(a) {
			quoted = append(quoted, regexp.QuoteMeta(w))
		}
		alts[i] = strings.Join(quoted, `\s+(?:[a-z]\s+)?`)
	}
	return regexp.Compile(`\b(?:` + strings.Join(alts, "|") + `)\b`)
}

// CountIn returns how many times text mentions candidate
func (c *Counter) CountIn(text, candidate string) int {
	re, ok := c.patterns[candidate]
	if !ok || text == "" {
		return 0
	}
	return len(re.FindAllStringIndex(text, -1))
}

// Count builds the matrix over speakers from cleaned per-speaker texts.
// The diagonal holds self-mentions unless ExcludeSelf is set. Speakers
// without text get a zero row, speakers without patterns a zero column.
func (c *Counter) Count(texts map[string]string, speakers []string) *Matrix {
	m := NewMatrix(speakers)
	for i, from := range speakers {
		text := texts[from]
		if text == "" {
			continue
		}
		for j, to := range speakers {
			if i == j && c.opts.ExcludeSelf {
				continue
			}
			m.Counts[i][j] = c.CountIn(text, to)
		}
	}
	return m
}

// CountSurnames counts raw substring occurrences of each speaker's
// lowercase surname in each speaker's text, its own included.
func CountSurnames(texts map[string]string, speakers []string) *Matrix {
	m := NewMatrix(speakers)
	for i, from := range speakers {
		text := texts[from]
		if text == "" {
			continue
		}
		for j, to := range speakers {
			surname := Surname(to)
			if surname == "" {
				continue
			}
			m.Counts[i][j] = strings.Count(text, surname)
		}
	}
	return m
}

// Surname is the lowercase last word of a name
func Surname(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
