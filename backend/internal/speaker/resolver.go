// Package speaker resolves the many spellings of a speaker's name to one
// canonical form and ranks speakers by number of speeches.
package speaker

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"campaign-speeches/backend/internal/lexicon"
)

// Resolver maps transcript labels to canonical names
type Resolver struct {
	aliases   map[string]string
	known     map[string]string
	ambiguous map[string]struct{}
	prefixes  []string
	contains  []string
}

// NewResolver builds a Resolver from the lexicon alias table. Candidate and
// politician names are also recognized case-insensitively.
func NewResolver(lex *lexicon.Lexicon) *Resolver {
	r := &Resolver{
		aliases:   make(map[string]string),
		known:     make(map[string]string),
		ambiguous: make(map[string]struct{}, len(lex.AmbiguousLabels)),
		prefixes:  lex.GenericLabels.Prefixes,
		contains:  lex.GenericLabels.Contains,
	}
	for canonical, variants := range lex.Aliases {
		for _, v := range variants {
			r.aliases[fold(v)] = canonical
		}
	}
	for _, c := range lex.Candidates {
		r.known[fold(c.Name)] = c.Name
	}
	for _, p := range lex.Politicians {
		r.known[fold(p)] = p
	}
	for _, a := range lex.AmbiguousLabels {
		r.ambiguous[fold(a)] = struct{}{}
	}
	return r
}

// Canonical returns the canonical name for a label. Labels outside the
// alias table come back with whitespace and apostrophes normalized.
func (r *Resolver) Canonical(label string) string {
	clean := normalize(label)
	key := strings.ToLower(clean)
	if canonical, ok := r.aliases[key]; ok {
		return canonical
	}
	if known, ok := r.known[key]; ok {
		return known
	}
	return clean
}

// IsAmbiguous reports whether a row-level label fails to name one person:
// empty, "???", "Multiple Speakers", "Democratic Candidates".
func (r *Resolver) IsAmbiguous(label string) bool {
	key := fold(label)
	if key == "" {
		return true
	}
	_, ok := r.ambiguous[key]
	return ok
}

// IsGeneric reports whether a label is an anonymous participant such as
// "Speaker 3", a moderator or the crowd. Case is ignored.
func (r *Resolver) IsGeneric(label string) bool {
	key := fold(label)
	for _, p := range r.prefixes {
		if strings.HasPrefix(key, strings.ToLower(p)) {
			return true
		}
	}
	for _, c := range r.contains {
		if strings.Contains(key, strings.ToLower(c)) {
			return true
		}
	}
	return false
}

// Resolve splits a row-level label into canonical names. Ambiguous labels
// resolve to nothing.
func (r *Resolver) Resolve(label string) []string {
	if r.IsAmbiguous(label) {
		return nil
	}
	parts := SplitLabel(label)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, r.Canonical(p))
	}
	return out
}

// SplitLabel splits a comma-separated speaker list into trimmed names
func SplitLabel(label string) []string {
	var out []string
	for _, part := range strings.Split(label, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func normalize(label string) string {
	label = norm.NFKC.String(label)
	label = strings.ReplaceAll(label, "’", "'")
	return strings.Join(strings.Fields(label), " ")
}

func fold(label string) string {
	return strings.ToLower(normalize(label))
}
