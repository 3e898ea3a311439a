// Package lexicon holds the dataset vocabulary: speaker aliases, candidate
// parties and mention phrases, U.S. states, news channels and stop words.
package lexicon

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "campaign-speeches/backend/pkg/errors"
)

//go:embed default.yaml
var defaultYAML []byte

// Candidate is one of the tracked speakers.
type Candidate struct {
	Name     string   `yaml:"name" json:"name"`
	Party    string   `yaml:"party" json:"party"`
	Color    string   `yaml:"color" json:"color"`
	Mentions []string `yaml:"mentions" json:"mentions"`
}

// GenericLabels describes anonymous transcript participants.
type GenericLabels struct {
	Prefixes []string `yaml:"prefixes"`
	Contains []string `yaml:"contains"`
}

// Lexicon is the full vocabulary file.
type Lexicon struct {
	AmbiguousLabels []string            `yaml:"ambiguous_labels"`
	IgnoredHeaders  []string            `yaml:"ignored_headers"`
	GenericLabels   GenericLabels       `yaml:"generic_labels"`
	Aliases         map[string][]string `yaml:"aliases"`
	Candidates      []Candidate         `yaml:"candidates"`
	ChartOrder      []string            `yaml:"chart_order"`
	PartyColors     map[string]string   `yaml:"party_colors"`
	OthersColor     string              `yaml:"others_color"`
	NewsChannels    []string            `yaml:"news_channels"`
	States          []string            `yaml:"states"`
	Politicians     []string            `yaml:"politicians"`
	StopWords       []string            `yaml:"stop_words"`

	candidates  map[string]Candidate
	politicians map[string]struct{}
	stopWords   map[string]struct{}
}

// Default returns the embedded lexicon.
func Default() (*Lexicon, error) {
	return Parse(defaultYAML)
}

// Load reads a lexicon file. An empty path selects the embedded default.
func Load(path string) (*Lexicon, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates lexicon YAML.
func Parse(data []byte) (*Lexicon, error) {
	lex := &Lexicon{}
	if err := yaml.Unmarshal(data, lex); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon: %w", err)
	}
	if err := lex.Validate(); err != nil {
		return nil, err
	}
	lex.index()
	return lex, nil
}

// Validate checks that candidates are complete and that no spelling is
// claimed by two canonical names.
func (l *Lexicon) Validate() error {
	if len(l.Candidates) == 0 {
		return apperrors.NewLexiconInvalid("candidates", "at least one candidate is required")
	}
	seen := make(map[string]bool, len(l.Candidates))
	for i, c := range l.Candidates {
		if strings.TrimSpace(c.Name) == "" {
			return apperrors.NewLexiconInvalid("candidates", fmt.Sprintf("entry %d has no name", i))
		}
		if c.Party == "" {
			return apperrors.NewLexiconInvalid("candidates", fmt.Sprintf("%s has no party", c.Name))
		}
		if seen[c.Name] {
			return apperrors.NewLexiconInvalid("candidates", fmt.Sprintf("%s listed twice", c.Name))
		}
		seen[c.Name] = true
	}

	owner := make(map[string]string)
	for canonical, variants := range l.Aliases {
		for _, v := range variants {
			key := foldKey(v)
			if prev, ok := owner[key]; ok && prev != canonical {
				return apperrors.NewLexiconInvalid("aliases", fmt.Sprintf("%q maps to both %s and %s", v, prev, canonical))
			}
			owner[key] = canonical
		}
	}
	return nil
}

func (l *Lexicon) index() {
	l.candidates = make(map[string]Candidate, len(l.Candidates))
	for _, c := range l.Candidates {
		l.candidates[c.Name] = c
	}
	l.politicians = make(map[string]struct{}, len(l.Politicians)+len(l.Candidates))
	for _, p := range l.Politicians {
		l.politicians[p] = struct{}{}
	}
	for _, c := range l.Candidates {
		l.politicians[c.Name] = struct{}{}
	}
	l.stopWords = make(map[string]struct{}, len(l.StopWords))
	for _, w := range l.StopWords {
		l.stopWords[strings.ToLower(w)] = struct{}{}
	}
}

// Candidate looks up a tracked candidate by canonical name.
func (l *Lexicon) Candidate(name string) (Candidate, bool) {
	c, ok := l.candidates[name]
	return c, ok
}

// Party returns the candidate's party, or "" for anyone else.
func (l *Lexicon) Party(name string) string {
	return l.candidates[name].Party
}

// Color returns the chart color of a candidate, a party, or the
// "Others" bucket color for anything unknown.
func (l *Lexicon) Color(name string) string {
	if c, ok := l.candidates[name]; ok && c.Color != "" {
		return c.Color
	}
	if color, ok := l.PartyColors[name]; ok {
		return color
	}
	return l.OthersColor
}

// IsPolitician reports whether name is a candidate or a listed politician.
func (l *Lexicon) IsPolitician(name string) bool {
	_, ok := l.politicians[name]
	return ok
}

// StopWordSet returns the stop words as a set. The map is shared.
func (l *Lexicon) StopWordSet() map[string]struct{} {
	return l.stopWords
}

// MentionPatterns returns each candidate's mention phrases.
func (l *Lexicon) MentionPatterns() map[string][]string {
	out := make(map[string][]string, len(l.Candidates))
	for _, c := range l.Candidates {
		out[c.Name] = append([]string(nil), c.Mentions...)
	}
	return out
}

// Parties returns the distinct candidate parties in first-seen order.
func (l *Lexicon) Parties() []string {
	var parties []string
	seen := make(map[string]bool)
	for _, c := range l.Candidates {
		if !seen[c.Party] {
			seen[c.Party] = true
			parties = append(parties, c.Party)
		}
	}
	return parties
}

func foldKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
