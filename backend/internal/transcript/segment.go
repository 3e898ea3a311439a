// Package transcript splits raw multi-speaker transcript text into
// labelled utterances.
//
// Transcripts follow the layout
//
//	Joe Biden: (00:00)
//	Thank you all for coming.
//	Speaker 1: (01:12:05)
//	[crosstalk 01:12:06] Four more years!
//
// A header line carries the speaker label and an mm:ss or h:mm:ss offset;
// the lines up to the next header are what that speaker said.
package transcript

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	headerPattern     = regexp.MustCompile(`^\s*(\S[^\n]*?)\s*:\s*\(((?:\d{1,2}:)?\d{1,2}:\d{2})\)\s*$`)
	annotationPattern = regexp.MustCompile(`\[[^\]\n]*\]`)
	speakerNPattern   = regexp.MustCompile(`(?i)^speaker\s*\d*$`)
	firstLinePattern  = regexp.MustCompile(`^[^\n]*\n`)
)

// Utterance is one labelled block of a transcript. Label is empty for
// text that appears before the first header.
type Utterance struct {
	Label  string `json:"label"`
	Offset string `json:"offset,omitempty"`
	Text   string `json:"text"`
}

// Segmenter splits transcripts, dropping blocks under ignored headers.
type Segmenter struct {
	ignored map[string]struct{}
}

// NewSegmenter creates a Segmenter. Ignored header labels are matched
// case-insensitively.
func NewSegmenter(ignoredHeaders []string) *Segmenter {
	s := &Segmenter{ignored: make(map[string]struct{}, len(ignoredHeaders))}
	for _, h := range ignoredHeaders {
		s.ignored[strings.ToLower(strings.TrimSpace(h))] = struct{}{}
	}
	return s
}

// Clean removes bracketed annotations such as [crosstalk 00:12] or
// [inaudible], applies NFKC so non-breaking spaces become plain spaces,
// and normalizes line endings to \n.
func Clean(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = norm.NFKC.String(text)
	return annotationPattern.ReplaceAllString(text, "")
}

// Split cleans text and returns its utterances in order. Body lines are
// trimmed and joined with a single space; blank lines are skipped. A header
// with no body produces nothing.
func (s *Segmenter) Split(text string) []Utterance {
	var (
		out     []Utterance
		current Utterance
		body    []string
		skip    bool
	)

	flush := func() {
		if !skip && len(body) > 0 {
			current.Text = strings.Join(body, " ")
			out = append(out, current)
		}
		body = body[:0]
	}

	for _, line := range strings.Split(Clean(text), "\n") {
		if label, offset, ok := parseHeader(line); ok {
			flush()
			current = Utterance{Label: label, Offset: offset}
			_, skip = s.ignored[strings.ToLower(label)]
			continue
		}
		if line = strings.TrimSpace(line); line != "" {
			body = append(body, line)
		}
	}
	flush()

	return out
}

// Labels returns the distinct header labels of a transcript in order of
// first appearance. Anonymous "Speaker N" labels are left out.
func Labels(text string) []string {
	var labels []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(Clean(text), "\n") {
		label, _, ok := parseHeader(line)
		if !ok || seen[label] || speakerNPattern.MatchString(label) {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}
	return labels
}

// StripHeader drops everything up to and including the first line break.
// Text without a line break is returned unchanged.
func StripHeader(text string) string {
	return firstLinePattern.ReplaceAllString(text, "")
}

// IsHeader reports whether line is a "Label: (mm:ss)" header.
func IsHeader(line string) bool {
	_, _, ok := parseHeader(line)
	return ok
}

func parseHeader(line string) (label, offset string, ok bool) {
	m := headerPattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return strings.Join(strings.Fields(m[1]), " "), m[2], true
}
