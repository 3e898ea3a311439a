package analysis

import (
	"strings"

	"campaign-speeches/backend/internal/constants"
	"campaign-speeches/backend/internal/speech"
	"campaign-speeches/backend/internal/transcript"
)

// Segments splits every transcript into utterances with canonical speaker
// names. Text before the first header belongs to the row speaker when the
// row names exactly one person; otherwise it is dropped and counted.
func (p *Pipeline) Segments(speeches []speech.Speech) ([]speech.Segment, int) {
	var (
		out     []speech.Segment
		dropped int
	)
	for _, s := range speeches {
		owner := p.rowOwner(s.Speaker)
		for _, u := range p.segmenter.Split(s.Text) {
			seg := speech.Segment{
				SpeechID: s.ID,
				Offset:   u.Offset,
				Text:     u.Text,
				Date:     s.Date,
				Location: s.Location,
				Type:     s.Type,
			}
			if u.Label == "" {
				seg.Speaker, seg.RawSpeaker = owner, strings.TrimSpace(s.Speaker)
			} else {
				seg.Speaker, seg.RawSpeaker = p.resolver.Canonical(u.Label), u.Label
			}
			if err := seg.Validate(); err != nil {
				dropped++
				continue
			}
			out = append(out, seg)
		}
	}
	return out, dropped
}

func (p *Pipeline) rowOwner(label string) string {
	names := p.resolver.Resolve(label)
	if len(names) != 1 || p.resolver.IsGeneric(names[0]) {
		return ""
	}
	return names[0]
}

// Inspect lists, for every ambiguous row label, the transcript labels of
// the speeches filed under it. Anonymous participants are left out. Rows
// with an empty speaker are reported under the empty label.
func (p *Pipeline) Inspect(speeches []speech.Speech) []Inspection {
	labels := append([]string{}, p.lex.AmbiguousLabels...)
	labels = append(labels, "")

	out := make([]Inspection, 0, len(labels))
	for _, row := range labels {
		ins := Inspection{RowLabel: row}
		counts := make(map[string]int)
		for _, s := range speeches {
			if !sameLabel(s.Speaker, row) {
				continue
			}
			ins.Speeches++
			for _, l := range transcript.Labels(s.Text) {
				if p.resolver.IsGeneric(l) {
					continue
				}
				counts[l]++
			}
		}
		ins.Labels = speech.SortCounts(counts)
		out = append(out, ins)
	}
	return out
}

// MultipleSpeakersTop ranks the canonical speakers heard in "Multiple
// Speakers" transcripts by number of speeches, leaving out anonymous
// participants.
func (p *Pipeline) MultipleSpeakersTop(speeches []speech.Speech, n int) []speech.Count {
	counts := make(map[string]int)
	for _, s := range speeches {
		if !sameLabel(s.Speaker, constants.MultipleSpeakersLabel) {
			continue
		}
		seen := make(map[string]bool)
		for _, l := range transcript.Labels(s.Text) {
			name := p.resolver.Canonical(l)
			if p.resolver.IsGeneric(name) || seen[name] {
				continue
			}
			seen[name] = true
			counts[name]++
		}
	}
	sorted := speech.SortCounts(counts)
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

func sameLabel(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
