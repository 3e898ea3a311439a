package analysis

import (
	"time"

	"campaign-speeches/backend/internal/aggregate"
	"campaign-speeches/backend/internal/mention"
	"campaign-speeches/backend/internal/speech"
)

// Inspection lists the transcript labels found under one ambiguous row label
type Inspection struct {
	RowLabel string         `json:"row_label"`
	Speeches int            `json:"speeches"`
	Labels   []speech.Count `json:"labels"` // speeches per transcript label
}

// Result is everything one run produces. It is not modified after Run returns.
type Result struct {
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`

	Speeches      int            `json:"speeches"`
	InvalidDates  int            `json:"invalid_dates"`
	DateFrom      time.Time      `json:"date_from"`
	DateTo        time.Time      `json:"date_to"`
	MissingValues []speech.Count `json:"missing_values"`
	TypeCounts    []speech.Count `json:"type_counts"`

	SpeakerCounts []speech.Count `json:"speaker_counts"`
	Top           []string       `json:"top"`
	SharedCounts  []speech.Count `json:"shared_counts"`

	Ambiguous     []Inspection     `json:"ambiguous"`
	MultipleTop   []speech.Count   `json:"multiple_speakers_top"`
	SegmentCount  int              `json:"segment_count"`
	Segments      []speech.Segment `json:"-"`
	DroppedBlocks int              `json:"dropped_blocks"`

	Weekly       *aggregate.Table `json:"weekly"`
	WeeklyOthers *aggregate.Table `json:"weekly_others"`
	WeeklyParty  *aggregate.Table `json:"weekly_party"`

	PartyByState   *aggregate.Table  `json:"party_by_state"`
	StateWinners   map[string]string `json:"state_winners"`
	ChannelByParty *aggregate.Table  `json:"channel_by_party"`
	Unclassified   []aggregate.Row   `json:"unclassified"`

	Punctuation []string                  `json:"punctuation"`
	TotalWords  []speech.Count            `json:"total_words"`
	TopWords    map[string][]speech.Count `json:"top_words"`

	Mentions  *mention.Matrix   `json:"mentions"`
	Summaries map[string]string `json:"summaries,omitempty"`
}

// IsTop reports whether name is one of the top speakers
func (r *Result) IsTop(name string) bool {
	for _, t := range r.Top {
		if t == name {
			return true
		}
	}
	return false
}

// SegmentsOf returns up to limit segments attributed to name. A limit of
// zero or less returns all of them.
func (r *Result) SegmentsOf(name string, limit int) []speech.Segment {
	var out []speech.Segment
	for _, seg := range r.Segments {
		if seg.Speaker != name {
			continue
		}
		out = append(out, seg)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
