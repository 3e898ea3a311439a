package speech

import (
	"fmt"
	"time"
)

// Speech is one row of the speeches CSV
type Speech struct {
	ID       int       `json:"id"` // 0-based row index
	Speaker  string    `json:"speaker"`
	Title    string    `json:"title"`
	Text     string    `json:"text"`
	Date     time.Time `json:"date"` // zero when the CSV value did not parse
	DateRaw  string    `json:"-"`    // CSV value kept when Date did not parse
	Location string    `json:"location,omitempty"`
	Type     string    `json:"type,omitempty"`
}

// HasDate reports whether the row carried a parseable date
func (s Speech) HasDate() bool {
	return !s.Date.IsZero()
}

// Segment is one utterance attributed to a single speaker
type Segment struct {
	SpeechID   int       `json:"speech_id"`
	Speaker    string    `json:"speaker"`     // Canonical name
	RawSpeaker string    `json:"raw_speaker"` // Label as written in the transcript
	Offset     string    `json:"offset,omitempty"`
	Text       string    `json:"text"`
	Date       time.Time `json:"date"`
	Location   string    `json:"location,omitempty"`
	Type       string    `json:"type,omitempty"`
}

// Validate checks if the Segment is usable for aggregation
func (s *Segment) Validate() error {
	if s.Speaker == "" {
		return ErrInvalidSegment{SpeechID: s.SpeechID, Reason: "speaker cannot be empty"}
	}
	if s.Text == "" {
		return ErrInvalidSegment{SpeechID: s.SpeechID, Reason: "text cannot be empty"}
	}
	return nil
}

// Errors

type ErrInvalidSegment struct {
	SpeechID int
	Reason   string
}

func (e ErrInvalidSegment) Error() string {
	return fmt.Sprintf("invalid segment in speech %d: %s", e.SpeechID, e.Reason)
}
