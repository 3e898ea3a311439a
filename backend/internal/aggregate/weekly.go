package aggregate

import (
	"slices"
	"sort"
	"time"

	"campaign-speeches/backend/internal/constants"
	"campaign-speeches/backend/internal/speaker"
	"campaign-speeches/backend/internal/speech"
)

// Row is one (speech, listed speaker) pair
type Row struct {
	SpeechID int       `json:"speech_id"`
	Speaker  string    `json:"speaker"`
	Date     time.Time `json:"date"`
	Location string    `json:"location,omitempty"`
}

// Explode returns one row per speaker that split finds in a speech's
// speaker column. Speeches split maps to nothing are dropped.
func Explode(speeches []speech.Speech, split func(string) []string) []Row {
	rows := make([]Row, 0, len(speeches))
	for _, s := range speeches {
		for _, name := range split(s.Speaker) {
			rows = append(rows, Row{SpeechID: s.ID, Speaker: name, Date: s.Date, Location: s.Location})
		}
	}
	return rows
}

// WeekStart returns Monday 00:00 of the week containing t
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// Columns orders the top speakers by the chart order. Top speakers missing
// from order follow in their given order.
func Columns(top, order []string) []string {
	cols := make([]string, 0, len(top))
	for _, name := range order {
		if slices.Contains(top, name) {
			cols = append(cols, name)
		}
	}
	for _, name := range top {
		if !slices.Contains(cols, name) {
			cols = append(cols, name)
		}
	}
	return cols
}

// Weekly counts, per week, the distinct speeches listing each top speaker.
func Weekly(rows []Row, top, order []string) *Table {
	return weekly(rows, Columns(top, order), func(name string) string {
		return speaker.Group(name, top, "")
	})
}

// WeeklyWithOthers is Weekly with every other politician counted under
// the Others column. Non-politicians are left out.
func WeeklyWithOthers(rows []Row, top, order []string, isPolitician func(string) bool) *Table {
	cols := append(Columns(top, order), constants.OthersLabel)
	return weekly(rows, cols, func(name string) string {
		if !slices.Contains(top, name) && !isPolitician(name) {
			return ""
		}
		return speaker.Group(name, top, constants.OthersLabel)
	})
}

// WeeklyByParty counts, per week, the distinct speeches of top speakers by party.
func WeeklyByParty(rows []Row, top, parties []string, party func(string) string) *Table {
	return weekly(rows, parties, func(name string) string {
		if slices.Contains(top, name) {
			return party(name)
		}
		return ""
	})
}

// weekly buckets rows by week and by the column group returns. An empty
// group drops the row.
func weekly(rows []Row, columns []string, group func(string) string) *Table {
	type key struct {
		week     time.Time
		column   string
		speechID int
	}

	seen := make(map[key]bool)
	counts := make(map[time.Time]map[string]int)
	for _, r := range rows {
		if r.Date.IsZero() {
			continue
		}
		col := group(r.Speaker)
		if col == "" || !slices.Contains(columns, col) {
			continue
		}
		k := key{week: WeekStart(r.Date), column: col, speechID: r.SpeechID}
		if seen[k] {
			continue
		}
		seen[k] = true
		if counts[k.week] == nil {
			counts[k.week] = make(map[string]int)
		}
		counts[k.week][col]++
	}

	weeks := make([]time.Time, 0, len(counts))
	for w := range counts {
		weeks = append(weeks, w)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Before(weeks[j]) })

	labels := make([]string, len(weeks))
	for i, w := range weeks {
		labels[i] = w.Format(constants.WeekLabelLayout)
	}

	t := NewTable(labels, columns)
	for i, w := range weeks {
		for j, col := range columns {
			t.Cells[i][j] = counts[w][col]
		}
	}
	return t
}
