// Package report renders an analysis Result as Markdown, JSON, CSV and a
// Graphviz mention graph.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"campaign-speeches/backend/internal/aggregate"
	"campaign-speeches/backend/internal/analysis"
	"campaign-speeches/backend/internal/constants"
	"campaign-speeches/backend/internal/speech"
)

const (
	// MarkdownTopWords is how many words per speaker the Markdown lists
	MarkdownTopWords = 10
	// MarkdownMaxRows caps long count tables
	MarkdownMaxRows = 20
)

// Markdown writes the human-readable report
func Markdown(w io.Writer, res *analysis.Result) error {
	b := bufio.NewWriter(w)
	md := &mdWriter{w: b}

	md.line("# Campaign speech analysis")
	md.line("")
	md.linef("Run `%s`, generated %s.", res.RunID, res.CreatedAt.Format("2006-01-02 15:04 MST"))
	md.line("")

	md.line("## Dataset")
	md.line("")
	md.linef("- Speeches: %d", res.Speeches)
	if !res.DateFrom.IsZero() {
		md.linef("- Dates: %s to %s (%d without a date)",
			res.DateFrom.Format(constants.DateLayout), res.DateTo.Format(constants.DateLayout), res.InvalidDates)
	}
	md.linef("- Utterances: %d (%d unattributed blocks dropped)", res.SegmentCount, res.DroppedBlocks)
	md.line("")
	md.counts("Missing values", "Column", "Missing", res.MissingValues, 0)
	md.counts("Speech types", "Type", "Speeches", res.TypeCounts, MarkdownMaxRows)

	md.line("## Speakers")
	md.line("")
	md.linef("Top %d: %s", len(res.Top), strings.Join(res.Top, ", "))
	md.line("")
	md.counts("Speeches per speaker", "Speaker", "Speeches", res.SpeakerCounts, MarkdownMaxRows)
	md.counts("Speeches per speaker, shared events split", "Speaker", "Speeches", res.SharedCounts, MarkdownMaxRows)

	md.line("### Ambiguous speaker labels")
	md.line("")
	for _, ins := range res.Ambiguous {
		label := ins.RowLabel
		if label == "" {
			label = "(empty)"
		}
		labels := make([]string, 0, len(ins.Labels))
		for _, c := range ins.Labels {
			labels = append(labels, fmt.Sprintf("%s (%d)", c.Label, c.Count))
		}
		if len(labels) == 0 {
			labels = append(labels, "none")
		}
		md.linef("- **%s**, %d speeches: %s", label, ins.Speeches, strings.Join(labels, ", "))
	}
	md.line("")
	md.counts("Heard in "+constants.MultipleSpeakersLabel+" transcripts", "Speaker", "Speeches", res.MultipleTop, 0)

	md.table("Speeches per week", "Week", res.Weekly)
	md.table("Speeches per week, other politicians grouped", "Week", res.WeeklyOthers)
	md.table("Speeches per week by party", "Week", res.WeeklyParty)

	if res.PartyByState != nil {
		md.line("## Speeches per state")
		md.line("")
		header := append([]string{"State"}, res.PartyByState.Columns...)
		header = append(header, "Winner")
		var rows [][]string
		for i, state := range res.PartyByState.Rows {
			row := []string{state}
			for _, v := range res.PartyByState.Cells[i] {
				row = append(row, strconv.Itoa(v))
			}
			rows = append(rows, append(row, res.StateWinners[state]))
		}
		md.grid(header, rows)
	}
	md.table("Speeches per news channel", "Channel", res.ChannelByParty)
	md.linef("Top-speaker speeches with neither a state nor a channel: %d", len(res.Unclassified))
	md.line("")

	md.line("## Words")
	md.line("")
	md.counts("Total words", "Speaker", "Words", res.TotalWords, 0)
	for _, name := range res.Top {
		words := res.TopWords[name]
		if len(words) > MarkdownTopWords {
			words = words[:MarkdownTopWords]
		}
		list := make([]string, 0, len(words))
		for _, c := range words {
			list = append(list, fmt.Sprintf("%s (%d)", c.Label, c.Count))
		}
		md.linef("- **%s**: %s", name, strings.Join(list, ", "))
	}
	md.line("")
	if len(res.Punctuation) > 0 {
		md.linef("Punctuation found: `%s`", strings.Join(res.Punctuation, " "))
		md.line("")
	}

	if res.Mentions != nil {
		md.line("## Mentions")
		md.line("")
		md.line("Rows mention columns.")
		md.line("")
		header := append([]string{""}, res.Mentions.Speakers...)
		rows := make([][]string, len(res.Mentions.Speakers))
		for i, from := range res.Mentions.Speakers {
			rows[i] = []string{from}
			for _, v := range res.Mentions.Counts[i] {
				rows[i] = append(rows[i], strconv.Itoa(v))
			}
		}
		md.grid(header, rows)
	}

	if len(res.Summaries) > 0 {
		md.line("## Topics")
		md.line("")
		for _, name := range res.Top {
			if s, ok := res.Summaries[name]; ok {
				md.linef("- **%s**: %s", name, s)
			}
		}
		md.line("")
	}

	if md.err != nil {
		return md.err
	}
	return b.Flush()
}

// mdWriter keeps the first write error
type mdWriter struct {
	w   io.Writer
	err error
}

func (m *mdWriter) line(s string) {
	if m.err != nil {
		return
	}
	_, m.err = io.WriteString(m.w, s+"\n")
}

func (m *mdWriter) linef(format string, args ...any) {
	m.line(fmt.Sprintf(format, args...))
}

func (m *mdWriter) grid(header []string, rows [][]string) {
	m.line("| " + strings.Join(header, " | ") + " |")
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	m.line("|" + strings.Join(sep, "|") + "|")
	for _, r := range rows {
		m.line("| " + strings.Join(r, " | ") + " |")
	}
	m.line("")
}

func (m *mdWriter) counts(title, labelHeader, countHeader string, counts []speech.Count, limit int) {
	if len(counts) == 0 {
		return
	}
	m.line("### " + title)
	m.line("")
	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	rows := make([][]string, len(counts))
	for i, c := range counts {
		rows[i] = []string{c.Label, strconv.Itoa(c.Count)}
	}
	m.grid([]string{labelHeader, countHeader}, rows)
}

func (m *mdWriter) table(title, corner string, t *aggregate.Table) {
	if t == nil {
		return
	}
	m.line("## " + title)
	m.line("")
	if len(t.Rows) == 0 {
		m.line("No data.")
		m.line("")
		return
	}
	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = []string{r}
		for _, v := range t.Cells[i] {
			rows[i] = append(rows[i], strconv.Itoa(v))
		}
	}
	m.grid(append([]string{corner}, t.Columns...), rows)
}
