package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"campaign-speeches/backend/internal/aggregate"
	"campaign-speeches/backend/internal/analysis"
	"campaign-speeches/backend/internal/mention"
	"campaign-speeches/backend/internal/speech"
	"campaign-speeches/backend/pkg/logger"
)

// Artifact file names
const (
	MarkdownFile       = "report.md"
	JSONFile           = "analysis.json"
	WeeklyFile         = "weekly.csv"
	WeeklyOthersFile   = "weekly_others.csv"
	WeeklyPartyFile    = "weekly_party.csv"
	PartyByStateFile   = "party_by_state.csv"
	ChannelByPartyFile = "channel_by_party.csv"
	MentionsFile       = "mentions.csv"
	SpeakerCountsFile  = "speaker_counts.csv"
	MentionsDOTFile    = "mentions.dot"
)

// Writer writes every artifact of a Result into one directory
type Writer struct {
	dir    string
	color  func(string) string
	logger *zap.Logger
}

// NewWriter creates a Writer. color picks the DOT node color of a speaker.
func NewWriter(dir string, color func(string) string) *Writer {
	return &Writer{dir: dir, color: color, logger: logger.Named("report")}
}

// WriteAll writes every artifact and returns their paths
func (w *Writer) WriteAll(res *analysis.Result) ([]string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{MarkdownFile, func(out io.Writer) error { return Markdown(out, res) }},
		{JSONFile, func(out io.Writer) error { return JSON(out, res) }},
		{WeeklyFile, func(out io.Writer) error { return TableCSV(out, "week", res.Weekly) }},
		{WeeklyOthersFile, func(out io.Writer) error { return TableCSV(out, "week", res.WeeklyOthers) }},
		{WeeklyPartyFile, func(out io.Writer) error { return TableCSV(out, "week", res.WeeklyParty) }},
		{PartyByStateFile, func(out io.Writer) error { return PartyByStateCSV(out, res.PartyByState, res.StateWinners) }},
		{ChannelByPartyFile, func(out io.Writer) error { return TableCSV(out, "channel", res.ChannelByParty) }},
		{MentionsFile, func(out io.Writer) error { return MatrixCSV(out, res.Mentions) }},
		{SpeakerCountsFile, func(out io.Writer) error { return CountsCSV(out, "speaker", "speeches", res.SpeakerCounts) }},
		{MentionsDOTFile, func(out io.Writer) error { return DOT(out, res.Mentions, w.color) }},
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(w.dir, f.name)
		if err := writeFile(path, f.write); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", f.name, err)
		}
		paths = append(paths, path)
	}

	w.logger.Info("Report written",
		zap.String("run_id", res.RunID),
		zap.String("dir", w.dir),
		zap.Int("files", len(paths)),
	)
	return paths, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// JSON writes the full result, indented
func JSON(w io.Writer, res *analysis.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// ReadJSON loads a result written by JSON
func ReadJSON(r io.Reader) (*analysis.Result, error) {
	var res analysis.Result
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, fmt.Errorf("failed to decode analysis: %w", err)
	}
	return &res, nil
}

// TableCSV writes a table with corner as the first header cell. A nil
// table writes nothing.
func TableCSV(w io.Writer, corner string, t *aggregate.Table) error {
	if t == nil {
		return nil
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{corner}, t.Columns...)); err != nil {
		return err
	}
	for i, row := range t.Rows {
		if err := cw.Write(append([]string{row}, itoa(t.Cells[i])...)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// PartyByStateCSV is TableCSV plus a winner column
func PartyByStateCSV(w io.Writer, t *aggregate.Table, winners map[string]string) error {
	if t == nil {
		return nil
	}
	cw := csv.NewWriter(w)
	header := append([]string{"state"}, t.Columns...)
	if err := cw.Write(append(header, "winner")); err != nil {
		return err
	}
	for i, row := range t.Rows {
		record := append([]string{row}, itoa(t.Cells[i])...)
		if err := cw.Write(append(record, winners[row])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// MatrixCSV writes the mention matrix, speakers on both axes
func MatrixCSV(w io.Writer, m *mention.Matrix) error {
	if m == nil {
		return nil
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"speaker"}, m.Speakers...)); err != nil {
		return err
	}
	for i, from := range m.Speakers {
		if err := cw.Write(append([]string{from}, itoa(m.Counts[i])...)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CountsCSV writes a two-column count list
func CountsCSV(w io.Writer, labelHeader, countHeader string, counts []speech.Count) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{labelHeader, countHeader}); err != nil {
		return err
	}
	for _, c := range counts {
		if err := cw.Write([]string{c.Label, strconv.Itoa(c.Count)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func itoa(values []int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.Itoa(v)
	}
	return out
}
