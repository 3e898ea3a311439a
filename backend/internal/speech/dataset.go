package speech

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"campaign-speeches/backend/internal/constants"
	apperrors "campaign-speeches/backend/pkg/errors"
	"campaign-speeches/backend/pkg/logger"
)

// Columns of the speeches CSV, in the order Write emits them
var Columns = []string{"speaker", "title", "text", "date", "location", "type"}

var requiredColumns = []string{"speaker", "text", "date"}

// LoadSummary describes what Read found in the file
type LoadSummary struct {
	Rows         int `json:"rows"`
	InvalidDates int `json:"invalid_dates"`
}

// Count is a label with a number of occurrences
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Load opens and parses a speeches CSV file
func Load(path string) ([]Speech, LoadSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadSummary{}, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses speeches from CSV with a header row. Columns are located by
// name; unknown columns are ignored.
func Read(r io.Reader) ([]Speech, LoadSummary, error) {
	log := logger.Named("dataset")

	cr := csv.NewReader(r)
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, LoadSummary{}, apperrors.NewDatasetMissingColumn(requiredColumns[0])
		}
		return nil, LoadSummary{}, apperrors.NewDatasetMalformedRow(1, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, LoadSummary{}, apperrors.NewDatasetMissingColumn(col)
		}
	}

	field := func(record []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var (
		speeches []Speech
		summary  LoadSummary
	)
	for {
		record, err := cr.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, summary, apperrors.NewDatasetMalformedRow(line, err)
		}

		s := Speech{
			ID:       len(speeches),
			Speaker:  strings.TrimSpace(field(record, "speaker")),
			Title:    field(record, "title"),
			Text:     field(record, "text"),
			Location: strings.TrimSpace(field(record, "location")),
			Type:     strings.TrimSpace(field(record, "type")),
		}
		if raw := strings.TrimSpace(field(record, "date")); raw != "" {
			if d, err := time.Parse(constants.DateLayout, raw); err == nil {
				s.Date = d
			} else {
				s.DateRaw = raw
				summary.InvalidDates++
				log.Debug("Unparseable date", zap.Int("row", s.ID), zap.String("date", raw))
			}
		} else {
			summary.InvalidDates++
		}
		speeches = append(speeches, s)
	}

	summary.Rows = len(speeches)
	log.Info("Dataset loaded",
		zap.Int("rows", summary.Rows),
		zap.Int("invalid_dates", summary.InvalidDates),
	)
	return speeches, summary, nil
}

// Write emits speeches in the CSV shape Read accepts. Dates that did not
// parse are written back as read.
func Write(w io.Writer, speeches []Speech) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, s := range speeches {
		date := s.DateRaw
		if s.HasDate() {
			date = s.Date.Format(constants.DateLayout)
		}
		if err := cw.Write([]string{s.Speaker, s.Title, s.Text, date, s.Location, s.Type}); err != nil {
			return fmt.Errorf("failed to write speech %d: %w", s.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MissingValues counts empty values per column, in Columns order
func MissingValues(speeches []Speech) []Count {
	missing := make([]int, len(Columns))
	for _, s := range speeches {
		values := []string{s.Speaker, s.Title, s.Text, "", s.Location, s.Type}
		for i, v := range values {
			if strings.TrimSpace(v) == "" && Columns[i] != "date" {
				missing[i]++
			}
		}
		if !s.HasDate() {
			missing[3]++
		}
	}

	out := make([]Count, len(Columns))
	for i, col := range Columns {
		out[i] = Count{Label: col, Count: missing[i]}
	}
	return out
}

// CountBy groups speeches by key and sorts by count descending, then label.
// Empty keys are skipped.
func CountBy(speeches []Speech, key func(Speech) string) []Count {
	counts := make(map[string]int)
	for _, s := range speeches {
		if k := key(s); k != "" {
			counts[k]++
		}
	}
	return SortCounts(counts)
}

// SortCounts turns a count map into a slice sorted by count descending,
// then label ascending
func SortCounts(counts map[string]int) []Count {
	out := make([]Count, 0, len(counts))
	for label, n := range counts {
		out = append(out, Count{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// DateRange returns the earliest and latest dated speech
func DateRange(speeches []Speech) (min, max time.Time) {
	for _, s := range speeches {
		if !s.HasDate() {
			continue
		}
		if min.IsZero() || s.Date.Before(min) {
			min = s.Date
		}
		if max.IsZero() || s.Date.After(max) {
			max = s.Date
		}
	}
	return min, max
}

// ByType and ByLocation are the CountBy keys used by the report
func ByType(s Speech) string { return s.Type }

func ByLocation(s Speech) string { return s.Location }

// ParseID parses a speech ID from a URL parameter
func ParseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid speech id %q", raw)
	}
	return id, nil
}
