package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-speeches/backend/internal/aggregate"
	"campaign-speeches/backend/internal/analysis"
	"campaign-speeches/backend/internal/constants"
	"campaign-speeches/backend/internal/mention"
	"campaign-speeches/backend/internal/speech"
)

func testResult() *analysis.Result {
	weekly := aggregate.NewTable([]string{"Oct 19", "Oct 26"}, []string{"Joe Biden", "Donald Trump"})
	weekly.Add("Oct 19", "Joe Biden", 1)
	weekly.Add("Oct 19", "Donald Trump", 2)
	weekly.Add("Oct 26", "Joe Biden", 1)

	parties := []string{constants.PartyDemocratic, constants.PartyRepublican}
	states := aggregate.NewTable([]string{"Ohio", "Pennsylvania"}, parties)
	states.Add("Ohio", constants.PartyRepublican, 1)
	states.Add("Pennsylvania", constants.PartyDemocratic, 2)

	m := mention.NewMatrix([]string{"Joe Biden", "Donald Trump"})
	m.Set("Joe Biden", "Donald Trump", 3)
	m.Set("Donald Trump", "Joe Biden", 2)
	m.Set("Donald Trump", "Donald Trump", 1)

	return &analysis.Result{
		RunID:     "run-1",
		CreatedAt: time.Date(2020, time.November, 2, 12, 0, 0, 0, time.UTC),
		Speeches:  3,
		DateFrom:  time.Date(2020, time.October, 20, 0, 0, 0, 0, time.UTC),
		DateTo:    time.Date(2020, time.October, 26, 0, 0, 0, 0, time.UTC),
		SpeakerCounts: []speech.Count{
			{Label: "Donald Trump", Count: 2},
			{Label: "Joe Biden", Count: 1},
		},
		Top:          []string{"Donald Trump", "Joe Biden"},
		Ambiguous:    []analysis.Inspection{{RowLabel: "???", Speeches: 1, Labels: []speech.Count{{Label: "Speaker 1", Count: 1}}}},
		Weekly:       weekly,
		PartyByState: states,
		StateWinners: aggregate.Winners(states),
		TopWords: map[string][]speech.Count{
			"Joe Biden": {{Label: "jobs", Count: 4}},
		},
		Mentions:  m,
		Summaries: map[string]string{"Joe Biden": "Jobs and the economy."},
	}
}

func color(name string) string {
	if name == "Joe Biden" {
		return "#1f77b4"
	}
	return "#d62728"
}

func TestMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, testResult()))
	out := buf.String()

	assert.Contains(t, out, "# Campaign speech analysis")
	assert.Contains(t, out, "Run `run-1`, generated 2020-11-02 12:00 UTC.")
	assert.Contains(t, out, "- Dates: Oct 20, 2020 to Oct 26, 2020 (0 without a date)")
	assert.Contains(t, out, "Top 2: Donald Trump, Joe Biden")
	assert.Contains(t, out, "| Week | Joe Biden | Donald Trump |\n|---|---|---|\n| Oct 19 | 1 | 2 |\n| Oct 26 | 1 | 0 |")
	assert.Contains(t, out, "| Pennsylvania | 2 | 0 | Democratic |")
	assert.Contains(t, out, "- **???**, 1 speeches: Speaker 1 (1)")
	assert.Contains(t, out, "- **Joe Biden**: jobs (4)")
	assert.Contains(t, out, "| Donald Trump | 2 | 1 |")
	assert.Contains(t, out, "- **Joe Biden**: Jobs and the economy.")
	assert.NotContains(t, out, "Speeches per news channel")
}

func TestTableCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TableCSV(&buf, "week", testResult().Weekly))
	assert.Equal(t, "week,Joe Biden,Donald Trump\nOct 19,1,2\nOct 26,1,0\n", buf.String())

	buf.Reset()
	require.NoError(t, TableCSV(&buf, "week", nil))
	assert.Empty(t, buf.String())
}

func TestPartyByStateCSV(t *testing.T) {
	res := testResult()
	var buf bytes.Buffer
	require.NoError(t, PartyByStateCSV(&buf, res.PartyByState, res.StateWinners))
	assert.Equal(t,
		"state,Democratic,Republican,winner\nOhio,0,1,Republican\nPennsylvania,2,0,Democratic\n",
		buf.String())
}

func TestMatrixAndCountsCSV(t *testing.T) {
	res := testResult()
	var buf bytes.Buffer
	require.NoError(t, MatrixCSV(&buf, res.Mentions))
	assert.Equal(t, "speaker,Joe Biden,Donald Trump\nJoe Biden,0,3\nDonald Trump,2,1\n", buf.String())

	buf.Reset()
	require.NoError(t, CountsCSV(&buf, "speaker", "speeches", res.SpeakerCounts))
	assert.Equal(t, "speaker,speeches\nDonald Trump,2\nJoe Biden,1\n", buf.String())
}

func TestDOT(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DOT(&buf, testResult().Mentions, color))
	out := buf.String()

	assert.Contains(t, out, "digraph mentions {")
	assert.Contains(t, out, `"Joe Biden" [fillcolor="#1f77b4"];`)
	assert.Contains(t, out, `"Joe Biden" -> "Donald Trump" [label=3, penwidth=5.0];`)
	assert.Contains(t, out, `"Donald Trump" -> "Joe Biden" [label=2, penwidth=3.7];`)
	assert.NotContains(t, out, `"Donald Trump" -> "Donald Trump"`)
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	res := testResult()

	paths, err := NewWriter(dir, color).WriteAll(res)
	require.NoError(t, err)
	assert.Len(t, paths, 10)
	for _, p := range paths {
		assert.FileExists(t, p)
	}

	f, err := os.Open(filepath.Join(dir, JSONFile))
	require.NoError(t, err)
	defer f.Close()
	loaded, err := ReadJSON(f)
	require.NoError(t, err)
	assert.Equal(t, res.RunID, loaded.RunID)
	assert.Equal(t, res.Mentions.Counts, loaded.Mentions.Counts)
	assert.Equal(t, 3, loaded.Mentions.Get("Joe Biden", "Donald Trump"))
}
