package speech

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "campaign-speeches/backend/pkg/errors"
)

const sampleCSV = "speaker,title,text,date,location,type\r\n" +
	"Joe Biden,Biden Rally,\"Joe Biden: (00:00)\r\nHello Ohio.\",\"Oct 22, 2020\",\"Toledo, Ohio\",Campaign Speech\r\n" +
	"Donald Trump,Trump Rally,\"Donald Trump: (00:05)\r\nThank you.\",\"Oct 24, 2020\",,Campaign Speech\r\n" +
	",Unknown,\"Speaker 1: (00:00)\r\nHi.\",not a date,CNN,Interview\r\n"

func TestRead(t *testing.T) {
	speeches, summary, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, speeches, 3)

	assert.Equal(t, 3, summary.Rows)
	assert.Equal(t, 1, summary.InvalidDates)

	first := speeches[0]
	assert.Equal(t, 0, first.ID)
	assert.Equal(t, "Joe Biden", first.Speaker)
	assert.Equal(t, "Joe Biden: (00:00)\nHello Ohio.", first.Text)
	assert.Equal(t, time.Date(2020, time.October, 22, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, "Toledo, Ohio", first.Location)

	assert.Equal(t, 2, speeches[2].ID)
	assert.False(t, speeches[2].HasDate())
	assert.Equal(t, "not a date", speeches[2].DateRaw)
	assert.Empty(t, first.DateRaw)
	assert.Equal(t, "", speeches[2].Speaker)
}

func TestRead_MissingColumn(t *testing.T) {
	_, _, err := Read(strings.NewReader("speaker,title\nA,B\n"))
	require.Error(t, err)

	var missing *apperrors.ErrDatasetMissingColumn
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "text", missing.Column)
}

func TestRead_ColumnOrderIndependent(t *testing.T) {
	csv := "type,date,text,speaker\nDebate,\"Sep 29, 2020\",hello,Mike Pence\n"
	speeches, _, err := Read(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, speeches, 1)
	assert.Equal(t, "Mike Pence", speeches[0].Speaker)
	assert.Equal(t, "Debate", speeches[0].Type)
	assert.Equal(t, "", speeches[0].Location)
}

func TestWriteRoundTrip(t *testing.T) {
	speeches, _, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, speeches))

	again, _, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, speeches, again)
}

func TestWrite_KeepsUnparsedDate(t *testing.T) {
	in := "speaker,title,text,date,location,type\nJoe Biden,T,hi,2020-10-20,Ohio,Campaign Speech\n"
	speeches, summary, err := Read(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.InvalidDates)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, speeches))
	assert.Contains(t, buf.String(), "Joe Biden,T,hi,2020-10-20,Ohio,Campaign Speech")
}

func TestMissingValues(t *testing.T) {
	speeches, _, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	got := MissingValues(speeches)
	want := []Count{
		{Label: "speaker", Count: 1},
		{Label: "title", Count: 0},
		{Label: "text", Count: 0},
		{Label: "date", Count: 1},
		{Label: "location", Count: 1},
		{Label: "type", Count: 0},
	}
	assert.Equal(t, want, got)
}

func TestCountByAndDateRange(t *testing.T) {
	speeches, _, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, []Count{
		{Label: "Campaign Speech", Count: 2},
		{Label: "Interview", Count: 1},
	}, CountBy(speeches, ByType))

	assert.Equal(t, []Count{
		{Label: "CNN", Count: 1},
		{Label: "Toledo, Ohio", Count: 1},
	}, CountBy(speeches, ByLocation))

	first, last := DateRange(speeches)
	assert.Equal(t, 22, first.Day())
	assert.Equal(t, 24, last.Day())
}

func TestParseID(t *testing.T) {
	id, err := ParseID("12")
	require.NoError(t, err)
	assert.Equal(t, 12, id)

	_, err = ParseID("-1")
	assert.Error(t, err)
	_, err = ParseID("abc")
	assert.Error(t, err)
}
