package aggregate

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-speeches/backend/internal/constants"
	"campaign-speeches/backend/internal/speech"
)

func day(d int) time.Time {
	return time.Date(2020, time.October, d, 0, 0, 0, 0, time.UTC)
}

var (
	top     = []string{"Donald Trump", "Joe Biden", "Kamala Harris", "Mike Pence"}
	order   = []string{"Joe Biden", "Kamala Harris", "Bernie Sanders", "Donald Trump", "Mike Pence"}
	parties = []string{constants.PartyDemocratic, constants.PartyRepublican}
)

func party(name string) string {
	switch name {
	case "Donald Trump", "Mike Pence":
		return constants.PartyRepublican
	}
	return constants.PartyDemocratic
}

func split(label string) []string {
	var out []string
	for _, p := range strings.Split(label, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func testRows() []Row {
	return Explode([]speech.Speech{
		{ID: 0, Speaker: "Joe Biden", Date: day(20), Location: "Scranton, Pennsylvania"},
		{ID: 1, Speaker: "Joe Biden, Kamala Harris", Date: day(25), Location: "Pennsylvania"},
		{ID: 2, Speaker: "Donald Trump", Date: day(21), Location: "Fox News"},
		{ID: 3, Speaker: "Donald Trump", Date: day(26), Location: "Erie, Pennsylvania"},
		{ID: 4, Speaker: "Barack Obama", Date: day(22), Location: "Orlando, Florida"},
		{ID: 5, Speaker: "Crowd Member", Date: day(22)},
		{ID: 6, Speaker: "Mike Pence", Location: "Virtual"},
		{ID: 7, Speaker: "Donald Trump", Date: day(27), Location: "The White House"},
		{ID: 8, Speaker: " "},
	}, split)
}

func TestExplode(t *testing.T) {
	rows := testRows()
	require.Len(t, rows, 9)
	assert.Equal(t, Row{SpeechID: 1, Speaker: "Kamala Harris", Date: day(25), Location: "Pennsylvania"}, rows[2])
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		in   time.Time
		want time.Time
	}{
		{day(19), day(19)},
		{day(25), day(19)},
		{day(26), day(26)},
		{time.Date(2020, time.November, 1, 15, 30, 0, 0, time.UTC), day(26)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WeekStart(tt.in), tt.in.String())
	}
}

func TestColumns(t *testing.T) {
	assert.Equal(t,
		[]string{"Joe Biden", "Kamala Harris", "Donald Trump", "Mike Pence"},
		Columns(top, order))
	assert.Equal(t, []string{"Joe Biden", "Ben Carson"}, Columns([]string{"Ben Carson", "Joe Biden"}, order))
}

func TestWeekly(t *testing.T) {
	table := Weekly(testRows(), top, order)
	assert.Equal(t, []string{"Oct 19", "Oct 26"}, table.Rows)
	assert.Equal(t, [][]int{{2, 1, 1, 0}, {0, 0, 2, 0}}, table.Cells)
	assert.Equal(t, 3, table.ColumnTotal("Donald Trump"))
	assert.Equal(t, 4, table.RowTotal("Oct 19"))
}

func TestWeeklyWithOthers(t *testing.T) {
	politicians := append([]string{"Barack Obama"}, top...)
	table := WeeklyWithOthers(testRows(), top, order, func(name string) bool {
		return slices.Contains(politicians, name)
	})
	assert.Equal(t, constants.OthersLabel, table.Columns[len(table.Columns)-1])
	assert.Equal(t, [][]int{{2, 1, 1, 0, 1}, {0, 0, 2, 0, 0}}, table.Cells)
}

func TestWeeklyByParty(t *testing.T) {
	table := WeeklyByParty(testRows(), top, parties, party)
	assert.Equal(t, parties, table.Columns)
	assert.Equal(t, [][]int{{2, 1}, {0, 2}}, table.Cells)
}

func newLocator() *Locator {
	return NewLocator([]string{"pennsylvania", "florida"}, []string{"ABC", "NBC", "Fox News", "Virtual", "CNN"})
}

func TestState(t *testing.T) {
	loc := newLocator()
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Scranton, Pennsylvania", "Pennsylvania", true},
		{"Pennsylvania", "Pennsylvania", true},
		{"florida", "florida", true},
		{"Fox News", "", false},
		{"The White House", "", false},
		{"Washington, D.C., USA", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := loc.State(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestChannel(t *testing.T) {
	loc := newLocator()
	got, ok := loc.Channel("Fox News")
	assert.True(t, ok)
	assert.Equal(t, "Fox News", got)
	_, ok = loc.Channel("fox news")
	assert.False(t, ok)
}

func TestPartyByState(t *testing.T) {
	table := newLocator().PartyByState(testRows(), top, parties, party)
	assert.Equal(t, []string{"Pennsylvania"}, table.Rows)
	assert.Equal(t, [][]int{{2, 1}}, table.Cells)
	assert.Equal(t, map[string]string{"Pennsylvania": constants.PartyDemocratic}, Winners(table))
}

func TestChannelByParty(t *testing.T) {
	table := newLocator().ChannelByParty(testRows(), top, parties, party)
	assert.Equal(t, []string{"ABC", "NBC", "Fox News", "Virtual", "CNN"}, table.Rows)
	assert.Equal(t, 1, table.Get("Fox News", constants.PartyRepublican))
	assert.Equal(t, 1, table.Get("Virtual", constants.PartyRepublican))
	assert.Equal(t, 2, table.ColumnTotal(constants.PartyRepublican))
	assert.Equal(t, 0, table.ColumnTotal(constants.PartyDemocratic))
}

func TestUnclassified(t *testing.T) {
	rows := newLocator().Unclassified(testRows(), top)
	require.Len(t, rows, 1)
	assert.Equal(t, 7, rows[0].SpeechID)
}

func TestWinners(t *testing.T) {
	table := NewTable([]string{"Ohio", "Iowa", "Utah"}, parties)
	table.Add("Ohio", constants.PartyDemocratic, 2)
	table.Add("Ohio", constants.PartyRepublican, 2)
	table.Add("Iowa", constants.PartyRepublican, 1)
	table.Add("Nowhere", constants.PartyRepublican, 1)

	assert.Equal(t, map[string]string{
		"Ohio": constants.PartyTie,
		"Iowa": constants.PartyRepublican,
		"Utah": constants.PartyTie,
	}, Winners(table))
}
