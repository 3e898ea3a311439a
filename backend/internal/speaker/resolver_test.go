package speaker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-speeches/backend/internal/lexicon"
	"campaign-speeches/backend/internal/speech"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	lex, err := lexicon.Default()
	require.NoError(t, err)
	return NewResolver(lex)
}

func TestCanonical(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		in   string
		want string
	}{
		{"President Donald J. Trump", "Donald Trump"},
		{"Trump", "Donald Trump"},
		{"VIce President Biden", "Joe Biden"},
		{"Joe Biden ", "Joe Biden"},
		{"Vice President Mike Pence ", "Mike Pence"},
		{"Kamala Harris ", "Kamala Harris"},
		{"Senator  Harris", "Kamala Harris"},
		{"Sanders", "Bernie Sanders"},
		{"joe biden", "Joe Biden"},
		{"Beto O’Rourke", "Beto O'Rourke"},
		{"Chris Wallace", "Chris Wallace"},
		{"  Speaker 1 ", "Speaker 1"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Canonical(tt.in))
		})
	}
}

func TestIsAmbiguous(t *testing.T) {
	r := newTestResolver(t)

	for _, label := range []string{"", "  ", "???", "Multiple Speakers", "democratic candidates"} {
		assert.True(t, r.IsAmbiguous(label), label)
	}
	for _, label := range []string{"Joe Biden", "Joe Biden, Kamala Harris", "Speaker 1"} {
		assert.False(t, r.IsAmbiguous(label), label)
	}
}

func TestIsGeneric(t *testing.T) {
	r := newTestResolver(t)

	assert.True(t, r.IsGeneric("Speaker 12"))
	assert.True(t, r.IsGeneric(" Speaker"))
	assert.True(t, r.IsGeneric("Moderator 2"))
	assert.True(t, r.IsGeneric("Debate Moderator"))
	assert.True(t, r.IsGeneric("Crowd"))
	assert.True(t, r.IsGeneric("speaker 2"))
	assert.True(t, r.IsGeneric("MODERATOR"))
	assert.True(t, r.IsGeneric("the crowd"))
	assert.False(t, r.IsGeneric("Nancy Pelosi"))
}

func TestGroup(t *testing.T) {
	top := []string{"Joe Biden", "Donald Trump"}
	assert.Equal(t, "Joe Biden", Group("Joe Biden", top, "Others"))
	assert.Equal(t, "Others", Group("Mike Pence", top, "Others"))
	assert.Equal(t, "", Group("Mike Pence", nil, ""))
}

func TestResolve(t *testing.T) {
	r := newTestResolver(t)

	assert.Equal(t, []string{"Joe Biden", "Kamala Harris"}, r.Resolve("Joe Biden, Senator Kamala Harris"))
	assert.Equal(t, []string{"Donald Trump"}, r.Resolve("Donald Trump,"))
	assert.Nil(t, r.Resolve("Multiple Speakers"))
	assert.Nil(t, r.Resolve(""))
}

func TestCountAndTop(t *testing.T) {
	r := newTestResolver(t)

	speeches := []speech.Speech{
		{Speaker: "Joe Biden"},
		{Speaker: "Joe Biden"},
		{Speaker: "Donald Trump"},
		{Speaker: "Donald Trump"},
		{Speaker: "Mike Pence"},
		{Speaker: "Joe Biden, Kamala Harris"},
		{Speaker: "Multiple Speakers"},
		{Speaker: "Multiple Speakers"},
		{Speaker: "Multiple Speakers"},
		{Speaker: ""},
	}

	counts := r.Count(speeches)
	assert.Equal(t, []speech.Count{
		{Label: "Donald Trump", Count: 2},
		{Label: "Joe Biden", Count: 2},
		{Label: "Joe Biden, Kamala Harris", Count: 1},
		{Label: "Mike Pence", Count: 1},
	}, counts)

	assert.Equal(t, []string{"Donald Trump", "Joe Biden"}, Top(counts, 2))
	assert.Len(t, Top(counts, 10), 4)
	assert.Empty(t, Top(counts, 0))

	shared := r.CountShared(speeches, true, []string{"Mike Pence"})
	assert.Equal(t, []speech.Count{
		{Label: "Joe Biden", Count: 3},
		{Label: "Donald Trump", Count: 2},
		{Label: "Kamala Harris", Count: 1},
	}, shared)

	solo := r.CountShared(speeches, false, nil)
	assert.Equal(t, []speech.Count{
		{Label: "Donald Trump", Count: 2},
		{Label: "Joe Biden", Count: 2},
		{Label: "Mike Pence", Count: 1},
	}, solo)
}

func TestSplitLabel(t *testing.T) {
	assert.Equal(t, []string{"A", "B C"}, SplitLabel(" A ,B C, "))
	assert.Nil(t, SplitLabel(""))
}
