package lexicon

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "campaign-speeches/backend/pkg/errors"
)

func TestDefault(t *testing.T) {
	lex, err := Default()
	require.NoError(t, err)

	assert.Len(t, lex.Candidates, 5)
	assert.Equal(t, []string{"Joe Biden", "Kamala Harris", "Bernie Sanders", "Donald Trump", "Mike Pence"}, lex.ChartOrder)
	assert.Equal(t, "Republican", lex.Party("Mike Pence"))
	assert.Equal(t, "", lex.Party("Barack Obama"))
	assert.Equal(t, "#d62728", lex.Color("Donald Trump"))
	assert.Equal(t, "#949494", lex.Color("Others"))
	assert.True(t, lex.IsPolitician("Barack Obama"))
	assert.True(t, lex.IsPolitician("Joe Biden"))
	assert.False(t, lex.IsPolitician("Speaker 1"))
	assert.Len(t, lex.States, 50)
	assert.Equal(t, []string{"Democratic", "Republican"}, lex.Parties())

	_, stop := lex.StopWordSet()["the"]
	assert.True(t, stop)
	_, stop = lex.StopWordSet()["people"]
	assert.True(t, stop)
}

func TestMentionPatternsAreCopies(t *testing.T) {
	lex, err := Default()
	require.NoError(t, err)

	patterns := lex.MentionPatterns()
	patterns["Joe Biden"][0] = "changed"

	c, ok := lex.Candidate("Joe Biden")
	require.True(t, ok)
	assert.Equal(t, "joe biden", c.Mentions[0])
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"no candidates", "states: [ohio]\n", "candidates"},
		{"candidate without party", "candidates:\n  - name: A\n", "candidates"},
		{"duplicate candidate", "candidates:\n  - {name: A, party: X}\n  - {name: A, party: X}\n", "candidates"},
		{
			"alias claimed twice",
			"candidates:\n  - {name: A, party: X}\naliases:\n  A: [Boss]\n  B: [boss]\n",
			"aliases",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			var invalid *apperrors.ErrLexiconInvalid
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	content := "candidates:\n  - name: Jane Doe\n    party: Independent\n    mentions: [doe]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lex, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Independent", lex.Party("Jane Doe"))
	assert.Equal(t, map[string][]string{"Jane Doe": {"doe"}}, lex.MentionPatterns())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
