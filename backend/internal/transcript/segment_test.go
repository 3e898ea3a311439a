package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"crlf", "a\r\nb\rc", "a\nb\nc"},
		{"annotations", "We will [crosstalk 00:12] win [inaudible].", "We will  win ."},
		{"annotation does not cross lines", "open [bracket\nclosed]", "open [bracket\nclosed]"},
		{"nbsp line", "A: (00:01)\r\n\u00a0\r\ntext", "A: (00:01)\n \ntext"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestSplit(t *testing.T) {
	seg := NewSegmenter([]string{"Commercial"})

	text := "Joe Biden: (00:00)\r\n" +
		"Hello, Ohio. [applause]\r\n" +
		" \r\n" +
		"Speaker 1: (01:12)\r\n" +
		"Four more years!\r\n" +
		"Still speaking.\r\n" +
		"Commercial: (48:14)\r\n" +
		"Buy things.\r\n" +
		"Vice President Joe Biden : (1:02:03)\r\n" +
		"Back again.\r\n" +
		"Donald Trump: (1:05:00)\r\n"

	got := seg.Split(text)
	want := []Utterance{
		{Label: "Joe Biden", Offset: "00:00", Text: "Hello, Ohio."},
		{Label: "Speaker 1", Offset: "01:12", Text: "Four more years! Still speaking."},
		{Label: "Vice President Joe Biden", Offset: "1:02:03", Text: "Back again."},
	}
	assert.Equal(t, want, got)
}

func TestSplit_Preamble(t *testing.T) {
	seg := NewSegmenter(nil)

	got := seg.Split("Opening remarks without a header.\nKamala Harris: (00:10)\nThanks.")
	assert.Equal(t, []Utterance{
		{Label: "", Text: "Opening remarks without a header."},
		{Label: "Kamala Harris", Offset: "00:10", Text: "Thanks."},
	}, got)

	assert.Empty(t, seg.Split(""))
	assert.Equal(t, []Utterance{{Text: "just text"}}, seg.Split("just text"))
}

func TestLabels(t *testing.T) {
	text := "Moderator: (00:00)\nWelcome.\nBernie Sanders: (00:30)\nHi.\nSpeaker 3: (00:45)\nYes.\nModerator: (01:00)\nThanks.\n???: (02:00)\nhm"
	assert.Equal(t, []string{"Moderator", "Bernie Sanders", "???"}, Labels(text))

	assert.Equal(t, []string{"Joe Biden"}, Labels("Speaker 1: (00:00)\nhi\nJoe Biden: (00:10)\nyo"))
	assert.Equal(t, []string{"Speaker of the House"}, Labels("SPEAKER 12: (00:00)\nhi\nSpeaker: (00:05)\nhm\nSpeaker of the House: (00:10)\nyo"))
	assert.Empty(t, Labels("no headers here"))
}

func TestStripHeader(t *testing.T) {
	assert.Equal(t, "body\nmore", StripHeader("Joe Biden: (00:00)\nbody\nmore"))
	assert.Equal(t, "no newline", StripHeader("no newline"))
	assert.Equal(t, "", StripHeader("only a title\n"))
}

func TestIsHeader(t *testing.T) {
	assert.True(t, IsHeader("Mike Pence: (12:34)"))
	assert.True(t, IsHeader("  Mike Pence: (1:12:34)  "))
	assert.False(t, IsHeader("Mike Pence: we said (12:34) earlier"))
	assert.False(t, IsHeader("The time: 12:34"))
	assert.False(t, IsHeader(": (12:34)"))
}
