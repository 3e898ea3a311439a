package discord

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-speeches/backend/internal/constants"
	apperrors "campaign-speeches/backend/pkg/errors"
)

type fakeSender struct {
	sent []*discordgo.MessageSend
	err  error
}

func (f *fakeSender) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, data)
	return &discordgo.Message{ChannelID: channelID, Content: data.Content}, nil
}

func TestFormatReport(t *testing.T) {
	in := "# Title\n\n| A | B |\n|---|---|\n| x | 10 |\n| long | 2 |\n\n- one\n- two"
	want := "**Title**\n\n```\nA      B\nx     10\nlong   2\n```\n\n• one\n• two"
	assert.Equal(t, want, FormatReport(in))
}

func TestFormatReport_KeepsCodeBlocks(t *testing.T) {
	in := "## Run\n```\n# not a header\n- not a list\n```"
	assert.Equal(t, "**Run**\n```\n# not a header\n- not a list\n```", FormatReport(in))
}

func TestSplitMessage(t *testing.T) {
	line := strings.Repeat("a", 30)
	content := strings.Join([]string{line, line, line, line, line}, "\n")

	chunks := splitMessage(content, 70)
	require.Len(t, chunks, 3)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 70)
	}
	assert.Equal(t, content, strings.Join(chunks, "\n"))

	assert.Equal(t, []string{"short"}, splitMessage("short", 70))
}

func TestSplitMessage_LongLine(t *testing.T) {
	content := strings.Repeat("b", 200)
	chunks := splitMessage(content, 50)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 50)
	}
	assert.Equal(t, content, strings.Join(chunks, ""))
}

func TestSplitMessage_CodeBlocks(t *testing.T) {
	var b strings.Builder
	b.WriteString("intro\n```\n")
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&b, "%s\n", strings.Repeat("x", 20))
	}
	b.WriteString("```\nend")

	chunks := splitMessage(b.String(), 80)
	require.Greater(t, len(chunks), 1)
	for i, c := range chunks {
		assert.LessOrEqual(t, len(c), 80)
		assert.Zero(t, strings.Count(c, "```")%2, "chunk %d leaves a code block open", i)
	}
	assert.True(t, strings.HasSuffix(chunks[len(chunks)-1], "end"))
}

func TestPublish(t *testing.T) {
	sender := &fakeSender{}
	p := NewPublisher(sender, "chan-1")
	p.delay = 0

	var b strings.Builder
	b.WriteString("# Campaign speech analysis\n")
	for i := 0; i < 150; i++ {
		fmt.Fprintf(&b, "- speaker %03d said something notable\n", i)
	}
	attachment := Attachment{Name: "analysis.json", ContentType: "application/json", Data: []byte(`{"run_id":"x"}`)}

	require.NoError(t, p.Publish(context.Background(), b.String(), attachment))
	require.Greater(t, len(sender.sent), 1)

	for i, msg := range sender.sent {
		assert.LessOrEqual(t, len(msg.Content), constants.DiscordMaxMessageLength)
		assert.Contains(t, msg.Content, fmt.Sprintf("*(Part %d/%d)*", i+1, len(sender.sent)))
		if i < len(sender.sent)-1 {
			assert.Empty(t, msg.Files)
		}
	}
	assert.True(t, strings.HasPrefix(sender.sent[0].Content, "**Campaign speech analysis**"))

	last := sender.sent[len(sender.sent)-1]
	require.Len(t, last.Files, 1)
	assert.Equal(t, "analysis.json", last.Files[0].Name)
	data, err := io.ReadAll(last.Files[0].Reader)
	require.NoError(t, err)
	assert.JSONEq(t, `{"run_id":"x"}`, string(data))
}

func TestPublish_SingleMessage(t *testing.T) {
	sender := &fakeSender{}
	require.NoError(t, NewPublisher(sender, "chan-1").Publish(context.Background(), "## Short"))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "**Short**", sender.sent[0].Content)
}

func TestPublish_Error(t *testing.T) {
	sender := &fakeSender{err: errors.New("missing access")}
	err := NewPublisher(sender, "chan-1").Publish(context.Background(), "report")

	var pubErr *apperrors.ErrPublishFailed
	require.True(t, errors.As(err, &pubErr))
	assert.Equal(t, "chan-1", pubErr.ChannelID)
}
