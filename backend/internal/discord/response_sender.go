// Package discord posts analysis reports to a Discord channel.
package discord

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"campaign-speeches/backend/internal/constants"
	apperrors "campaign-speeches/backend/pkg/errors"
	"campaign-speeches/backend/pkg/logger"
)

// MessageSender is the part of *discordgo.Session the publisher needs
type MessageSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Attachment is a file posted with the last message
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Publisher sends reports to one channel
type Publisher struct {
	sender    MessageSender
	channelID string
	delay     time.Duration
	logger    *zap.Logger
}

// NewPublisher creates a Publisher
func NewPublisher(sender MessageSender, channelID string) *Publisher {
	return &Publisher{
		sender:    sender,
		channelID: channelID,
		delay:     100 * time.Millisecond,
		logger:    logger.Named("discord"),
	}
}

// Open starts a bot session from a token. Publishing only needs the REST
// API, so no gateway connection is made.
func Open(token string) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	return session, nil
}

// Publish posts a Markdown report split into messages that fit Discord's
// limit, attaching files to the last one.
func (p *Publisher) Publish(ctx context.Context, markdown string, files ...Attachment) error {
	maxLength := constants.DiscordMaxMessageLength

	// Part indicator format: "*(Part X/Y)*" is about 15 chars, so reserve 20
	const partIndicatorReserve = 20
	chunks := splitMessage(FormatReport(markdown), maxLength-partIndicatorReserve)

	for i, chunk := range chunks {
		message := chunk
		if len(chunks) > 1 {
			message = chunk + "\n" + fmt.Sprintf("*(Part %d/%d)*", i+1, len(chunks))
		}

		data := &discordgo.MessageSend{Content: message}
		if i == len(chunks)-1 {
			for _, f := range files {
				data.Files = append(data.Files, &discordgo.File{
					Name:        f.Name,
					ContentType: f.ContentType,
					Reader:      bytes.NewReader(f.Data),
				})
			}
		}

		if _, err := p.sender.ChannelMessageSendComplex(p.channelID, data, discordgo.WithContext(ctx)); err != nil {
			p.logger.Error("Failed to send message chunk",
				zap.Error(err),
				zap.String("channel_id", p.channelID),
				zap.Int("chunk", i+1),
				zap.Int("total_chunks", len(chunks)),
			)
			return apperrors.NewPublishFailed(p.channelID, err)
		}

		// Small delay between chunks to avoid rate limiting
		if i < len(chunks)-1 {
			select {
			case <-ctx.Done():
				return apperrors.NewPublishFailed(p.channelID, ctx.Err())
			case <-time.After(p.delay):
			}
		}
	}

	p.logger.Info("Report published",
		zap.String("channel_id", p.channelID),
		zap.Int("messages", len(chunks)),
		zap.Int("files", len(files)),
	)
	return nil
}

// splitMessage splits content on line boundaries into chunks of at most
// maxLength bytes. A chunk that ends inside a code block closes it and the
// next chunk reopens it with the same marker. Lines longer than a chunk
// are cut.
func splitMessage(content string, maxLength int) []string {
	if len(content) <= maxLength {
		return []string{content}
	}

	const closing = "\n```"
	var (
		chunks  []string
		current strings.Builder
		fence   string // opening marker of the code block we are in
	)

	flush := func() {
		text := current.String()
		if fence != "" {
			text += closing
		}
		chunks = append(chunks, text)
		current.Reset()
		current.WriteString(fence)
	}
	write := func(line string) {
		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
	}

	for _, line := range strings.Split(content, "\n") {
		for {
			sep := 0
			if current.Len() > 0 {
				sep = 1
			}
			room := maxLength - len(closing) - current.Len() - sep
			if len(line) <= room {
				break
			}
			if current.Len() > len(fence) {
				flush()
				continue
			}
			cut := room
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			write(line[:cut])
			line = line[cut:]
			flush()
		}
		write(line)

		if trimmed := strings.TrimSpace(line); strings.HasPrefix(trimmed, "```") {
			if fence == "" {
				fence = trimmed
			} else {
				fence = ""
			}
		}
	}
	if current.Len() > len(fence) {
		text := current.String()
		if fence != "" {
			text += closing
		}
		chunks = append(chunks, text)
	}
	return chunks
}
