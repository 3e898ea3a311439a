package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"campaign-speeches/backend/internal/discord"
	"campaign-speeches/backend/internal/report"
	apperrors "campaign-speeches/backend/pkg/errors"
)

// newSender opens the Discord client. Tests replace it.
var newSender = func(token string) (discord.MessageSender, error) {
	return discord.Open(token)
}

// publishCmd posts an existing report to Discord
var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Post the report in the output directory to Discord",
	Long: `Post report.md from the output directory to DISCORD_CHANNEL_ID, split
into messages Discord accepts, with analysis.json attached to the last one.`,
	Args: cobra.NoArgs,
	RunE: runPublish,
}

func runPublish(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	if !cfg.DiscordEnabled() {
		return apperrors.NewConfigMissing("DISCORD_CHANNEL_ID")
	}
	if err := publishReport(ctx, cfg.OutputDir); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Published report to channel %s\n", cfg.DiscordChannelID)
	return nil
}

// publishReport posts dir/report.md with dir/analysis.json attached
func publishReport(ctx context.Context, dir string) error {
	markdown, err := os.ReadFile(filepath.Join(dir, report.MarkdownFile))
	if err != nil {
		return fmt.Errorf("failed to read report: %w", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, report.JSONFile))
	if err != nil {
		return fmt.Errorf("failed to read analysis: %w", err)
	}

	sender, err := newSender(cfg.DiscordBotToken)
	if err != nil {
		return err
	}
	return discord.NewPublisher(sender, cfg.DiscordChannelID).Publish(ctx, string(markdown), discord.Attachment{
		Name:        report.JSONFile,
		ContentType: "application/json",
		Data:        data,
	})
}
