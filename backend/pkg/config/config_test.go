package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "campaign-speeches/backend/pkg/errors"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATA_PATH", "")
	t.Setenv("TOP_N", "")
	t.Setenv("NEO4J_URI", "")
	t.Setenv("DISCORD_CHANNEL_ID", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "data/us_2020_election_speeches.csv", cfg.DataPath)
	assert.Equal(t, 5, cfg.TopN)
	assert.False(t, cfg.GraphEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TOP_N", "3")
	t.Setenv("OUTPUT_DIR", "/tmp/report")
	t.Setenv("NEO4J_URI", "bolt://db:7687")
	t.Setenv("NEO4J_PASSWORD", "secret")
	t.Setenv("DISCORD_CHANNEL_ID", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.TopN)
	assert.Equal(t, "/tmp/report", cfg.OutputDir)
	assert.True(t, cfg.GraphEnabled())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{DataPath: "x.csv", OutputDir: "out", TopN: 5}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantKey string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing data path", func(c *Config) { c.DataPath = "" }, "DATA_PATH"},
		{"top n zero", func(c *Config) { c.TopN = 0 }, "TOP_N"},
		{"neo4j without password", func(c *Config) { c.Neo4jURI = "bolt://x" }, "NEO4J_PASSWORD"},
		{"channel without token", func(c *Config) { c.DiscordChannelID = "123" }, "DISCORD_BOT_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantKey == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var missing *apperrors.ErrConfigMissing
			var invalid *apperrors.ErrConfigInvalid
			switch {
			case errors.As(err, &missing):
				assert.Equal(t, tt.wantKey, missing.Key)
			case errors.As(err, &invalid):
				assert.Equal(t, tt.wantKey, invalid.Key)
			default:
				t.Fatalf("unexpected error type %T", err)
			}
		})
	}
}
