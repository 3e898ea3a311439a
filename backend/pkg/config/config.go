package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	apperrors "campaign-speeches/backend/pkg/errors"
)

// Config holds all application configuration
type Config struct {
	// App
	Env      string
	LogLevel string
	Port     string

	// Input / output
	DataPath    string
	OutputDir   string
	LexiconPath string // empty means the embedded default lexicon
	TopN        int

	// Neo4j (optional)
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string

	// Discord (optional)
	DiscordBotToken  string
	DiscordChannelID string

	// LLM (optional)
	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Env:              getEnv("ENV", "development"),
		LogLevel:         getEnv("LOG_LEVEL", ""),
		Port:             getEnv("PORT", "8080"),
		DataPath:         getEnv("DATA_PATH", "data/us_2020_election_speeches.csv"),
		OutputDir:        getEnv("OUTPUT_DIR", "out"),
		LexiconPath:      getEnv("LEXICON_PATH", ""),
		TopN:             getEnvInt("TOP_N", 5),
		Neo4jURI:         getEnv("NEO4J_URI", ""),
		Neo4jUser:        getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:    getEnv("NEO4J_PASSWORD", ""),
		DiscordBotToken:  getEnv("DISCORD_BOT_TOKEN", ""),
		DiscordChannelID: getEnv("DISCORD_CHANNEL_ID", ""),
		LLMBaseURL:       getEnv("LLM_BASE_URL", ""),
		LLMAPIKey:        getEnv("LLM_API_KEY", ""),
		LLMModel:         getEnv("LLM_MODEL", "gpt-4o-mini"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.DataPath == "" {
		return apperrors.NewConfigMissing("DATA_PATH")
	}
	if c.OutputDir == "" {
		return apperrors.NewConfigMissing("OUTPUT_DIR")
	}
	if c.TopN < 1 {
		return apperrors.NewConfigInvalid("TOP_N", fmt.Sprint(c.TopN), "must be at least 1")
	}
	if c.Neo4jURI != "" && c.Neo4jPassword == "" {
		return apperrors.NewConfigMissing("NEO4J_PASSWORD")
	}
	if c.DiscordChannelID != "" && c.DiscordBotToken == "" {
		return apperrors.NewConfigMissing("DISCORD_BOT_TOKEN")
	}
	// Neo4j, Discord and the LLM are optional integrations
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// GraphEnabled reports whether a Neo4j endpoint is configured
func (c *Config) GraphEnabled() bool {
	return c.Neo4jURI != ""
}

// DiscordEnabled reports whether report publishing is configured
func (c *Config) DiscordEnabled() bool {
	return c.DiscordBotToken != "" && c.DiscordChannelID != ""
}

// LLMEnabled reports whether topic summaries can be requested
func (c *Config) LLMEnabled() bool {
	return c.LLMBaseURL != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
