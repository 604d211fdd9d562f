package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the startup configuration, read from the environment (with an
// optional .env file on top).
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,required"`

	CommandsPath  string `env:"COMMANDS_PATH" envDefault:"modules/commands"`
	EventsPath    string `env:"EVENTS_PATH" envDefault:"modules/events"`
	DatabasesPath string `env:"DATABASES_PATH" envDefault:"modules/databases"`

	// DatabaseSections limits which database exports get activated at
	// startup; empty means all discovered sections.
	DatabaseSections []string `env:"DATABASE_SECTIONS" envSeparator:","`

	TestGuildID  string   `env:"TEST_GUILD_ID"`
	DeveloperIDs []string `env:"DEVELOPER_IDS" envSeparator:","`

	// BannedWords is reserved for moderation handlers; the core dispatch
	// path does not read it.
	BannedWords []string `env:"BANNED_WORDS" envSeparator:","`

	InitSlashCommands bool `env:"INIT_SLASH_COMMANDS" envDefault:"true"`
}

// New loads .env if present and parses the environment into a Config.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, falling back to system environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
