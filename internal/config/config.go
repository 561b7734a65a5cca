package config

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	DefaultMigrationsDir = "./migrations"
	DefaultDriver        = "sqlite3"
	DefaultTopic         = "tournament-imported"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	return load(true)
}

// LoadForImport is Load for tools that never listen on a port.
func LoadForImport() Config {
	return load(false)
}

func load(requirePort bool) Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	cfg := Config{
		DBDriver:      getEnvOr("DB_DRIVER", DefaultDriver),
		MigrationsDir: getEnvOr("MIGRATIONS_DIR", DefaultMigrationsDir),
		Port:          getEnvOr("PORT", ""),
		LogLevel:      getEnvOr("LOG_LEVEL", "info"),
		Slack: SlackConfig{
			Token:         getEnvOr("SLACK_BOT_TOKEN", ""),
			ChannelID:     getEnvOr("SLACK_CHANNEL_ID", ""),
			SigningSecret: getEnvOr("SLACK_SIGNING_SECRET", ""),
		},
		Turso: TursoConfig{
			PrimaryURL: getEnvOr("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvOr("TURSO_AUTH_TOKEN", ""),
		},
		PubSub: PubSubConfig{
			ProjectID: getEnvOr("GCP_PROJECT", ""),
			Topic:     getEnvOr("PUBSUB_TOPIC", DefaultTopic),
		},
	}
	// Postgres is addressed by DATABASE_URL; the file-backed drivers need DB_NAME.
	if cfg.UsesPostgres() {
		cfg.DBName = getEnvOr("DB_NAME", "")
		cfg.DatabaseURL = getEnv("DATABASE_URL")
	} else {
		cfg.DBName = getEnv("DB_NAME")
		cfg.DatabaseURL = getEnvOr("DATABASE_URL", "")
	}
	if requirePort {
		cfg.Port = getEnv("PORT")
	}
	return cfg
}

// UsesPostgres reports whether the configured driver talks to Postgres.
func (c Config) UsesPostgres() bool {
	switch c.DBDriver {
	case "pgx", "postgres":
		return true
	}
	return false
}

// getEnvOr returns the value of key, or fallback when it is unset or empty.
func getEnvOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// ParseLevel maps the configured level name onto a log level, defaulting to info.
func (c Config) ParseLevel() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.Warn("Unknown log level, defaulting to info", "level", c.LogLevel)
		return log.InfoLevel
	}
	return level
}
