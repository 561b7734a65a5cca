package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	DBDriver      string
	DatabaseURL   string
	MigrationsDir string
	Port          string
	LogLevel      string
	Slack         SlackConfig
	Turso         TursoConfig
	PubSub        PubSubConfig
}
type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
type PubSubConfig struct {
	ProjectID string
	Topic     string
}
