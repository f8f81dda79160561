package config

import (
	"os"
	"strconv"
	"strings"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	OpenAIAPIKey  string
	ChatModel     string
	ReconcileCron string

	Level3MinMembers  int
	Level4MinMembers  int
	Level4MinPapers   int
	Level4MinMessages int
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "launchpad"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	cronSpec := strings.TrimSpace(os.Getenv("RECONCILE_CRON"))
	if cronSpec == "" {
		cronSpec = "@every 2m"
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		ChatModel:     os.Getenv("CHAT_MODEL"),
		ReconcileCron: cronSpec,

		Level3MinMembers:  envInt("LEVEL3_MIN_MEMBERS", 0),
		Level4MinMembers:  envInt("LEVEL4_MIN_MEMBERS", 0),
		Level4MinPapers:   envInt("LEVEL4_MIN_PAPERS", 0),
		Level4MinMessages: envInt("LEVEL4_MIN_MESSAGES", 0),
	}, nil
}

// envInt ignores non-positive overrides: zero means "use the built-in
// default threshold".
func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
