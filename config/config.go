package config

import (
	"os"
	"strconv"

	"github.com/isc-ai/engine/modes"
)

// Config holds all process configuration, loaded once at startup.
// Nothing outside the credentials provisioner mutates global state after this.
type Config struct {
	Port string

	// Google Cloud / Vertex AI
	GoogleCloudProject  string
	GoogleCloudLocation string

	// Service account payload: raw JSON or base64-encoded JSON. Staged into
	// a temp file by the credentials package when CredentialsPath is unset.
	CredentialsJSON string
	CredentialsPath string

	// Google Custom Search
	SearchAPIKey string

	// Per-mode Custom Search engine ids, keyed by mode key. Empty value
	// disables the media search for that mode.
	SearchScopes map[string]string

	// External auth collaborator used to validate sessions
	AuthURL string

	// Usage store
	DBType       string // "sqlite" or "postgres"
	DBConnection string
	DailyLimit   int
}

// Load reads configuration from the environment. Call godotenv.Load first
// if a .env file should be honored.
func Load() *Config {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		GoogleCloudProject:  os.Getenv("GOOGLE_CLOUD_PROJECT"),
		GoogleCloudLocation: getEnv("GOOGLE_CLOUD_LOCATION", "global"),
		CredentialsJSON:     os.Getenv("GCP_CREDENTIALS_JSON"),
		CredentialsPath:     os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		SearchAPIKey:        os.Getenv("GOOGLE_SEARCH_API_KEY"),
		AuthURL:             os.Getenv("AUTH_URL"),
		DBType:              getEnv("DB_TYPE", "sqlite"),
		DBConnection:        getEnv("DB_CONNECTION", "usage.sqlite"),
		DailyLimit:          getEnvInt("DAILY_LIMIT", 20),
		SearchScopes:        map[string]string{},
	}
	for _, m := range modes.All() {
		cfg.SearchScopes[string(m.Key)] = os.Getenv(m.SearchScopeEnv)
	}
	return cfg
}

// SearchScope returns the Custom Search engine id for a mode, or "" when the
// mode has none configured.
func (c *Config) SearchScope(key modes.Key) string {
	return c.SearchScopes[string(key)]
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
