package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Server      ServerConfig
	Store       StoreConfig
	Transcriber TranscriberConfig
	LLM         LLMConfig
	Integration IntegrationConfig
}

// ServerConfig holds HTTP/WebSocket server configuration.
type ServerConfig struct {
	Host                       string
	Port                       string
	Env                        string
	WSIdleTimeout              time.Duration
	MaxConcurrentTranscriptions int
	DebugLogging               bool
}

// StoreConfig selects and configures the persistence backend (spec.md §4.6).
type StoreConfig struct {
	// Type is "embedded" (single-file, development/test) or "remote"
	// (MySQL-wire-compatible, production).
	Type string

	// Embedded
	FilePath string

	// Remote
	Host     string
	Port     string
	User     string
	Password string
	Name     string

	MigrationsPath string
}

// TranscriberConfig configures the local speech-to-text subprocess (spec.md §4.3).
type TranscriberConfig struct {
	BinaryPath  string
	ModelPath   string
	WorkerCount int
	Timeout     time.Duration
}

// LLMConfig configures the pluggable LLM provider (spec.md §4.4).
type LLMConfig struct {
	Provider      string // "anthropic", "openai", "groq", "ollama", "none"
	APIKey        string
	Model         string
	BaseURL       string // used by groq/ollama's OpenAI-compatible endpoints
	Timeout       time.Duration
	MaxRetries    int
	JSONMode      bool
}

// IntegrationConfig configures the external task-platform adapters (spec.md §4.8).
type IntegrationConfig struct {
	NotionToken      string
	NotionDatabaseID string
	ClickUpToken     string
	ClickUpListID    string
	SlackToken       string
	SlackChannel     string
}

// Load loads configuration from environment variables, applying the same
// defaults-with-override strategy the rest of the stack uses.
func Load() (*Config, error) {
	godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host:                        getEnv("HOST", "0.0.0.0"),
			Port:                        getEnv("PORT", "8080"),
			Env:                         getEnv("APP_ENV", "development"),
			WSIdleTimeout:               getEnvDuration("WS_IDLE_TIMEOUT", 60*time.Second),
			MaxConcurrentTranscriptions: getEnvInt("MAX_CONCURRENT_TRANSCRIPTIONS", 4),
			DebugLogging:                getEnvBool("DEBUG_LOGGING", false),
		},
		Store: StoreConfig{
			Type:           getEnv("DATABASE_TYPE", "embedded"),
			FilePath:       getEnv("DATABASE_FILE", "./gitscribe.db"),
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "4000"), // TiDB's default MySQL-wire port
			User:           getEnv("DB_USER", "root"),
			Password:       getEnv("DB_PASSWORD", ""),
			Name:           getEnv("DB_NAME", "gitscribe"),
			MigrationsPath: getEnv("DB_MIGRATIONS_PATH", "./seedwork/infrastructure/store/migrations"),
		},
		Transcriber: TranscriberConfig{
			BinaryPath:  getEnv("STT_BINARY_PATH", ""),
			ModelPath:   getEnv("STT_MODEL_PATH", ""),
			WorkerCount: getEnvInt("STT_WORKER_COUNT", 4),
			Timeout:     getEnvDuration("STT_TIMEOUT", 30*time.Second),
		},
		LLM: LLMConfig{
			Provider:   getEnv("LLM_PROVIDER", "none"),
			APIKey:     getEnv("LLM_API_KEY", ""),
			Model:      getEnv("LLM_MODEL", ""),
			BaseURL:    getEnv("LLM_BASE_URL", ""),
			Timeout:    getEnvDuration("LLM_TIMEOUT", 20*time.Second),
			MaxRetries: getEnvInt("LLM_MAX_RETRIES", 2),
			JSONMode:   getEnvBool("LLM_JSON_MODE", true),
		},
		Integration: IntegrationConfig{
			NotionToken:      getEnv("NOTION_TOKEN", ""),
			NotionDatabaseID: getEnv("NOTION_DATABASE_ID", ""),
			ClickUpToken:     getEnv("CLICKUP_TOKEN", ""),
			ClickUpListID:    getEnv("CLICKUP_LIST_ID", ""),
			SlackToken:       getEnv("SLACK_TOKEN", ""),
			SlackChannel:     getEnv("SLACK_CHANNEL", ""),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
