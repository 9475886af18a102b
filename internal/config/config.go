// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// LLM providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds all application configuration.
type Config struct {
	Port                string
	DBPath              string
	PoemDataPath        string
	CompetencyTablePath string // empty = embedded table
	AllowedOrigins      []string
	LogLevel            slog.Level
	LLM                 LLMConfig
	Dictionary          DictionaryConfig
}

// LLMConfig selects and configures the model provider.
type LLMConfig struct {
	Provider      string
	Timeout       time.Duration
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	GeminiAPIKey  string
	GeminiModel   string
}

// DictionaryConfig configures the dictionary service and its optional cache.
type DictionaryConfig struct {
	APIKey        string
	BaseURL       string
	Limit         int
	CacheAddr     string // empty = no cache
	CachePassword string
	CacheDB       int
	CacheTTL      time.Duration
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := Read()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Read reads configuration from environment variables without validating
// it. Operator commands that only touch local data use it.
func Read() *Config {
	return &Config{
		Port:                getEnv("PORT", "8000"),
		DBPath:              getEnv("DB_PATH", "./data/tutor_system.db"),
		PoemDataPath:        getEnv("POEM_DATA_PATH", "data/KPoEM_poem_dataset_v4.tsv"),
		CompetencyTablePath: getEnv("COMPETENCY_TABLE_PATH", ""),
		AllowedOrigins:      getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		LogLevel:            getEnvLevel("LOG_LEVEL", slog.LevelInfo),
		LLM: LLMConfig{
			Provider:      strings.ToLower(strings.TrimSpace(getEnv("LLM_PROVIDER", ProviderOpenAI))),
			Timeout:       getEnvDuration("LLM_TIMEOUT", 60*time.Second),
			OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o"),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
			GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
			GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		},
		Dictionary: DictionaryConfig{
			APIKey:        getEnv("DICTIONARY_API_KEY", ""),
			BaseURL:       getEnv("DICTIONARY_BASE_URL", "https://opendict.korean.go.kr/api/search"),
			Limit:         getEnvInt("DICTIONARY_LIMIT", 4),
			CacheAddr:     getEnv("DICTIONARY_CACHE_ADDR", ""),
			CachePassword: getEnv("DICTIONARY_CACHE_PASSWORD", ""),
			CacheDB:       getEnvInt("DICTIONARY_CACHE_DB", 0),
			CacheTTL:      getEnvDuration("DICTIONARY_CACHE_TTL", 24*time.Hour),
		},
	}
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.PoemDataPath == "" {
		return fmt.Errorf("POEM_DATA_PATH cannot be empty")
	}
	if c.Dictionary.Limit <= 0 {
		return fmt.Errorf("DICTIONARY_LIMIT must be > 0")
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be > 0")
	}

	switch c.LLM.Provider {
	case ProviderOpenAI:
		if c.LLM.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=%s", ProviderOpenAI)
		}
	case ProviderGemini:
		if c.LLM.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when LLM_PROVIDER=%s", ProviderGemini)
		}
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLM.Provider)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}

func getEnvList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func getEnvLevel(key string, fallback slog.Level) slog.Level {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return fallback
	}
	return level
}
