// ABOUTME: Centralized configuration for the memory subsystem
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rowan/keepsake/internal/storage/sqlite"
)

// Config holds all configuration for the memory system
type Config struct {
	// Storage settings
	DBPath string

	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Memory settings
	SimilarityThreshold float64
	DefaultUser         string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:              getEnv("KEEPSAKE_DB", sqlite.DefaultDBPath()),
		OpenAIKey:           os.Getenv("OPENAI_API_KEY"),
		ChatModel:           getEnv("KEEPSAKE_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel:      getEnv("KEEPSAKE_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:             getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:          getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:          getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		SimilarityThreshold: getEnvFloat("SIMILARITY_THRESHOLD", 0.75),
		DefaultUser:         getEnv("KEEPSAKE_USER", "default"),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("SIMILARITY_THRESHOLD must be 0-1, got %f", c.SimilarityThreshold)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
