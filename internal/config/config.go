package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration values loaded from environment variables.
type Config struct {
	DatabaseURL   string
	SessionSecret string
	HTTPPort      string
	OpenAIAPIKey  string
	OpenAIModel   string
	CORSOrigin    string
	KnowledgePath string
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first, then checks actual environment variables.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file (useful for development)
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Could not load .env file. Using environment variables only.", err)
		// Don't fail if .env is not present, might be in production
	}

	dbURL := getEnv("DATABASE_URL", "")
	if dbURL == "" {
		log.Fatal("FATAL: DATABASE_URL environment variable is not set.")
	}

	sessionSecret := getEnv("SESSION_SECRET", "")
	if sessionSecret == "" {
		log.Fatal("FATAL: SESSION_SECRET environment variable is not set.")
	}

	apiKey := getEnv("OPENAI_API_KEY", "")
	if apiKey == "" {
		log.Fatal("FATAL: OPENAI_API_KEY environment variable is not set.")
	}

	cfg := &Config{
		HTTPPort:      getEnv("PORT", "5000"),
		DatabaseURL:   dbURL,
		SessionSecret: sessionSecret,
		OpenAIAPIKey:  apiKey,
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4"),
		CORSOrigin:    getEnv("CORS_ORIGIN", "http://localhost:3000"),
		KnowledgePath: getEnv("KNOWLEDGE_FILE", "output.json"),
	}

	log.Printf("Loaded config: Port=%s, DB_URL=***, Model=%s, KnowledgeFile=%s", cfg.HTTPPort, cfg.OpenAIModel, cfg.KnowledgePath)

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	if fallback != "" {
		log.Printf("Env variable %s not set, using default: %s", key, fallback)
	}
	return fallback
}
