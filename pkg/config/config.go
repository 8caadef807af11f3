package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	GoogleProjectID     string
	FirebaseCredentials string
	EventsTopic         string
	LogLevel            string
	LogFormat           string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:                getEnv("PORT", "8080"),
		GoogleProjectID:     getEnv("GOOGLE_PROJECT_ID", ""),
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),
		EventsTopic:         getEnv("FIRESTORE_EVENTS_TOPIC", "firestore-events"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "json"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
