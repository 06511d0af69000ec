package config

import (
	"os"
	"strings"

	"gestionrecursos/pkg/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	FrontendOrigin string
	JWTSecret      string

	DBUser string
	DBPass string
	DBHost string
	DBPort string
	DBName string
}

// Load reads the .env file when present and falls back to environment
// variables from the OS.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Sugar.Info("No .env file found, using environment variables from OS")
	}

	return &Config{
		Port:           getenv("PORT", "3001"),
		FrontendOrigin: getenv("FRONTEND_URL", "http://localhost:3000"),
		JWTSecret:      getenv("JWT_SECRET", ""),

		DBUser: getenv("user", ""),
		DBPass: getenv("password", ""),
		DBHost: getenv("host", ""),
		DBPort: getenv("port", "5432"),
		DBName: getenv("dbname", ""),
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
