package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultEnv       = "development"
	defaultDBPath    = "./dev.db"
	defaultPort      = "8080"
	defaultTokenTTL  = 60
	defaultLogLevel  = "info"
	defaultLogFormat = "json"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env           string
	Port          string
	DBPath        string
	JWTSecret     string
	TokenTTL      time.Duration
	AdminUsername string
	AdminEmail    string
	AdminPassword string
	LogLevel      string
	LogFormat     string
}

// IsDev reports whether the service runs in development mode.
func (c Config) IsDev() bool {
	return c.Env == "" || c.Env == "development" || c.Env == "dev"
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Local development only; production injects real environment variables.
	if err := loadDotEnv(".env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := Config{
		Env:           getEnv("APP_ENV", defaultEnv),
		Port:          getEnv("PORT", defaultPort),
		DBPath:        getEnv("DB_PATH", defaultDBPath),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenTTL:      time.Duration(getEnvAsInt("TOKEN_TTL_MINUTES", defaultTokenTTL)) * time.Minute,
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		LogLevel:      getEnv("LOG_LEVEL", defaultLogLevel),
		LogFormat:     getEnv("LOG_FORMAT", defaultLogFormat),
	}

	if cfg.JWTSecret == "" {
		log.Print("warning: JWT_SECRET is not set")
	}
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Print("warning: ADMIN_EMAIL or ADMIN_PASSWORD is not set; admin user will not be seeded")
	}

	return cfg
}

// loadDotEnv loads KEY=VALUE pairs from path without overwriting variables
// that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		log.Printf("warning: %s=%q is not a positive integer, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return value
}
