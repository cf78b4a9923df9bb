package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Gemini   GeminiConfig
	Upload   UploadConfig
}

type ServerConfig struct {
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	// DSN is a Postgres connection string. Supabase projects expose their
	// store through a standard Postgres DSN.
	DSN string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type UploadConfig struct {
	// MaxBodySize bounds the whole multipart request body.
	MaxBodySize int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment values.")
	}

	return &Config{
		Server: ServerConfig{
			Port:  getEnv("PORT", "5000"),
			Debug: strings.EqualFold(getEnv("DEBUG", "false"), "true"),
		},
		Database: DatabaseConfig{
			DSN: getEnv("DATABASE_URL", ""),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GOOGLE_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Upload: UploadConfig{
			MaxBodySize: getEnvAsInt("MAX_BODY_SIZE", 16*1024*1024),
		},
	}
}

// Validate checks the credentials that must be present before the process
// can serve traffic. A missing credential is fatal at startup.
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GOOGLE_API_KEY is required")
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
