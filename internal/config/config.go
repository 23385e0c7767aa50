package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	LogFormat    string

	// Database configuration
	DatabaseURL string

	// Auth configuration
	JWTSecret         string
	AccessExpiration  time.Duration
	RefreshExpiration time.Duration

	// Attachment storage configuration
	StorageBackend  string // "local" or "s3"
	AttachmentDir   string
	S3Endpoint      string
	S3Bucket        string
	S3Region        string
	S3AccessKeyID   string
	S3AccessSecret  string

	// Read cache configuration
	CacheSize int
	CacheTTL  time.Duration
}

// LoadConfig loads the application configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file. Using environment variables.")
	}

	config := &Config{
		// Server configuration
		Port:         getEnvInt("PORT", 8080),
		ReadTimeout:  time.Duration(getEnvInt("READ_TIMEOUT", 15)) * time.Second,
		WriteTimeout: time.Duration(getEnvInt("WRITE_TIMEOUT", 15)) * time.Second,
		LogFormat:    getEnvString("LOG_FORMAT", "json"),

		// Database configuration
		DatabaseURL: os.Getenv("POSTGRES_DB_URL"),

		// Auth configuration
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AccessExpiration:  time.Duration(getEnvInt("JWT_ACCESS_EXPIRATION", 900)) * time.Second,
		RefreshExpiration: time.Duration(getEnvInt("JWT_REFRESH_EXPIRATION", 604800)) * time.Second,

		// Attachment storage configuration
		StorageBackend: getEnvString("STORAGE_BACKEND", "local"),
		AttachmentDir:  getEnvString("ATTACHMENT_DIR", "attachments"),
		S3Endpoint:     os.Getenv("S3_ENDPOINT"),
		S3Bucket:       getEnvString("S3_BUCKET", "attachments"),
		S3Region:       getEnvString("S3_REGION", "us-east-1"),
		S3AccessKeyID:  os.Getenv("S3_ACCESS_KEY_ID"),
		S3AccessSecret: os.Getenv("S3_ACCESS_KEY_SECRET"),

		// Read cache configuration
		CacheSize: getEnvInt("CACHE_SIZE", 1000),
		CacheTTL:  time.Duration(getEnvInt("CACHE_TTL", 60)) * time.Second,
	}

	validateConfig(config)

	return config, nil
}

// validateConfig checks if critical configuration values are set and logs
// warnings if they're missing
func validateConfig(config *Config) {
	if config.DatabaseURL == "" {
		log.Println("Warning: No POSTGRES_DB_URL provided. Database connections will fail.")
	}
	if config.JWTSecret == "" {
		log.Println("Warning: No JWT_SECRET provided. Authentication will fail.")
	}
	if config.StorageBackend == "s3" && (config.S3Endpoint == "" || config.S3AccessKeyID == "") {
		log.Println("Warning: Incomplete S3 configuration. Attachment uploads will fail.")
	}
}

// getEnvInt gets an integer from an environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvString gets a string from an environment variable with a default value
func getEnvString(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
