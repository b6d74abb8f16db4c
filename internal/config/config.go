package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// defaultPlaceholderImageURL is the image written for listings posted without
// a photo, overridable via PLACEHOLDER_IMAGE_URL.
const defaultPlaceholderImageURL = "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=400"

type Config struct {
	HTTPPort    string
	MetricsPort string

	MongoURI string
	MongoDB  string

	RedisAddress string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	NATSURL string

	SMTPHost     string
	SMTPPort     int
	SMTPEmail    string
	SMTPPassword string
	NotifyEmail  string

	PlaceholderImageURL string

	LogLevel  string
	LogFormat string
}

func Load() (*Config, error) {
	// A missing .env file is fine; the environment is the primary source.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	minioUseSSL, err := strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))
	if err != nil {
		log.Printf("Warning: invalid MINIO_USE_SSL value, defaulting to false: %v", err)
		minioUseSSL = false
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		log.Printf("Warning: invalid SMTP_PORT value, defaulting to 587: %v", err)
		smtpPort = 587
	}

	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		MetricsPort: getEnv("METRICS_PORT", "9090"),

		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "recircle"),

		RedisAddress: getEnv("REDIS_ADDRESS", "localhost:6379"),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:    getEnv("MINIO_BUCKET", "listing-images"),
		MinIOUseSSL:    minioUseSSL,

		NATSURL: getEnv("NATS_URL", "nats://localhost:4222"),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     smtpPort,
		SMTPEmail:    getEnv("SMTP_EMAIL", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		NotifyEmail:  getEnv("NOTIFY_EMAIL", ""),

		PlaceholderImageURL: getEnv("PLACEHOLDER_IMAGE_URL", defaultPlaceholderImageURL),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
