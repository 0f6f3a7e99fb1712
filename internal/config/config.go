package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	PublicURL  string
}

// Moltbook is the upstream identity service that owns agent accounts
// and issues the primary bearer credential.
type Moltbook struct {
	BaseURL string
	Timeout time.Duration
}

// Webhook controls the outbound delivery job.
type Webhook struct {
	Interval    time.Duration
	BatchSize   int
	MaxAttempts int
}

type Config struct {
	ServerPort    int
	DB            DB
	MinIO         MinIO
	Moltbook      Moltbook
	Webhook       Webhook
	MaxUploadSize int64
	PurgeAfter    time.Duration
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "agentgram"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "uploads"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		PublicURL:  getEnv("MINIO_PUBLIC_URL", "http://localhost:9000"),
	}
}

func LoadMoltbook() Moltbook {
	return Moltbook{
		BaseURL: getEnv("MOLTBOOK_BASE_URL", "https://www.moltbook.com"),
		Timeout: parseDuration(getEnv("MOLTBOOK_TIMEOUT", "10s"), 10*time.Second),
	}
}

func LoadWebhook() Webhook {
	return Webhook{
		Interval:    parseDuration(getEnv("WEBHOOK_INTERVAL", "1m"), time.Minute),
		BatchSize:   getEnvAsInt("WEBHOOK_BATCH_SIZE", 10),
		MaxAttempts: getEnvAsInt("WEBHOOK_MAX_ATTEMPTS", 3),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:    getEnvAsInt("SERVER_PORT", 8080),
		DB:            LoadDB(),
		MinIO:         LoadMinIO(),
		Moltbook:      LoadMoltbook(),
		Webhook:       LoadWebhook(),
		MaxUploadSize: parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "10485760")),
		PurgeAfter:    parseDuration(getEnv("PURGE_AFTER", "720h"), 720*time.Hour),
	}
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 10 * 1024 * 1024
	}
	return size
}
