package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	DBPath      string
	Environment string
	// ArchiveDir holds printed documents when R2 is not configured
	ArchiveDir string
	// Headless Chrome
	ChromePath     string
	DisableBrowser bool
	// Print pipeline
	PrintCleanupTimeout time.Duration
	FrameInterval       time.Duration
	// Print history
	PrintHistoryRetention time.Duration
	PruneSchedule         string
	// Other
	DefaultLanguage string
	AllowedOrigins  []string
	AppURL          string
	// Cloudflare R2 Storage
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		ServerPort:            getEnv("SERVER_PORT", "8080"),
		DBPath:                getEnv("DB_PATH", "db/app.db"),
		Environment:           getEnv("ENVIRONMENT", "development"),
		ArchiveDir:            getEnv("ARCHIVE_DIR", "static/prints"),
		ChromePath:            getEnv("CHROME_PATH", ""),
		DisableBrowser:        getEnvBool("DISABLE_BROWSER", false),
		PrintCleanupTimeout:   getEnvDuration("PRINT_CLEANUP_TIMEOUT", 5*time.Second),
		FrameInterval:         getEnvDuration("FRAME_INTERVAL", 16*time.Millisecond),
		PrintHistoryRetention: getEnvDuration("PRINT_HISTORY_RETENTION", 720*time.Hour),
		PruneSchedule:         getEnv("PRUNE_SCHEDULE", "0 3 * * *"),
		DefaultLanguage:       getEnv("DEFAULT_LANGUAGE", "ru"),
		AllowedOrigins:        strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
		AppURL:                getEnv("APP_URL", "http://localhost:8080"),
		R2AccountID:           getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:         getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey:     getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:          getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:           getEnv("R2_PUBLIC_URL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		log.Printf("Using default value for %s: %s", key, defaultValue)
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("[WARNING] Invalid duration for %s: %q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
