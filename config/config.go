package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every environment-backed setting the API needs. It is
// constructed once in main and passed down explicitly.
type Config struct {
	AppEnv            string
	Port              string
	DatabaseDSN       string
	JWTSecret         string
	TokenTTL          time.Duration
	GetAddressAPIKey  string
	GetAddressBaseURL string
	MediaRoot         string
	MediaURL          string
	S3Bucket          string
	ReportEmail       string
	FrontendOrigins   []string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	cfg := Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		DatabaseDSN:       getEnv("DATABASE_DSN", ""),
		JWTSecret:         getEnv("JWT_SECRET", "devsecret"),
		TokenTTL:          getDuration("TOKEN_TTL", 7*24*time.Hour),
		GetAddressAPIKey:  getEnv("GETADDRESS_API_KEY", ""),
		GetAddressBaseURL: getEnv("GETADDRESS_BASE_URL", "https://api.getAddress.io"),
		MediaRoot:         getEnv("MEDIA_ROOT", "media"),
		MediaURL:          getEnv("MEDIA_URL", "/media"),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		ReportEmail:       getEnv("REPORT_EMAIL", "admin@tarel.local"),
	}

	origins := getEnv("FRONTEND_ORIGINS", "http://localhost:5173,http://localhost:3000")
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.FrontendOrigins = append(cfg.FrontendOrigins, origin)
		}
	}

	if !strings.HasPrefix(cfg.MediaURL, "/") {
		cfg.MediaURL = "/" + cfg.MediaURL
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid duration for %s, using default: %v", key, err)
		return fallback
	}
	return parsed
}
