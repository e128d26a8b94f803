package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration loaded from the environment.
type Config struct {
	Port             string
	MongoURI         string
	MongoDB          string
	JWTSecret        string
	TokenExpiry      time.Duration
	BaseURL          string
	CORSOrigin       string
	TranscriptionAPI string
	FeedbackInbox    string
	UploadDir        string
}

// LoadConfig reads the .env file (if present) and builds the Config.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	expiryHours, err := strconv.Atoi(getEnv("TOKEN_EXPIRY_HOURS", "24"))
	if err != nil {
		expiryHours = 24
	}

	return &Config{
		Port:             getEnv("PORT", "8080"),
		MongoURI:         getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:          getEnv("MONGO_DB", "productivity"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		TokenExpiry:      time.Duration(expiryHours) * time.Hour,
		BaseURL:          getEnv("APP_BASE_URL", "http://localhost:8080"),
		CORSOrigin:       getEnv("CORS_ORIGIN", "http://localhost:3000"),
		TranscriptionAPI: getEnv("TRANSCRIPTION_API_URL", ""),
		FeedbackInbox:    getEnv("FEEDBACK_INBOX", ""),
		UploadDir:        getEnv("UPLOAD_DIR", "./uploads"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
