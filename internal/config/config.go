package config

import (
	"os"
	"strconv"
)

// Config collects everything the server reads from the environment.
// Callers load a .env file (if any) before calling Load.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	CORSOrigin  string

	// MediaDir is where uploaded images land when S3 is not configured.
	MediaDir string

	// S3 settings; the S3 backend is used only when Bucket is set.
	S3 S3Config

	// TokenTTLHours controls how long issued access tokens stay valid.
	TokenTTLHours int
}

type S3Config struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
}

// Load reads the configuration from environment variables,
// falling back to local development defaults.
func Load() *Config {
	return &Config{
		Port:        getenv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   getenv("JWT_SECRET", "dev-secret-change-me"),
		CORSOrigin:  getenv("CORS_ORIGIN", "*"),
		MediaDir:    getenv("MEDIA_DIR", "media"),
		S3: S3Config{
			Bucket:    os.Getenv("AWS_BUCKET_NAME"),
			Region:    os.Getenv("AWS_REGION"),
			AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
		TokenTTLHours: getenvInt("TOKEN_TTL_HOURS", 24),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
