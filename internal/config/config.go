package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Token signing
	JWTSecret          string
	JWTAlgorithm       string
	AccessTokenExpiry  time.Duration
	AdminSessionExpiry time.Duration

	// Server
	Port        string
	CORSOrigins string

	// Static files and uploads
	StaticDir string
	UploadDir string

	// Public page contact links
	ContactEmail string
	GithubURL    string
	LinkedinURL  string
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "portfolio_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTAlgorithm:       getEnv("JWT_ALGORITHM", "HS256"),
		AccessTokenExpiry:  minutes(getEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "15")),
		AdminSessionExpiry: parseDuration(getEnv("ADMIN_SESSION_EXPIRY", "24h")),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		StaticDir: getEnv("STATIC_DIR", "./static"),
		UploadDir: getEnv("UPLOAD_DIR", "./static/uploads"),

		ContactEmail: getEnv("CONTACT_EMAIL", ""),
		GithubURL:    getEnv("GITHUB_URL", ""),
		LinkedinURL:  getEnv("LINKEDIN_URL", ""),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func minutes(s string) time.Duration {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(n) * time.Minute
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}
