package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/andrewa30/portfolio-backend/internal/config"
	"github.com/andrewa30/portfolio-backend/internal/database"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a per-test in-memory database with the full schema.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTAlgorithm:       "HS256",
		AccessTokenExpiry:  15 * time.Minute,
		AdminSessionExpiry: 24 * time.Hour,
	}
}

func testTokenService(t *testing.T) *TokenService {
	t.Helper()
	tokens, err := NewTokenService(testConfig())
	if err != nil {
		t.Fatalf("failed to build token service: %v", err)
	}
	return tokens
}
