package logging

import (
	"log/slog"
	"time"

	"github.com/andrewa30/portfolio-backend/internal/models"
	"gorm.io/gorm"
)

// Persisted error records are kept for 30 days.
const logRetention = 30 * 24 * time.Hour

// StartCleanup sweeps expired system_logs rows once a day until done is
// closed.
func StartCleanup(db *gorm.DB, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sweepLogs(db)
			case <-done:
				return
			}
		}
	}()
}

func sweepLogs(db *gorm.DB) {
	cutoff := time.Now().Add(-logRetention)
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	switch {
	case result.Error != nil:
		slog.Error("log cleanup failed", "error", result.Error)
	case result.RowsAffected > 0:
		slog.Info("log cleanup completed", "deleted", result.RowsAffected)
	}
}
