package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"almanar_backend/internals/features/users/auth/model"
)

// StartTokenCleanupScheduler prunes expired blacklist entries, refresh
// tokens and reset tokens once a day.
func StartTokenCleanupScheduler(db *gorm.DB) {
	go func() {
		ttlDays := 7
		if val := os.Getenv("TOKEN_BLACKLIST_TTL_DAYS"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil {
				ttlDays = parsed
			}
		}

		for {
			log.Println("[CLEANUP] pruning expired auth tokens...")

			deleteBefore := time.Now().Add(-time.Duration(ttlDays) * 24 * time.Hour)

			var expired []model.TokenBlacklistModel
			if err := db.
				Where("expired_at < ? AND deleted_at IS NULL", deleteBefore).
				Limit(100).
				Find(&expired).Error; err != nil {
				log.Printf("[CLEANUP ERROR] blacklist query: %v", err)
			} else if len(expired) > 0 {
				if err := db.Delete(&expired).Error; err != nil {
					log.Printf("[CLEANUP ERROR] blacklist delete: %v", err)
				} else {
					log.Printf("[CLEANUP] %d blacklisted tokens removed", len(expired))
				}
			}

			if err := db.
				Where("expires_at < ?", time.Now()).
				Delete(&model.RefreshTokenModel{}).Error; err != nil {
				log.Printf("[CLEANUP ERROR] refresh tokens: %v", err)
			}
			if err := db.
				Where("expires_at < ? OR used_at IS NOT NULL", time.Now()).
				Delete(&model.PasswordResetTokenModel{}).Error; err != nil {
				log.Printf("[CLEANUP ERROR] reset tokens: %v", err)
			}

			time.Sleep(24 * time.Hour)
		}
	}()
}
