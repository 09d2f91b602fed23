package services

import (
	"time"

	"github.com/brijdaniel/RR-backend/config"
	"github.com/brijdaniel/RR-backend/models"
	"github.com/brijdaniel/RR-backend/utils"

	"gorm.io/gorm"
)

// GenerateDailyChecklists creates today's checklist (server-local day) for
// every active user who does not have one yet, inside a single transaction.
// The job is idempotent and re-runnable; any failure rolls back the whole
// batch. Returns the number of checklists created.
func GenerateDailyChecklists() (int, error) {
	now := Now().In(time.Local)
	day := utils.LocalDay(now)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	end := start.Add(24 * time.Hour)

	created := 0
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var users []models.User
		if err := tx.Where("is_active = ?", true).Find(&users).Error; err != nil {
			return err
		}

		for _, user := range users {
			var count int64
			err := tx.Model(&models.Checklist{}).
				Where("user_id = ? AND created_at >= ? AND created_at < ?", user.ID, start.UTC(), end.UTC()).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			cl := models.Checklist{UserID: user.ID, LocalDay: day}
			cl.CreatedAt = now.UTC()
			if err := tx.Create(&cl).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
