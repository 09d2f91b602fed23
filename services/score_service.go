package services

import (
	"time"

	"github.com/brijdaniel/RR-backend/models"
	"github.com/brijdaniel/RR-backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// recalculateScore rederives a checklist's score from its regrets:
// unresolved / total, stored at 4 decimal places. Called synchronously by the
// regret ledger inside the same transaction as the mutation that triggered
// it, with the checklist row locked so two regrets resolving at once cannot
// lose an update.
//
// Completed checklists are frozen and an empty regret set leaves the score
// untouched.
func recalculateScore(tx *gorm.DB, checklistID uint) error {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var cl models.Checklist
	if err := q.First(&cl, checklistID).Error; err != nil {
		return err
	}
	if cl.Completed {
		return nil
	}

	var total int64
	if err := tx.Model(&models.Regret{}).Where("checklist_id = ?", cl.ID).Count(&total).Error; err != nil {
		return err
	}
	if total == 0 {
		return nil
	}

	var unresolved int64
	if err := tx.Model(&models.Regret{}).
		Where("checklist_id = ? AND success = ?", cl.ID, false).
		Count(&unresolved).Error; err != nil {
		return err
	}

	score := utils.Round4(float64(unresolved) / float64(total))
	if err := tx.Model(&cl).UpdateColumn("score", score).Error; err != nil {
		return err
	}

	// Cache keys follow the server-local rendering of the creation instant,
	// the same keying GetRegretIndex reads with.
	invalidateIndexCache(cl.UserID, utils.LocalDay(cl.CreatedAt.In(time.Local)))
	return nil
}
