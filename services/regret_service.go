package services

import (
	"errors"
	"time"

	"github.com/brijdaniel/RR-backend/config"
	"github.com/brijdaniel/RR-backend/models"
	"github.com/brijdaniel/RR-backend/utils"

	"gorm.io/gorm"
)

// ListRegrets returns the regrets of a checklist the caller owns.
func ListRegrets(userID, checklistID uint) ([]models.Regret, error) {
	if _, err := GetOwnedChecklist(userID, checklistID); err != nil {
		return nil, err
	}
	var regrets []models.Regret
	err := config.DB.Where("checklist_id = ?", checklistID).Order("created_at asc").Find(&regrets).Error
	return regrets, err
}

// CreateRegret inserts a new unresolved regret under a checklist the caller
// owns and recalculates the checklist score in the same transaction.
func CreateRegret(userID, checklistID uint, description string) (*models.Regret, error) {
	cl, err := GetOwnedChecklist(userID, checklistID)
	if err != nil {
		return nil, err
	}

	var out *models.Regret
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		regret := models.Regret{
			ChecklistID: cl.ID,
			Description: description,
		}
		if err := tx.Create(&regret).Error; err != nil {
			return err
		}
		out = &regret
		return recalculateScore(tx, cl.ID)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateRegretSuccess applies the one-way success transition. The only legal
// write is false→true, and only while the owning checklist's day (evaluated
// against the server clock) is still the current day. Every other field in
// the request is ignored; the ledger mutates success and nothing else.
func UpdateRegretSuccess(userID, checklistID, regretID uint, newValue bool) (*models.Regret, error) {
	cl, err := GetOwnedChecklist(userID, checklistID)
	if err != nil {
		return nil, err
	}

	if !utils.SameLocalDay(cl.CreatedAt, Now().In(time.Local)) {
		return nil, ErrStaleEditWindow
	}

	var regret models.Regret
	err = config.DB.Where("id = ? AND checklist_id = ?", regretID, cl.ID).First(&regret).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !newValue || regret.Success {
		return nil, ErrIllegalTransition
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		// Conditional write: the read above ran outside this transaction, so
		// a concurrent request may have resolved the regret since. Exactly
		// one false→true transition may ever land.
		res := tx.Model(&models.Regret{}).
			Where("id = ? AND success = ?", regret.ID, false).
			UpdateColumn("success", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrIllegalTransition
		}
		return recalculateScore(tx, cl.ID)
	})
	if err != nil {
		return nil, err
	}
	regret.Success = true
	return &regret, nil
}
