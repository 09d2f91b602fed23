package models

import (
    "gorm.io/gorm"
)

type Regret struct {
    gorm.Model
    ChecklistID uint   `gorm:"index;not null" json:"checklist_id"`
    Description string `gorm:"type:varchar(255);not null" json:"description"`
    Success     bool   `gorm:"default:false" json:"success"` // false→true only
}
