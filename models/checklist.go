package models

import (
    "gorm.io/gorm"
)

// Checklist is one user's container of regrets for a single local calendar
// day. CreatedAt holds the UTC instant of creation; LocalDay holds the
// calendar date as seen through the UTC offset the creating request supplied.
type Checklist struct {
    gorm.Model
    UserID   uint   `gorm:"index;not null;uniqueIndex:idx_checklists_user_local_day" json:"user_id"`
    LocalDay string `gorm:"type:varchar(10);not null;uniqueIndex:idx_checklists_user_local_day" json:"local_day"`

    Score     float64 `gorm:"default:0" json:"score"` // [0,1], 4 decimal places
    Completed bool    `gorm:"default:false" json:"completed"`

    Regrets []Regret `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
