package models

import (
    "gorm.io/gorm"
)

type User struct {
    gorm.Model
    Username        string `gorm:"uniqueIndex;not null" json:"username"`
    Password        string `json:"-"`
    IsActive        bool   `gorm:"default:true" json:"is_active"`
    AllowNetworking bool   `gorm:"default:true" json:"allow_networking"`

    // Denormalized edge counts, maintained by the network service.
    FollowersCount int `gorm:"default:0" json:"followers_count"`
    FollowingCount int `gorm:"default:0" json:"following_count"`

    Checklists []Checklist `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
