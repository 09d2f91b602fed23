package models

import (
    "gorm.io/gorm"
)

// Network is a directed follow edge: Follower follows Following.
// The unique index rejects duplicate edges; self-loops are rejected in the
// service before the row is ever written.
type Network struct {
    gorm.Model
    FollowerID  uint `gorm:"not null;uniqueIndex:idx_network_follower_following" json:"follower_id"`
    FollowingID uint `gorm:"not null;uniqueIndex:idx_network_follower_following" json:"following_id"`

    Follower  User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-"`
    Following User `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE" json:"-"`
}
