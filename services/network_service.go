package services

import (
	"context"
	"errors"
	"time"

	"github.com/brijdaniel/RR-backend/config"
	"github.com/brijdaniel/RR-backend/models"
	"github.com/brijdaniel/RR-backend/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NetworkEntry is one row of a following/followers listing: the related
// user's latest checklist score and their regret index for the current day,
// alongside their clamped edge counters. RegretIndex is -1 when the user has
// no checklist today.
type NetworkEntry struct {
	Username           string  `json:"username"`
	Score              float64 `json:"score"`
	ChecklistCreatedAt string  `json:"checklist_created_at"`
	RegretIndex        float64 `json:"regret_index"`
	FollowersCount     int     `json:"followers_count"`
	FollowingCount     int     `json:"following_count"`
}

// ValidationResult is the pre-flight answer for a follow attempt.
type ValidationResult struct {
	Username        string `json:"username"`
	AllowNetworking bool   `json:"allow_networking"`
	IsFollowing     bool   `json:"is_following"`
}

func findActiveUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := config.DB.Where("username = ? AND is_active = ?", username, true).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func edgeExists(followerID, followingID uint) (bool, error) {
	var count int64
	err := config.DB.Model(&models.Network{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

// ValidateUser reports whether a follow of username by the caller would be
// accepted, without mutating anything.
func ValidateUser(callerID uint, username string) (*ValidationResult, error) {
	target, err := findActiveUserByUsername(username)
	if err != nil {
		return nil, err
	}
	following, err := edgeExists(callerID, target.ID)
	if err != nil {
		return nil, err
	}
	return &ValidationResult{
		Username:        target.Username,
		AllowNetworking: target.AllowNetworking,
		IsFollowing:     following,
	}, nil
}

// Follow inserts the caller→target edge and bumps both denormalized counters
// with column arithmetic so concurrent follows never lose an update.
func Follow(callerID uint, username string) error {
	target, err := findActiveUserByUsername(username)
	if err != nil {
		return err
	}
	if target.ID == callerID {
		return ErrSelfFollow
	}
	if exists, err := edgeExists(callerID, target.ID); err != nil {
		return err
	} else if exists {
		return ErrAlreadyFollowing
	}
	if !target.AllowNetworking {
		return ErrNetworkingDisabled
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		edge := models.Network{FollowerID: callerID, FollowingID: target.ID}
		if err := tx.Create(&edge).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", callerID).
			UpdateColumn("following_count", gorm.Expr("following_count + ?", 1)).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", target.ID).
			UpdateColumn("followers_count", gorm.Expr("followers_count + ?", 1)).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a race against an identical follow; same outcome.
		return ErrAlreadyFollowing
	}
	return err
}

// Unfollow removes the caller→target edge and decrements both counters,
// guarded at zero. The guard lives in the WHERE clause so a drifted counter
// can never be driven negative, racing decrements included.
func Unfollow(callerID uint, username string) error {
	var target models.User
	err := config.DB.Where("username = ?", username).First(&target).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return config.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("follower_id = ? AND following_id = ?", callerID, target.ID).
			Delete(&models.Network{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFollowing
		}
		if err := tx.Model(&models.User{}).
			Where("id = ? AND following_count > 0", callerID).
			UpdateColumn("following_count", gorm.Expr("following_count - ?", 1)).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ? AND followers_count > 0", target.ID).
			UpdateColumn("followers_count", gorm.Expr("followers_count - ?", 1)).Error
	})
}

// ListFollowing lists the users the caller follows; ListFollowers the users
// following the caller. Related users who have never created a checklist are
// omitted entirely.
func ListFollowing(callerID uint) ([]NetworkEntry, error) {
	return listRelated(callerID, "follower_id", "following_id")
}

func ListFollowers(callerID uint) ([]NetworkEntry, error) {
	return listRelated(callerID, "following_id", "follower_id")
}

func listRelated(callerID uint, matchCol, relatedCol string) ([]NetworkEntry, error) {
	var edges []models.Network
	if err := config.DB.Where(matchCol+" = ?", callerID).Find(&edges).Error; err != nil {
		return nil, err
	}

	relatedIDs := make([]uint, 0, len(edges))
	for _, e := range edges {
		if matchCol == "follower_id" {
			relatedIDs = append(relatedIDs, e.FollowingID)
		} else {
			relatedIDs = append(relatedIDs, e.FollowerID)
		}
	}

	entries := make([]NetworkEntry, 0, len(relatedIDs))
	if len(relatedIDs) == 0 {
		return entries, nil
	}

	var users []models.User
	if err := config.DB.Where("id IN ?", relatedIDs).Find(&users).Error; err != nil {
		return nil, err
	}

	for _, u := range users {
		var latest models.Checklist
		err := config.DB.Where("user_id = ?", u.ID).Order("created_at desc").First(&latest).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue // no checklist yet, omitted from the listing
			}
			return nil, err
		}
		entries = append(entries, NetworkEntry{
			Username:           u.Username,
			Score:              latest.Score,
			ChecklistCreatedAt: latest.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
			RegretIndex:        GetRegretIndex(u.ID, Now()),
			FollowersCount:     clampCount(u.FollowersCount),
			FollowingCount:     clampCount(u.FollowingCount),
		})
	}
	return entries, nil
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// GetRegretIndex returns the user's checklist score for the given
// server-local calendar date, or -1 when no checklist exists for that date.
// Internal read failures are logged and also collapse to -1: this read feeds
// a social listing and degrades rather than fails.
func GetRegretIndex(userID uint, date time.Time) float64 {
	local := date.In(time.Local)
	day := utils.LocalDay(local)

	ctx := context.Background()
	if score, ok := cachedRegretIndex(ctx, userID, day); ok {
		return score
	}

	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
	end := start.Add(24 * time.Hour)

	var cl models.Checklist
	err := config.DB.
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start.UTC(), end.UTC()).
		First(&cl).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) && config.Log != nil {
			config.Log.Error("regret index lookup failed",
				zap.Uint("user_id", userID),
				zap.String("day", day),
				zap.Error(err),
			)
		}
		return -1
	}

	storeRegretIndex(ctx, userID, day, cl.Score)
	return cl.Score
}

// UpdateNetworkSettings flips the caller's networking opt-in flag.
func UpdateNetworkSettings(userID uint, allowNetworking bool) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if err := config.DB.Model(&user).UpdateColumn("allow_networking", allowNetworking).Error; err != nil {
		return nil, err
	}
	user.AllowNetworking = allowNetworking
	return &user, nil
}
