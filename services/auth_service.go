package services

import (
	"errors"

	"github.com/brijdaniel/RR-backend/config"
	"github.com/brijdaniel/RR-backend/models"
	"github.com/brijdaniel/RR-backend/utils"

	"gorm.io/gorm"
)

func RegisterUser(username, password string) (*models.User, error) {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: username,
		Password: hashed,
		IsActive: true,
		// Networking is opt-out, matching the default on the column.
		AllowNetworking: true,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return &user, nil
}

func AuthenticateUser(username, password string) (string, error) {
	var user models.User
	result := config.DB.Where("username = ? AND is_active = ?", username, true).First(&user)
	if result.Error != nil {
		return "", errors.New("user not found or inactive")
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", errors.New("incorrect password")
	}

	return utils.GenerateJWT(user.ID, user.Username)
}

func GetUserProfile(userID uint) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.FollowersCount = clampCount(user.FollowersCount)
	user.FollowingCount = clampCount(user.FollowingCount)
	return &user, nil
}
