package controllers

import (
	"errors"
	"net/http"

	"github.com/brijdaniel/RR-backend/services"

	"github.com/gin-gonic/gin"
)

func networkErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrUserNotFound), errors.Is(err, services.ErrNotFollowing):
		return http.StatusNotFound
	case errors.Is(err, services.ErrSelfFollow), errors.Is(err, services.ErrAlreadyFollowing):
		return http.StatusConflict
	case errors.Is(err, services.ErrNetworkingDisabled):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func ValidateNetworkUser(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	result, err := services.ValidateUser(userID, c.Param("username"))
	if err != nil {
		c.JSON(networkErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func FollowUser(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	username := c.Param("username")

	if err := services.Follow(userID, username); err != nil {
		c.JSON(networkErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "now following " + username})
}

func UnfollowUser(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	username := c.Param("username")

	if err := services.Unfollow(userID, username); err != nil {
		c.JSON(networkErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unfollowed " + username})
}

func ListNetwork(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var (
		entries []services.NetworkEntry
		err     error
	)
	switch c.Param("relation") {
	case "following":
		entries, err = services.ListFollowing(userID)
	case "followers":
		entries, err = services.ListFollowers(userID)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

type NetworkSettingsInput struct {
	AllowNetworking *bool `json:"allow_networking" binding:"required"`
}

func UpdateNetworkSettings(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input NetworkSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := services.UpdateNetworkSettings(userID, *input.AllowNetworking)
	if err != nil {
		c.JSON(networkErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"allow_networking": user.AllowNetworking})
}
