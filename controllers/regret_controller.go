package controllers

import (
	"errors"
	"net/http"

	"github.com/brijdaniel/RR-backend/services"

	"github.com/gin-gonic/gin"
)

func ListRegrets(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	checklistID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	regrets, err := services.ListRegrets(userID, checklistID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "checklist not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, regrets)
}

type CreateRegretInput struct {
	Description string `json:"description" binding:"required,max=255"`
}

func CreateRegret(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	checklistID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input CreateRegretInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	regret, err := services.CreateRegret(userID, checklistID, input.Description)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "checklist not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, regret)
}

// UpdateRegretInput deliberately binds only success; any other field in the
// request body is dropped, not rejected.
type UpdateRegretInput struct {
	Success *bool `json:"success" binding:"required"`
}

func UpdateRegret(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	checklistID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	regretID, ok := parseIDParam(c, "regretId")
	if !ok {
		return
	}

	var input UpdateRegretInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	regret, err := services.UpdateRegretSuccess(userID, checklistID, regretID, *input.Success)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		case errors.Is(err, services.ErrStaleEditWindow), errors.Is(err, services.ErrIllegalTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, regret)
}
