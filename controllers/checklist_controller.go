package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/brijdaniel/RR-backend/services"
	"github.com/brijdaniel/RR-backend/utils"

	"github.com/gin-gonic/gin"
)

// ListChecklists handles GET /checklists with the optional query filters
// created_after, created_before (YYYY-MM-DD, inclusive), score_min,
// score_max, completed, and today. today=true also creates today's checklist
// when the caller has none yet.
func ListChecklists(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var filter services.ChecklistFilter

	if v := c.Query("created_after"); v != "" {
		d, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid created_after, use YYYY-MM-DD"})
			return
		}
		filter.CreatedFrom = &d
	}
	if v := c.Query("created_before"); v != "" {
		d, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid created_before, use YYYY-MM-DD"})
			return
		}
		end := d.Add(24 * time.Hour) // inclusive end date
		filter.CreatedTo = &end
	}
	if v := c.Query("score_min"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid score_min"})
			return
		}
		filter.ScoreMin = &f
	}
	if v := c.Query("score_max"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid score_max"})
			return
		}
		filter.ScoreMax = &f
	}
	if v := c.Query("completed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid completed"})
			return
		}
		filter.Completed = &b
	}
	if v := c.Query("today"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid today"})
			return
		}
		filter.Today = b
	}

	lists, err := services.ListChecklists(userID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, lists)
}

type CreateChecklistInput struct {
	LocalDatetime string `json:"local_datetime" binding:"required"`
}

// CreateChecklist handles POST /checklists. Returns 200 with the existing
// checklist when the caller already has one for the request's local day, 201
// when a new one was created.
func CreateChecklist(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input CreateChecklistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	local, err := utils.ParseLocalDatetime(input.LocalDatetime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cl, created, err := services.GetOrCreateForLocalDay(userID, local)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, cl)
}

// CompleteChecklist handles POST /checklists/:id/complete.
func CompleteChecklist(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	checklistID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	cl, err := services.CompleteChecklist(userID, checklistID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "checklist not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cl)
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return uint(id), true
}
