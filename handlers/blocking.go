package handlers

import (
	"net/http"

	"medagenda/middleware"
	"medagenda/models"
	"medagenda/services/blocking"
	"medagenda/utils"

	"github.com/gin-gonic/gin"
)

type blockedIntervalInput struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

type setBlockedRequest struct {
	PractitionerID string                 `json:"practitionerId" binding:"required"`
	Date           string                 `json:"date" binding:"required"`
	Intervals      []blockedIntervalInput `json:"intervals"`
	Reason         string                 `json:"reason"`
}

type closeDayRequest struct {
	PractitionerID string `json:"practitionerId" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Reason         string `json:"reason"`
}

// SetBlockedIntervalsHandler replaces a practitioner's blocked intervals for
// a date. Practitioners manage their own calendar; front desk and admin can
// manage anyone's.
func SetBlockedIntervalsHandler(svc blocking.BlockingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setBlockedRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		if err := requireCalendarAccess(c, req.PractitionerID); err != nil {
			utils.JSONAppError(c, err)
			return
		}

		intervals := make([]models.Slot, 0, len(req.Intervals))
		for _, iv := range req.Intervals {
			start, err := utils.ParseClock(iv.Start)
			if err != nil {
				utils.JSONAppError(c, utils.NewValidation("invalid interval start: expected HH:MM"))
				return
			}
			end, err := utils.ParseClock(iv.End)
			if err != nil {
				utils.JSONAppError(c, utils.NewValidation("invalid interval end: expected HH:MM"))
				return
			}
			intervals = append(intervals, models.Slot{Start: start, End: end})
		}

		blocks, err := svc.SetBlockedIntervals(c.Request.Context(), req.PractitionerID, req.Date, intervals, req.Reason)
		if err != nil {
			utils.JSONAppError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"blocked": blocks})
	}
}

// GetBlockedIntervalsHandler lists a practitioner's blocked intervals for a
// date.
func GetBlockedIntervalsHandler(svc blocking.BlockingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Query("date")
		if date == "" {
			utils.JSONError(c, http.StatusBadRequest, "missing required query parameter: date", "")
			return
		}

		blocks, err := svc.GetBlockedIntervals(c.Request.Context(), c.Param("practitionerId"), date)
		if err != nil {
			utils.JSONAppError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"blocked": blocks})
	}
}

// CloseDayHandler blocks a practitioner's entire working day.
func CloseDayHandler(svc blocking.BlockingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req closeDayRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		if err := requireCalendarAccess(c, req.PractitionerID); err != nil {
			utils.JSONAppError(c, err)
			return
		}

		block, err := svc.CloseDay(c.Request.Context(), req.PractitionerID, req.Date, req.Reason)
		if err != nil {
			utils.JSONAppError(c, err)
			return
		}
		c.JSON(http.StatusOK, block)
	}
}

// requireCalendarAccess allows practitioners to touch only their own
// calendar; front desk and admin can touch any.
func requireCalendarAccess(c *gin.Context, practitionerID string) error {
	actor := middleware.ActorFromContext(c)
	if actor.Role == models.RolePractitioner && actor.ID != practitionerID {
		return utils.NewForbidden("practitioners can only manage their own calendar")
	}
	return nil
}
