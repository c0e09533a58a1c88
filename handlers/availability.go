package handlers

import (
	"net/http"

	"medagenda/services/scheduling"
	"medagenda/utils"

	"github.com/gin-gonic/gin"
)

// GetAvailabilityHandler returns one practitioner's slots for a date.
func GetAvailabilityHandler(svc scheduling.AvailabilityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		practitionerID := c.Param("practitionerId")
		date := c.Query("date")
		if date == "" {
			utils.JSONError(c, http.StatusBadRequest, "missing required query parameter: date", "")
			return
		}

		avail, err := svc.GetAvailability(c.Request.Context(), practitionerID, date)
		if err != nil {
			utils.JSONAppError(c, err)
			return
		}
		c.JSON(http.StatusOK, avail)
	}
}

// GetDailyAgendaHandler returns the slots of every practitioner for a date.
func GetDailyAgendaHandler(svc scheduling.AvailabilityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Query("date")
		if date == "" {
			utils.JSONError(c, http.StatusBadRequest, "missing required query parameter: date", "")
			return
		}

		agenda, err := svc.GetDailyAgenda(c.Request.Context(), date)
		if err != nil {
			utils.JSONAppError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"date": date, "practitioners": agenda})
	}
}
