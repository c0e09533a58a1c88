package handlers

import (
	"net/http"

	auditRepo "medagenda/database/repository/audit"
	"medagenda/middleware"
	"medagenda/models"
	"medagenda/services/appointment"
	"medagenda/utils"

	"github.com/gin-gonic/gin"
)

type overrideRequest struct {
	Status string `json:"status" binding:"required"`
}

// OverrideAppointmentHandler forces an appointment into an arbitrary state.
// Admin only; the route guard enforces the role, the service enforces it
// again.
func OverrideAppointmentHandler(svc appointment.AppointmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req overrideRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}

		actor := middleware.ActorFromContext(c)
		appt, err := svc.Override(c.Request.Context(), c.Param("id"), models.AppointmentStatus(req.Status), actor)
		if err != nil {
			utils.JSONAppError(c, err)
			return
		}
		c.JSON(http.StatusOK, appt)
	}
}

// ListOverrideAuditHandler returns the override trail for one appointment,
// oldest first.
func ListOverrideAuditHandler(repo auditRepo.AuditRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := repo.ListByAppointment(c.Request.Context(), c.Param("id"))
		if err != nil {
			utils.JSONAppError(c, utils.NewInternal(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"audit": entries})
	}
}
