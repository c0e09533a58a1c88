package handlers

import (
	"net/http"
	"strconv"
	"time"

	"medagenda/middleware"
	"medagenda/models"
	"medagenda/services/appointment"
	"medagenda/utils"

	"github.com/gin-gonic/gin"
)

type appointmentRequest struct {
	PractitionerID string `json:"practitionerId" binding:"required"`
	PatientID      string `json:"patientId" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Start          string `json:"start" binding:"required"`
}

type rescheduleRequest struct {
	Date  string `json:"date" binding:"required"`
	Start string `json:"start" binding:"required"`
}

// CreateAppointmentHandler books a new appointment.
func CreateAppointmentHandler(svc appointment.AppointmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req appointmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}

		start, err := parseInstant(req.Date, req.Start)
		if err != nil {
			utils.JSONAppError(c, err)
			return
		}

		actor := middleware.ActorFromContext(c)
		if actor.Role == models.RolePatient && actor.ID != req.PatientID {
			utils.JSONAppError(c, utils.NewForbidden("patients can only book for themselves"))
			return
		}

		appt, err := svc.Create(c.Request.Context(), req.PractitionerID, req.PatientID, start)
		if err != nil {
			utils.JSONAppError(c, err)
			return
		}
		c.JSON(http.StatusCreated, appt)
	}
}

// GetAppointmentHandler fetches one appointment by ID.
func GetAppointmentHandler(svc appointment.AppointmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		appt, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			utils.JSONAppError(c, err)
			return
		}
		c.JSON(http.StatusOK, appt)
	}
}

// transitionHandler applies one lifecycle action to an appointment.
func transitionHandler(svc appointment.AppointmentService, action models.TransitionAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := middleware.ActorFromContext(c)
		appt, err := svc.Transition(c.Request.Context(), c.Param("id"), action, actor)
		if err != nil {
			utils.JSONAppError(c, err)
			return
		}
		c.JSON(http.StatusOK, appt)
	}
}

// ArriveAppointmentHandler checks a patient in (agendada -> en_espera).
func ArriveAppointmentHandler(svc appointment.AppointmentService) gin.HandlerFunc {
	return transitionHandler(svc, models.ActionArrive)
}

// CompleteAppointmentHandler marks an appointment attended (en_espera -> atendida).
func CompleteAppointmentHandler(svc appointment.AppointmentService) gin.HandlerFunc {
	return transitionHandler(svc, models.ActionComplete)
}

// CancelAppointmentHandler cancels an appointment and frees its slot.
func CancelAppointmentHandler(svc appointment.AppointmentService) gin.HandlerFunc {
	return transitionHandler(svc, models.ActionCancel)
}

// RescheduleAppointmentHandler moves an appointment to a new slot.
func RescheduleAppointmentHandler(svc appointment.AppointmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req rescheduleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}

		start, err := parseInstant(req.Date, req.Start)
		if err != nil {
			utils.JSONAppError(c, err)
			return
		}

		actor := middleware.ActorFromContext(c)
		appt, err := svc.Reschedule(c.Request.Context(), c.Param("id"), start, actor)
		if err != nil {
			utils.JSONAppError(c, err)
			return
		}
		c.JSON(http.StatusOK, appt)
	}
}

// ListPatientAppointments returns a patient's appointment history.
func ListPatientAppointments(svc appointment.AppointmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		patientID := c.Param("patientId")
		actor := middleware.ActorFromContext(c)
		if actor.Role == models.RolePatient && actor.ID != patientID {
			utils.JSONAppError(c, utils.NewForbidden("patients can only view their own appointments"))
			return
		}

		page, limit := pagination(c)
		appts, total, err := svc.ListByPatient(c.Request.Context(), patientID, page, limit)
		if err != nil {
			utils.JSONAppError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"appointments": appts, "total": total, "page": page, "limit": limit})
	}
}

// ListPractitionerAppointments returns a practitioner's agenda, optionally
// filtered by date.
func ListPractitionerAppointments(svc appointment.AppointmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pagination(c)
		appts, total, err := svc.ListByPractitioner(c.Request.Context(), c.Param("practitionerId"), c.Query("date"), page, limit)
		if err != nil {
			utils.JSONAppError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"appointments": appts, "total": total, "page": page, "limit": limit})
	}
}

// parseInstant validates a date + "HH:MM" clock pair into a time.Time.
func parseInstant(date, clock string) (time.Time, error) {
	if !utils.ValidDate(date) {
		return time.Time{}, utils.NewValidation("invalid date: expected YYYY-MM-DD")
	}
	minute, err := utils.ParseClock(clock)
	if err != nil {
		return time.Time{}, utils.NewValidation("invalid start: expected HH:MM")
	}
	t, err := utils.CombineDate(date, minute)
	if err != nil {
		return time.Time{}, utils.NewValidation("invalid date: expected YYYY-MM-DD")
	}
	return t, nil
}

func pagination(c *gin.Context) (page, limit int64) {
	page, _ = strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ = strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	return page, limit
}
