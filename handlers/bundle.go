package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Availability endpoints
	GetAvailabilityHandler gin.HandlerFunc
	GetDailyAgendaHandler  gin.HandlerFunc

	// Appointment endpoints
	CreateAppointmentHandler     gin.HandlerFunc
	GetAppointmentHandler        gin.HandlerFunc
	ArriveAppointmentHandler     gin.HandlerFunc
	CompleteAppointmentHandler   gin.HandlerFunc
	CancelAppointmentHandler     gin.HandlerFunc
	RescheduleAppointmentHandler gin.HandlerFunc
	ListPatientAppointments      gin.HandlerFunc
	ListPractitionerAppointments gin.HandlerFunc

	// Admin endpoints
	OverrideAppointmentHandler gin.HandlerFunc
	ListOverrideAuditHandler   gin.HandlerFunc

	// Blocking endpoints
	SetBlockedIntervalsHandler gin.HandlerFunc
	GetBlockedIntervalsHandler gin.HandlerFunc
	CloseDayHandler            gin.HandlerFunc

	// Directory endpoints
	CreatePractitionerHandler gin.HandlerFunc
	GetPractitionerHandler    gin.HandlerFunc
	ListPractitionersHandler  gin.HandlerFunc
	CreatePatientHandler      gin.HandlerFunc
	GetPatientHandler         gin.HandlerFunc

	// Realtime endpoints
	RealtimeWSHandler gin.HandlerFunc
}
