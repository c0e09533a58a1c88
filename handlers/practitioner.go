package handlers

import (
	"net/http"
	"time"

	practitionerRepo "medagenda/database/repository/practitioner"
	"medagenda/config"
	"medagenda/models"
	"medagenda/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

type createPractitionerRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Specialty    string `json:"specialty"`
	SlotDuration int    `json:"slotDuration"`
	DayStart     string `json:"dayStart"`
	DayEnd       string `json:"dayEnd"`
}

// CreatePractitionerHandler registers a practitioner. Unset scheduling
// fields fall back to the clinic defaults.
func CreatePractitionerHandler(repo practitionerRepo.PractitionerRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createPractitionerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}

		pract := &models.Practitioner{
			ID:           uuid.New().String(),
			Name:         req.Name,
			Email:        req.Email,
			Specialty:    req.Specialty,
			SlotDuration: config.AppConfig.DefaultSlotMins,
			DayStart:     config.AppConfig.WorkdayStart,
			DayEnd:       config.AppConfig.WorkdayEnd,
			CreatedAt:    time.Now(),
		}
		if req.SlotDuration > 0 {
			pract.SlotDuration = req.SlotDuration
		}
		if req.DayStart != "" {
			start, err := utils.ParseClock(req.DayStart)
			if err != nil {
				utils.JSONAppError(c, utils.NewValidation("invalid dayStart: expected HH:MM"))
				return
			}
			pract.DayStart = start
		}
		if req.DayEnd != "" {
			end, err := utils.ParseClock(req.DayEnd)
			if err != nil {
				utils.JSONAppError(c, utils.NewValidation("invalid dayEnd: expected HH:MM"))
				return
			}
			pract.DayEnd = end
		}
		if pract.DayStart >= pract.DayEnd {
			utils.JSONAppError(c, utils.NewValidation("dayStart must precede dayEnd"))
			return
		}

		if err := repo.Create(c.Request.Context(), pract); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				utils.JSONAppError(c, utils.NewConflict("a practitioner with that email already exists"))
				return
			}
			utils.JSONAppError(c, utils.NewInternal(err))
			return
		}
		c.JSON(http.StatusCreated, pract)
	}
}

// GetPractitionerHandler fetches one practitioner by ID.
func GetPractitionerHandler(repo practitionerRepo.PractitionerRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		pract, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			utils.JSONAppError(c, utils.NewInternal(err))
			return
		}
		if pract == nil {
			utils.JSONAppError(c, utils.NewNotFound("practitioner not found"))
			return
		}
		c.JSON(http.StatusOK, pract)
	}
}

// ListPractitionersHandler lists the full practitioner directory.
func ListPractitionersHandler(repo practitionerRepo.PractitionerRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		practs, err := repo.List(c.Request.Context())
		if err != nil {
			utils.JSONAppError(c, utils.NewInternal(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"practitioners": practs})
	}
}
