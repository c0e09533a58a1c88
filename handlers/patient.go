package handlers

import (
	"net/http"
	"time"

	patientRepo "medagenda/database/repository/patient"
	"medagenda/models"
	"medagenda/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

type createPatientRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// CreatePatientHandler registers a patient.
func CreatePatientHandler(repo patientRepo.PatientRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createPatientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}

		patient := &models.Patient{
			ID:        uuid.New().String(),
			Name:      req.Name,
			Email:     req.Email,
			CreatedAt: time.Now(),
		}
		if err := repo.Create(c.Request.Context(), patient); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				utils.JSONAppError(c, utils.NewConflict("a patient with that email already exists"))
				return
			}
			utils.JSONAppError(c, utils.NewInternal(err))
			return
		}
		c.JSON(http.StatusCreated, patient)
	}
}

// GetPatientHandler fetches one patient by ID.
func GetPatientHandler(repo patientRepo.PatientRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		patient, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			utils.JSONAppError(c, utils.NewInternal(err))
			return
		}
		if patient == nil {
			utils.JSONAppError(c, utils.NewNotFound("patient not found"))
			return
		}
		c.JSON(http.StatusOK, patient)
	}
}
