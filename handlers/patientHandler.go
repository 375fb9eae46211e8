package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ClinicDesk/models"
	"ClinicDesk/stores"
	"ClinicDesk/utils"
)

type PatientHandler struct {
	store *stores.PatientStore
}

func NewPatientHandler(store *stores.PatientStore) *PatientHandler {
	return &PatientHandler{store: store}
}

func (h *PatientHandler) GetAllPatients(c *gin.Context) {
	filters := models.PatientFilters{
		Status: c.Query("status"),
		Doctor: c.Query("doctor"),
		Search: c.Query("search"),
	}
	c.JSON(http.StatusOK, h.store.GetPatients(c, filters))
}

func (h *PatientHandler) GetQueuePatients(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.GetQueuePatients())
}

func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	id := c.Param("patient_id")
	patient := h.store.GetPatientById(c, id)
	if patient == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}
	c.JSON(http.StatusOK, patient)
}

// RegisterPatient creates a patient and returns the registration together
// with the invoice the billing cascade issued. A registration whose invoice
// step failed upstream is still a 201, with the billing failure called out
// so the desk can follow up.
func (h *PatientHandler) RegisterPatient(c *gin.Context) {
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateRegistration(patient); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	registration, err := h.store.AddPatient(c, patient)
	var cascadeErr *stores.CascadeError
	if errors.As(err, &cascadeErr) {
		c.JSON(http.StatusCreated, gin.H{
			"patient":       registration.Patient,
			"invoice":       nil,
			"billing_error": cascadeErr.Error(),
		})
		return
	}
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, registration)
}

func (h *PatientHandler) UpdatePatientStatus(c *gin.Context) {
	id := c.Param("patient_id")
	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateStatusChange(body.Status); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patient, err := h.store.UpdatePatientStatus(c, id, body.Status)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	id := c.Param("patient_id")
	var patch models.PatientPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patient, err := h.store.UpdatePatient(c, id, patch)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

func (h *PatientHandler) DeletePatient(c *gin.Context) {
	id := c.Param("patient_id")
	removed, err := h.store.DeletePatient(c, id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if removed == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, removed)
}
