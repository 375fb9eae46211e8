package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"ClinicDesk/gateway"
	"ClinicDesk/models"
)

// ReferenceHandler serves the dropdown reference data. The upstream lists
// are preferred; the bundled catalog is the fallback so registration forms
// keep working through an upstream outage.
type ReferenceHandler struct {
	gateway gateway.ReferenceGateway
}

func NewReferenceHandler(gw gateway.ReferenceGateway) *ReferenceHandler {
	return &ReferenceHandler{gateway: gw}
}

func (h *ReferenceHandler) GetDoctors(c *gin.Context) {
	doctors, err := h.gateway.Doctors(c)
	if err != nil {
		log.Printf("Failed to fetch doctors, using fallback list: %v", err)
		doctors = models.Doctors
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *ReferenceHandler) GetServices(c *gin.Context) {
	services, err := h.gateway.Services(c)
	if err != nil {
		log.Printf("Failed to fetch services, using bundled price list: %v", err)
		services = models.BillingServices
	}
	c.JSON(http.StatusOK, services)
}

func (h *ReferenceHandler) GetPaymentMethods(c *gin.Context) {
	methods, err := h.gateway.PaymentMethods(c)
	if err != nil {
		log.Printf("Failed to fetch payment methods, using bundled list: %v", err)
		methods = models.PaymentMethods
	}
	c.JSON(http.StatusOK, methods)
}
