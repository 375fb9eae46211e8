package controllers

import (
	"ClinicDesk/handlers"

	"github.com/gin-gonic/gin"
)

// SetupDashboardRoutes registers the reception dashboard API.
func SetupDashboardRoutes(router *gin.Engine, patientHandler *handlers.PatientHandler, billingHandler *handlers.BillingHandler, dashboardHandler *handlers.DashboardHandler, referenceHandler *handlers.ReferenceHandler) {
	router.GET("/api/patients", patientHandler.GetAllPatients)
	router.GET("/api/patients/queue", patientHandler.GetQueuePatients)
	router.GET("/api/patients/:patient_id", patientHandler.GetPatientByID)
	router.POST("/api/patients", patientHandler.RegisterPatient)
	router.PATCH("/api/patients/:patient_id", patientHandler.UpdatePatient)
	router.PATCH("/api/patients/:patient_id/status", patientHandler.UpdatePatientStatus)
	router.DELETE("/api/patients/:patient_id", patientHandler.DeletePatient)

	router.GET("/api/dashboard/stats", dashboardHandler.GetStats)

	router.GET("/api/invoices", billingHandler.GetAllInvoices)
	router.POST("/api/invoices", billingHandler.CreateInvoice)
	router.PATCH("/api/invoices/:invoice_id", billingHandler.MarkInvoicePaid)

	router.GET("/api/doctors", referenceHandler.GetDoctors)
	router.GET("/api/services", referenceHandler.GetServices)
	router.GET("/api/payment-methods", referenceHandler.GetPaymentMethods)
}
