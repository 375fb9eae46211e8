package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ClinicDesk/config"
	"ClinicDesk/controllers"
	"ClinicDesk/gateway"
	"ClinicDesk/handlers"
	"ClinicDesk/middlewares"
	"ClinicDesk/stores"
)

// SetupRoutes wires the stores over the given gateways and returns the HTTP
// handler plus the two stores so the caller can attach subscribers.
func SetupRoutes(cfg *config.AppConfig, patientGW gateway.PatientGateway, billingGW gateway.BillingGateway, referenceGW gateway.ReferenceGateway) (http.Handler, *stores.PatientStore, *stores.BillingStore) {
	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()

	// Registered before the middleware chain so deploy checks can probe
	// liveness without the reception token.
	controllers.SetupRootRoute(router)

	router.Use(middlewares.ValidateBearerToken(cfg.GetBearerToken()))
	router.Use(middlewares.CorsMiddleware(middlewares.DefaultCorsConfig()))
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))
	router.Use(middlewares.LoggingMiddleware())

	// The billing store must exist before the patient store so the
	// registration cascade has somewhere to record invoices.
	billingStore := stores.NewBillingStore(billingGW)
	patientStore := stores.NewPatientStore(patientGW, billingStore)

	patientHandler := handlers.NewPatientHandler(patientStore)
	billingHandler := handlers.NewBillingHandler(billingStore)
	dashboardHandler := handlers.NewDashboardHandler(patientStore)
	referenceHandler := handlers.NewReferenceHandler(referenceGW)

	controllers.SetupDashboardRoutes(router, patientHandler, billingHandler, dashboardHandler, referenceHandler)

	return router, patientStore, billingStore
}
