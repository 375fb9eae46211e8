package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// healthHandler reports service liveness for deploy checks.
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SetupRootRoute sets up the unauthenticated root routes. Callers must
// register it before the bearer-token middleware.
func SetupRootRoute(router *gin.Engine) {
	router.GET("/health", healthHandler)
}
