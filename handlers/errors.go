package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ClinicDesk/gateway"
	"ClinicDesk/middlewares"
)

// respondStoreError maps a store mutation failure onto the client response.
// Upstream rejections keep their status and message; transport failures
// surface as a bad gateway.
func respondStoreError(c *gin.Context, err error) {
	var apiErr *gateway.APIError
	switch {
	case errors.Is(err, gateway.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.As(err, &apiErr):
		c.JSON(apiErr.StatusCode, gin.H{"error": apiErr.Message})
	default:
		middlewares.HttpError(c, "upstream request failed", http.StatusBadGateway, err)
	}
}
