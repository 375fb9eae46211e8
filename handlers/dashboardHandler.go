package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ClinicDesk/stores"
)

type DashboardHandler struct {
	store *stores.PatientStore
}

func NewDashboardHandler(store *stores.PatientStore) *DashboardHandler {
	return &DashboardHandler{store: store}
}

// GetStats serves today's reception aggregate. The store already degrades to
// a zeroed struct on upstream failure, so this always returns 200.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.GetStats(c))
}
