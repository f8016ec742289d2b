package handlers

import (
	"net/http"

	"voyago/models"
	"voyago/services/alerts"
	"voyago/utils"

	"github.com/gin-gonic/gin"
)

// AlertHandler serves the travel alerts the disruption monitor produced.
type AlertHandler struct {
	Store alerts.Store
}

func NewAlertHandler(store alerts.Store) *AlertHandler {
	return &AlertHandler{Store: store}
}

// GetPendingAlerts drains and returns the caller's queued alerts.
func (h *AlertHandler) GetPendingAlerts(c *gin.Context) {
	pending, err := h.Store.Pending(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Could not load alerts", "")
		return
	}
	if pending == nil {
		pending = []models.TravelAlert{}
	}
	c.JSON(http.StatusOK, pending)
}
