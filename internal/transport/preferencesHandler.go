package transport

import (
	"errors"
	"net/http"

	"github.com/subtrackhq/subtrack/internal/entity"
	"github.com/subtrackhq/subtrack/internal/service"
	"github.com/subtrackhq/subtrack/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

type PreferencesHandler struct {
	preferencesService service.PreferencesService
}

func NewPreferencesHandler(preferencesService service.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{preferencesService: preferencesService}
}

func (h *PreferencesHandler) Load(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	prefs, err := h.preferencesService.Load(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, prefs)
}

func (h *PreferencesHandler) Save(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req service.SavePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prefs, err := h.preferencesService.Save(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidEmailTime) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, prefs)
}
