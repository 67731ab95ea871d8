package transport

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/subtrackhq/subtrack/internal/entity"
	"github.com/subtrackhq/subtrack/internal/service"
	"github.com/subtrackhq/subtrack/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	notifications, err := h.notificationService.List(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

func (h *NotificationHandler) CheckForNew(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req struct {
		ForceRefresh bool `json:"force_refresh"`
	}
	// An empty body means a regular poll.
	_ = c.ShouldBindJSON(&req)

	snapshot, err := h.notificationService.CheckForNew(c.Request.Context(), userID, req.ForceRefresh)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id := c.Param("id")

	if err := h.notificationService.MarkAsRead(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, entity.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification marked as read"})
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	if err := h.notificationService.MarkAllAsRead(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "all notifications marked as read"})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id := c.Param("id")

	if err := h.notificationService.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, entity.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification deleted"})
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	force := c.Query("force") == "true"

	badge, err := h.notificationService.UnreadCount(c.Request.Context(), userID, force)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, badge)
}

func (h *NotificationHandler) Urgent(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	urgent, err := h.notificationService.Urgent(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": urgent,
		"count":         len(urgent),
	})
}
