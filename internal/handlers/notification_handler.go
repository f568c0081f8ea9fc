package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rohitdhavare/my-expenses-tracker/internal/services"
)

// NotificationHandler handles notification requests. Notifications are
// created by the alerting engine, never through the API.
type NotificationHandler struct {
	notificationService services.NotificationServicer
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService services.NotificationServicer) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// GetUserNotifications handles listing a user's notifications.
// @Summary     Get notifications
// @Tags        notifications
// @Produce     json
// @Param       userId path string true "User ID"
// @Success     200 {array} models.Notification "Notifications, newest first"
// @Failure     400 {object} ErrorResponse "Invalid user ID"
// @Router      /users/{userId}/notifications [get]
func (h *NotificationHandler) GetUserNotifications(c *gin.Context) {
	userID, err := parsePathID(c, "userId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	notifications, err := h.notificationService.GetUserNotifications(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// GetUnreadNotifications handles listing a user's unread notifications.
// @Summary     Get unread notifications
// @Tags        notifications
// @Produce     json
// @Param       userId path string true "User ID"
// @Success     200 {array} models.Notification "Unread notifications, newest first"
// @Failure     400 {object} ErrorResponse "Invalid user ID"
// @Router      /users/{userId}/notifications/unread [get]
func (h *NotificationHandler) GetUnreadNotifications(c *gin.Context) {
	userID, err := parsePathID(c, "userId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	notifications, err := h.notificationService.GetUnreadNotifications(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkRead handles flagging a notification as read.
// @Summary     Mark notification read
// @Tags        notifications
// @Produce     json
// @Param       id path string true "Notification ID"
// @Success     200 {object} MessageResponse "Marked read"
// @Failure     404 {object} ErrorResponse "Notification not found"
// @Router      /notifications/{id}/mark-read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.notificationService.MarkRead(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Notification marked as read"})
}

// MarkUnread handles flagging a notification as unread.
// @Summary     Mark notification unread
// @Tags        notifications
// @Produce     json
// @Param       id path string true "Notification ID"
// @Success     200 {object} MessageResponse "Marked unread"
// @Failure     404 {object} ErrorResponse "Notification not found"
// @Router      /notifications/{id}/mark-unread [post]
func (h *NotificationHandler) MarkUnread(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.notificationService.MarkUnread(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Notification marked as unread"})
}

// MarkAllRead handles flagging all of a user's notifications as read.
// @Summary     Mark all notifications read
// @Tags        notifications
// @Produce     json
// @Param       userId path string true "User ID"
// @Success     200 {object} CountResponse "Number of notifications changed"
// @Router      /users/{userId}/notifications/mark-all-read [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, err := parsePathID(c, "userId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	count, err := h.notificationService.MarkAllRead(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CountResponse{Message: "All notifications marked as read", Count: count})
}

// DeleteNotification handles deleting a notification.
// @Summary     Delete notification
// @Tags        notifications
// @Produce     json
// @Param       id path string true "Notification ID"
// @Success     200 {object} MessageResponse "Notification deleted"
// @Failure     404 {object} ErrorResponse "Notification not found"
// @Router      /notifications/{id} [delete]
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.notificationService.DeleteNotification(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Notification deleted successfully"})
}

// DeleteAllNotifications handles deleting all of a user's notifications.
// @Summary     Delete all notifications
// @Tags        notifications
// @Produce     json
// @Param       userId path string true "User ID"
// @Success     200 {object} CountResponse "Number of notifications deleted"
// @Router      /users/{userId}/notifications [delete]
func (h *NotificationHandler) DeleteAllNotifications(c *gin.Context) {
	userID, err := parsePathID(c, "userId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	count, err := h.notificationService.DeleteAllNotifications(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CountResponse{Message: "All notifications deleted", Count: count})
}
