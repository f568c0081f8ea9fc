package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "github.com/rohitdhavare/my-expenses-tracker/internal/errors"
	"github.com/rohitdhavare/my-expenses-tracker/internal/models"
	"github.com/rohitdhavare/my-expenses-tracker/internal/services"
)

// --- mock notification service ---

type mockNotificationService struct {
	services.NotificationServicer

	getUserNotificationsFn   func(userID string) ([]models.Notification, error)
	getUnreadNotificationsFn func(userID string) ([]models.Notification, error)
	markReadFn               func(id string) error
	markUnreadFn             func(id string) error
	markAllReadFn            func(userID string) (int64, error)
	deleteNotificationFn     func(id string) error
	deleteAllFn              func(userID string) (int64, error)
}

func (m *mockNotificationService) GetUserNotifications(userID string) ([]models.Notification, error) {
	if m.getUserNotificationsFn != nil {
		return m.getUserNotificationsFn(userID)
	}
	return []models.Notification{}, nil
}

func (m *mockNotificationService) GetUnreadNotifications(userID string) ([]models.Notification, error) {
	if m.getUnreadNotificationsFn != nil {
		return m.getUnreadNotificationsFn(userID)
	}
	return []models.Notification{}, nil
}

func (m *mockNotificationService) MarkRead(id string) error {
	if m.markReadFn != nil {
		return m.markReadFn(id)
	}
	return nil
}

func (m *mockNotificationService) MarkUnread(id string) error {
	if m.markUnreadFn != nil {
		return m.markUnreadFn(id)
	}
	return nil
}

func (m *mockNotificationService) MarkAllRead(userID string) (int64, error) {
	if m.markAllReadFn != nil {
		return m.markAllReadFn(userID)
	}
	return 0, nil
}

func (m *mockNotificationService) DeleteNotification(id string) error {
	if m.deleteNotificationFn != nil {
		return m.deleteNotificationFn(id)
	}
	return nil
}

func (m *mockNotificationService) DeleteAllNotifications(userID string) (int64, error) {
	if m.deleteAllFn != nil {
		return m.deleteAllFn(userID)
	}
	return 0, nil
}

func setupNotificationRouter(handler *NotificationHandler) *gin.Engine {
	r := gin.New()
	r.GET("/users/:userId/notifications", handler.GetUserNotifications)
	r.GET("/users/:userId/notifications/unread", handler.GetUnreadNotifications)
	r.POST("/users/:userId/notifications/mark-all-read", handler.MarkAllRead)
	r.DELETE("/users/:userId/notifications", handler.DeleteAllNotifications)
	r.POST("/notifications/:id/mark-read", handler.MarkRead)
	r.POST("/notifications/:id/mark-unread", handler.MarkUnread)
	r.DELETE("/notifications/:id", handler.DeleteNotification)
	return r
}

func TestNotificationHandler_List(t *testing.T) {
	svc := &mockNotificationService{
		getUserNotificationsFn: func(userID string) ([]models.Notification, error) {
			return []models.Notification{{UserID: userID, Message: "b"}, {UserID: userID, Message: "a"}}, nil
		},
		getUnreadNotificationsFn: func(userID string) ([]models.Notification, error) {
			return []models.Notification{{UserID: userID, Message: "b"}}, nil
		},
	}
	r := setupNotificationRouter(NewNotificationHandler(svc))

	t.Run("all", func(t *testing.T) {
		rec := doRequest(r, "GET", "/users/"+testUserID+"/notifications", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if n := len(parseJSON(t, rec)["notifications"].([]interface{})); n != 2 {
			t.Errorf("expected 2 notifications, got %d", n)
		}
	})

	t.Run("unread", func(t *testing.T) {
		rec := doRequest(r, "GET", "/users/"+testUserID+"/notifications/unread", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if n := len(parseJSON(t, rec)["notifications"].([]interface{})); n != 1 {
			t.Errorf("expected 1 notification, got %d", n)
		}
	})
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var gotID string
		svc := &mockNotificationService{markReadFn: func(id string) error { gotID = id; return nil }}
		r := setupNotificationRouter(NewNotificationHandler(svc))

		rec := doRequest(r, "POST", "/notifications/"+testOtherID+"/mark-read", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotID != testOtherID {
			t.Errorf("expected id %s, got %s", testOtherID, gotID)
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		svc := &mockNotificationService{
			markUnreadFn: func(string) error { return apperrors.ErrNotificationNotFound },
		}
		r := setupNotificationRouter(NewNotificationHandler(svc))

		rec := doRequest(r, "POST", "/notifications/"+testOtherID+"/mark-unread", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "NOTIFICATION_NOT_FOUND")
	})
}

func TestNotificationHandler_Bulk(t *testing.T) {
	svc := &mockNotificationService{
		markAllReadFn: func(string) (int64, error) { return 3, nil },
		deleteAllFn:   func(string) (int64, error) { return 5, nil },
	}
	r := setupNotificationRouter(NewNotificationHandler(svc))

	rec := doRequest(r, "POST", "/users/"+testUserID+"/notifications/mark-all-read", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if parseJSON(t, rec)["count"].(float64) != 3 {
		t.Error("expected count 3")
	}

	rec = doRequest(r, "DELETE", "/users/"+testUserID+"/notifications", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if parseJSON(t, rec)["count"].(float64) != 5 {
		t.Error("expected count 5")
	}
}

func TestNotificationHandler_Delete(t *testing.T) {
	svc := &mockNotificationService{
		deleteNotificationFn: func(string) error { return apperrors.ErrNotificationNotFound },
	}
	r := setupNotificationRouter(NewNotificationHandler(svc))

	rec := doRequest(r, "DELETE", "/notifications/"+testOtherID, "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
