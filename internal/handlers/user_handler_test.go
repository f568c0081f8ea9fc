package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "github.com/rohitdhavare/my-expenses-tracker/internal/errors"
	"github.com/rohitdhavare/my-expenses-tracker/internal/models"
	"github.com/rohitdhavare/my-expenses-tracker/internal/services"
)

// --- mock user service ---

type mockUserService struct {
	createUserFn  func(username, email, fullName string) (*models.User, error)
	getUserByIDFn func(id string) (*models.User, error)
}

func (m *mockUserService) CreateUser(username, email, fullName string) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(username, email, fullName)
	}
	return &models.User{Username: username, Email: email, FullName: fullName}, nil
}

func (m *mockUserService) GetUserByID(id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{}, nil
}

var _ services.UserServicer = (*mockUserService)(nil)

func setupUserRouter(handler *UserHandler) *gin.Engine {
	r := gin.New()
	r.POST("/users", handler.CreateUser)
	r.GET("/users/:userId", handler.GetUser)
	return r
}

func TestUserHandler_CreateUser(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		r := setupUserRouter(NewUserHandler(&mockUserService{}))

		rec := doRequest(r, "POST", "/users", `{"username":"rohit","email":"rohit@example.com","full_name":"Rohit"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		user := parseJSON(t, rec)["user"].(map[string]interface{})
		if user["username"] != "rohit" {
			t.Errorf("expected rohit, got %v", user["username"])
		}
	})

	t.Run("returns 400 on invalid email", func(t *testing.T) {
		r := setupUserRouter(NewUserHandler(&mockUserService{}))

		rec := doRequest(r, "POST", "/users", `{"username":"rohit","email":"nope"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 409 on duplicate", func(t *testing.T) {
		svc := &mockUserService{
			createUserFn: func(string, string, string) (*models.User, error) {
				return nil, apperrors.ErrDuplicateUser
			},
		}
		r := setupUserRouter(NewUserHandler(svc))

		rec := doRequest(r, "POST", "/users", `{"username":"rohit","email":"rohit@example.com"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_USER")
	})
}

func TestUserHandler_GetUser(t *testing.T) {
	svc := &mockUserService{
		getUserByIDFn: func(string) (*models.User, error) { return nil, apperrors.ErrUserNotFound },
	}
	r := setupUserRouter(NewUserHandler(svc))

	rec := doRequest(r, "GET", "/users/"+testUserID, "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	assertErrorCode(t, parseJSON(t, rec), "USER_NOT_FOUND")
}
