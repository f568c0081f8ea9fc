package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rohitdhavare/my-expenses-tracker/internal/services"
)

// UserHandler handles user-related requests.
type UserHandler struct {
	userService services.UserServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserServicer) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUserRequest represents the request payload for creating a user.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=1,max=50"`
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"max=100"`
}

// CreateUser handles the creation of a new user.
// @Summary     Create a user
// @Description Create a user that owns expenses, budgets, bills and notifications
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body CreateUserRequest true "User details"
// @Success     201 {object} models.User "User created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Username or email taken"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.CreateUser(req.Username, req.Email, req.FullName)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// GetUser handles retrieving a user.
// @Summary     Get user by ID
// @Tags        users
// @Produce     json
// @Param       userId path string true "User ID"
// @Success     200 {object} models.User "User details"
// @Failure     400 {object} ErrorResponse "Invalid user ID"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /users/{userId} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := parsePathID(c, "userId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
