package api

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserHandler holds the user service dependency.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// --- Request/Response Structs ---

// NewUserRequest accepts form-encoded or JSON bodies.
type NewUserRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
}

type UserResponse struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{Username: user.Username, ID: user.ID.Hex()}
}

// --- Handler Methods ---

// NewUser registers a username.
// POST /api/exercise/new-user
func (h *UserHandler) NewUser(c *gin.Context) {
	var req NewUserRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			c.String(http.StatusOK, msgUsernameTaken)
			return
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// ListUsers returns every registered user.
// GET /api/exercise/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = MapUserToResponse(&users[i])
	}
	c.JSON(http.StatusOK, resp)
}
