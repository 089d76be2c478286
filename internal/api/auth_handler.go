package api

import (
	"alcyxob/coach-app/internal/domain"
	"alcyxob/coach-app/internal/service"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the auth-related service dependencies.
type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
	planService service.PlanService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, userService service.UserService, planService service.PlanService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		planService: planService,
	}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
	IsCoach  bool   `json:"isCoach"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse excludes sensitive info like password hash.
type UserResponse struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Name      string      `json:"name,omitempty"`
	AvatarURL string      `json:"avatarUrl,omitempty"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type CurrentUserResponse struct {
	User  UserResponse                `json:"user"`
	Plans []service.AthletePlanDetail `json:"plans,omitempty"`
}

// --- Handler Methods ---

// Register creates a new user account with a coach or athlete profile.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.Name, req.IsCoach)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.mapUserToResponse(c, user))
}

// Login authenticates a user and returns a JWT token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  h.mapUserToResponse(c, user),
	})
}

// Me returns the authenticated user plus, for athletes, their ordered plan
// instances with weeks attached.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	resp := CurrentUserResponse{User: h.mapUserToResponse(c, user)}
	if user.IsAthlete() {
		plans, err := h.planService.GetAthletePlans(c.Request.Context(), userID)
		if err != nil {
			abortWithServiceError(c, err)
			return
		}
		resp.Plans = plans
	}

	c.JSON(http.StatusOK, resp)
}

// mapUserToResponse converts a domain User to a UserResponse DTO, resolving
// the avatar key to a presigned URL.
func (h *AuthHandler) mapUserToResponse(c *gin.Context, user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:        user.ID.Hex(),
		Username:  user.Username,
		Email:     user.Email,
		Name:      user.Name,
		AvatarURL: h.userService.AvatarURL(c.Request.Context(), user),
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
