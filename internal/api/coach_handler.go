package api

import (
	"alcyxob/coach-app/internal/domain"
	"alcyxob/coach-app/internal/service"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CoachHandler holds the coach service dependency.
type CoachHandler struct {
	coachService service.CoachService
}

// NewCoachHandler creates a new CoachHandler.
func NewCoachHandler(coachService service.CoachService) *CoachHandler {
	return &CoachHandler{coachService: coachService}
}

// --- Request Structs ---

type UpdateCoachProfileRequest struct {
	Description string `json:"description"`
	Settings    struct {
		SendWelcomeMessage bool   `json:"sendWelcomeMessage"`
		WelcomeMessage     string `json:"welcomeMessage"`
	} `json:"settings"`
}

// --- Handler Methods ---

// ListCoaches returns all coaches with their public user info.
func (h *CoachHandler) ListCoaches(c *gin.Context) {
	coaches, err := h.coachService.ListCoaches(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, coaches)
}

// GetMyProfile returns the requesting coach's own profile.
func (h *CoachHandler) GetMyProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	coach, err := h.coachService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, coach)
}

// UpdateMyProfile changes the requesting coach's description and
// notification settings.
func (h *CoachHandler) UpdateMyProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req UpdateCoachProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	coach, err := h.coachService.UpdateProfile(c.Request.Context(), userID, req.Description, domain.CoachSettings{
		SendWelcomeMessage: req.Settings.SendWelcomeMessage,
		WelcomeMessage:     req.Settings.WelcomeMessage,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, coach)
}
