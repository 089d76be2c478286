package api

import (
	"alcyxob/coach-app/internal/domain"
	"alcyxob/coach-app/internal/service"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateHandler holds the template and plan service dependencies.
type TemplateHandler struct {
	templateService service.TemplateService
	planService     service.PlanService
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService service.TemplateService, planService service.PlanService) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
		planService:     planService,
	}
}

// --- Request/Response Structs ---
// The create payload carries the whole nested tree, mirroring the template
// editor's save action.

type CreateStepRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	Type        domain.StepType     `json:"type" binding:"required"`
	Value       int                 `json:"value"`
	Order       *int                `json:"order"`
	Repetitions *int                `json:"repetitions"`
	Steps       []CreateStepRequest `json:"steps"` // children of a group step
}

type CreateWorkoutRequest struct {
	Title       string              `json:"title" binding:"required,min=3,max=100"`
	Description string              `json:"description"`
	Type        domain.WorkoutType  `json:"type" binding:"required"`
	Order       *int                `json:"order"`
	Steps       []CreateStepRequest `json:"steps"`
}

type CreateDayRequest struct {
	DayOfWeek int                    `json:"dayOfWeek" binding:"required,min=1,max=7"`
	Order     *int                   `json:"order"`
	Workouts  []CreateWorkoutRequest `json:"workouts"`
}

type CreateWeekRequest struct {
	Order *int               `json:"order"`
	Days  []CreateDayRequest `json:"days"`
}

type CreateTemplateRequest struct {
	Title       string              `json:"title" binding:"required,min=5,max=100"`
	Description string              `json:"description" binding:"required,min=10"`
	Level       domain.PlanLevel    `json:"level" binding:"required"`
	Type        domain.PlanType     `json:"type" binding:"required"`
	Price       float64             `json:"price"`
	Features    []string            `json:"features"`
	Weeks       []CreateWeekRequest `json:"weeks"`
}

type UpdateTemplateRequest struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Level       *domain.PlanLevel `json:"level"`
	Type        *domain.PlanType  `json:"type"`
	Price       *float64          `json:"price"`
	Features    []string          `json:"features"`
}

// AthletePlanResponse is the order endpoint's summary payload.
type AthletePlanResponse struct {
	ID        string    `json:"id"`
	PlanID    string    `json:"planId"`
	StartedAt time.Time `json:"startedAt"`
}

// --- Handler Methods ---

// CreateTemplate creates a template with its whole nested tree.
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	template, err := h.templateService.CreateTemplate(c.Request.Context(), userID, mapCreateTemplateRequest(req))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, template)
}

// ListTemplates returns all templates.
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	templates, err := h.templateService.ListTemplates(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

// ListMyTemplates returns the requesting coach's own templates.
func (h *TemplateHandler) ListMyTemplates(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	templates, err := h.templateService.ListMyTemplates(c.Request.Context(), userID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

// GetTemplatePreview returns the aggregate preview of one template: the
// computed week count and the first ordered week.
func (h *TemplateHandler) GetTemplatePreview(c *gin.Context) {
	templateID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	preview, err := h.templateService.GetTemplatePreview(c.Request.Context(), templateID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

// GetTemplateTree returns the template with all descendants, for the owning
// coach's editor.
func (h *TemplateHandler) GetTemplateTree(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	templateID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	tree, err := h.templateService.GetTemplateTree(c.Request.Context(), userID, templateID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tree)
}

// UpdateTemplate changes plan-level scalars of an owned template.
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	templateID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	var req UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	template, err := h.templateService.UpdateTemplate(c.Request.Context(), userID, templateID, service.UpdateTemplateInput{
		Title:       req.Title,
		Description: req.Description,
		Level:       req.Level,
		Type:        req.Type,
		Price:       req.Price,
		Features:    req.Features,
	})
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

// DeleteTemplate removes an owned template.
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	templateID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	if err := h.templateService.DeleteTemplate(c.Request.Context(), userID, templateID); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// OrderTemplate clones the template into a new plan for the requesting
// athlete and returns the AthletePlan summary.
func (h *TemplateHandler) OrderTemplate(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	templateID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	athletePlan, err := h.planService.OrderTemplate(c.Request.Context(), templateID, userID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AthletePlanResponse{
		ID:        athletePlan.ID.Hex(),
		PlanID:    athletePlan.PlanID.Hex(),
		StartedAt: athletePlan.StartedAt,
	})
}

// GetAthletePlan returns one of the requesting athlete's plan instances.
func (h *TemplateHandler) GetAthletePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	athletePlanID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid athlete plan ID format")
		return
	}

	detail, err := h.planService.GetAthletePlan(c.Request.Context(), userID, athletePlanID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// --- Request Mapping ---

func mapCreateTemplateRequest(req CreateTemplateRequest) service.CreateTemplateInput {
	return service.CreateTemplateInput{
		Title:       req.Title,
		Description: req.Description,
		Level:       req.Level,
		Type:        req.Type,
		Price:       req.Price,
		Features:    req.Features,
		Weeks:       mapCreateWeekRequests(req.Weeks),
	}
}

func mapCreateWeekRequests(reqs []CreateWeekRequest) []service.CreateWeekInput {
	weeks := make([]service.CreateWeekInput, 0, len(reqs))
	for _, r := range reqs {
		weeks = append(weeks, service.CreateWeekInput{
			Order: r.Order,
			Days:  mapCreateDayRequests(r.Days),
		})
	}
	return weeks
}

func mapCreateDayRequests(reqs []CreateDayRequest) []service.CreateDayInput {
	days := make([]service.CreateDayInput, 0, len(reqs))
	for _, r := range reqs {
		days = append(days, service.CreateDayInput{
			DayOfWeek: r.DayOfWeek,
			Order:     r.Order,
			Workouts:  mapCreateWorkoutRequests(r.Workouts),
		})
	}
	return days
}

func mapCreateWorkoutRequests(reqs []CreateWorkoutRequest) []service.CreateWorkoutInput {
	workouts := make([]service.CreateWorkoutInput, 0, len(reqs))
	for _, r := range reqs {
		workouts = append(workouts, service.CreateWorkoutInput{
			Title:       r.Title,
			Description: r.Description,
			Type:        r.Type,
			Order:       r.Order,
			Steps:       mapCreateStepRequests(r.Steps),
		})
	}
	return workouts
}

func mapCreateStepRequests(reqs []CreateStepRequest) []service.CreateStepInput {
	steps := make([]service.CreateStepInput, 0, len(reqs))
	for _, r := range reqs {
		steps = append(steps, service.CreateStepInput{
			Name:        r.Name,
			Description: r.Description,
			Type:        r.Type,
			Value:       r.Value,
			Order:       r.Order,
			Repetitions: r.Repetitions,
			Steps:       mapCreateStepRequests(r.Steps),
		})
	}
	return steps
}
