package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/gastos-app/gastos-backend/internal/middleware"
	"github.com/gastos-app/gastos-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// RecurringHandler handles recurring template HTTP requests
type RecurringHandler struct {
	recurringService *service.RecurringService
}

// NewRecurringHandler creates a new RecurringHandler
func NewRecurringHandler(recurringService *service.RecurringService) *RecurringHandler {
	return &RecurringHandler{
		recurringService: recurringService,
	}
}

// CreateRecurringRequest represents the create template request body
type CreateRecurringRequest struct {
	Amount      string  `json:"amount"`
	Category    string  `json:"category"`
	DayOfMonth  int     `json:"dayOfMonth"`
	Necessary   bool    `json:"necessary"`
	Description *string `json:"description,omitempty"`
}

// RecurringResponse represents a recurring template in API responses
type RecurringResponse struct {
	ID          int64   `json:"id"`
	Amount      string  `json:"amount"`
	Category    string  `json:"category"`
	DayOfMonth  int     `json:"dayOfMonth"`
	Necessary   bool    `json:"necessary"`
	UserID      string  `json:"userId"`
	UserName    string  `json:"userName"`
	Description *string `json:"description,omitempty"`
	Active      bool    `json:"active"`
	CreatedAt   string  `json:"createdAt"`
}

func toRecurringResponse(t *domain.RecurringTemplate) RecurringResponse {
	return RecurringResponse{
		ID:          t.ID,
		Amount:      t.Amount.StringFixed(2),
		Category:    string(t.Category),
		DayOfMonth:  t.DayOfMonth,
		Necessary:   t.Necessary,
		UserID:      t.UserID.String(),
		UserName:    t.UserName,
		Description: t.Description,
		Active:      t.Active,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// CreateTemplate godoc
// @Summary Create a recurring template
// @Description Declare an expense that repeats on a fixed day each month
// @Tags recurring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRecurringRequest true "Template creation request"
// @Success 201 {object} RecurringResponse
// @Failure 400 {object} ProblemDetails
// @Router /recurring [post]
func (h *RecurringHandler) CreateTemplate(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Profile required, call /auth/callback first")
	}

	var req CreateRecurringRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	input := service.CreateTemplateInput{
		Amount:      amount,
		Category:    domain.Category(req.Category),
		DayOfMonth:  req.DayOfMonth,
		Necessary:   req.Necessary,
		UserID:      userID,
		Description: req.Description,
	}

	template, err := h.recurringService.CreateTemplate(input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDayOfMonth) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "dayOfMonth", Message: "Must be between 1 and 28"},
			})
		}
		if verr := expenseValidationError(c, err); verr != nil {
			return verr
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create recurring template")
		return NewInternalError(c, "Failed to create recurring template")
	}

	log.Info().Int64("template_id", template.ID).Str("user_id", userID.String()).Msg("Recurring template created")

	return c.JSON(http.StatusCreated, toRecurringResponse(template))
}

// GetTemplates godoc
// @Summary List recurring templates
// @Description List recurring templates, active only unless ?all=true
// @Tags recurring
// @Produce json
// @Security BearerAuth
// @Param all query bool false "Include deactivated templates"
// @Success 200 {array} RecurringResponse
// @Router /recurring [get]
func (h *RecurringHandler) GetTemplates(c echo.Context) error {
	activeOnly := c.QueryParam("all") != "true"

	templates, err := h.recurringService.ListTemplates(activeOnly)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list recurring templates")
		return NewInternalError(c, "Failed to list recurring templates")
	}

	response := make([]RecurringResponse, 0, len(templates))
	for _, t := range templates {
		response = append(response, toRecurringResponse(t))
	}

	return c.JSON(http.StatusOK, response)
}

// DeactivateTemplate godoc
// @Summary Deactivate a recurring template
// @Description Flag a template inactive; it is kept but excluded from listings
// @Tags recurring
// @Security BearerAuth
// @Param id path int true "Template ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /recurring/{id} [delete]
func (h *RecurringHandler) DeactivateTemplate(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return NewValidationError(c, "Invalid template ID", []ValidationError{
			{Field: "id", Message: "Must be a positive integer"},
		})
	}

	if err := h.recurringService.DeactivateTemplate(id); err != nil {
		if errors.Is(err, domain.ErrRecurringNotFound) {
			return NewNotFoundError(c, "Recurring template not found")
		}
		log.Error().Err(err).Int64("template_id", id).Msg("Failed to deactivate recurring template")
		return NewInternalError(c, "Failed to deactivate recurring template")
	}

	log.Info().Int64("template_id", id).Msg("Recurring template deactivated")

	return c.NoContent(http.StatusNoContent)
}
