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

// ExpenseHandler handles expense-related HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
	reportService  *service.ReportService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *service.ExpenseService, reportService *service.ReportService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		reportService:  reportService,
	}
}

// CreateExpenseRequest represents the create expense request body
type CreateExpenseRequest struct {
	Amount      string  `json:"amount"`
	Category    string  `json:"category"`
	Date        *string `json:"date,omitempty"`
	Necessary   bool    `json:"necessary"`
	Description *string `json:"description,omitempty"`
}

// UpdateExpenseRequest represents the update expense request body
type UpdateExpenseRequest struct {
	Amount      *string `json:"amount,omitempty"`
	Category    *string `json:"category,omitempty"`
	Necessary   *bool   `json:"necessary,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          int64   `json:"id"`
	Amount      string  `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Necessary   bool    `json:"necessary"`
	UserID      string  `json:"userId"`
	UserName    string  `json:"userName"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func toExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Amount:      e.Amount.StringFixed(2),
		Category:    string(e.Category),
		Date:        e.OccurredAt.UTC().Format(time.RFC3339),
		Necessary:   e.Necessary,
		UserID:      e.UserID.String(),
		UserName:    e.UserName,
		Description: e.Description,
		CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// CreateExpense godoc
// @Summary Create an expense
// @Description Record a new expense for the authenticated user
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateExpenseRequest true "Expense creation request"
// @Success 201 {object} ExpenseResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /expenses [post]
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Profile required, call /auth/callback first")
	}

	var req CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	var occurredAt *time.Time
	if req.Date != nil && *req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, *req.Date)
		if err != nil {
			return NewValidationError(c, "Invalid date", []ValidationError{
				{Field: "date", Message: "Must be in RFC 3339 format"},
			})
		}
		occurredAt = &parsed
	}

	input := service.CreateExpenseInput{
		Amount:      amount,
		Category:    domain.Category(req.Category),
		OccurredAt:  occurredAt,
		Necessary:   req.Necessary,
		UserID:      userID,
		Description: req.Description,
	}

	expense, err := h.expenseService.CreateExpense(input)
	if err != nil {
		if verr := expenseValidationError(c, err); verr != nil {
			return verr
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create expense")
		return NewInternalError(c, "Failed to create expense")
	}

	log.Info().Int64("expense_id", expense.ID).Str("user_id", userID.String()).Str("category", string(expense.Category)).Msg("Expense created")

	return c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

// GetExpenses godoc
// @Summary List expenses
// @Description List expenses, optionally filtered by month, year and user
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year"
// @Param userId query string false "Filter by user UUID"
// @Success 200 {array} ExpenseResponse
// @Failure 400 {object} ProblemDetails
// @Router /expenses [get]
func (h *ExpenseHandler) GetExpenses(c echo.Context) error {
	month, year, userID, err := parsePeriodQuery(c)
	if err != nil {
		return err
	}

	var expenses []*domain.Expense
	if month == 0 {
		expenses, err = h.reportService.ListAll()
	} else {
		expenses, err = h.reportService.ListForPeriod(month, year, userID)
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to list expenses")
		return NewInternalError(c, "Failed to list expenses")
	}

	response := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		response = append(response, toExpenseResponse(e))
	}

	return c.JSON(http.StatusOK, response)
}

// UpdateExpense godoc
// @Summary Update an expense
// @Description Edit an expense's amount, category, necessity or description
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Expense ID"
// @Param request body UpdateExpenseRequest true "Expense update request"
// @Success 200 {object} ExpenseResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return NewValidationError(c, "Invalid expense ID", []ValidationError{
			{Field: "id", Message: "Must be a positive integer"},
		})
	}

	var req UpdateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.UpdateExpenseInput{
		Necessary:   req.Necessary,
		Description: req.Description,
	}

	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			return NewValidationError(c, "Invalid amount", []ValidationError{
				{Field: "amount", Message: "Must be a valid decimal number"},
			})
		}
		input.Amount = &amount
	}

	if req.Category != nil {
		category := domain.Category(*req.Category)
		input.Category = &category
	}

	expense, err := h.expenseService.UpdateExpense(id, input)
	if err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		if verr := expenseValidationError(c, err); verr != nil {
			return verr
		}
		log.Error().Err(err).Int64("expense_id", id).Msg("Failed to update expense")
		return NewInternalError(c, "Failed to update expense")
	}

	return c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Description Soft-delete an expense, or purge it with ?permanent=true
// @Tags expenses
// @Security BearerAuth
// @Param id path int true "Expense ID"
// @Param permanent query bool false "Permanently remove the row"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return NewValidationError(c, "Invalid expense ID", []ValidationError{
			{Field: "id", Message: "Must be a positive integer"},
		})
	}

	permanent := c.QueryParam("permanent") == "true"

	if err := h.expenseService.DeleteExpense(id, permanent); err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		log.Error().Err(err).Int64("expense_id", id).Msg("Failed to delete expense")
		return NewInternalError(c, "Failed to delete expense")
	}

	log.Info().Int64("expense_id", id).Bool("permanent", permanent).Msg("Expense deleted")

	return c.NoContent(http.StatusNoContent)
}

// expenseValidationError maps domain validation errors to problem
// responses. Returns nil for errors it does not recognize.
func expenseValidationError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrInvalidAmount) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be positive"},
		})
	}
	if errors.Is(err, domain.ErrInvalidCategory) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "category", Message: "Unknown category"},
		})
	}
	if errors.Is(err, domain.ErrDescriptionTooLong) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description must be 500 characters or less"},
		})
	}
	if errors.Is(err, domain.ErrUserNotFound) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "userId", Message: "User not found"},
		})
	}
	return nil
}

// parsePeriodQuery reads the month/year/userId query parameters shared by
// the expense listing and report endpoints. A missing month means the
// caller wants the full history; year defaults to the current year when
// month is present.
func parsePeriodQuery(c echo.Context) (month, year int, userID *uuid.UUID, err error) {
	if raw := c.QueryParam("month"); raw != "" {
		month, err = strconv.Atoi(raw)
		if err != nil || month < 1 || month > 12 {
			return 0, 0, nil, NewValidationError(c, "Invalid month", []ValidationError{
				{Field: "month", Message: "Must be an integer between 1 and 12"},
			})
		}
	}

	if raw := c.QueryParam("year"); raw != "" {
		year, err = strconv.Atoi(raw)
		if err != nil || year < 1970 || year > 9999 {
			return 0, 0, nil, NewValidationError(c, "Invalid year", []ValidationError{
				{Field: "year", Message: "Must be a four digit year"},
			})
		}
	} else if month != 0 {
		year = time.Now().UTC().Year()
	}

	if raw := c.QueryParam("userId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return 0, 0, nil, NewValidationError(c, "Invalid userId", []ValidationError{
				{Field: "userId", Message: "Must be a valid UUID"},
			})
		}
		userID = &parsed
	}

	return month, year, userID, nil
}
