package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/gastos-app/gastos-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BudgetHandler handles monthly budget HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
	}
}

// SetBudgetRequest represents the set budget request body
type SetBudgetRequest struct {
	Amount string `json:"amount"`
}

// BudgetResponse represents a monthly budget in API responses
type BudgetResponse struct {
	ID     int64  `json:"id"`
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Amount string `json:"amount"`
}

func toBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		ID:     b.ID,
		Year:   b.Year,
		Month:  b.Month,
		Amount: b.Amount.StringFixed(2),
	}
}

// SetBudget godoc
// @Summary Set the monthly budget
// @Description Create or replace the budget for one calendar month
// @Tags budgets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Param request body SetBudgetRequest true "Budget amount"
// @Success 200 {object} BudgetResponse
// @Failure 400 {object} ProblemDetails
// @Router /budgets/{year}/{month} [put]
func (h *BudgetHandler) SetBudget(c echo.Context) error {
	year, month, verr := parseYearMonthParams(c)
	if verr != nil {
		return verr
	}

	var req SetBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	budget, err := h.budgetService.SetBudget(year, month, amount)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Amount must be positive"},
			})
		}
		if errors.Is(err, domain.ErrInvalidMonth) || errors.Is(err, domain.ErrInvalidYear) {
			return NewValidationError(c, "Invalid period", nil)
		}
		log.Error().Err(err).Int("year", year).Int("month", month).Msg("Failed to set budget")
		return NewInternalError(c, "Failed to set budget")
	}

	log.Info().Int("year", year).Int("month", month).Str("amount", budget.Amount.String()).Msg("Budget set")

	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// GetBudget godoc
// @Summary Get the monthly budget
// @Description Fetch the budget for one calendar month
// @Tags budgets
// @Produce json
// @Security BearerAuth
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Success 200 {object} BudgetResponse
// @Failure 404 {object} ProblemDetails
// @Router /budgets/{year}/{month} [get]
func (h *BudgetHandler) GetBudget(c echo.Context) error {
	year, month, verr := parseYearMonthParams(c)
	if verr != nil {
		return verr
	}

	budget, err := h.budgetService.GetBudget(year, month)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "No budget set for this month")
		}
		log.Error().Err(err).Int("year", year).Int("month", month).Msg("Failed to get budget")
		return NewInternalError(c, "Failed to get budget")
	}

	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

func parseYearMonthParams(c echo.Context) (year, month int, err error) {
	year, yerr := strconv.Atoi(c.Param("year"))
	if yerr != nil || year < 1970 || year > 9999 {
		return 0, 0, NewValidationError(c, "Invalid year", []ValidationError{
			{Field: "year", Message: "Must be a four digit year"},
		})
	}

	month, merr := strconv.Atoi(c.Param("month"))
	if merr != nil || month < 1 || month > 12 {
		return 0, 0, NewValidationError(c, "Invalid month", []ValidationError{
			{Field: "month", Message: "Must be an integer between 1 and 12"},
		})
	}

	return year, month, nil
}
