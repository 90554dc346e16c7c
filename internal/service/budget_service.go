package service

import (
	"github.com/shopspring/decimal"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/gastos-app/gastos-backend/internal/websocket"
)

// BudgetService handles monthly budget business logic. A budget is global
// to the household: one per calendar month, never deleted, only upserted.
type BudgetService struct {
	budgetRepo     domain.BudgetRepository
	eventPublisher websocket.EventPublisher
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository) *BudgetService {
	return &BudgetService{budgetRepo: budgetRepo}
}

// SetEventPublisher sets the change-feed publisher
func (s *BudgetService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// SetBudget creates or updates the budget for (year, month)
func (s *BudgetService) SetBudget(year, month int, amount decimal.Decimal) (*domain.Budget, error) {
	if month < 1 || month > 12 {
		return nil, domain.ErrInvalidMonth
	}
	if year < 1970 || year > 9999 {
		return nil, domain.ErrInvalidYear
	}
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	budget, err := s.budgetRepo.Upsert(year, month, amount)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		s.eventPublisher.Publish(websocket.BudgetUpserted(budget))
	}
	return budget, nil
}

// GetBudget returns the budget for a month, or ErrBudgetNotFound when unset
func (s *BudgetService) GetBudget(year, month int) (*domain.Budget, error) {
	if month < 1 || month > 12 {
		return nil, domain.ErrInvalidMonth
	}
	return s.budgetRepo.GetByYearMonth(year, month)
}
