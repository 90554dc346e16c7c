package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is the spending limit for a calendar month. Budgets are global to
// the household: at most one per (year, month), shared by every user.
// They are upserted, never deleted.
type Budget struct {
	ID        int64           `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Month     int             `json:"month"` // 1-12
	Year      int             `json:"year"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type BudgetRepository interface {
	// Upsert creates the budget for (year, month) or updates its amount.
	Upsert(year, month int, amount decimal.Decimal) (*Budget, error)
	// GetByYearMonth returns ErrBudgetNotFound when no budget is set.
	GetByYearMonth(year, month int) (*Budget, error)
}
