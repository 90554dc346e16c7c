package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/gastos-app/gastos-backend/internal/domain"
)

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

// Upsert creates or replaces the single budget for (year, month)
func (r *BudgetRepository) Upsert(year, month int, amount decimal.Decimal) (*domain.Budget, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO budgets (year, month, amount)
		VALUES ($1, $2, $3::numeric)
		ON CONFLICT (year, month)
		DO UPDATE SET amount = EXCLUDED.amount, updated_at = now()
		RETURNING id, amount::text, month, year, created_at, updated_at`,
		year, month, amount.String(),
	)

	budget, err := scanBudget(row)
	if err != nil {
		return nil, fmt.Errorf("upsert budget: %w", err)
	}
	return budget, nil
}

// GetByYearMonth returns the budget for a calendar month, or ErrBudgetNotFound
func (r *BudgetRepository) GetByYearMonth(year, month int) (*domain.Budget, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT id, amount::text, month, year, created_at, updated_at
		FROM budgets WHERE year = $1 AND month = $2`, year, month)

	budget, err := scanBudget(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}

func scanBudget(row rowScanner) (*domain.Budget, error) {
	var (
		b         domain.Budget
		amountStr string
	)
	if err := row.Scan(&b.ID, &amountStr, &b.Month, &b.Year, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("budget %d: invalid amount %q: %w", b.ID, amountStr, err)
	}

	b.Amount = amount
	return &b, nil
}
