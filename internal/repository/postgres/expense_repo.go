package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/gastos-app/gastos-backend/internal/domain"
)

// ExpenseRepository implements domain.ExpenseRepository using PostgreSQL
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

const expenseColumns = `e.id, e.amount::text, e.category, e.occurred_at, e.necessary,
	e.user_id, COALESCE(p.name, 'Usuario'), e.description, e.created_at, e.updated_at, e.deleted_at`

// Create inserts a new expense
func (r *ExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO expenses (amount, category, occurred_at, necessary, user_id, description)
			VALUES ($1::numeric, $2, $3, $4, $5, $6)
			RETURNING *
		)
		SELECT `+expenseColumns+`
		FROM inserted e LEFT JOIN profiles p ON p.id = e.user_id`,
		expense.Amount.String(), string(expense.Category), expense.OccurredAt,
		expense.Necessary, expense.UserID, expense.Description,
	)

	created, err := scanExpense(row)
	if err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return created, nil
}

// GetByID retrieves a non-deleted expense by its ID
func (r *ExpenseRepository) GetByID(id int64) (*domain.Expense, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses e LEFT JOIN profiles p ON p.id = e.user_id
		WHERE e.id = $1 AND e.deleted_at IS NULL`, id)

	expense, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

// ListAll returns every non-deleted expense, newest occurrence first,
// annotated with the owner's display name. Rows that fail the validation
// boundary (non-positive amount, unparseable numeric) are skipped so the
// aggregation layer always receives clean input.
func (r *ExpenseRepository) ListAll() ([]*domain.Expense, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses e LEFT JOIN profiles p ON p.id = e.user_id
		WHERE e.deleted_at IS NULL
		ORDER BY e.occurred_at DESC, e.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	expenses := make([]*domain.Expense, 0)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			log.Warn().Err(err).Msg("Skipping malformed expense row")
			continue
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// Update modifies the editable fields of an expense. Occurrence timestamp
// and owner are never touched.
func (r *ExpenseRepository) Update(id int64, update domain.ExpenseUpdate) (*domain.Expense, error) {
	ctx := context.Background()

	var amount *string
	if update.Amount != nil {
		s := update.Amount.String()
		amount = &s
	}
	var category *string
	if update.Category != nil {
		s := string(*update.Category)
		category = &s
	}

	row := r.pool.QueryRow(ctx, `
		WITH updated AS (
			UPDATE expenses SET
				amount = COALESCE($2::numeric, amount),
				category = COALESCE($3, category),
				necessary = COALESCE($4, necessary),
				description = COALESCE($5, description),
				updated_at = now()
			WHERE id = $1 AND deleted_at IS NULL
			RETURNING *
		)
		SELECT `+expenseColumns+`
		FROM updated e LEFT JOIN profiles p ON p.id = e.user_id`,
		id, amount, category, update.Necessary, update.Description,
	)

	expense, err := scanExpense(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("update expense: %w", err)
	}
	return expense, nil
}

// SoftDelete marks an expense as deleted
func (r *ExpenseRepository) SoftDelete(id int64) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx,
		`UPDATE expenses SET deleted_at = now(), updated_at = now()
		 WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("soft delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// HardDelete removes an expense row permanently
func (r *ExpenseRepository) HardDelete(id int64) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("hard delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanExpense maps a database row into the strict internal record shape.
// This is the parse/validate boundary: amounts that are not finite positive
// numbers are rejected here rather than propagated into aggregations.
func scanExpense(row rowScanner) (*domain.Expense, error) {
	var (
		e         domain.Expense
		amountStr string
		category  string
	)
	if err := row.Scan(&e.ID, &amountStr, &category, &e.OccurredAt, &e.Necessary,
		&e.UserID, &e.UserName, &e.Description, &e.CreatedAt, &e.UpdatedAt, &e.DeletedAt); err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("expense %d: invalid amount %q: %w", e.ID, amountStr, err)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("expense %d: non-positive amount %s", e.ID, amountStr)
	}

	e.Amount = amount
	e.Category = domain.Category(category)
	return &e, nil
}
