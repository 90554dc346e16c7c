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

// RecurringRepository implements domain.RecurringRepository using PostgreSQL
type RecurringRepository struct {
	pool *pgxpool.Pool
}

// NewRecurringRepository creates a new RecurringRepository
func NewRecurringRepository(pool *pgxpool.Pool) *RecurringRepository {
	return &RecurringRepository{pool: pool}
}

const recurringColumns = `r.id, r.amount::text, r.category, r.day_of_month, r.necessary,
	r.user_id, COALESCE(p.name, 'Usuario'), r.description, r.active, r.created_at, r.updated_at`

// Create inserts a new recurring template
func (r *RecurringRepository) Create(template *domain.RecurringTemplate) (*domain.RecurringTemplate, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		WITH inserted AS (
			INSERT INTO recurring_templates (amount, category, day_of_month, necessary, user_id, description, active)
			VALUES ($1::numeric, $2, $3, $4, $5, $6, true)
			RETURNING *
		)
		SELECT `+recurringColumns+`
		FROM inserted r LEFT JOIN profiles p ON p.id = r.user_id`,
		template.Amount.String(), string(template.Category), template.DayOfMonth,
		template.Necessary, template.UserID, template.Description,
	)

	created, err := scanRecurring(row)
	if err != nil {
		return nil, fmt.Errorf("create recurring template: %w", err)
	}
	return created, nil
}

// GetByID retrieves a recurring template by its ID
func (r *RecurringRepository) GetByID(id int64) (*domain.RecurringTemplate, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT `+recurringColumns+`
		FROM recurring_templates r LEFT JOIN profiles p ON p.id = r.user_id
		WHERE r.id = $1`, id)

	template, err := scanRecurring(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecurringNotFound
		}
		return nil, err
	}
	return template, nil
}

// List returns recurring templates, optionally only active ones, by due day
func (r *RecurringRepository) List(activeOnly bool) ([]*domain.RecurringTemplate, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT `+recurringColumns+`
		FROM recurring_templates r LEFT JOIN profiles p ON p.id = r.user_id
		WHERE NOT $1 OR r.active
		ORDER BY r.day_of_month, r.id`, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list recurring templates: %w", err)
	}
	defer rows.Close()

	templates := make([]*domain.RecurringTemplate, 0)
	for rows.Next() {
		template, err := scanRecurring(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, template)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recurring templates: %w", err)
	}
	return templates, nil
}

// Deactivate flags a template inactive. Templates are never removed.
func (r *RecurringRepository) Deactivate(id int64) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx,
		`UPDATE recurring_templates SET active = false, updated_at = now()
		 WHERE id = $1 AND active`, id)
	if err != nil {
		return fmt.Errorf("deactivate recurring template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecurringNotFound
	}
	return nil
}

func scanRecurring(row rowScanner) (*domain.RecurringTemplate, error) {
	var (
		t         domain.RecurringTemplate
		amountStr string
		category  string
	)
	if err := row.Scan(&t.ID, &amountStr, &category, &t.DayOfMonth, &t.Necessary,
		&t.UserID, &t.UserName, &t.Description, &t.Active, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("recurring template %d: invalid amount %q: %w", t.ID, amountStr, err)
	}

	t.Amount = amount
	t.Category = domain.Category(category)
	return &t, nil
}
