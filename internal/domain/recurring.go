package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// MinRecurringDay and MaxRecurringDay bound a template's day-of-month.
	// The cap at 28 keeps the day valid in every month, February included.
	MinRecurringDay = 1
	MaxRecurringDay = 28
)

// RecurringTemplate declares an expense that repeats on a fixed day each
// month. Templates are created and later deactivated; they are never edited
// in place or physically deleted. No scheduler materializes them into
// expenses.
type RecurringTemplate struct {
	ID          int64           `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    Category        `json:"category"`
	DayOfMonth  int             `json:"dayOfMonth"`
	Necessary   bool            `json:"necessary"`
	UserID      uuid.UUID       `json:"userId"`
	UserName    string          `json:"userName"`
	Description *string         `json:"description,omitempty"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type RecurringRepository interface {
	Create(template *RecurringTemplate) (*RecurringTemplate, error)
	GetByID(id int64) (*RecurringTemplate, error)
	List(activeOnly bool) ([]*RecurringTemplate, error)
	Deactivate(id int64) error
}
