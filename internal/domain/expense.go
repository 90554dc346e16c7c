package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a single recorded spend. UserName is denormalized from the
// owner's profile for display; OccurredAt and UserID are immutable after
// creation.
type Expense struct {
	ID          int64           `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    Category        `json:"category"`
	OccurredAt  time.Time       `json:"occurredAt"`
	Necessary   bool            `json:"necessary"`
	UserID      uuid.UUID       `json:"userId"`
	UserName    string          `json:"userName"`
	Description *string         `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   *time.Time      `json:"deletedAt,omitempty"`
}

// ExpenseUpdate is the set of fields an edit may change. Occurrence timestamp
// and owner are never editable.
type ExpenseUpdate struct {
	Amount      *decimal.Decimal
	Category    *Category
	Necessary   *bool
	Description *string
}

type ExpenseRepository interface {
	Create(expense *Expense) (*Expense, error)
	GetByID(id int64) (*Expense, error)
	// ListAll returns all non-deleted expenses, newest occurrence first,
	// each annotated with the owner's display name.
	ListAll() ([]*Expense, error)
	Update(id int64, update ExpenseUpdate) (*Expense, error)
	SoftDelete(id int64) error
	HardDelete(id int64) error
}
