package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/gastos-app/gastos-backend/internal/websocket"
)

// Invalidator receives a signal whenever the expense list changes. The
// report snapshot implements it.
type Invalidator interface {
	Invalidate()
}

// ExpenseService handles expense-related business logic
type ExpenseService struct {
	expenseRepo    domain.ExpenseRepository
	userRepo       domain.UserRepository
	eventPublisher websocket.EventPublisher
	invalidator    Invalidator
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo domain.ExpenseRepository, userRepo domain.UserRepository) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		userRepo:    userRepo,
	}
}

// SetEventPublisher sets the change-feed publisher
func (s *ExpenseService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// SetInvalidator sets the snapshot invalidation target
func (s *ExpenseService) SetInvalidator(invalidator Invalidator) {
	s.invalidator = invalidator
}

func (s *ExpenseService) recordChanged(event websocket.Event) {
	if s.invalidator != nil {
		s.invalidator.Invalidate()
	}
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// CreateExpenseInput holds the input for creating an expense
type CreateExpenseInput struct {
	Amount      decimal.Decimal
	Category    domain.Category
	OccurredAt  *time.Time
	Necessary   bool
	UserID      uuid.UUID
	Description *string
}

// CreateExpense creates a new expense with validation
func (s *ExpenseService) CreateExpense(input CreateExpenseInput) (*domain.Expense, error) {
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if !domain.IsKnownCategory(input.Category) {
		return nil, domain.ErrInvalidCategory
	}
	if _, err := s.userRepo.GetByID(input.UserID); err != nil {
		return nil, domain.ErrUserNotFound
	}

	description, err := normalizeDescription(input.Description)
	if err != nil {
		return nil, err
	}

	occurredAt := time.Now().UTC()
	if input.OccurredAt != nil {
		occurredAt = *input.OccurredAt
	}

	expense := &domain.Expense{
		Amount:      input.Amount,
		Category:    input.Category,
		OccurredAt:  occurredAt,
		Necessary:   input.Necessary,
		UserID:      input.UserID,
		Description: description,
	}

	created, err := s.expenseRepo.Create(expense)
	if err != nil {
		return nil, err
	}

	s.recordChanged(websocket.ExpenseCreated(created))
	return created, nil
}

// UpdateExpenseInput holds the editable fields of an expense. Occurrence
// timestamp and owner are not part of it on purpose.
type UpdateExpenseInput struct {
	Amount      *decimal.Decimal
	Category    *domain.Category
	Necessary   *bool
	Description *string
}

// UpdateExpense edits an expense's amount, category, necessity or description
func (s *ExpenseService) UpdateExpense(id int64, input UpdateExpenseInput) (*domain.Expense, error) {
	if input.Amount != nil && !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if input.Category != nil && !domain.IsKnownCategory(*input.Category) {
		return nil, domain.ErrInvalidCategory
	}

	description, err := normalizeDescription(input.Description)
	if err != nil {
		return nil, err
	}

	updated, err := s.expenseRepo.Update(id, domain.ExpenseUpdate{
		Amount:      input.Amount,
		Category:    input.Category,
		Necessary:   input.Necessary,
		Description: description,
	})
	if err != nil {
		return nil, err
	}

	s.recordChanged(websocket.ExpenseUpdated(updated))
	return updated, nil
}

// DeleteExpense removes an expense, softly by default
func (s *ExpenseService) DeleteExpense(id int64, permanent bool) error {
	var err error
	if permanent {
		err = s.expenseRepo.HardDelete(id)
	} else {
		err = s.expenseRepo.SoftDelete(id)
	}
	if err != nil {
		return err
	}

	s.recordChanged(websocket.ExpenseDeleted(map[string]int64{"id": id}))
	return nil
}

// GetExpense retrieves one expense by ID
func (s *ExpenseService) GetExpense(id int64) (*domain.Expense, error) {
	return s.expenseRepo.GetByID(id)
}

func normalizeDescription(description *string) (*string, error) {
	if description == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*description)
	if trimmed == "" {
		return nil, nil
	}
	if len(trimmed) > domain.MaxDescriptionLength {
		return nil, domain.ErrDescriptionTooLong
	}
	return &trimmed, nil
}
