package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/gastos-app/gastos-backend/internal/websocket"
)

// RecurringService handles recurring-template business logic. Templates
// declare intent only: nothing materializes them into expense records.
type RecurringService struct {
	recurringRepo  domain.RecurringRepository
	userRepo       domain.UserRepository
	eventPublisher websocket.EventPublisher
}

// NewRecurringService creates a new RecurringService
func NewRecurringService(recurringRepo domain.RecurringRepository, userRepo domain.UserRepository) *RecurringService {
	return &RecurringService{
		recurringRepo: recurringRepo,
		userRepo:      userRepo,
	}
}

// SetEventPublisher sets the change-feed publisher
func (s *RecurringService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *RecurringService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// CreateTemplateInput holds the input for creating a recurring template
type CreateTemplateInput struct {
	Amount      decimal.Decimal
	Category    domain.Category
	DayOfMonth  int
	Necessary   bool
	UserID      uuid.UUID
	Description *string
}

// CreateTemplate creates a new recurring template with validation
func (s *RecurringService) CreateTemplate(input CreateTemplateInput) (*domain.RecurringTemplate, error) {
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if !domain.IsKnownCategory(input.Category) {
		return nil, domain.ErrInvalidCategory
	}
	if input.DayOfMonth < domain.MinRecurringDay || input.DayOfMonth > domain.MaxRecurringDay {
		return nil, domain.ErrInvalidDayOfMonth
	}
	if _, err := s.userRepo.GetByID(input.UserID); err != nil {
		return nil, domain.ErrUserNotFound
	}

	description, err := normalizeDescription(input.Description)
	if err != nil {
		return nil, err
	}

	template := &domain.RecurringTemplate{
		Amount:      input.Amount,
		Category:    input.Category,
		DayOfMonth:  input.DayOfMonth,
		Necessary:   input.Necessary,
		UserID:      input.UserID,
		Description: description,
		Active:      true,
	}

	created, err := s.recurringRepo.Create(template)
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.RecurringCreated(created))
	return created, nil
}

// ListTemplates returns recurring templates, optionally only active ones
func (s *RecurringService) ListTemplates(activeOnly bool) ([]*domain.RecurringTemplate, error) {
	return s.recurringRepo.List(activeOnly)
}

// DeactivateTemplate flags a template inactive. Inactive templates are
// excluded from every listing and aggregation but are never removed.
func (s *RecurringService) DeactivateTemplate(id int64) error {
	if err := s.recurringRepo.Deactivate(id); err != nil {
		return err
	}

	s.publishEvent(websocket.RecurringDeactivated(map[string]int64{"id": id}))
	return nil
}
