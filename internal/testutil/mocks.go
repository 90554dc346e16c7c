package testutil

import (
	"sort"
	"time"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/gastos-app/gastos-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users    map[string]*domain.User
	ByID     map[uuid.UUID]*domain.User
	CreateFn func(auth0ID, email, name string) (*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*domain.User),
		ByID:  make(map[uuid.UUID]*domain.User),
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByAuth0ID retrieves a user by Auth0 ID
func (m *MockUserRepository) GetByAuth0ID(auth0ID string) (*domain.User, error) {
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// CreateOrGetByAuth0ID creates or retrieves a user by Auth0 ID
func (m *MockUserRepository) CreateOrGetByAuth0ID(auth0ID, email, name string) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(auth0ID, email, name)
	}
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	user := &domain.User{
		ID:        uuid.New(),
		Auth0ID:   auth0ID,
		Email:     email,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	m.Users[auth0ID] = user
	m.ByID[user.ID] = user
	return user, nil
}

// ListAll returns every user
func (m *MockUserRepository) ListAll() ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(m.ByID))
	for _, u := range m.ByID {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.Users[user.Auth0ID] = user
	m.ByID[user.ID] = user
}

// MockExpenseRepository is a mock implementation of domain.ExpenseRepository
type MockExpenseRepository struct {
	Expenses map[int64]*domain.Expense
	NextID   int64
	ListFn   func() ([]*domain.Expense, error)
}

// NewMockExpenseRepository creates a new MockExpenseRepository
func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		Expenses: make(map[int64]*domain.Expense),
		NextID:   1,
	}
}

// Create creates a new expense
func (m *MockExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	now := time.Now().UTC()
	expense.ID = m.NextID
	expense.CreatedAt = now
	expense.UpdatedAt = now
	m.NextID++
	m.Expenses[expense.ID] = expense
	return expense, nil
}

// GetByID retrieves an expense by ID
func (m *MockExpenseRepository) GetByID(id int64) (*domain.Expense, error) {
	if e, ok := m.Expenses[id]; ok && e.DeletedAt == nil {
		return e, nil
	}
	return nil, domain.ErrExpenseNotFound
}

// ListAll returns all non-deleted expenses, newest occurrence first
func (m *MockExpenseRepository) ListAll() ([]*domain.Expense, error) {
	if m.ListFn != nil {
		return m.ListFn()
	}
	expenses := make([]*domain.Expense, 0, len(m.Expenses))
	for _, e := range m.Expenses {
		if e.DeletedAt == nil {
			expenses = append(expenses, e)
		}
	}
	sort.Slice(expenses, func(i, j int) bool { return expenses[i].OccurredAt.After(expenses[j].OccurredAt) })
	return expenses, nil
}

// Update applies an ExpenseUpdate to a stored expense
func (m *MockExpenseRepository) Update(id int64, update domain.ExpenseUpdate) (*domain.Expense, error) {
	e, ok := m.Expenses[id]
	if !ok || e.DeletedAt != nil {
		return nil, domain.ErrExpenseNotFound
	}
	if update.Amount != nil {
		e.Amount = *update.Amount
	}
	if update.Category != nil {
		e.Category = *update.Category
	}
	if update.Necessary != nil {
		e.Necessary = *update.Necessary
	}
	if update.Description != nil {
		e.Description = update.Description
	}
	e.UpdatedAt = time.Now().UTC()
	return e, nil
}

// SoftDelete flags an expense deleted
func (m *MockExpenseRepository) SoftDelete(id int64) error {
	e, ok := m.Expenses[id]
	if !ok || e.DeletedAt != nil {
		return domain.ErrExpenseNotFound
	}
	now := time.Now().UTC()
	e.DeletedAt = &now
	return nil
}

// HardDelete removes an expense entirely
func (m *MockExpenseRepository) HardDelete(id int64) error {
	if _, ok := m.Expenses[id]; !ok {
		return domain.ErrExpenseNotFound
	}
	delete(m.Expenses, id)
	return nil
}

// MockRecurringRepository is a mock implementation of domain.RecurringRepository
type MockRecurringRepository struct {
	Templates map[int64]*domain.RecurringTemplate
	NextID    int64
}

// NewMockRecurringRepository creates a new MockRecurringRepository
func NewMockRecurringRepository() *MockRecurringRepository {
	return &MockRecurringRepository{
		Templates: make(map[int64]*domain.RecurringTemplate),
		NextID:    1,
	}
}

// Create creates a new recurring template
func (m *MockRecurringRepository) Create(template *domain.RecurringTemplate) (*domain.RecurringTemplate, error) {
	now := time.Now().UTC()
	template.ID = m.NextID
	template.CreatedAt = now
	template.UpdatedAt = now
	m.NextID++
	m.Templates[template.ID] = template
	return template, nil
}

// GetByID retrieves a template by ID
func (m *MockRecurringRepository) GetByID(id int64) (*domain.RecurringTemplate, error) {
	if t, ok := m.Templates[id]; ok {
		return t, nil
	}
	return nil, domain.ErrRecurringNotFound
}

// List returns templates, optionally only active ones
func (m *MockRecurringRepository) List(activeOnly bool) ([]*domain.RecurringTemplate, error) {
	templates := make([]*domain.RecurringTemplate, 0, len(m.Templates))
	for _, t := range m.Templates {
		if activeOnly && !t.Active {
			continue
		}
		templates = append(templates, t)
	}
	sort.Slice(templates, func(i, j int) bool { return templates[i].ID < templates[j].ID })
	return templates, nil
}

// Deactivate flags a template inactive
func (m *MockRecurringRepository) Deactivate(id int64) error {
	t, ok := m.Templates[id]
	if !ok {
		return domain.ErrRecurringNotFound
	}
	t.Active = false
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	Budgets map[[2]int]*domain.Budget
	NextID  int64
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		Budgets: make(map[[2]int]*domain.Budget),
		NextID:  1,
	}
}

// Upsert creates or replaces the budget for (year, month)
func (m *MockBudgetRepository) Upsert(year, month int, amount decimal.Decimal) (*domain.Budget, error) {
	key := [2]int{year, month}
	if b, ok := m.Budgets[key]; ok {
		b.Amount = amount
		b.UpdatedAt = time.Now().UTC()
		return b, nil
	}
	now := time.Now().UTC()
	b := &domain.Budget{
		ID:        m.NextID,
		Year:      year,
		Month:     month,
		Amount:    amount,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.NextID++
	m.Budgets[key] = b
	return b, nil
}

// GetByYearMonth returns the budget for (year, month)
func (m *MockBudgetRepository) GetByYearMonth(year, month int) (*domain.Budget, error) {
	if b, ok := m.Budgets[[2]int{year, month}]; ok {
		return b, nil
	}
	return nil, domain.ErrBudgetNotFound
}

// MockEventPublisher records published events for assertions
type MockEventPublisher struct {
	Events []websocket.Event
}

// Publish records the event
func (m *MockEventPublisher) Publish(event websocket.Event) {
	m.Events = append(m.Events, event)
}
