package service

import (
	"errors"
	"testing"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/gastos-app/gastos-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func TestSetBudget(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	publisher := &testutil.MockEventPublisher{}
	service := NewBudgetService(budgetRepo)
	service.SetEventPublisher(publisher)

	budget, err := service.SetBudget(2024, 3, decimal.NewFromInt(1500))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if budget.Year != 2024 || budget.Month != 3 {
		t.Errorf("expected 2024-03, got %d-%d", budget.Year, budget.Month)
	}
	if !budget.Amount.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("expected amount 1500, got %s", budget.Amount)
	}
	if len(publisher.Events) != 1 || publisher.Events[0].Type != "budget.upserted" {
		t.Errorf("expected budget.upserted event, got %+v", publisher.Events)
	}
}

func TestSetBudget_ReplacesExisting(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	service := NewBudgetService(budgetRepo)

	first, err := service.SetBudget(2024, 3, decimal.NewFromInt(1000))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	second, err := service.SetBudget(2024, 3, decimal.NewFromInt(2000))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected upsert to keep one row per month, got IDs %d and %d", first.ID, second.ID)
	}

	stored, err := service.GetBudget(2024, 3)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !stored.Amount.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("expected replaced amount 2000, got %s", stored.Amount)
	}
}

func TestSetBudget_Validation(t *testing.T) {
	service := NewBudgetService(testutil.NewMockBudgetRepository())

	if _, err := service.SetBudget(2024, 0, decimal.NewFromInt(100)); !errors.Is(err, domain.ErrInvalidMonth) {
		t.Errorf("expected ErrInvalidMonth, got: %v", err)
	}
	if _, err := service.SetBudget(2024, 13, decimal.NewFromInt(100)); !errors.Is(err, domain.ErrInvalidMonth) {
		t.Errorf("expected ErrInvalidMonth, got: %v", err)
	}
	if _, err := service.SetBudget(1000, 3, decimal.NewFromInt(100)); !errors.Is(err, domain.ErrInvalidYear) {
		t.Errorf("expected ErrInvalidYear, got: %v", err)
	}
	if _, err := service.SetBudget(2024, 3, decimal.Zero); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got: %v", err)
	}
	if _, err := service.SetBudget(2024, 3, decimal.NewFromInt(-100)); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got: %v", err)
	}
}

func TestGetBudget_NotSet(t *testing.T) {
	service := NewBudgetService(testutil.NewMockBudgetRepository())

	if _, err := service.GetBudget(2024, 3); !errors.Is(err, domain.ErrBudgetNotFound) {
		t.Errorf("expected ErrBudgetNotFound, got: %v", err)
	}
}

func TestGetBudget_InvalidMonth(t *testing.T) {
	service := NewBudgetService(testutil.NewMockBudgetRepository())

	if _, err := service.GetBudget(2024, 13); !errors.Is(err, domain.ErrInvalidMonth) {
		t.Errorf("expected ErrInvalidMonth, got: %v", err)
	}
}
