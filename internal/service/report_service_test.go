package service

import (
	"testing"
	"time"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/gastos-app/gastos-backend/internal/report"
	"github.com/gastos-app/gastos-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newReportFixture(t *testing.T) (*ReportService, *testutil.MockExpenseRepository, *testutil.MockBudgetRepository, uuid.UUID, uuid.UUID) {
	t.Helper()

	expenseRepo := testutil.NewMockExpenseRepository()
	budgetRepo := testutil.NewMockBudgetRepository()
	snapshot := report.NewSnapshot(expenseRepo)
	service := NewReportService(snapshot, budgetRepo)

	ana := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	beto := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	add := func(amount string, category domain.Category, occurredAt time.Time, necessary bool, userID uuid.UUID, name string) {
		if _, err := expenseRepo.Create(&domain.Expense{
			Amount:     decimal.RequireFromString(amount),
			Category:   category,
			OccurredAt: occurredAt,
			Necessary:  necessary,
			UserID:     userID,
			UserName:   name,
		}); err != nil {
			t.Fatalf("fixture create failed: %v", err)
		}
	}

	add("100", domain.CategoryComida, time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC), true, ana, "Ana")
	add("50", domain.CategoryOcio, time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC), false, beto, "Beto")
	add("75", domain.CategoryComida, time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC), true, ana, "Ana")

	return service, expenseRepo, budgetRepo, ana, beto
}

func TestGetMonthlyReport(t *testing.T) {
	service, _, budgetRepo, _, _ := newReportFixture(t)

	if _, err := budgetRepo.Upsert(2024, 3, decimal.NewFromInt(1000)); err != nil {
		t.Fatalf("fixture budget failed: %v", err)
	}

	result, err := service.GetMonthlyReport(3, 2024, nil)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if !result.Total.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected total 150, got %s", result.Total)
	}
	if result.Count != 2 {
		t.Errorf("expected count 2, got %d", result.Count)
	}
	if !result.Necessary.Equal(decimal.NewFromInt(100)) || !result.Unnecessary.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected split 100/50, got %s/%s", result.Necessary, result.Unnecessary)
	}

	if len(result.ByCategory) != 2 {
		t.Errorf("expected 2 categories, got %d", len(result.ByCategory))
	}
	if len(result.ByUser) != 2 {
		t.Errorf("expected 2 users, got %d", len(result.ByUser))
	}
	if len(result.DailySeries) != 2 || result.DailySeries[0].Day != 5 || result.DailySeries[1].Day != 20 {
		t.Errorf("unexpected daily series: %+v", result.DailySeries)
	}

	if len(result.TrailingMonths) != report.DefaultTrailingMonths {
		t.Fatalf("expected %d trailing months, got %d", report.DefaultTrailingMonths, len(result.TrailingMonths))
	}
	last := result.TrailingMonths[len(result.TrailingMonths)-1]
	if last.Month != 3 || last.Year != 2024 || !last.Total.Equal(decimal.NewFromInt(150)) {
		t.Errorf("unexpected anchor month: %+v", last)
	}

	if result.Budget == nil || !result.Budget.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected budget 1000, got %v", result.Budget)
	}
	if result.Utilization == nil {
		t.Fatal("expected utilization with budget set")
	}
	if !result.Utilization.Percent.Equal(decimal.NewFromInt(15)) {
		t.Errorf("expected 15 percent utilization, got %s", result.Utilization.Percent)
	}
	if result.Utilization.Status != report.StatusOK {
		t.Errorf("expected status ok, got %s", result.Utilization.Status)
	}
}

func TestGetMonthlyReport_NoBudget(t *testing.T) {
	service, _, _, _, _ := newReportFixture(t)

	result, err := service.GetMonthlyReport(3, 2024, nil)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if result.Budget != nil {
		t.Errorf("expected absent budget, got %v", result.Budget)
	}
	if result.Utilization != nil {
		t.Errorf("expected absent utilization, got %+v", result.Utilization)
	}
}

func TestGetMonthlyReport_UserScope(t *testing.T) {
	service, _, _, ana, _ := newReportFixture(t)

	result, err := service.GetMonthlyReport(3, 2024, &ana)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if !result.Total.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected scoped total 100, got %s", result.Total)
	}
	if result.Count != 1 {
		t.Errorf("expected scoped count 1, got %d", result.Count)
	}

	// The trailing series stays whole-system under a user filter
	last := result.TrailingMonths[len(result.TrailingMonths)-1]
	if !last.Total.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected whole-system trailing total 150, got %s", last.Total)
	}
}

func TestGetMonthlyReport_EmptyMonth(t *testing.T) {
	service, _, _, _, _ := newReportFixture(t)

	result, err := service.GetMonthlyReport(7, 2024, nil)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if !result.Total.Equal(decimal.Zero) {
		t.Errorf("expected zero total, got %s", result.Total)
	}
	if len(result.ByCategory) != 0 || len(result.ByUser) != 0 || len(result.DailySeries) != 0 {
		t.Error("expected empty distributions for empty month")
	}
}

func TestListForPeriod(t *testing.T) {
	service, _, _, _, beto := newReportFixture(t)

	expenses, err := service.ListForPeriod(3, 2024, &beto)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(expenses) != 1 {
		t.Fatalf("expected 1 expense, got %d", len(expenses))
	}
	if !expenses[0].Amount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected beto's expense, got %s", expenses[0].Amount)
	}
}

func TestListAll_NewestFirst(t *testing.T) {
	service, _, _, _, _ := newReportFixture(t)

	expenses, err := service.ListAll()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(expenses) != 3 {
		t.Fatalf("expected 3 expenses, got %d", len(expenses))
	}
	for i := 1; i < len(expenses); i++ {
		if expenses[i].OccurredAt.After(expenses[i-1].OccurredAt) {
			t.Errorf("expected newest occurrence first at index %d", i)
		}
	}
}
