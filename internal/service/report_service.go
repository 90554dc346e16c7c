package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/gastos-app/gastos-backend/internal/report"
)

// ReportService derives the report view models from the expense snapshot.
// All aggregation happens in the report package; this service only feeds it
// the current snapshot and the month's budget.
type ReportService struct {
	snapshot   *report.Snapshot
	budgetRepo domain.BudgetRepository
}

// NewReportService creates a new ReportService
func NewReportService(snapshot *report.Snapshot, budgetRepo domain.BudgetRepository) *ReportService {
	return &ReportService{
		snapshot:   snapshot,
		budgetRepo: budgetRepo,
	}
}

// MonthlyReport is everything the reports screen needs for one period
type MonthlyReport struct {
	Month          int                    `json:"month"`
	Year           int                    `json:"year"`
	UserID         *uuid.UUID             `json:"userId,omitempty"`
	Total          decimal.Decimal        `json:"total"`
	Count          int                    `json:"count"`
	Necessary      decimal.Decimal        `json:"necessary"`
	Unnecessary    decimal.Decimal        `json:"unnecessary"`
	ByCategory     []report.CategoryTotal `json:"byCategory"`
	ByUser         []report.UserTotal     `json:"byUser"`
	DailySeries    []report.DayTotal      `json:"dailySeries"`
	TrailingMonths []report.MonthTotal    `json:"trailingMonths"`
	Budget         *decimal.Decimal       `json:"budget,omitempty"`
	Utilization    *report.Utilization    `json:"utilization,omitempty"`
}

// GetMonthlyReport aggregates the current snapshot for the given period.
// The trailing-month series is always whole-system; the user filter applies
// to everything else.
func (s *ReportService) GetMonthlyReport(month, year int, userID *uuid.UUID) (*MonthlyReport, error) {
	all, err := s.snapshot.Current()
	if err != nil {
		return nil, err
	}

	period := report.FilterByPeriod(all, month, year, userID)
	split := report.NecessarySplit(period)
	total := report.Total(period)

	anchor := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)

	result := &MonthlyReport{
		Month:          month,
		Year:           year,
		UserID:         userID,
		Total:          total,
		Count:          report.Count(period),
		Necessary:      split.Necessary,
		Unnecessary:    split.Unnecessary,
		ByCategory:     report.ByCategory(period),
		ByUser:         report.ByUser(period, all),
		DailySeries:    report.DailySeries(period),
		TrailingMonths: report.TrailingMonths(all, report.DefaultTrailingMonths, anchor),
	}

	budget, err := s.budgetRepo.GetByYearMonth(year, month)
	switch {
	case err == nil:
		result.Budget = &budget.Amount
		result.Utilization = report.BudgetUtilization(total, &budget.Amount)
	case errors.Is(err, domain.ErrBudgetNotFound):
		// No budget set: utilization is absent, not zero.
	default:
		return nil, err
	}

	return result, nil
}

// ListForPeriod returns the expenses of a calendar month, optionally scoped
// to one user, newest occurrence first (snapshot order).
func (s *ReportService) ListForPeriod(month, year int, userID *uuid.UUID) ([]*domain.Expense, error) {
	all, err := s.snapshot.Current()
	if err != nil {
		return nil, err
	}
	return report.FilterByPeriod(all, month, year, userID), nil
}

// ListAll returns the full expense history, newest occurrence first
func (s *ReportService) ListAll() ([]*domain.Expense, error) {
	return s.snapshot.Current()
}
