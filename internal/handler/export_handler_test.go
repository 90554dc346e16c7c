package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/gastos-app/gastos-backend/internal/report"
	"github.com/gastos-app/gastos-backend/internal/service"
	"github.com/gastos-app/gastos-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func newExportHandlerFixture() *ExportHandler {
	expenseRepo := testutil.NewMockExpenseRepository()
	budgetRepo := testutil.NewMockBudgetRepository()

	expenseRepo.Create(&domain.Expense{
		Amount:     decimal.RequireFromString("150.50"),
		Category:   domain.CategoryComida,
		OccurredAt: time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC),
		Necessary:  true,
		UserID:     uuid.New(),
		UserName:   "Ana",
	})

	snapshot := report.NewSnapshot(expenseRepo)
	reportService := service.NewReportService(snapshot, budgetRepo)
	return NewExportHandler(service.NewExportService(), reportService)
}

func TestExportExpensesEndpoint_CSV(t *testing.T) {
	e := echo.New()
	handler := newExportHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/export?month=3&year=2024", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, "auth0|ana", "ana@example.com", "Ana")

	if err := handler.ExportExpenses(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	disposition := rec.Header().Get(echo.HeaderContentDisposition)
	if !strings.Contains(disposition, "gastos-2024-03.csv") {
		t.Errorf("Expected period filename, got %q", disposition)
	}

	records, err := csv.NewReader(bytes.NewReader(rec.Body.Bytes())).ReadAll()
	if err != nil {
		t.Fatalf("Expected parseable CSV, got: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected header + 1 row, got %d", len(records))
	}
	if records[1][2] != "150.50" {
		t.Errorf("Expected amount 150.50, got %q", records[1][2])
	}
}

func TestExportExpensesEndpoint_XLSX(t *testing.T) {
	e := echo.New()
	handler := newExportHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/export?format=xlsx", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, "auth0|ana", "ana@example.com", "Ana")

	if err := handler.ExportExpenses(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	if !strings.Contains(rec.Header().Get(echo.HeaderContentDisposition), "gastos.xlsx") {
		t.Errorf("Expected full-history filename, got %q", rec.Header().Get(echo.HeaderContentDisposition))
	}
	if rec.Body.Len() == 0 {
		t.Error("Expected workbook bytes")
	}
}

func TestExportExpensesEndpoint_BadFormat(t *testing.T) {
	e := echo.New()
	handler := newExportHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/export?format=pdf", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, "auth0|ana", "ana@example.com", "Ana")

	if err := handler.ExportExpenses(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
