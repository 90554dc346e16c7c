package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gastos-app/gastos-backend/internal/service"
	"github.com/gastos-app/gastos-backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func budgetRequest(t *testing.T, handler *BudgetHandler, method, year, month, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "/api/v1/budgets/"+year+"/"+month, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("year", "month")
	c.SetParamValues(year, month)
	setupAuthContext(c, "auth0|ana", "ana@example.com", "Ana")

	var err error
	if method == http.MethodPut {
		err = handler.SetBudget(c)
	} else {
		err = handler.GetBudget(c)
	}
	if err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	return rec
}

func TestSetBudgetEndpoint(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	handler := NewBudgetHandler(service.NewBudgetService(budgetRepo))

	rec := budgetRequest(t, handler, http.MethodPut, "2024", "3", `{"amount":"1500"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response BudgetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Year != 2024 || response.Month != 3 {
		t.Errorf("Expected 2024-03, got %d-%d", response.Year, response.Month)
	}
	if response.Amount != "1500.00" {
		t.Errorf("Expected amount 1500.00, got %s", response.Amount)
	}
}

func TestSetBudgetEndpoint_Replaces(t *testing.T) {
	budgetRepo := testutil.NewMockBudgetRepository()
	handler := NewBudgetHandler(service.NewBudgetService(budgetRepo))

	budgetRequest(t, handler, http.MethodPut, "2024", "3", `{"amount":"1000"}`)
	budgetRequest(t, handler, http.MethodPut, "2024", "3", `{"amount":"2000"}`)

	stored, err := budgetRepo.GetByYearMonth(2024, 3)
	if err != nil {
		t.Fatalf("Expected budget stored, got: %v", err)
	}
	if !stored.Amount.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("Expected replaced amount 2000, got %s", stored.Amount)
	}
}

func TestSetBudgetEndpoint_Validation(t *testing.T) {
	handler := NewBudgetHandler(service.NewBudgetService(testutil.NewMockBudgetRepository()))

	if rec := budgetRequest(t, handler, http.MethodPut, "2024", "13", `{"amount":"100"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("month 13: expected 400, got %d", rec.Code)
	}
	if rec := budgetRequest(t, handler, http.MethodPut, "2024", "3", `{"amount":"abc"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad amount: expected 400, got %d", rec.Code)
	}
	if rec := budgetRequest(t, handler, http.MethodPut, "2024", "3", `{"amount":"-5"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("negative amount: expected 400, got %d", rec.Code)
	}
}

func TestGetBudgetEndpoint_NotSet(t *testing.T) {
	handler := NewBudgetHandler(service.NewBudgetService(testutil.NewMockBudgetRepository()))

	rec := budgetRequest(t, handler, http.MethodGet, "2024", "3", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
