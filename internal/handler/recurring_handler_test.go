package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/gastos-app/gastos-backend/internal/service"
	"github.com/gastos-app/gastos-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newRecurringHandlerFixture() (*RecurringHandler, *testutil.MockRecurringRepository, *domain.User) {
	recurringRepo := testutil.NewMockRecurringRepository()
	userRepo := testutil.NewMockUserRepository()

	user := &domain.User{ID: uuid.New(), Auth0ID: "auth0|ana", Email: "ana@example.com", Name: "Ana"}
	userRepo.AddUser(user)

	return NewRecurringHandler(service.NewRecurringService(recurringRepo, userRepo)), recurringRepo, user
}

func TestCreateTemplateEndpoint(t *testing.T) {
	e := echo.New()
	handler, _, user := newRecurringHandlerFixture()

	body := `{"amount":"1200","category":"servicios","dayOfMonth":5,"necessary":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recurring", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContextWithUser(c, user.Auth0ID, user.Email, user.Name, user.ID)

	if err := handler.CreateTemplate(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var response RecurringResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.DayOfMonth != 5 {
		t.Errorf("Expected day 5, got %d", response.DayOfMonth)
	}
	if !response.Active {
		t.Error("Expected new template active")
	}
}

func TestCreateTemplateEndpoint_InvalidDay(t *testing.T) {
	e := echo.New()
	handler, _, user := newRecurringHandlerFixture()

	body := `{"amount":"1200","category":"servicios","dayOfMonth":31}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recurring", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContextWithUser(c, user.Auth0ID, user.Email, user.Name, user.ID)

	if err := handler.CreateTemplate(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetTemplatesEndpoint(t *testing.T) {
	e := echo.New()
	handler, recurringRepo, user := newRecurringHandlerFixture()

	recurringRepo.Create(&domain.RecurringTemplate{Category: domain.CategoryServicios, DayOfMonth: 5, UserID: user.ID, Active: true})
	recurringRepo.Create(&domain.RecurringTemplate{Category: domain.CategoryOcio, DayOfMonth: 10, UserID: user.ID, Active: false})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recurring", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContextWithUser(c, user.Auth0ID, user.Email, user.Name, user.ID)

	if err := handler.GetTemplates(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response []RecurringResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response) != 1 {
		t.Errorf("Expected only active templates by default, got %d", len(response))
	}

	// all=true includes deactivated templates
	req = httptest.NewRequest(http.MethodGet, "/api/v1/recurring?all=true", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	setupAuthContextWithUser(c, user.Auth0ID, user.Email, user.Name, user.ID)

	if err := handler.GetTemplates(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response) != 2 {
		t.Errorf("Expected 2 templates with all=true, got %d", len(response))
	}
}

func TestDeactivateTemplateEndpoint(t *testing.T) {
	e := echo.New()
	handler, recurringRepo, user := newRecurringHandlerFixture()

	created, _ := recurringRepo.Create(&domain.RecurringTemplate{Category: domain.CategoryServicios, DayOfMonth: 5, UserID: user.ID, Active: true})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/recurring/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	setupAuthContextWithUser(c, user.Auth0ID, user.Email, user.Name, user.ID)

	if err := handler.DeactivateTemplate(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
	if recurringRepo.Templates[created.ID].Active {
		t.Error("Expected template deactivated")
	}
}

func TestDeactivateTemplateEndpoint_NotFound(t *testing.T) {
	e := echo.New()
	handler, _, user := newRecurringHandlerFixture()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/recurring/999", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("999")
	setupAuthContextWithUser(c, user.Auth0ID, user.Email, user.Name, user.ID)

	if err := handler.DeactivateTemplate(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
