package service

import (
	"errors"
	"testing"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/gastos-app/gastos-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newRecurringFixture() (*RecurringService, *testutil.MockRecurringRepository, *testutil.MockEventPublisher, uuid.UUID) {
	recurringRepo := testutil.NewMockRecurringRepository()
	userRepo := testutil.NewMockUserRepository()
	publisher := &testutil.MockEventPublisher{}

	service := NewRecurringService(recurringRepo, userRepo)
	service.SetEventPublisher(publisher)

	user := &domain.User{ID: uuid.New(), Auth0ID: "auth0|ana", Email: "ana@example.com", Name: "Ana"}
	userRepo.AddUser(user)

	return service, recurringRepo, publisher, user.ID
}

func TestCreateTemplate(t *testing.T) {
	service, _, publisher, userID := newRecurringFixture()

	template, err := service.CreateTemplate(CreateTemplateInput{
		Amount:     decimal.RequireFromString("1200"),
		Category:   domain.CategoryServicios,
		DayOfMonth: 5,
		Necessary:  true,
		UserID:     userID,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if template.ID == 0 {
		t.Error("expected assigned template ID")
	}
	if !template.Active {
		t.Error("expected new template active")
	}
	if len(publisher.Events) != 1 || publisher.Events[0].Type != "recurring.created" {
		t.Errorf("expected recurring.created event, got %+v", publisher.Events)
	}
}

func TestCreateTemplate_DayOfMonthBounds(t *testing.T) {
	service, _, _, userID := newRecurringFixture()

	for _, day := range []int{0, 29, 31} {
		_, err := service.CreateTemplate(CreateTemplateInput{
			Amount:     decimal.NewFromInt(100),
			Category:   domain.CategoryServicios,
			DayOfMonth: day,
			UserID:     userID,
		})
		if !errors.Is(err, domain.ErrInvalidDayOfMonth) {
			t.Errorf("day %d: expected ErrInvalidDayOfMonth, got: %v", day, err)
		}
	}

	// 1 and 28 are the inclusive bounds
	for _, day := range []int{1, 28} {
		if _, err := service.CreateTemplate(CreateTemplateInput{
			Amount:     decimal.NewFromInt(100),
			Category:   domain.CategoryServicios,
			DayOfMonth: day,
			UserID:     userID,
		}); err != nil {
			t.Errorf("day %d: expected no error, got: %v", day, err)
		}
	}
}

func TestCreateTemplate_RejectsInvalidInput(t *testing.T) {
	service, _, _, userID := newRecurringFixture()

	_, err := service.CreateTemplate(CreateTemplateInput{
		Amount:     decimal.Zero,
		Category:   domain.CategoryServicios,
		DayOfMonth: 5,
		UserID:     userID,
	})
	if !errors.Is(err, domain.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got: %v", err)
	}

	_, err = service.CreateTemplate(CreateTemplateInput{
		Amount:     decimal.NewFromInt(100),
		Category:   domain.Category("mascotas"),
		DayOfMonth: 5,
		UserID:     userID,
	})
	if !errors.Is(err, domain.ErrInvalidCategory) {
		t.Errorf("expected ErrInvalidCategory, got: %v", err)
	}
}

func TestDeactivateTemplate(t *testing.T) {
	service, recurringRepo, publisher, userID := newRecurringFixture()

	template, err := service.CreateTemplate(CreateTemplateInput{
		Amount:     decimal.NewFromInt(100),
		Category:   domain.CategoryServicios,
		DayOfMonth: 5,
		UserID:     userID,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if err := service.DeactivateTemplate(template.ID); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	// Template survives as an inactive row
	stored, ok := recurringRepo.Templates[template.ID]
	if !ok {
		t.Fatal("expected template to survive deactivation")
	}
	if stored.Active {
		t.Error("expected template inactive")
	}

	if publisher.Events[len(publisher.Events)-1].Type != "recurring.deactivated" {
		t.Errorf("expected recurring.deactivated event, got %q", publisher.Events[len(publisher.Events)-1].Type)
	}
}

func TestDeactivateTemplate_NotFound(t *testing.T) {
	service, _, _, _ := newRecurringFixture()

	if err := service.DeactivateTemplate(999); !errors.Is(err, domain.ErrRecurringNotFound) {
		t.Errorf("expected ErrRecurringNotFound, got: %v", err)
	}
}

func TestListTemplates_ActiveOnlyByDefault(t *testing.T) {
	service, _, _, userID := newRecurringFixture()

	first, _ := service.CreateTemplate(CreateTemplateInput{
		Amount: decimal.NewFromInt(100), Category: domain.CategoryServicios, DayOfMonth: 5, UserID: userID,
	})
	second, _ := service.CreateTemplate(CreateTemplateInput{
		Amount: decimal.NewFromInt(200), Category: domain.CategoryOcio, DayOfMonth: 10, UserID: userID,
	})

	if err := service.DeactivateTemplate(first.ID); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	active, err := service.ListTemplates(true)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(active) != 1 || active[0].ID != second.ID {
		t.Errorf("expected only the active template, got %+v", active)
	}

	all, err := service.ListTemplates(false)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 templates with all=true, got %d", len(all))
	}
}
