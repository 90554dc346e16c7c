package handler

import (
	"net/http"
	"time"

	"github.com/gastos-app/gastos-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ReportHandler handles report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// GetMonthlyReport godoc
// @Summary Monthly report
// @Description Aggregated totals, splits and series for one calendar month
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param month query int false "Month (1-12), defaults to current"
// @Param year query int false "Year, defaults to current"
// @Param userId query string false "Scope everything but the trailing series to one user"
// @Success 200 {object} service.MonthlyReport
// @Failure 400 {object} ProblemDetails
// @Router /reports/monthly [get]
func (h *ReportHandler) GetMonthlyReport(c echo.Context) error {
	month, year, userID, err := parsePeriodQuery(c)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	result, err := h.reportService.GetMonthlyReport(month, year, userID)
	if err != nil {
		log.Error().Err(err).Int("month", month).Int("year", year).Msg("Failed to build monthly report")
		return NewInternalError(c, "Failed to build report")
	}

	return c.JSON(http.StatusOK, result)
}
