package handler

import (
	"fmt"
	"net/http"

	"github.com/gastos-app/gastos-backend/internal/domain"
	"github.com/gastos-app/gastos-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ExportHandler handles expense export HTTP requests
type ExportHandler struct {
	exportService *service.ExportService
	reportService *service.ReportService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService *service.ExportService, reportService *service.ReportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		reportService: reportService,
	}
}

// ExportExpenses godoc
// @Summary Export expenses
// @Description Download expenses as a CSV or XLSX file
// @Tags export
// @Produce octet-stream
// @Security BearerAuth
// @Param format query string false "csv (default) or xlsx"
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year"
// @Param userId query string false "Filter by user UUID"
// @Success 200
// @Failure 400 {object} ProblemDetails
// @Router /export [get]
func (h *ExportHandler) ExportExpenses(c echo.Context) error {
	month, year, userID, err := parsePeriodQuery(c)
	if err != nil {
		return err
	}

	format := c.QueryParam("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		return NewValidationError(c, "Invalid format", []ValidationError{
			{Field: "format", Message: "Must be one of: csv, xlsx"},
		})
	}

	var expenses []*domain.Expense
	if month == 0 {
		expenses, err = h.reportService.ListAll()
	} else {
		expenses, err = h.reportService.ListForPeriod(month, year, userID)
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to load expenses for export")
		return NewInternalError(c, "Failed to export expenses")
	}

	filename := "gastos"
	if month != 0 {
		filename = fmt.Sprintf("gastos-%04d-%02d", year, month)
	}

	var data []byte
	var contentType string
	switch format {
	case "csv":
		data, err = h.exportService.ToCSV(expenses)
		contentType = "text/csv; charset=utf-8"
		filename += ".csv"
	case "xlsx":
		data, err = h.exportService.ToXLSX(expenses)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename += ".xlsx"
	}
	if err != nil {
		log.Error().Err(err).Str("format", format).Msg("Failed to encode export")
		return NewInternalError(c, "Failed to export expenses")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, contentType, data)
}
