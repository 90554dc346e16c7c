package service

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/gastos-app/gastos-backend/internal/domain"
)

// ExportService renders the expense history as CSV or XLSX. Both formats
// carry the identical row set.
type ExportService struct{}

// NewExportService creates a new ExportService
func NewExportService() *ExportService {
	return &ExportService{}
}

const exportSheetName = "Gastos"

var exportHeader = []string{"Fecha", "Categoría", "Monto", "Necesario", "Usuario", "Descripción"}

// exportRow renders one expense as display strings: es-AR style date,
// category display name (blank for unknown), two-decimal amount, Sí/No
// necessity.
func exportRow(e *domain.Expense) []string {
	categoryName := ""
	if info := domain.CategoryByID(e.Category); info != nil {
		categoryName = info.Name
	}

	necessary := "No"
	if e.Necessary {
		necessary = "Sí"
	}

	description := ""
	if e.Description != nil {
		description = *e.Description
	}

	return []string{
		e.OccurredAt.Format("02/01/2006 15:04"),
		categoryName,
		e.Amount.StringFixed(2),
		necessary,
		e.UserName,
		description,
	}
}

// ToCSV renders the expenses as a CSV document with a header row. Fields
// containing commas, quotes or newlines are quoted per standard CSV rules.
func (s *ExportService) ToCSV(expenses []*domain.Expense) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range expenses {
		if err := w.Write(exportRow(e)); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ToXLSX renders the identical row set as a single-sheet spreadsheet
func (s *ExportService) ToXLSX(expenses []*domain.Expense) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	writeRow := func(rowNum int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(values))
		for i, v := range values {
			row[i] = v
		}
		return f.SetSheetRow(exportSheetName, cell, &row)
	}

	if err := writeRow(1, exportHeader); err != nil {
		return nil, fmt.Errorf("write xlsx header: %w", err)
	}
	for i, e := range expenses {
		if err := writeRow(i+2, exportRow(e)); err != nil {
			return nil, fmt.Errorf("write xlsx row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
