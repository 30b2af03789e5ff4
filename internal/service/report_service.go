package service

import (
	"context"
	"fmt"

	"github.com/guustavovelos0/artisan/internal/repository"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// ReportService builds spreadsheet exports of the account's inventory.
type ReportService interface {
	MaterialsWorkbook(ctx context.Context, userID uuid.UUID) (*excelize.File, error)
}

type reportService struct {
	materials repository.MaterialRepository
}

func NewReportService(materials repository.MaterialRepository) ReportService {
	return &reportService{materials: materials}
}

// MaterialsWorkbook produces an xlsx sheet listing every active material with
// its stock level and a LOW marker when below the minimum.
func (s *reportService) MaterialsWorkbook(ctx context.Context, userID uuid.UUID) (*excelize.File, error) {
	materials, err := s.materials.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Materials"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Name", "Category", "Unit", "Unit price", "Quantity", "Min quantity", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		f.SetCellStyle(sheet, "A1", "G1", headerStyle)
	}

	for row, m := range materials {
		category := ""
		if m.Category != nil {
			category = m.Category.Name
		}
		status := "OK"
		if m.Quantity.LessThan(m.MinQuantity) {
			status = "LOW"
		}
		values := []interface{}{
			m.Name,
			category,
			m.Unit,
			m.UnitPrice.InexactFloat64(),
			m.Quantity.InexactFloat64(),
			m.MinQuantity.InexactFloat64(),
			status,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return nil, fmt.Errorf("report: set column width: %w", err)
	}
	_ = f.SetColWidth(sheet, "B", "G", 14)

	return f, nil
}
