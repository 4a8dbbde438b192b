package ledger

import (
	"context"
	"fmt"
	"io"

	"innkeep/models"
	"innkeep/utils"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const exportSheet = "Payments"

var exportHeaders = []string{"Date", "Time", "Customer", "Room", "Type", "Mode", "Description", "Amount"}

// ExportPayments writes the same view ListPayments returns as an xlsx workbook.
func (s *DefaultLedgerService) ExportPayments(ctx context.Context, w io.Writer, filter models.PaymentFilter, sort models.PaymentSort) error {
	report, err := s.ListPayments(ctx, filter, sort)
	if err != nil {
		return err
	}

	f, err := s.buildWorkbook(report)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil {
			utils.GetLogger().Warn("Failed to close export workbook", zap.Error(err))
		}
	}()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write payments workbook: %w", err)
	}
	return nil
}

func (s *DefaultLedgerService) buildWorkbook(report *models.PaymentReport) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, header)
	}

	loc := s.location()
	for i, e := range report.Entries {
		row := i + 2
		ts := e.Timestamp.In(loc)
		values := []interface{}{
			ts.Format(utils.DayLayout),
			ts.Format("15:04"),
			e.CustomerName,
			e.RoomNumber,
			string(e.Type),
			string(e.Mode),
			e.Description,
			e.Amount.InexactFloat64(),
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
	}

	summary := len(report.Entries) + 3
	f.SetCellValue(exportSheet, fmt.Sprintf("G%d", summary), "Cash total")
	f.SetCellValue(exportSheet, fmt.Sprintf("H%d", summary), report.CashTotal.InexactFloat64())
	f.SetCellValue(exportSheet, fmt.Sprintf("G%d", summary+1), "GPay total")
	f.SetCellValue(exportSheet, fmt.Sprintf("H%d", summary+1), report.GPayTotal.InexactFloat64())

	f.SetColWidth(exportSheet, "A", "B", 12)
	f.SetColWidth(exportSheet, "C", "C", 24)
	f.SetColWidth(exportSheet, "D", "F", 12)
	f.SetColWidth(exportSheet, "G", "G", 32)
	f.SetColWidth(exportSheet, "H", "H", 14)
	return f, nil
}
