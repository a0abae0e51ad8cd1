package report

import (
	"github.com/edunexus/schoolhub/internal/model"
	"github.com/xuri/excelize/v2"
)

// FeeLedgerWorkbook lists invoices with a total row.
func FeeLedgerWorkbook(invoices []model.Invoice) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Invoices"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, err
	}

	header := []any{"Invoice", "Student", "Fee", "Amount", "Due Date", "Status", "Paid At"}
	if err := writeRow(f, sheet, 1, header); err != nil {
		return nil, err
	}
	if err := boldHeader(f, sheet, len(header)); err != nil {
		return nil, err
	}

	var total int64
	for i, inv := range invoices {
		paidAt := ""
		if inv.PaidAt != nil {
			paidAt = inv.PaidAt.Format("2006-01-02 15:04")
		}
		row := []any{inv.ID, inv.StudentName, inv.TemplateName, inv.Amount, inv.DueDate, string(inv.Status), paidAt}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
		total += inv.Amount
	}

	last := len(invoices) + 2
	if err := writeRow(f, sheet, last, []any{"Total", "", "", total}); err != nil {
		return nil, err
	}
	return writeBytes(f)
}
