package report

import (
	"bytes"
	"testing"

	"github.com/edunexus/schoolhub/internal/calendar"
	"github.com/edunexus/schoolhub/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sheetFrom(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, r := range rows {
		require.NoError(t, writeRow(f, sheet, i+1, r))
	}
	b, err := writeBytes(f)
	require.NoError(t, err)
	return b
}

func TestParseStudentSheet(t *testing.T) {
	body := sheetFrom(t, [][]any{
		{"Admission_No", "Name", "Gender", "Date_Of_Birth", "Class_ID", "Guardian_Email"},
		{"A-001", "Asha Rao", "Female", "2012-04-01", "3", "parent@example.com"},
		{"", "", "", "", "", ""},
		{"A-002", "Vikram", "male", "", "x", ""},
		{"A-003", "Lena", "other"},
	})

	rows, bad, err := ParseStudentSheet(bytes.NewReader(body))
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Row)
	assert.Equal(t, "A-001", rows[0].Request.AdmissionNo)
	assert.Equal(t, model.GenderFemale, rows[0].Request.Gender)
	require.NotNil(t, rows[0].Request.ClassID)
	assert.Equal(t, 3, *rows[0].Request.ClassID)
	assert.Equal(t, "parent@example.com", rows[0].Request.GuardianEmail)

	assert.Equal(t, 5, rows[1].Row)
	assert.Nil(t, rows[1].Request.ClassID)

	require.Len(t, bad, 1)
	assert.Equal(t, 4, bad[0].Row)
}

func TestParseStudentSheet_MissingColumns(t *testing.T) {
	body := sheetFrom(t, [][]any{{"admission_no", "name"}})
	_, _, err := ParseStudentSheet(bytes.NewReader(body))
	assert.ErrorIs(t, err, ErrMissingColumns)
}

func TestStudentTemplate(t *testing.T) {
	body, err := StudentTemplate()
	require.NoError(t, err)

	rows, bad, err := ParseStudentSheet(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Empty(t, bad)
}

func TestStaffAttendanceWorkbook(t *testing.T) {
	month, err := calendar.NewMonth(2024, 2)
	require.NoError(t, err)

	body, err := StaffAttendanceWorkbook(month, []StaffMonth{{
		EmployeeNo: "T-01",
		Name:       "Meera",
		Statuses: map[string]calendar.Status{
			"2024-02-01": calendar.StatusPresent,
			"2024-02-29": calendar.StatusOnLeave,
		},
		Summary: map[calendar.Status]int{calendar.StatusPresent: 1, calendar.StatusOnLeave: 1},
	}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)
	assert.Equal(t, "February 2024", sheet)

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 2+29+len(summaryColumns))
	assert.Equal(t, "Present", rows[1][2])
	assert.Equal(t, "OnLeave", rows[1][2+28])
	assert.Equal(t, "1", rows[1][2+29])
}

func TestFeeLedgerWorkbook(t *testing.T) {
	body, err := FeeLedgerWorkbook([]model.Invoice{
		{ID: 1, StudentName: "Asha", TemplateName: "Term 1", Amount: 150000, DueDate: "2024-07-01", Status: model.InvoiceUnpaid},
		{ID: 2, StudentName: "Vikram", TemplateName: "Term 1", Amount: 150000, DueDate: "2024-07-01", Status: model.InvoicePaid},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()

	total, err := f.GetCellValue("Invoices", "D4")
	require.NoError(t, err)
	assert.Equal(t, "300000", total)
}
