// Package report reads and writes the xlsx workbooks exchanged with the
// registrar's office.
package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/xuri/excelize/v2"
)

// StudentColumns is the header row expected by ParseStudentSheet.
var StudentColumns = []string{"admission_no", "name", "gender", "date_of_birth", "class_id", "guardian_email"}

// ErrMissingColumns is returned when the header row lacks a required column.
var ErrMissingColumns = errors.New("sheet is missing required columns")

// ErrUnreadableWorkbook is returned when the upload is not an xlsx file.
var ErrUnreadableWorkbook = errors.New("file is not a readable xlsx workbook")

// StudentRow is one parsed admission row. Row is 1-based as shown in Excel.
type StudentRow struct {
	Row     int
	Request model.StudentRequest
}

// ParseStudentSheet reads admissions from the first sheet of an xlsx file.
// Rows that cannot be parsed are reported in the returned errors and skipped;
// only an unreadable file or header fails the whole call.
func ParseStudentSheet(r io.Reader) ([]StudentRow, []model.ImportError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnreadableWorkbook, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, ErrUnreadableWorkbook
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, ErrMissingColumns
	}

	idx := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range []string{"admission_no", "name", "gender"} {
		if _, ok := idx[col]; !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingColumns, col)
		}
	}

	cell := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var (
		parsed []StudentRow
		bad    []model.ImportError
	)
	for i, row := range rows[1:] {
		line := i + 2
		if isBlank(row) {
			continue
		}

		req := model.StudentRequest{
			AdmissionNo:   cell(row, "admission_no"),
			Name:          cell(row, "name"),
			Gender:        model.Gender(strings.ToLower(cell(row, "gender"))),
			DateOfBirth:   cell(row, "date_of_birth"),
			GuardianEmail: cell(row, "guardian_email"),
			Status:        model.StudentActive,
		}
		if raw := cell(row, "class_id"); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil || id <= 0 {
				bad = append(bad, model.ImportError{Row: line, Message: "class_id must be a positive number"})
				continue
			}
			req.ClassID = &id
		}
		parsed = append(parsed, StudentRow{Row: line, Request: req})
	}
	return parsed, bad, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// StudentTemplate returns an empty import workbook with the header row.
func StudentTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, h := range StudentColumns {
		if err := f.SetCellValue(sheet, cellName(i+1, 1), h); err != nil {
			return nil, err
		}
	}
	return writeBytes(f)
}
