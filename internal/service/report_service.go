package service

import (
	"context"
	"fmt"

	"github.com/edunexus/schoolhub/internal/calendar"
	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/report"
	"github.com/edunexus/schoolhub/internal/repository"
	"github.com/rs/zerolog"
)

// ReportService renders xlsx exports.
type ReportService struct {
	attendance *AttendanceService
	feeRepo    *repository.FeeRepository
	log        zerolog.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(attendance *AttendanceService, feeRepo *repository.FeeRepository, log zerolog.Logger) *ReportService {
	return &ReportService{
		attendance: attendance,
		feeRepo:    feeRepo,
		log:        log.With().Str("component", "report_service").Logger(),
	}
}

// StaffAttendance renders the month of every staff member of a branch and
// returns the workbook with its download name.
func (s *ReportService) StaffAttendance(ctx context.Context, branchID int, q model.CalendarQuery) ([]byte, string, error) {
	month, err := calendar.NewMonth(q.Year, q.Month)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	staff, err := s.attendance.BranchMonth(ctx, branchID, month)
	if err != nil {
		return nil, "", err
	}
	body, err := report.StaffAttendanceWorkbook(month, staff)
	if err != nil {
		s.log.Error().Err(err).Int("branch_id", branchID).Msg("Render staff attendance workbook")
		return nil, "", err
	}
	return body, fmt.Sprintf("staff-attendance-%04d-%02d.xlsx", q.Year, q.Month), nil
}

// FeeLedger renders the invoices of a branch.
func (s *ReportService) FeeLedger(ctx context.Context, branchID int, f model.InvoiceFilter) ([]byte, string, error) {
	invoices, err := s.feeRepo.ListInvoices(ctx, branchID, f, nil)
	if err != nil {
		return nil, "", err
	}
	body, err := report.FeeLedgerWorkbook(invoices)
	if err != nil {
		s.log.Error().Err(err).Int("branch_id", branchID).Msg("Render fee ledger workbook")
		return nil, "", err
	}
	name := "fees.xlsx"
	if f.Status != "" {
		name = "fees-" + f.Status + ".xlsx"
	}
	return body, name, nil
}

// StudentTemplate returns an empty admissions import workbook.
func (s *ReportService) StudentTemplate() ([]byte, error) {
	return report.StudentTemplate()
}
