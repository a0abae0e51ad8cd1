package service

import (
	"context"
	"fmt"
	"time"

	"github.com/edunexus/schoolhub/internal/calendar"
	"github.com/edunexus/schoolhub/internal/config"
	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/refresh"
	"github.com/edunexus/schoolhub/internal/report"
	"github.com/edunexus/schoolhub/internal/repository"
	"github.com/rs/zerolog"
)

// AttendanceService records staff and student attendance and builds the
// staff calendar.
type AttendanceService struct {
	attendanceRepo *repository.AttendanceRepository
	leaveRepo      *repository.LeaveRepository
	staffRepo      *repository.StaffRepository
	classRepo      *repository.ClassRepository
	settings       *SettingService
	cfg            *config.Config
	events         refresh.Publisher
	log            zerolog.Logger

	now func() time.Time
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(
	attendanceRepo *repository.AttendanceRepository,
	leaveRepo *repository.LeaveRepository,
	staffRepo *repository.StaffRepository,
	classRepo *repository.ClassRepository,
	settings *SettingService,
	cfg *config.Config,
	events refresh.Publisher,
	log zerolog.Logger,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		staffRepo:      staffRepo,
		classRepo:      classRepo,
		settings:       settings,
		cfg:            cfg,
		events:         events,
		log:            log.With().Str("component", "attendance_service").Logger(),
		now:            time.Now,
	}
}

// MarkStaff upserts a staff member's status for a day.
func (s *AttendanceService) MarkStaff(ctx context.Context, actor *Claims, branchID int, req model.MarkStaffAttendanceRequest) (*model.StaffAttendance, error) {
	status, ok := calendar.ParseStatus(req.Status)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidValue, req.Status)
	}
	staff, err := s.staffRepo.GetByID(ctx, branchID, req.StaffID)
	if err != nil {
		return nil, err
	}

	source := req.Source
	if source == "" {
		source = model.SourceManual
	}
	a := &model.StaffAttendance{
		StaffID:   staff.ID,
		StaffName: staff.Name,
		Date:      req.Date,
		Status:    string(status),
		Source:    source,
		Remarks:   req.Remarks,
		MarkedBy:  &actor.UserID,
	}
	if err := s.attendanceRepo.UpsertStaff(ctx, a); err != nil {
		return nil, err
	}

	s.events.Publish(refresh.Changed(refresh.TopicAttendance, refresh.ActionUpdated, branchID, staff.ID))
	return a, nil
}

// ListStaff lists recorded staff attendance between two dates.
func (s *AttendanceService) ListStaff(ctx context.Context, branchID int, q model.StaffAttendanceQuery) ([]model.StaffAttendance, error) {
	if q.To < q.From {
		return nil, fmt.Errorf("%w: to is before from", ErrInvalidDate)
	}
	return s.attendanceRepo.ListStaff(ctx, branchID, q.StaffID, q.From, q.To)
}

// StaffCalendar merges approved leave and attendance rows into the month
// view of one staff member.
func (s *AttendanceService) StaffCalendar(ctx context.Context, branchID, staffID int, q model.CalendarQuery) (*model.StaffCalendar, error) {
	month, err := calendar.NewMonth(q.Year, q.Month)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	if _, err := s.staffRepo.GetByID(ctx, branchID, staffID); err != nil {
		return nil, err
	}

	months, err := s.aggregate(ctx, branchID, staffID, month)
	if err != nil {
		return nil, err
	}
	statuses := months[staffID]
	if statuses == nil {
		statuses, err = s.emptyMonth(ctx, branchID, month)
		if err != nil {
			return nil, err
		}
	}

	return &model.StaffCalendar{
		StaffID:  staffID,
		Year:     q.Year,
		Month:    q.Month,
		Statuses: statuses,
		Grid:     calendar.BuildGrid(month, statuses),
		Summary:  calendar.Summarize(statuses),
	}, nil
}

// BranchMonth computes the month of every staff member of a branch.
func (s *AttendanceService) BranchMonth(ctx context.Context, branchID int, month calendar.Month) ([]report.StaffMonth, error) {
	staff, err := s.staffRepo.List(ctx, branchID, false)
	if err != nil {
		return nil, err
	}
	months, err := s.aggregate(ctx, branchID, 0, month)
	if err != nil {
		return nil, err
	}

	var empty map[string]calendar.Status
	out := make([]report.StaffMonth, 0, len(staff))
	for _, st := range staff {
		statuses := months[st.ID]
		if statuses == nil {
			if empty == nil {
				if empty, err = s.emptyMonth(ctx, branchID, month); err != nil {
					return nil, err
				}
			}
			statuses = empty
		}
		out = append(out, report.StaffMonth{
			EmployeeNo: st.EmployeeNo,
			Name:       st.Name,
			Statuses:   statuses,
			Summary:    calendar.Summarize(statuses),
		})
	}
	return out, nil
}

// aggregate runs calendar.Aggregate for every staff member that has leave or
// attendance in the month. staffID 0 covers the whole branch.
func (s *AttendanceService) aggregate(ctx context.Context, branchID, staffID int, month calendar.Month) (map[int]map[string]calendar.Status, error) {
	from, to := month.First().Key(), month.Last().Key()

	leaves, err := s.leaveRepo.ApprovedRanges(ctx, branchID, staffID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load leaves: %w", err)
	}
	records, err := s.attendanceRepo.StaffEntries(ctx, branchID, staffID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load attendance: %w", err)
	}
	opts, err := s.options(ctx, branchID)
	if err != nil {
		return nil, err
	}

	out := make(map[int]map[string]calendar.Status, len(records))
	for id, recs := range records {
		out[id] = calendar.Aggregate(month, leaves[id], recs, opts)
	}
	for id, lv := range leaves {
		if _, done := out[id]; !done {
			out[id] = calendar.Aggregate(month, lv, nil, opts)
		}
	}
	return out, nil
}

func (s *AttendanceService) emptyMonth(ctx context.Context, branchID int, month calendar.Month) (map[string]calendar.Status, error) {
	opts, err := s.options(ctx, branchID)
	if err != nil {
		return nil, err
	}
	return calendar.Aggregate(month, nil, nil, opts), nil
}

func (s *AttendanceService) options(ctx context.Context, branchID int) (calendar.Options, error) {
	holidays, err := s.settings.WeeklyHolidays(ctx, branchID)
	if err != nil {
		return calendar.Options{}, fmt.Errorf("load weekly holidays: %w", err)
	}
	return calendar.Options{
		WeeklyHolidays: holidays,
		Today:          s.now(),
		Location:       s.cfg.Location,
	}, nil
}

// MarkClass writes a class register. Teachers may only mark the class they
// mentor.
func (s *AttendanceService) MarkClass(ctx context.Context, actor *Claims, branchID, classID int, req model.MarkClassAttendanceRequest) error {
	if err := s.checkClassAccess(ctx, actor, branchID, classID); err != nil {
		return err
	}
	if err := s.attendanceRepo.UpsertClassRegister(ctx, classID, req.Date, req.Entries, actor.UserID); err != nil {
		return err
	}

	s.log.Info().Int("class_id", classID).Str("date", req.Date).Int("entries", len(req.Entries)).Msg("Class register saved")
	s.events.Publish(refresh.Changed(refresh.TopicAttendance, refresh.ActionUpdated, branchID, classID))
	return nil
}

// ListClass returns the register of a class on a date.
func (s *AttendanceService) ListClass(ctx context.Context, actor *Claims, branchID, classID int, date string) ([]model.StudentAttendance, error) {
	if err := s.checkClassAccess(ctx, actor, branchID, classID); err != nil {
		return nil, err
	}
	return s.attendanceRepo.ListClass(ctx, classID, date)
}

func (s *AttendanceService) checkClassAccess(ctx context.Context, actor *Claims, branchID, classID int) error {
	class, err := s.classRepo.GetByID(ctx, branchID, classID)
	if err != nil {
		return err
	}
	if actor.Role != model.RoleTeacher {
		return nil
	}
	if actor.StaffID == nil {
		return ErrNotStaff
	}
	if class.MentorTeacherID == nil || *class.MentorTeacherID != *actor.StaffID {
		return ErrForbidden
	}
	return nil
}
