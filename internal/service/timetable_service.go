package service

import (
	"context"
	"errors"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/refresh"
	"github.com/edunexus/schoolhub/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
)

// TimetableService handles class timetables and teacher clash detection.
type TimetableService struct {
	timetableRepo *repository.TimetableRepository
	classRepo     *repository.ClassRepository
	staffRepo     *repository.StaffRepository
	events        refresh.Publisher
}

// NewTimetableService creates a new TimetableService.
func NewTimetableService(
	timetableRepo *repository.TimetableRepository,
	classRepo *repository.ClassRepository,
	staffRepo *repository.StaffRepository,
	events refresh.Publisher,
) *TimetableService {
	return &TimetableService{timetableRepo: timetableRepo, classRepo: classRepo, staffRepo: staffRepo, events: events}
}

// ClassTimetable returns the slots of a class ordered by day and period.
func (s *TimetableService) ClassTimetable(ctx context.Context, branchID, classID int) ([]model.TimetableSlot, error) {
	if _, err := s.classRepo.GetByID(ctx, branchID, classID); err != nil {
		return nil, err
	}
	return s.timetableRepo.ListByClass(ctx, branchID, classID)
}

// UpsertSlot sets a class period. A teacher cannot hold two classes in the
// same day and period.
func (s *TimetableService) UpsertSlot(ctx context.Context, branchID int, req model.UpsertSlotRequest) (*model.TimetableSlot, error) {
	if _, err := s.classRepo.GetByID(ctx, branchID, req.ClassID); err != nil {
		return nil, err
	}

	slot := &model.TimetableSlot{
		BranchID:  branchID,
		ClassID:   req.ClassID,
		Day:       req.Day,
		Period:    req.Period,
		Subject:   req.Subject,
		TeacherID: req.TeacherID,
	}

	if req.TeacherID != nil {
		teacher, err := s.staffRepo.GetByID(ctx, branchID, *req.TeacherID)
		if err != nil {
			return nil, err
		}
		if !teacher.IsTeacher {
			return nil, ErrNotATeacher
		}
		busy, err := s.timetableRepo.TeacherBookedElsewhere(ctx, teacher.ID, req.ClassID, req.Day, req.Period)
		if err != nil {
			return nil, err
		}
		if busy {
			return nil, ErrTeacherBusy
		}
		slot.TeacherName = teacher.Name
	}

	if err := s.timetableRepo.Upsert(ctx, slot); err != nil {
		// A concurrent booking of the same teacher trips the unique index.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrTeacherBusy
		}
		return nil, err
	}

	s.events.Publish(refresh.Changed(refresh.TopicTimetable, refresh.ActionUpdated, branchID, req.ClassID))
	return slot, nil
}

// DeleteSlot clears a class period.
func (s *TimetableService) DeleteSlot(ctx context.Context, branchID, id int) error {
	classID, err := s.timetableRepo.Delete(ctx, branchID, id)
	if err != nil {
		return err
	}
	s.events.Publish(refresh.Changed(refresh.TopicTimetable, refresh.ActionDeleted, branchID, classID))
	return nil
}

// AvailableTeachers lists teachers free at day/period.
func (s *TimetableService) AvailableTeachers(ctx context.Context, branchID int, q model.SlotQuery) ([]model.Staff, error) {
	return s.staffRepo.ListAvailableTeachers(ctx, branchID, q.Day, q.Period)
}
