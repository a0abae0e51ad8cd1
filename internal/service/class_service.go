package service

import (
	"context"
	"errors"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/refresh"
	"github.com/edunexus/schoolhub/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
)

// ClassService handles class business logic.
type ClassService struct {
	classRepo   *repository.ClassRepository
	staffRepo   *repository.StaffRepository
	studentRepo *repository.StudentRepository
	events      refresh.Publisher
}

// NewClassService creates a new ClassService.
func NewClassService(
	classRepo *repository.ClassRepository,
	staffRepo *repository.StaffRepository,
	studentRepo *repository.StudentRepository,
	events refresh.Publisher,
) *ClassService {
	return &ClassService{classRepo: classRepo, staffRepo: staffRepo, studentRepo: studentRepo, events: events}
}

// GetByID retrieves a class by its ID.
func (s *ClassService) GetByID(ctx context.Context, branchID, id int) (*model.Class, error) {
	return s.classRepo.GetByID(ctx, branchID, id)
}

// List retrieves all classes of a branch.
func (s *ClassService) List(ctx context.Context, branchID int) ([]model.Class, error) {
	return s.classRepo.List(ctx, branchID)
}

// Create creates a new class.
func (s *ClassService) Create(ctx context.Context, branchID int, req model.ClassRequest) (*model.Class, error) {
	class := &model.Class{BranchID: branchID, GradeLevel: req.GradeLevel, Section: req.Section, Room: req.Room}
	if err := s.classRepo.Create(ctx, class); err != nil {
		return nil, err
	}
	s.events.Publish(refresh.Changed(refresh.TopicClasses, refresh.ActionCreated, branchID, class.ID))
	return class, nil
}

// Update modifies an existing class.
func (s *ClassService) Update(ctx context.Context, branchID, id int, req model.ClassRequest) (*model.Class, error) {
	class := &model.Class{ID: id, BranchID: branchID, GradeLevel: req.GradeLevel, Section: req.Section, Room: req.Room}
	if err := s.classRepo.Update(ctx, class); err != nil {
		return nil, err
	}
	s.events.Publish(refresh.Changed(refresh.TopicClasses, refresh.ActionUpdated, branchID, id))
	return s.classRepo.GetByID(ctx, branchID, id)
}

// Delete removes a class. Foreign keys on students block deleting a class
// that still has members.
func (s *ClassService) Delete(ctx context.Context, branchID, id int) error {
	if err := s.classRepo.Delete(ctx, branchID, id); err != nil {
		return err
	}
	s.events.Publish(refresh.Changed(refresh.TopicClasses, refresh.ActionDeleted, branchID, id))
	return nil
}

// AssignMentor makes a teacher the mentor of a class. A teacher mentors at
// most one class.
func (s *ClassService) AssignMentor(ctx context.Context, branchID, id int, teacherID *int) (*model.Class, error) {
	if teacherID != nil {
		teacher, err := s.staffRepo.GetByID(ctx, branchID, *teacherID)
		if err != nil {
			return nil, err
		}
		if !teacher.IsTeacher {
			return nil, ErrNotATeacher
		}
	}

	if err := s.classRepo.SetMentor(ctx, branchID, id, teacherID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrMentorAssigned
		}
		return nil, err
	}
	s.events.Publish(refresh.Changed(refresh.TopicClasses, refresh.ActionUpdated, branchID, id))
	return s.classRepo.GetByID(ctx, branchID, id)
}

// Students lists the active members of a class.
func (s *ClassService) Students(ctx context.Context, branchID, id int) ([]model.Student, error) {
	if _, err := s.classRepo.GetByID(ctx, branchID, id); err != nil {
		return nil, err
	}
	return s.studentRepo.ListByClass(ctx, branchID, id)
}
