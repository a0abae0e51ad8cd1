package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/refresh"
	"github.com/edunexus/schoolhub/internal/report"
	"github.com/edunexus/schoolhub/internal/repository"
	"github.com/edunexus/schoolhub/internal/response"
	"github.com/edunexus/schoolhub/internal/validator"
	"github.com/gin-gonic/gin/binding"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// StudentService handles admissions.
type StudentService struct {
	studentRepo *repository.StudentRepository
	classRepo   *repository.ClassRepository
	userRepo    *repository.UserRepository
	events      refresh.Publisher
	log         zerolog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(
	studentRepo *repository.StudentRepository,
	classRepo *repository.ClassRepository,
	userRepo *repository.UserRepository,
	events refresh.Publisher,
	log zerolog.Logger,
) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		classRepo:   classRepo,
		userRepo:    userRepo,
		events:      events,
		log:         log.With().Str("component", "student_service").Logger(),
	}
}

// GetByID retrieves a student by ID.
func (s *StudentService) GetByID(ctx context.Context, branchID, id int) (*model.Student, error) {
	return s.studentRepo.GetByID(ctx, branchID, id)
}

// List retrieves students with pagination and optional filters.
func (s *StudentService) List(ctx context.Context, branchID int, f model.StudentFilter) ([]model.Student, *response.Pagination, error) {
	f.Normalize()

	students, total, err := s.studentRepo.ListPaginated(ctx, branchID, f)
	if err != nil {
		return nil, nil, err
	}
	if students == nil {
		students = []model.Student{}
	}
	return students, response.NewPagination(f.Page, f.PerPage, total), nil
}

// Create admits a new student.
func (s *StudentService) Create(ctx context.Context, branchID int, req model.StudentRequest) (*model.Student, error) {
	st, err := s.fromRequest(ctx, branchID, req)
	if err != nil {
		return nil, err
	}
	if err := s.studentRepo.Create(ctx, st); err != nil {
		return nil, err
	}
	s.events.Publish(refresh.Changed(refresh.TopicStudents, refresh.ActionCreated, branchID, st.ID))
	return s.studentRepo.GetByID(ctx, branchID, st.ID)
}

// Update modifies a student's admission record.
func (s *StudentService) Update(ctx context.Context, branchID, id int, req model.StudentRequest) (*model.Student, error) {
	st, err := s.fromRequest(ctx, branchID, req)
	if err != nil {
		return nil, err
	}
	st.ID = id
	if err := s.studentRepo.Update(ctx, st); err != nil {
		return nil, err
	}
	s.events.Publish(refresh.Changed(refresh.TopicStudents, refresh.ActionUpdated, branchID, id))
	return s.studentRepo.GetByID(ctx, branchID, id)
}

// Delete removes a student by ID.
func (s *StudentService) Delete(ctx context.Context, branchID, id int) error {
	if err := s.studentRepo.Delete(ctx, branchID, id); err != nil {
		return err
	}
	s.events.Publish(refresh.Changed(refresh.TopicStudents, refresh.ActionDeleted, branchID, id))
	return nil
}

// Children lists the students linked to a parent account.
func (s *StudentService) Children(ctx context.Context, guardianUserID int) ([]model.Student, error) {
	return s.studentRepo.ListByGuardian(ctx, guardianUserID)
}

// Import admits every valid row of an xlsx sheet. Rows that fail validation
// or collide with an existing admission number are reported and skipped.
func (s *StudentService) Import(ctx context.Context, branchID int, r io.Reader) (*model.ImportResult, error) {
	rows, bad, err := report.ParseStudentSheet(r)
	if err != nil {
		return nil, err
	}

	result := &model.ImportResult{Errors: bad}
	result.Skipped = len(bad)

	for _, row := range rows {
		if err := binding.Validator.ValidateStruct(&row.Request); err != nil {
			result.Errors = append(result.Errors, model.ImportError{Row: row.Row, Message: describeInvalid(err)})
			result.Skipped++
			continue
		}

		st, err := s.fromRequest(ctx, branchID, row.Request)
		if err == nil {
			err = s.studentRepo.Create(ctx, st)
		}
		if err != nil {
			result.Errors = append(result.Errors, model.ImportError{Row: row.Row, Message: importMessage(err)})
			result.Skipped++
			continue
		}
		result.Imported++
	}

	if result.Errors == nil {
		result.Errors = []model.ImportError{}
	}
	s.log.Info().
		Int("branch_id", branchID).
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Msg("Student import finished")
	if result.Imported > 0 {
		s.events.Publish(refresh.Changed(refresh.TopicStudents, refresh.ActionCreated, branchID, 0))
	}
	return result, nil
}

// fromRequest builds a student record, checking that the class is in the
// same branch and linking the guardian account when the email matches a
// parent.
func (s *StudentService) fromRequest(ctx context.Context, branchID int, req model.StudentRequest) (*model.Student, error) {
	st := &model.Student{
		BranchID:      branchID,
		AdmissionNo:   strings.TrimSpace(req.AdmissionNo),
		Name:          strings.TrimSpace(req.Name),
		Gender:        req.Gender,
		ClassID:       req.ClassID,
		GuardianEmail: strings.ToLower(strings.TrimSpace(req.GuardianEmail)),
		Status:        req.Status,
	}
	if st.Status == "" {
		st.Status = model.StudentActive
	}
	if req.DateOfBirth != "" {
		dob := req.DateOfBirth
		st.DateOfBirth = &dob
	}

	if st.ClassID != nil {
		if _, err := s.classRepo.GetByID(ctx, branchID, *st.ClassID); err != nil {
			if repository.IsNotFound(err) {
				return nil, fmt.Errorf("%w: class %d", ErrNotFound, *st.ClassID)
			}
			return nil, err
		}
	}

	if st.GuardianEmail != "" {
		guardian, err := s.userRepo.GetByEmail(ctx, st.GuardianEmail)
		switch {
		case err == nil && guardian.Role == model.RoleParent:
			st.GuardianUserID = &guardian.ID
		case err != nil && !repository.IsNotFound(err):
			return nil, err
		}
	}
	return st, nil
}

func describeInvalid(err error) string {
	fields := validator.TranslateErrors(err)
	if len(fields) == 0 {
		return err.Error()
	}
	parts := make([]string, 0, len(fields))
	for _, field := range slices.Sorted(maps.Keys(fields)) {
		parts = append(parts, field+": "+fields[field])
	}
	return strings.Join(parts, "; ")
}

func importMessage(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return "admission number already exists"
	}
	if errors.Is(err, ErrNotFound) {
		return err.Error()
	}
	return "could not save row"
}
