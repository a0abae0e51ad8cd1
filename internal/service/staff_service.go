package service

import (
	"context"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/refresh"
	"github.com/edunexus/schoolhub/internal/repository"
)

// StaffService handles staff records.
type StaffService struct {
	staffRepo *repository.StaffRepository
	events    refresh.Publisher
}

// NewStaffService creates a new StaffService.
func NewStaffService(staffRepo *repository.StaffRepository, events refresh.Publisher) *StaffService {
	return &StaffService{staffRepo: staffRepo, events: events}
}

func (s *StaffService) GetByID(ctx context.Context, branchID, id int) (*model.Staff, error) {
	return s.staffRepo.GetByID(ctx, branchID, id)
}

func (s *StaffService) List(ctx context.Context, branchID int, teachersOnly bool) ([]model.Staff, error) {
	return s.staffRepo.List(ctx, branchID, teachersOnly)
}

func (s *StaffService) Create(ctx context.Context, branchID int, req model.StaffRequest) (*model.Staff, error) {
	st := staffFromRequest(branchID, req)
	if err := s.staffRepo.Create(ctx, st); err != nil {
		return nil, err
	}
	s.events.Publish(refresh.Changed(refresh.TopicStaff, refresh.ActionCreated, branchID, st.ID))
	return st, nil
}

func (s *StaffService) Update(ctx context.Context, branchID, id int, req model.StaffRequest) (*model.Staff, error) {
	st := staffFromRequest(branchID, req)
	st.ID = id
	if err := s.staffRepo.Update(ctx, st); err != nil {
		return nil, err
	}
	s.events.Publish(refresh.Changed(refresh.TopicStaff, refresh.ActionUpdated, branchID, id))
	return s.staffRepo.GetByID(ctx, branchID, id)
}

func (s *StaffService) Delete(ctx context.Context, branchID, id int) error {
	if err := s.staffRepo.Delete(ctx, branchID, id); err != nil {
		return err
	}
	s.events.Publish(refresh.Changed(refresh.TopicStaff, refresh.ActionDeleted, branchID, id))
	return nil
}

func staffFromRequest(branchID int, req model.StaffRequest) *model.Staff {
	st := &model.Staff{
		BranchID:    branchID,
		EmployeeNo:  req.EmployeeNo,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Designation: req.Designation,
		IsTeacher:   req.IsTeacher,
		Subjects:    req.Subjects,
	}
	// subjects is NOT NULL; a nil slice would be sent as NULL.
	if st.Subjects == nil {
		st.Subjects = []string{}
	}
	if req.JoinedOn != "" {
		joined := req.JoinedOn
		st.JoinedOn = &joined
	}
	return st
}
