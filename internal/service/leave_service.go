package service

import (
	"context"
	"errors"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/refresh"
	"github.com/edunexus/schoolhub/internal/repository"
	"github.com/rs/zerolog"
)

// LeaveService handles leave applications and their review.
type LeaveService struct {
	leaveRepo *repository.LeaveRepository
	events    refresh.Publisher
	log       zerolog.Logger
}

// NewLeaveService creates a new LeaveService.
func NewLeaveService(leaveRepo *repository.LeaveRepository, events refresh.Publisher, log zerolog.Logger) *LeaveService {
	return &LeaveService{
		leaveRepo: leaveRepo,
		events:    events,
		log:       log.With().Str("component", "leave_service").Logger(),
	}
}

// Apply files a pending leave application for the caller's staff record.
func (s *LeaveService) Apply(ctx context.Context, actor *Claims, req model.ApplyLeaveRequest) (*model.LeaveApplication, error) {
	if actor.StaffID == nil {
		return nil, ErrNotStaff
	}
	// Both dates are validated YYYY-MM-DD, so they compare lexically.
	if req.ToDate < req.FromDate {
		return nil, ErrLeaveRangeInverted
	}

	l := &model.LeaveApplication{
		BranchID:  actor.BranchID,
		StaffID:   *actor.StaffID,
		LeaveType: req.LeaveType,
		FromDate:  req.FromDate,
		ToDate:    req.ToDate,
		Reason:    req.Reason,
		Status:    model.LeavePending,
	}
	if err := s.leaveRepo.Create(ctx, l); err != nil {
		return nil, err
	}

	s.events.Publish(refresh.Changed(refresh.TopicLeaves, refresh.ActionCreated, l.BranchID, l.ID))
	return s.leaveRepo.GetByID(ctx, l.BranchID, l.ID)
}

// List returns the applications of a branch.
func (s *LeaveService) List(ctx context.Context, branchID int, f model.LeaveFilter) ([]model.LeaveApplication, error) {
	return s.leaveRepo.List(ctx, branchID, f)
}

// Mine returns the caller's own applications.
func (s *LeaveService) Mine(ctx context.Context, actor *Claims) ([]model.LeaveApplication, error) {
	if actor.StaffID == nil {
		return nil, ErrNotStaff
	}
	return s.leaveRepo.List(ctx, actor.BranchID, model.LeaveFilter{StaffID: *actor.StaffID})
}

// Approve moves a pending application to approved.
func (s *LeaveService) Approve(ctx context.Context, actor *Claims, branchID, id int, remarks string) (*model.LeaveApplication, error) {
	return s.review(ctx, actor, branchID, id, model.LeaveApproved, remarks)
}

// Reject moves a pending application to rejected.
func (s *LeaveService) Reject(ctx context.Context, actor *Claims, branchID, id int, remarks string) (*model.LeaveApplication, error) {
	return s.review(ctx, actor, branchID, id, model.LeaveRejected, remarks)
}

// Cancel withdraws the caller's own pending application.
func (s *LeaveService) Cancel(ctx context.Context, actor *Claims, id int) (*model.LeaveApplication, error) {
	l, err := s.leaveRepo.GetByID(ctx, actor.BranchID, id)
	if err != nil {
		return nil, err
	}
	if actor.StaffID == nil || l.StaffID != *actor.StaffID {
		return nil, ErrForbidden
	}
	return s.review(ctx, nil, actor.BranchID, id, model.LeaveCancelled, "")
}

func (s *LeaveService) review(ctx context.Context, actor *Claims, branchID, id int, status model.LeaveStatus, remarks string) (*model.LeaveApplication, error) {
	var reviewer *int
	if actor != nil {
		reviewer = &actor.UserID
	}

	l, err := s.leaveRepo.Review(ctx, branchID, id, status, reviewer, remarks)
	if err != nil {
		if errors.Is(err, repository.ErrStateChanged) {
			// Distinguish a missing application from one already decided.
			if _, getErr := s.leaveRepo.GetByID(ctx, branchID, id); getErr != nil {
				return nil, getErr
			}
			return nil, ErrInvalidState
		}
		return nil, err
	}

	s.log.Info().Int("leave_id", id).Str("status", string(status)).Msg("Leave reviewed")
	s.events.Publish(refresh.Changed(refresh.TopicLeaves, refresh.ActionUpdated, branchID, id))
	if status == model.LeaveApproved {
		// Approved leave changes the staff calendar.
		s.events.Publish(refresh.Changed(refresh.TopicAttendance, refresh.ActionUpdated, branchID, l.StaffID))
	}
	return l, nil
}
