package service

import (
	"context"
	"errors"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/refresh"
	"github.com/edunexus/schoolhub/internal/repository"
	"github.com/rs/zerolog"
)

// RectificationService handles requests to correct recorded values.
type RectificationService struct {
	repo   *repository.RectificationRepository
	events refresh.Publisher
	log    zerolog.Logger
}

// NewRectificationService creates a new RectificationService.
func NewRectificationService(repo *repository.RectificationRepository, events refresh.Publisher, log zerolog.Logger) *RectificationService {
	return &RectificationService{
		repo:   repo,
		events: events,
		log:    log.With().Str("component", "rectification_service").Logger(),
	}
}

// Submit files a pending correction request.
func (s *RectificationService) Submit(ctx context.Context, actor *Claims, req model.RectificationRequest) (*model.Rectification, error) {
	if req.CurrentValue == req.RequestedValue {
		return nil, ErrInvalidValue
	}
	x := &model.Rectification{
		BranchID:       actor.BranchID,
		Kind:           req.Kind,
		TargetID:       req.TargetID,
		CurrentValue:   req.CurrentValue,
		RequestedValue: req.RequestedValue,
		Reason:         req.Reason,
		Status:         model.RectificationPending,
		RequestedBy:    actor.UserID,
	}
	if err := s.repo.Create(ctx, x); err != nil {
		return nil, err
	}
	s.events.Publish(refresh.Changed(refresh.TopicRectifications, refresh.ActionCreated, x.BranchID, x.ID))
	return s.repo.GetByID(ctx, x.BranchID, x.ID)
}

// List returns requests of a branch. Callers who cannot review only see
// their own.
func (s *RectificationService) List(ctx context.Context, actor *Claims, branchID int, f model.RectificationFilter) ([]model.Rectification, error) {
	requestedBy := 0
	if !actor.Can(model.PermissionRectificationsReview) {
		requestedBy = actor.UserID
	}
	return s.repo.List(ctx, branchID, f, requestedBy)
}

// Approve moves a pending request to approved.
func (s *RectificationService) Approve(ctx context.Context, actor *Claims, branchID, id int, remarks string) (*model.Rectification, error) {
	return s.review(ctx, actor, branchID, id, model.RectificationApproved, remarks)
}

// Reject moves a pending request to rejected.
func (s *RectificationService) Reject(ctx context.Context, actor *Claims, branchID, id int, remarks string) (*model.Rectification, error) {
	return s.review(ctx, actor, branchID, id, model.RectificationRejected, remarks)
}

func (s *RectificationService) review(ctx context.Context, actor *Claims, branchID, id int, status model.RectificationStatus, remarks string) (*model.Rectification, error) {
	x, err := s.repo.Review(ctx, branchID, id, status, actor.UserID, remarks)
	if err != nil {
		if errors.Is(err, repository.ErrStateChanged) {
			if _, getErr := s.repo.GetByID(ctx, branchID, id); getErr != nil {
				return nil, getErr
			}
			return nil, ErrInvalidState
		}
		return nil, err
	}
	s.log.Info().Int("rectification_id", id).Str("status", string(status)).Msg("Rectification reviewed")
	s.events.Publish(refresh.Changed(refresh.TopicRectifications, refresh.ActionUpdated, branchID, id))
	return x, nil
}
