package service

import (
	"context"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/refresh"
	"github.com/edunexus/schoolhub/internal/repository"
)

// BranchService handles branch (tenant) management.
type BranchService struct {
	branches *repository.BranchRepository
	events   refresh.Publisher
}

// NewBranchService creates a new BranchService.
func NewBranchService(branches *repository.BranchRepository, events refresh.Publisher) *BranchService {
	return &BranchService{branches: branches, events: events}
}

func (s *BranchService) List(ctx context.Context) ([]model.Branch, error) {
	return s.branches.List(ctx)
}

func (s *BranchService) GetByID(ctx context.Context, id int) (*model.Branch, error) {
	return s.branches.GetByID(ctx, id)
}

func (s *BranchService) Create(ctx context.Context, req model.BranchRequest) (*model.Branch, error) {
	b := &model.Branch{Code: req.Code, Name: req.Name, Address: req.Address, Phone: req.Phone, IsActive: true}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
	if err := s.branches.Create(ctx, b); err != nil {
		return nil, err
	}
	s.events.Publish(refresh.Changed(refresh.TopicBranches, refresh.ActionCreated, 0, b.ID))
	return b, nil
}

func (s *BranchService) Update(ctx context.Context, id int, req model.BranchRequest) (*model.Branch, error) {
	b := &model.Branch{ID: id, Code: req.Code, Name: req.Name, Address: req.Address, Phone: req.Phone, IsActive: true}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
	if err := s.branches.Update(ctx, b); err != nil {
		return nil, err
	}
	s.events.Publish(refresh.Changed(refresh.TopicBranches, refresh.ActionUpdated, 0, id))
	return b, nil
}

// Delete removes a branch. Branches with data are protected by foreign keys.
func (s *BranchService) Delete(ctx context.Context, id int) error {
	if err := s.branches.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Publish(refresh.Changed(refresh.TopicBranches, refresh.ActionDeleted, 0, id))
	return nil
}
