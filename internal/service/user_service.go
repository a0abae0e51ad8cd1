package service

import (
	"context"
	"fmt"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/refresh"
	"github.com/edunexus/schoolhub/internal/repository"
	"github.com/rs/zerolog"
)

// UserService handles superadmin account management.
type UserService struct {
	users  *repository.UserRepository
	auth   *AuthService
	events refresh.Publisher
	log    zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users *repository.UserRepository, auth *AuthService, events refresh.Publisher, log zerolog.Logger) *UserService {
	return &UserService{
		users:  users,
		auth:   auth,
		events: events,
		log:    log.With().Str("component", "user_service").Logger(),
	}
}

// List retrieves a page of accounts.
func (s *UserService) List(ctx context.Context, branchID int, role string, page, perPage int) ([]model.User, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	return s.users.List(ctx, branchID, role, perPage, (page-1)*perPage)
}

// GetByID retrieves an account.
func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// Create adds a new account. Every role except superadmin belongs to a branch.
func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	if err := checkRoleBranch(req.Role, req.BranchID); err != nil {
		return nil, err
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		BranchID:     req.BranchID,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         req.Role,
		PasswordHash: hash,
		IsActive:     true,
		StaffID:      req.StaffID,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info().Int("user_id", u.ID).Str("role", string(u.Role)).Msg("Account created")
	s.events.Publish(refresh.Changed(refresh.TopicUsers, refresh.ActionCreated, u.Branch(), u.ID))
	return u, nil
}

// Update edits an account. Deactivating or resetting the password ends the
// account's sessions.
func (s *UserService) Update(ctx context.Context, id int, req model.UpdateUserRequest) (*model.User, error) {
	if err := checkRoleBranch(req.Role, req.BranchID); err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.BranchID = req.BranchID
	u.Name = req.Name
	u.Phone = req.Phone
	u.Role = req.Role
	u.IsActive = *req.IsActive
	u.StaffID = req.StaffID

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	if req.Password != "" {
		hash, err := s.auth.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
			return nil, err
		}
	}
	if !u.IsActive || req.Password != "" {
		if err := s.auth.EndUserSessions(ctx, id); err != nil {
			s.log.Warn().Err(err).Int("user_id", id).Msg("Failed to end sessions")
		}
	}

	s.events.Publish(refresh.Changed(refresh.TopicUsers, refresh.ActionUpdated, u.Branch(), u.ID))
	return s.users.GetByID(ctx, id)
}

// Delete removes an account and its sessions.
func (s *UserService) Delete(ctx context.Context, id int) error {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.auth.EndUserSessions(ctx, id); err != nil {
		s.log.Warn().Err(err).Int("user_id", id).Msg("Failed to end sessions")
	}
	s.events.Publish(refresh.Changed(refresh.TopicUsers, refresh.ActionDeleted, u.Branch(), id))
	return nil
}

func checkRoleBranch(role model.Role, branchID *int) error {
	if role == model.RoleSuperadmin {
		if branchID != nil {
			return fmt.Errorf("%w: superadmins have no branch", ErrInvalidValue)
		}
		return nil
	}
	if branchID == nil || *branchID <= 0 {
		return fmt.Errorf("%w: role %s requires a branch", ErrInvalidValue, role)
	}
	return nil
}
