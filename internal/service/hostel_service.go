package service

import (
	"context"
	"errors"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/refresh"
	"github.com/edunexus/schoolhub/internal/repository"
)

// HostelService handles hostels, rooms and bed allocation.
type HostelService struct {
	repo   *repository.HostelRepository
	events refresh.Publisher
}

// NewHostelService creates a new HostelService.
func NewHostelService(repo *repository.HostelRepository, events refresh.Publisher) *HostelService {
	return &HostelService{repo: repo, events: events}
}

func (s *HostelService) ListHostels(ctx context.Context, branchID int) ([]model.Hostel, error) {
	return s.repo.ListHostels(ctx, branchID)
}

func (s *HostelService) CreateHostel(ctx context.Context, branchID int, req model.HostelRequest) (*model.Hostel, error) {
	h := &model.Hostel{BranchID: branchID, Name: req.Name, Gender: req.Gender, WardenName: req.WardenName}
	if err := s.repo.CreateHostel(ctx, h); err != nil {
		return nil, err
	}
	s.changed(refresh.ActionCreated, branchID, h.ID)
	return h, nil
}

func (s *HostelService) UpdateHostel(ctx context.Context, branchID, id int, req model.HostelRequest) (*model.Hostel, error) {
	h := &model.Hostel{ID: id, BranchID: branchID, Name: req.Name, Gender: req.Gender, WardenName: req.WardenName}
	if err := s.repo.UpdateHostel(ctx, h); err != nil {
		return nil, err
	}
	s.changed(refresh.ActionUpdated, branchID, id)
	return h, nil
}

func (s *HostelService) DeleteHostel(ctx context.Context, branchID, id int) error {
	if err := s.repo.DeleteHostel(ctx, branchID, id); err != nil {
		return err
	}
	s.changed(refresh.ActionDeleted, branchID, id)
	return nil
}

func (s *HostelService) ListRooms(ctx context.Context, branchID, hostelID int) ([]model.Room, error) {
	return s.repo.ListRooms(ctx, branchID, hostelID)
}

func (s *HostelService) CreateRoom(ctx context.Context, branchID, hostelID int, req model.RoomRequest) (*model.Room, error) {
	rm := &model.Room{HostelID: hostelID, RoomNo: req.RoomNo, Capacity: req.Capacity}
	if err := s.repo.CreateRoom(ctx, branchID, rm); err != nil {
		return nil, err
	}
	s.changed(refresh.ActionCreated, branchID, hostelID)
	return rm, nil
}

// UpdateRoom edits a room. Shrinking below the current occupancy is refused.
func (s *HostelService) UpdateRoom(ctx context.Context, branchID, id int, req model.RoomRequest) (*model.Room, error) {
	rm := &model.Room{ID: id, RoomNo: req.RoomNo, Capacity: req.Capacity}
	if err := s.repo.UpdateRoom(ctx, branchID, rm); err != nil {
		if errors.Is(err, repository.ErrCapacityReached) {
			return nil, ErrRoomFull
		}
		return nil, err
	}
	updated, err := s.repo.GetRoom(ctx, branchID, id)
	if err != nil {
		return nil, err
	}
	s.changed(refresh.ActionUpdated, branchID, updated.HostelID)
	return updated, nil
}

func (s *HostelService) DeleteRoom(ctx context.Context, branchID, id int) error {
	if err := s.repo.DeleteRoom(ctx, branchID, id); err != nil {
		return err
	}
	s.changed(refresh.ActionDeleted, branchID, 0)
	return nil
}

// Occupants lists the students in a room.
func (s *HostelService) Occupants(ctx context.Context, branchID, roomID int) ([]model.RoomAssignment, error) {
	if _, err := s.repo.GetRoom(ctx, branchID, roomID); err != nil {
		return nil, err
	}
	return s.repo.ListOccupants(ctx, roomID)
}

// Assign places a student in a room. A student holds at most one bed, so
// assigning again moves them.
func (s *HostelService) Assign(ctx context.Context, branchID, roomID, studentID int) (*model.RoomAssignment, error) {
	a, err := s.repo.Assign(ctx, branchID, roomID, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrCapacityReached) {
			return nil, ErrRoomFull
		}
		return nil, err
	}
	s.changed(refresh.ActionUpdated, branchID, roomID)
	return a, nil
}

// Vacate frees a student's bed.
func (s *HostelService) Vacate(ctx context.Context, branchID, studentID int) error {
	if err := s.repo.Vacate(ctx, branchID, studentID); err != nil {
		return err
	}
	s.changed(refresh.ActionDeleted, branchID, 0)
	return nil
}

func (s *HostelService) changed(action refresh.Action, branchID, id int) {
	s.events.Publish(refresh.Changed(refresh.TopicHostel, action, branchID, id))
}
