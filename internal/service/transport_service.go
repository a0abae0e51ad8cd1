package service

import (
	"context"
	"errors"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/refresh"
	"github.com/edunexus/schoolhub/internal/repository"
)

// TransportService handles bus routes, stops and riders.
type TransportService struct {
	repo   *repository.TransportRepository
	events refresh.Publisher
}

// NewTransportService creates a new TransportService.
func NewTransportService(repo *repository.TransportRepository, events refresh.Publisher) *TransportService {
	return &TransportService{repo: repo, events: events}
}

func (s *TransportService) ListRoutes(ctx context.Context, branchID int) ([]model.TransportRoute, error) {
	return s.repo.ListRoutes(ctx, branchID)
}

// GetRoute returns a route with its stops.
func (s *TransportService) GetRoute(ctx context.Context, branchID, id int) (*model.TransportRoute, error) {
	return s.repo.GetRoute(ctx, branchID, id)
}

func (s *TransportService) CreateRoute(ctx context.Context, branchID int, req model.RouteRequest) (*model.TransportRoute, error) {
	rt := &model.TransportRoute{BranchID: branchID, Name: req.Name, VehicleNo: req.VehicleNo, Driver: req.Driver, Capacity: req.Capacity}
	if err := s.repo.CreateRoute(ctx, rt); err != nil {
		return nil, err
	}
	s.changed(refresh.ActionCreated, branchID, rt.ID)
	return rt, nil
}

// UpdateRoute edits a route. Capacity may not drop below current riders.
func (s *TransportService) UpdateRoute(ctx context.Context, branchID, id int, req model.RouteRequest) (*model.TransportRoute, error) {
	rt := &model.TransportRoute{ID: id, BranchID: branchID, Name: req.Name, VehicleNo: req.VehicleNo, Driver: req.Driver, Capacity: req.Capacity}
	if err := s.repo.UpdateRoute(ctx, rt); err != nil {
		if errors.Is(err, repository.ErrCapacityReached) {
			return nil, ErrRouteFull
		}
		return nil, err
	}
	s.changed(refresh.ActionUpdated, branchID, id)
	return s.repo.GetRoute(ctx, branchID, id)
}

func (s *TransportService) DeleteRoute(ctx context.Context, branchID, id int) error {
	if err := s.repo.DeleteRoute(ctx, branchID, id); err != nil {
		return err
	}
	s.changed(refresh.ActionDeleted, branchID, id)
	return nil
}

func (s *TransportService) CreateStop(ctx context.Context, branchID, routeID int, req model.StopRequest) (*model.BusStop, error) {
	stop := &model.BusStop{RouteID: routeID, Name: req.Name, PickupTime: req.PickupTime, Sequence: req.Sequence}
	if err := s.repo.CreateStop(ctx, branchID, stop); err != nil {
		return nil, err
	}
	s.changed(refresh.ActionUpdated, branchID, routeID)
	return stop, nil
}

func (s *TransportService) UpdateStop(ctx context.Context, branchID, id int, req model.StopRequest) (*model.BusStop, error) {
	stop := &model.BusStop{ID: id, Name: req.Name, PickupTime: req.PickupTime, Sequence: req.Sequence}
	if err := s.repo.UpdateStop(ctx, branchID, stop); err != nil {
		return nil, err
	}
	s.changed(refresh.ActionUpdated, branchID, stop.RouteID)
	return stop, nil
}

func (s *TransportService) DeleteStop(ctx context.Context, branchID, id int) error {
	if err := s.repo.DeleteStop(ctx, branchID, id); err != nil {
		return err
	}
	s.changed(refresh.ActionUpdated, branchID, 0)
	return nil
}

// Riders lists the students assigned to a route.
func (s *TransportService) Riders(ctx context.Context, branchID, routeID int) ([]model.TransportAssignment, error) {
	if _, err := s.repo.GetRoute(ctx, branchID, routeID); err != nil {
		return nil, err
	}
	return s.repo.ListRiders(ctx, routeID)
}

// Assign places a student on a route at one of its stops.
func (s *TransportService) Assign(ctx context.Context, branchID, routeID int, req model.AssignRiderRequest) (*model.TransportAssignment, error) {
	a, err := s.repo.Assign(ctx, branchID, routeID, req.StopID, req.StudentID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCapacityReached):
			return nil, ErrRouteFull
		case errors.Is(err, repository.ErrStopNotOnRoute):
			return nil, ErrStopNotOnRoute
		}
		return nil, err
	}
	s.changed(refresh.ActionUpdated, branchID, routeID)
	return a, nil
}

// Unassign removes a student from their route.
func (s *TransportService) Unassign(ctx context.Context, branchID, studentID int) error {
	if err := s.repo.Unassign(ctx, branchID, studentID); err != nil {
		return err
	}
	s.changed(refresh.ActionDeleted, branchID, 0)
	return nil
}

func (s *TransportService) changed(action refresh.Action, branchID, id int) {
	s.events.Publish(refresh.Changed(refresh.TopicTransport, action, branchID, id))
}
