package model

import "time"

// TransportRoute is a bus route with a seating capacity.
type TransportRoute struct {
	ID        int       `json:"id"`
	BranchID  int       `json:"branch_id"`
	Name      string    `json:"name"`
	VehicleNo string    `json:"vehicle_no"`
	Driver    string    `json:"driver"`
	Capacity  int       `json:"capacity"`
	Occupied  int       `json:"occupied"`
	Stops     []BusStop `json:"stops,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HasSpace reports whether another rider fits.
func (r *TransportRoute) HasSpace() bool { return r.Occupied < r.Capacity }

// RouteRequest is the payload for creating or updating a route.
type RouteRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=100"`
	VehicleNo string `json:"vehicle_no" binding:"omitempty,max=30"`
	Driver    string `json:"driver" binding:"omitempty,max=150"`
	Capacity  int    `json:"capacity" binding:"required,min=1,max=200"`
}

// BusStop is a pickup point on a route.
type BusStop struct {
	ID         int    `json:"id"`
	RouteID    int    `json:"route_id"`
	Name       string `json:"name"`
	PickupTime string `json:"pickup_time"`
	Sequence   int    `json:"sequence"`
}

// StopRequest is the payload for creating or updating a stop.
type StopRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=100"`
	PickupTime string `json:"pickup_time" binding:"required,hhmm"`
	Sequence   int    `json:"sequence" binding:"required,min=1"`
}

// TransportAssignment links a student to a route and stop.
type TransportAssignment struct {
	StudentID   int       `json:"student_id"`
	StudentName string    `json:"student_name"`
	RouteID     int       `json:"route_id"`
	StopID      int       `json:"stop_id"`
	StopName    string    `json:"stop_name"`
	AssignedAt  time.Time `json:"assigned_at"`
}

// AssignRiderRequest places a student on a route at a stop.
type AssignRiderRequest struct {
	StudentID int `json:"student_id" binding:"required,min=1"`
	StopID    int `json:"stop_id" binding:"required,min=1"`
}
