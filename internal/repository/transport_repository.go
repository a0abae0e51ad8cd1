package repository

import (
	"context"
	"errors"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TransportRepository handles routes, stops and rider assignments.
type TransportRepository struct {
	pool *pgxpool.Pool
}

// NewTransportRepository creates a new TransportRepository.
func NewTransportRepository(pool *pgxpool.Pool) *TransportRepository {
	return &TransportRepository{pool: pool}
}

const routeSelect = `SELECT r.id, r.branch_id, r.name, r.vehicle_no, r.driver, r.capacity,
	(SELECT COUNT(*) FROM transport_assignments a WHERE a.route_id = r.id), r.created_at
	FROM transport_routes r`

func scanRoute(row pgx.Row) (*model.TransportRoute, error) {
	rt := &model.TransportRoute{}
	err := row.Scan(&rt.ID, &rt.BranchID, &rt.Name, &rt.VehicleNo, &rt.Driver, &rt.Capacity, &rt.Occupied, &rt.CreatedAt)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

// ─── Routes ─────────────────────────────────────────────────────────────────

// ListRoutes retrieves the routes of a branch with occupancy.
func (r *TransportRepository) ListRoutes(ctx context.Context, branchID int) ([]model.TransportRoute, error) {
	rows, err := r.pool.Query(ctx, routeSelect+` WHERE r.branch_id = $1 ORDER BY r.name`, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.TransportRoute
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *rt)
	}
	return list, rows.Err()
}

// GetRoute retrieves a route with its stops.
func (r *TransportRepository) GetRoute(ctx context.Context, branchID, id int) (*model.TransportRoute, error) {
	rt, err := scanRoute(r.pool.QueryRow(ctx, routeSelect+` WHERE r.id = $1 AND r.branch_id = $2`, id, branchID))
	if err != nil {
		return nil, err
	}
	rt.Stops, err = r.ListStops(ctx, id)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

// CreateRoute inserts a new route.
func (r *TransportRepository) CreateRoute(ctx context.Context, rt *model.TransportRoute) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO transport_routes (branch_id, name, vehicle_no, driver, capacity)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		rt.BranchID, rt.Name, rt.VehicleNo, rt.Driver, rt.Capacity,
	).Scan(&rt.ID, &rt.CreatedAt)
}

// UpdateRoute modifies a route. Capacity may not drop below current riders.
func (r *TransportRepository) UpdateRoute(ctx context.Context, rt *model.TransportRoute) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE transport_routes r SET name = $1, vehicle_no = $2, driver = $3, capacity = $4
		 WHERE r.id = $5 AND r.branch_id = $6
		   AND $4 >= (SELECT COUNT(*) FROM transport_assignments a WHERE a.route_id = r.id)`,
		rt.Name, rt.VehicleNo, rt.Driver, rt.Capacity, rt.ID, rt.BranchID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetRoute(ctx, rt.BranchID, rt.ID); err != nil {
			return err
		}
		return ErrCapacityReached
	}
	return nil
}

// DeleteRoute removes a route and its stops.
func (r *TransportRepository) DeleteRoute(ctx context.Context, branchID, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transport_routes WHERE id = $1 AND branch_id = $2`, id, branchID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ─── Stops ──────────────────────────────────────────────────────────────────

// ListStops retrieves the stops of a route in travel order.
func (r *TransportRepository) ListStops(ctx context.Context, routeID int) ([]model.BusStop, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, route_id, name, pickup_time, sequence FROM bus_stops WHERE route_id = $1 ORDER BY sequence`,
		routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stops := []model.BusStop{}
	for rows.Next() {
		var s model.BusStop
		if err := rows.Scan(&s.ID, &s.RouteID, &s.Name, &s.PickupTime, &s.Sequence); err != nil {
			return nil, err
		}
		stops = append(stops, s)
	}
	return stops, rows.Err()
}

// CreateStop inserts a stop into a route of the branch.
func (r *TransportRepository) CreateStop(ctx context.Context, branchID int, s *model.BusStop) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO bus_stops (route_id, name, pickup_time, sequence)
		 SELECT r.id, $3, $4, $5 FROM transport_routes r WHERE r.id = $1 AND r.branch_id = $2
		 RETURNING id`,
		s.RouteID, branchID, s.Name, s.PickupTime, s.Sequence,
	).Scan(&s.ID)
}

// UpdateStop modifies a stop.
func (r *TransportRepository) UpdateStop(ctx context.Context, branchID int, s *model.BusStop) error {
	return r.pool.QueryRow(ctx,
		`UPDATE bus_stops b SET name = $1, pickup_time = $2, sequence = $3
		 FROM transport_routes r
		 WHERE b.id = $4 AND r.id = b.route_id AND r.branch_id = $5
		 RETURNING b.route_id`,
		s.Name, s.PickupTime, s.Sequence, s.ID, branchID,
	).Scan(&s.RouteID)
}

// DeleteStop removes a stop nobody is assigned to.
func (r *TransportRepository) DeleteStop(ctx context.Context, branchID, id int) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM bus_stops b USING transport_routes r
		 WHERE b.id = $1 AND r.id = b.route_id AND r.branch_id = $2`, id, branchID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ─── Riders ─────────────────────────────────────────────────────────────────

// ListRiders retrieves the students assigned to a route.
func (r *TransportRepository) ListRiders(ctx context.Context, routeID int) ([]model.TransportAssignment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.student_id, s.name, a.route_id, a.stop_id, b.name, a.assigned_at
		 FROM transport_assignments a
		 JOIN students s ON s.id = a.student_id
		 JOIN bus_stops b ON b.id = a.stop_id
		 WHERE a.route_id = $1 ORDER BY b.sequence, s.name`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.TransportAssignment
	for rows.Next() {
		var a model.TransportAssignment
		if err := rows.Scan(&a.StudentID, &a.StudentName, &a.RouteID, &a.StopID, &a.StopName, &a.AssignedAt); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Assign places a student on a route at one of its stops. The route row is
// locked while riders are counted.
func (r *TransportRepository) Assign(ctx context.Context, branchID, routeID, stopID, studentID int) (*model.TransportAssignment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var capacity int
	err = tx.QueryRow(ctx,
		`SELECT capacity FROM transport_routes WHERE id = $1 AND branch_id = $2 FOR UPDATE`, routeID, branchID,
	).Scan(&capacity)
	if err != nil {
		return nil, err
	}

	a := &model.TransportAssignment{StudentID: studentID, RouteID: routeID, StopID: stopID}
	err = tx.QueryRow(ctx, `SELECT name FROM bus_stops WHERE id = $1 AND route_id = $2`, stopID, routeID).Scan(&a.StopName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStopNotOnRoute
		}
		return nil, err
	}

	var riders int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM transport_assignments WHERE route_id = $1 AND student_id <> $2`, routeID, studentID,
	).Scan(&riders)
	if err != nil {
		return nil, err
	}
	if riders >= capacity {
		return nil, ErrCapacityReached
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO transport_assignments (student_id, route_id, stop_id)
		 SELECT s.id, $2, $3 FROM students s WHERE s.id = $1 AND s.branch_id = $4
		 ON CONFLICT (student_id) DO UPDATE
		 SET route_id = EXCLUDED.route_id, stop_id = EXCLUDED.stop_id, assigned_at = NOW()
		 RETURNING assigned_at, (SELECT name FROM students WHERE id = $1)`,
		studentID, routeID, stopID, branchID,
	).Scan(&a.AssignedAt, &a.StudentName)
	if err != nil {
		return nil, err
	}
	return a, tx.Commit(ctx)
}

// Unassign removes a student from their route.
func (r *TransportRepository) Unassign(ctx context.Context, branchID, studentID int) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM transport_assignments a USING students s
		 WHERE a.student_id = $1 AND s.id = a.student_id AND s.branch_id = $2`, studentID, branchID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
