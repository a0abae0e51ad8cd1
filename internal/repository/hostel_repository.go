package repository

import (
	"context"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HostelRepository handles hostels, rooms and room assignments.
type HostelRepository struct {
	pool *pgxpool.Pool
}

// NewHostelRepository creates a new HostelRepository.
func NewHostelRepository(pool *pgxpool.Pool) *HostelRepository {
	return &HostelRepository{pool: pool}
}

// ─── Hostels ────────────────────────────────────────────────────────────────

// ListHostels retrieves the hostels of a branch.
func (r *HostelRepository) ListHostels(ctx context.Context, branchID int) ([]model.Hostel, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, branch_id, name, gender, warden_name, created_at
		 FROM hostels WHERE branch_id = $1 ORDER BY name`, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Hostel
	for rows.Next() {
		var h model.Hostel
		if err := rows.Scan(&h.ID, &h.BranchID, &h.Name, &h.Gender, &h.WardenName, &h.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, h)
	}
	return list, rows.Err()
}

// CreateHostel inserts a new hostel.
func (r *HostelRepository) CreateHostel(ctx context.Context, h *model.Hostel) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO hostels (branch_id, name, gender, warden_name) VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		h.BranchID, h.Name, h.Gender, h.WardenName,
	).Scan(&h.ID, &h.CreatedAt)
}

// UpdateHostel modifies a hostel.
func (r *HostelRepository) UpdateHostel(ctx context.Context, h *model.Hostel) error {
	return r.pool.QueryRow(ctx,
		`UPDATE hostels SET name = $1, gender = $2, warden_name = $3
		 WHERE id = $4 AND branch_id = $5 RETURNING created_at`,
		h.Name, h.Gender, h.WardenName, h.ID, h.BranchID,
	).Scan(&h.CreatedAt)
}

// DeleteHostel removes a hostel and its rooms.
func (r *HostelRepository) DeleteHostel(ctx context.Context, branchID, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM hostels WHERE id = $1 AND branch_id = $2`, id, branchID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ─── Rooms ──────────────────────────────────────────────────────────────────

const roomSelect = `SELECT r.id, r.hostel_id, r.room_no, r.capacity,
	(SELECT COUNT(*) FROM hostel_assignments a WHERE a.room_id = r.id)
	FROM hostel_rooms r JOIN hostels h ON h.id = r.hostel_id`

// ListRooms retrieves the rooms of a hostel with their occupancy.
func (r *HostelRepository) ListRooms(ctx context.Context, branchID, hostelID int) ([]model.Room, error) {
	rows, err := r.pool.Query(ctx, roomSelect+` WHERE h.branch_id = $1 AND r.hostel_id = $2 ORDER BY r.room_no`,
		branchID, hostelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Room
	for rows.Next() {
		var rm model.Room
		if err := rows.Scan(&rm.ID, &rm.HostelID, &rm.RoomNo, &rm.Capacity, &rm.Occupied); err != nil {
			return nil, err
		}
		list = append(list, rm)
	}
	return list, rows.Err()
}

// GetRoom retrieves a room of a branch.
func (r *HostelRepository) GetRoom(ctx context.Context, branchID, id int) (*model.Room, error) {
	rm := &model.Room{}
	err := r.pool.QueryRow(ctx, roomSelect+` WHERE h.branch_id = $1 AND r.id = $2`, branchID, id).
		Scan(&rm.ID, &rm.HostelID, &rm.RoomNo, &rm.Capacity, &rm.Occupied)
	if err != nil {
		return nil, err
	}
	return rm, nil
}

// CreateRoom inserts a room into a hostel of the branch.
func (r *HostelRepository) CreateRoom(ctx context.Context, branchID int, rm *model.Room) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO hostel_rooms (hostel_id, room_no, capacity)
		 SELECT h.id, $3, $4 FROM hostels h WHERE h.id = $1 AND h.branch_id = $2
		 RETURNING id`,
		rm.HostelID, branchID, rm.RoomNo, rm.Capacity,
	).Scan(&rm.ID)
}

// UpdateRoom modifies a room. Capacity may not drop below current occupancy.
func (r *HostelRepository) UpdateRoom(ctx context.Context, branchID int, rm *model.Room) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE hostel_rooms r SET room_no = $1, capacity = $2
		 FROM hostels h
		 WHERE r.id = $3 AND h.id = r.hostel_id AND h.branch_id = $4
		   AND $2 >= (SELECT COUNT(*) FROM hostel_assignments a WHERE a.room_id = r.id)`,
		rm.RoomNo, rm.Capacity, rm.ID, branchID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetRoom(ctx, branchID, rm.ID); err != nil {
			return err
		}
		return ErrCapacityReached
	}
	return nil
}

// DeleteRoom removes an empty room.
func (r *HostelRepository) DeleteRoom(ctx context.Context, branchID, id int) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM hostel_rooms r USING hostels h
		 WHERE r.id = $1 AND h.id = r.hostel_id AND h.branch_id = $2`, id, branchID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ─── Assignments ────────────────────────────────────────────────────────────

// ListOccupants retrieves the students placed in a room.
func (r *HostelRepository) ListOccupants(ctx context.Context, roomID int) ([]model.RoomAssignment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.student_id, s.name, a.room_id, a.assigned_at
		 FROM hostel_assignments a JOIN students s ON s.id = a.student_id
		 WHERE a.room_id = $1 ORDER BY s.name`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.RoomAssignment
	for rows.Next() {
		var a model.RoomAssignment
		if err := rows.Scan(&a.StudentID, &a.StudentName, &a.RoomID, &a.AssignedAt); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Assign places a student in a room, moving them out of any previous room.
// The room row is locked while occupancy is counted so two concurrent
// assignments cannot both take the last bed.
func (r *HostelRepository) Assign(ctx context.Context, branchID, roomID, studentID int) (*model.RoomAssignment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var capacity int
	err = tx.QueryRow(ctx,
		`SELECT r.capacity FROM hostel_rooms r JOIN hostels h ON h.id = r.hostel_id
		 WHERE r.id = $1 AND h.branch_id = $2 FOR UPDATE OF r`, roomID, branchID,
	).Scan(&capacity)
	if err != nil {
		return nil, err
	}

	var occupied int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM hostel_assignments WHERE room_id = $1 AND student_id <> $2`, roomID, studentID,
	).Scan(&occupied)
	if err != nil {
		return nil, err
	}
	if occupied >= capacity {
		return nil, ErrCapacityReached
	}

	a := &model.RoomAssignment{StudentID: studentID, RoomID: roomID}
	err = tx.QueryRow(ctx,
		`INSERT INTO hostel_assignments (student_id, room_id)
		 SELECT s.id, $2 FROM students s WHERE s.id = $1 AND s.branch_id = $3
		 ON CONFLICT (student_id) DO UPDATE SET room_id = EXCLUDED.room_id, assigned_at = NOW()
		 RETURNING assigned_at, (SELECT name FROM students WHERE id = $1)`,
		studentID, roomID, branchID,
	).Scan(&a.AssignedAt, &a.StudentName)
	if err != nil {
		return nil, err
	}
	return a, tx.Commit(ctx)
}

// Vacate removes a student's room assignment.
func (r *HostelRepository) Vacate(ctx context.Context, branchID, studentID int) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM hostel_assignments a USING students s
		 WHERE a.student_id = $1 AND s.id = a.student_id AND s.branch_id = $2`, studentID, branchID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
