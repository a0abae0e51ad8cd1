package repository

import (
	"context"
	"fmt"

	"github.com/edunexus/schoolhub/internal/calendar"
	"github.com/edunexus/schoolhub/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AttendanceRepository handles staff and student attendance rows.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// ─── Staff ──────────────────────────────────────────────────────────────────

// UpsertStaff records a staff member's status for a day, replacing any
// earlier mark for the same day.
func (r *AttendanceRepository) UpsertStaff(ctx context.Context, a *model.StaffAttendance) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO staff_attendance (staff_id, date, status, source, remarks, marked_by)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (staff_id, date) DO UPDATE
		 SET status = EXCLUDED.status, source = EXCLUDED.source, remarks = EXCLUDED.remarks,
		     marked_by = EXCLUDED.marked_by, updated_at = NOW()
		 RETURNING id, updated_at`,
		a.StaffID, a.Date, a.Status, a.Source, a.Remarks, a.MarkedBy,
	).Scan(&a.ID, &a.UpdatedAt)
}

// ListStaff retrieves attendance rows of a branch between from and to
// (inclusive), optionally for one staff member.
func (r *AttendanceRepository) ListStaff(ctx context.Context, branchID, staffID int, from, to string) ([]model.StaffAttendance, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.staff_id, st.name, a.date::text, a.status, a.source, a.remarks, a.marked_by, a.updated_at
		 FROM staff_attendance a JOIN staff st ON st.id = a.staff_id
		 WHERE st.branch_id = $1 AND ($2 = 0 OR a.staff_id = $2) AND a.date BETWEEN $3 AND $4
		 ORDER BY a.date, st.name`,
		branchID, staffID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.StaffAttendance
	for rows.Next() {
		var a model.StaffAttendance
		if err := rows.Scan(&a.ID, &a.StaffID, &a.StaffName, &a.Date, &a.Status, &a.Source,
			&a.Remarks, &a.MarkedBy, &a.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// StaffEntries returns the raw attendance entries of each staff member of
// a branch between from and to, keyed by staff ID. A staffID of 0 means all.
func (r *AttendanceRepository) StaffEntries(ctx context.Context, branchID, staffID int, from, to string) (map[int][]calendar.AttendanceEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.staff_id, a.date::text, a.status
		 FROM staff_attendance a JOIN staff st ON st.id = a.staff_id
		 WHERE st.branch_id = $1 AND ($2 = 0 OR a.staff_id = $2) AND a.date BETWEEN $3 AND $4
		 ORDER BY a.date, a.updated_at`,
		branchID, staffID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int][]calendar.AttendanceEntry)
	for rows.Next() {
		var id int
		var e calendar.AttendanceEntry
		if err := rows.Scan(&id, &e.Date, &e.Status); err != nil {
			return nil, err
		}
		out[id] = append(out[id], e)
	}
	return out, rows.Err()
}

// ─── Students ───────────────────────────────────────────────────────────────

// UpsertClassRegister writes a day's register for a class in one transaction.
// Students not belonging to the class are rejected.
func (r *AttendanceRepository) UpsertClassRegister(ctx context.Context, classID int, date string, entries []model.StudentAttendanceEntry, markedBy int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(
			`INSERT INTO student_attendance (student_id, class_id, date, status, marked_by)
			 SELECT s.id, s.class_id, $3, $4, $5 FROM students s WHERE s.id = $1 AND s.class_id = $2
			 ON CONFLICT (student_id, date) DO UPDATE
			 SET status = EXCLUDED.status, class_id = EXCLUDED.class_id,
			     marked_by = EXCLUDED.marked_by, updated_at = NOW()`,
			e.StudentID, classID, date, e.Status, markedBy)
	}

	results := tx.SendBatch(ctx, batch)
	for _, e := range entries {
		tag, err := results.Exec()
		if err != nil {
			results.Close()
			return err
		}
		if tag.RowsAffected() == 0 {
			results.Close()
			return fmt.Errorf("student %d: %w", e.StudentID, pgx.ErrNoRows)
		}
	}
	if err := results.Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ListClass retrieves the register of a class on a date, one row per active
// student. Unmarked students carry an empty status.
func (r *AttendanceRepository) ListClass(ctx context.Context, classID int, date string) ([]model.StudentAttendance, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.name, s.class_id, $2::date::text, COALESCE(a.status, '')
		 FROM students s
		 LEFT JOIN student_attendance a ON a.student_id = s.id AND a.date = $2
		 WHERE s.class_id = $1 AND s.status = 'active'
		 ORDER BY s.name`,
		classID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.StudentAttendance
	for rows.Next() {
		var a model.StudentAttendance
		if err := rows.Scan(&a.StudentID, &a.StudentName, &a.ClassID, &a.Date, &a.Status); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
