package repository

import (
	"context"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TimetableRepository handles timetable slot data access.
type TimetableRepository struct {
	pool *pgxpool.Pool
}

// NewTimetableRepository creates a new TimetableRepository.
func NewTimetableRepository(pool *pgxpool.Pool) *TimetableRepository {
	return &TimetableRepository{pool: pool}
}

// ListByClass retrieves every slot of a class ordered by day and period.
func (r *TimetableRepository) ListByClass(ctx context.Context, branchID, classID int) ([]model.TimetableSlot, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT t.id, t.branch_id, t.class_id, t.day, t.period, t.subject, t.teacher_id, COALESCE(st.name, '')
		 FROM timetable_slots t LEFT JOIN staff st ON st.id = t.teacher_id
		 WHERE t.branch_id = $1 AND t.class_id = $2
		 ORDER BY array_position(ARRAY['monday','tuesday','wednesday','thursday','friday','saturday']::text[], t.day::text), t.period`,
		branchID, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []model.TimetableSlot
	for rows.Next() {
		var s model.TimetableSlot
		if err := rows.Scan(&s.ID, &s.BranchID, &s.ClassID, &s.Day, &s.Period, &s.Subject, &s.TeacherID, &s.TeacherName); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// TeacherBookedElsewhere reports whether teacherID already teaches another
// class at day/period.
func (r *TimetableRepository) TeacherBookedElsewhere(ctx context.Context, teacherID, classID int, day string, period int) (bool, error) {
	var busy bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM timetable_slots
			WHERE teacher_id = $1 AND day = $2 AND period = $3 AND class_id <> $4
		 )`, teacherID, day, period, classID,
	).Scan(&busy)
	return busy, err
}

// Upsert writes the slot for a class/day/period, replacing any previous one.
func (r *TimetableRepository) Upsert(ctx context.Context, s *model.TimetableSlot) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO timetable_slots (branch_id, class_id, day, period, subject, teacher_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (class_id, day, period) DO UPDATE
		 SET subject = EXCLUDED.subject, teacher_id = EXCLUDED.teacher_id, updated_at = NOW()
		 RETURNING id`,
		s.BranchID, s.ClassID, s.Day, s.Period, s.Subject, s.TeacherID,
	).Scan(&s.ID)
}

// Delete removes a slot and returns its class ID.
func (r *TimetableRepository) Delete(ctx context.Context, branchID, id int) (int, error) {
	var classID int
	err := r.pool.QueryRow(ctx,
		`DELETE FROM timetable_slots WHERE id = $1 AND branch_id = $2 RETURNING class_id`, id, branchID,
	).Scan(&classID)
	if err != nil {
		return 0, err
	}
	return classID, nil
}
