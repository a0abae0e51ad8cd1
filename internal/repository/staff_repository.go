package repository

import (
	"context"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StaffRepository handles staff data access.
type StaffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository creates a new StaffRepository.
func NewStaffRepository(pool *pgxpool.Pool) *StaffRepository {
	return &StaffRepository{pool: pool}
}

const staffSelect = `SELECT st.id, st.branch_id, st.employee_no, st.name, st.email, st.phone, st.designation,
	st.is_teacher, st.subjects, st.joined_on::text, st.created_at, st.updated_at FROM staff st`

func scanStaff(row pgx.Row) (*model.Staff, error) {
	s := &model.Staff{}
	err := row.Scan(&s.ID, &s.BranchID, &s.EmployeeNo, &s.Name, &s.Email, &s.Phone, &s.Designation,
		&s.IsTeacher, &s.Subjects, &s.JoinedOn, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func collectStaff(rows pgx.Rows) ([]model.Staff, error) {
	defer rows.Close()
	var list []model.Staff
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *s)
	}
	return list, rows.Err()
}

// GetByID retrieves a staff member of a branch.
func (r *StaffRepository) GetByID(ctx context.Context, branchID, id int) (*model.Staff, error) {
	return scanStaff(r.pool.QueryRow(ctx, staffSelect+` WHERE st.id = $1 AND st.branch_id = $2`, id, branchID))
}

// List retrieves the staff of a branch, optionally teachers only.
func (r *StaffRepository) List(ctx context.Context, branchID int, teachersOnly bool) ([]model.Staff, error) {
	rows, err := r.pool.Query(ctx,
		staffSelect+` WHERE st.branch_id = $1 AND ($2 = false OR st.is_teacher) ORDER BY st.name`,
		branchID, teachersOnly)
	if err != nil {
		return nil, err
	}
	return collectStaff(rows)
}

// ListAvailableTeachers returns teachers with no class booked at day/period.
func (r *StaffRepository) ListAvailableTeachers(ctx context.Context, branchID int, day string, period int) ([]model.Staff, error) {
	rows, err := r.pool.Query(ctx,
		staffSelect+` WHERE st.branch_id = $1 AND st.is_teacher
		 AND NOT EXISTS (
			SELECT 1 FROM timetable_slots t
			WHERE t.teacher_id = st.id AND t.day = $2 AND t.period = $3
		 ) ORDER BY st.name`,
		branchID, day, period)
	if err != nil {
		return nil, err
	}
	return collectStaff(rows)
}

// Create inserts a new staff member.
func (r *StaffRepository) Create(ctx context.Context, s *model.Staff) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO staff (branch_id, employee_no, name, email, phone, designation, is_teacher, subjects, joined_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		s.BranchID, s.EmployeeNo, s.Name, s.Email, s.Phone, s.Designation, s.IsTeacher, s.Subjects, s.JoinedOn,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// Update modifies a staff record.
func (r *StaffRepository) Update(ctx context.Context, s *model.Staff) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE staff SET employee_no = $1, name = $2, email = $3, phone = $4, designation = $5,
		 is_teacher = $6, subjects = $7, joined_on = $8, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $9 AND branch_id = $10`,
		s.EmployeeNo, s.Name, s.Email, s.Phone, s.Designation, s.IsTeacher, s.Subjects, s.JoinedOn,
		s.ID, s.BranchID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a staff member.
func (r *StaffRepository) Delete(ctx context.Context, branchID, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM staff WHERE id = $1 AND branch_id = $2`, id, branchID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
