package repository

import (
	"context"
	"strconv"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StudentRepository handles student data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

const studentSelect = `SELECT s.id, s.branch_id, s.admission_no, s.name, s.gender, s.date_of_birth::text,
	s.class_id, COALESCE(c.grade_level || '-' || c.section, ''), s.user_id, s.guardian_user_id,
	s.guardian_email, s.status, s.created_at, s.updated_at
	FROM students s LEFT JOIN classes c ON c.id = s.class_id`

func scanStudent(row pgx.Row) (*model.Student, error) {
	s := &model.Student{}
	err := row.Scan(&s.ID, &s.BranchID, &s.AdmissionNo, &s.Name, &s.Gender, &s.DateOfBirth,
		&s.ClassID, &s.ClassName, &s.UserID, &s.GuardianUserID, &s.GuardianEmail, &s.Status,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func collectStudents(rows pgx.Rows) ([]model.Student, error) {
	defer rows.Close()
	var students []model.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *s)
	}
	return students, rows.Err()
}

// GetByID retrieves a student of a branch by ID.
func (r *StudentRepository) GetByID(ctx context.Context, branchID, id int) (*model.Student, error) {
	return scanStudent(r.pool.QueryRow(ctx, studentSelect+` WHERE s.id = $1 AND s.branch_id = $2`, id, branchID))
}

// GetByUserID retrieves the student linked to a login account.
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int) (*model.Student, error) {
	return scanStudent(r.pool.QueryRow(ctx, studentSelect+` WHERE s.user_id = $1`, userID))
}

// ListPaginated retrieves students matching the filter.
func (r *StudentRepository) ListPaginated(ctx context.Context, branchID int, f model.StudentFilter) ([]model.Student, int, error) {
	where := ` WHERE s.branch_id = $1`
	args := []any{branchID}
	if f.ClassID > 0 {
		args = append(args, f.ClassID)
		where += ` AND s.class_id = $` + strconv.Itoa(len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where += ` AND s.status = $` + strconv.Itoa(len(args))
	}
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		n := strconv.Itoa(len(args))
		where += ` AND (s.name ILIKE $` + n + ` OR s.admission_no ILIKE $` + n + `)`
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM students s`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := studentSelect + where + ` ORDER BY s.name LIMIT $` + strconv.Itoa(len(args)+1) +
		` OFFSET $` + strconv.Itoa(len(args)+2)
	rows, err := r.pool.Query(ctx, query, append(args, f.PerPage, (f.Page-1)*f.PerPage)...)
	if err != nil {
		return nil, 0, err
	}
	students, err := collectStudents(rows)
	return students, total, err
}

// ListByClass retrieves the active students of a class.
func (r *StudentRepository) ListByClass(ctx context.Context, branchID, classID int) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx,
		studentSelect+` WHERE s.branch_id = $1 AND s.class_id = $2 AND s.status = 'active' ORDER BY s.name`,
		branchID, classID)
	if err != nil {
		return nil, err
	}
	return collectStudents(rows)
}

// ListByGuardian retrieves the children linked to a parent account.
func (r *StudentRepository) ListByGuardian(ctx context.Context, guardianUserID int) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx, studentSelect+` WHERE s.guardian_user_id = $1 ORDER BY s.name`, guardianUserID)
	if err != nil {
		return nil, err
	}
	return collectStudents(rows)
}

// Create inserts a new student.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO students (branch_id, admission_no, name, gender, date_of_birth, class_id,
		 guardian_user_id, guardian_email, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		s.BranchID, s.AdmissionNo, s.Name, s.Gender, s.DateOfBirth, s.ClassID,
		s.GuardianUserID, s.GuardianEmail, s.Status,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// Update modifies a student's admission record.
func (r *StudentRepository) Update(ctx context.Context, s *model.Student) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE students SET admission_no = $1, name = $2, gender = $3, date_of_birth = $4, class_id = $5,
		 guardian_user_id = $6, guardian_email = $7, status = $8, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $9 AND branch_id = $10`,
		s.AdmissionNo, s.Name, s.Gender, s.DateOfBirth, s.ClassID,
		s.GuardianUserID, s.GuardianEmail, s.Status, s.ID, s.BranchID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a student by ID.
func (r *StudentRepository) Delete(ctx context.Context, branchID, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1 AND branch_id = $2`, id, branchID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
