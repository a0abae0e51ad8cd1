package repository

import (
	"context"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ClassRepository handles class data access.
type ClassRepository struct {
	pool *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{pool: pool}
}

const classSelect = `SELECT c.id, c.branch_id, c.grade_level, c.section, c.room, c.mentor_teacher_id,
	COALESCE(st.name, ''),
	(SELECT COUNT(*) FROM students s WHERE s.class_id = c.id AND s.status = 'active'),
	c.created_at, c.updated_at
	FROM classes c LEFT JOIN staff st ON st.id = c.mentor_teacher_id`

func scanClass(row pgx.Row) (*model.Class, error) {
	c := &model.Class{}
	err := row.Scan(&c.ID, &c.BranchID, &c.GradeLevel, &c.Section, &c.Room, &c.MentorTeacherID,
		&c.MentorName, &c.StudentCount, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID retrieves a class of a branch by its ID.
func (r *ClassRepository) GetByID(ctx context.Context, branchID, id int) (*model.Class, error) {
	return scanClass(r.pool.QueryRow(ctx, classSelect+` WHERE c.id = $1 AND c.branch_id = $2`, id, branchID))
}

// List retrieves all classes of a branch.
func (r *ClassRepository) List(ctx context.Context, branchID int) ([]model.Class, error) {
	rows, err := r.pool.Query(ctx, classSelect+` WHERE c.branch_id = $1 ORDER BY c.grade_level, c.section`, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []model.Class
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		classes = append(classes, *c)
	}
	return classes, rows.Err()
}

// GetByMentor returns the class a teacher mentors.
func (r *ClassRepository) GetByMentor(ctx context.Context, staffID int) (*model.Class, error) {
	return scanClass(r.pool.QueryRow(ctx, classSelect+` WHERE c.mentor_teacher_id = $1`, staffID))
}

// Create inserts a new class.
func (r *ClassRepository) Create(ctx context.Context, c *model.Class) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO classes (branch_id, grade_level, section, room)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		c.BranchID, c.GradeLevel, c.Section, c.Room,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update modifies an existing class.
func (r *ClassRepository) Update(ctx context.Context, c *model.Class) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE classes SET grade_level = $1, section = $2, room = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4 AND branch_id = $5`,
		c.GradeLevel, c.Section, c.Room, c.ID, c.BranchID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// SetMentor assigns (or clears, with nil) the class mentor. The unique
// constraint on mentor_teacher_id rejects a teacher mentoring two classes.
func (r *ClassRepository) SetMentor(ctx context.Context, branchID, id int, teacherID *int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE classes SET mentor_teacher_id = $1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2 AND branch_id = $3`,
		teacherID, id, branchID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a class by its ID.
func (r *ClassRepository) Delete(ctx context.Context, branchID, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM classes WHERE id = $1 AND branch_id = $2`, id, branchID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
