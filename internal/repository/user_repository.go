package repository

import (
	"context"
	"strconv"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository handles login account data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `u.id, u.branch_id, u.name, u.email, u.phone, u.avatar_url, u.role, u.password_hash,
	u.is_active, u.staff_id, (SELECT s.id FROM students s WHERE s.user_id = u.id LIMIT 1),
	u.created_at, u.updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.BranchID, &u.Name, &u.Email, &u.Phone, &u.AvatarURL, &u.Role,
		&u.PasswordHash, &u.IsActive, &u.StaffID, &u.StudentID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id))
}

// GetByEmail retrieves a user by their unique email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE lower(u.email) = lower($1)`, email))
}

// List retrieves users, optionally filtered by branch and role, with pagination.
func (r *UserRepository) List(ctx context.Context, branchID int, role string, limit, offset int) ([]model.User, int, error) {
	where := ` WHERE 1=1`
	var args []any
	if branchID > 0 {
		args = append(args, branchID)
		where += ` AND u.branch_id = $` + strconv.Itoa(len(args))
	}
	if role != "" {
		args = append(args, role)
		where += ` AND u.role = $` + strconv.Itoa(len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users u`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + userColumns + ` FROM users u` + where +
		` ORDER BY u.name LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	rows, err := r.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO users (branch_id, name, email, phone, avatar_url, role, password_hash, is_active, staff_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		u.BranchID, u.Name, u.Email, u.Phone, u.AvatarURL, u.Role, u.PasswordHash, u.IsActive, u.StaffID,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

// Update modifies account fields managed by superadmins.
func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET branch_id = $1, name = $2, phone = $3, role = $4, is_active = $5, staff_id = $6,
		 updated_at = CURRENT_TIMESTAMP WHERE id = $7`,
		u.BranchID, u.Name, u.Phone, u.Role, u.IsActive, u.StaffID, u.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdateProfile modifies the self-editable profile fields.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int, req model.UpdateProfileRequest) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET name = $1, phone = $2, avatar_url = $3, updated_at = CURRENT_TIMESTAMP WHERE id = $4`,
		req.Name, req.Phone, req.AvatarURL, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdatePassword replaces a user's password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		passwordHash, id,
	)
	return err
}

// Delete removes a user by ID.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
