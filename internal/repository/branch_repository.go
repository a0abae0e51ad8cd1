package repository

import (
	"context"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BranchRepository handles branch data access.
type BranchRepository struct {
	pool *pgxpool.Pool
}

// NewBranchRepository creates a new BranchRepository.
func NewBranchRepository(pool *pgxpool.Pool) *BranchRepository {
	return &BranchRepository{pool: pool}
}

// GetByID retrieves a branch by its ID.
func (r *BranchRepository) GetByID(ctx context.Context, id int) (*model.Branch, error) {
	b := &model.Branch{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, code, name, address, phone, is_active, created_at, updated_at
		 FROM branches WHERE id = $1`, id,
	).Scan(&b.ID, &b.Code, &b.Name, &b.Address, &b.Phone, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// List retrieves all branches.
func (r *BranchRepository) List(ctx context.Context) ([]model.Branch, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, code, name, address, phone, is_active, created_at, updated_at
		 FROM branches ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []model.Branch
	for rows.Next() {
		var b model.Branch
		if err := rows.Scan(&b.ID, &b.Code, &b.Name, &b.Address, &b.Phone, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}
	return branches, rows.Err()
}

// Create inserts a new branch.
func (r *BranchRepository) Create(ctx context.Context, b *model.Branch) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO branches (code, name, address, phone, is_active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		b.Code, b.Name, b.Address, b.Phone, b.IsActive,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

// Update modifies an existing branch.
func (r *BranchRepository) Update(ctx context.Context, b *model.Branch) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE branches SET code = $1, name = $2, address = $3, phone = $4, is_active = $5,
		 updated_at = CURRENT_TIMESTAMP WHERE id = $6
		 RETURNING created_at, updated_at`,
		b.Code, b.Name, b.Address, b.Phone, b.IsActive, b.ID,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	return err
}

// Delete removes a branch by its ID.
func (r *BranchRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
