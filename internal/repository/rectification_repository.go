package repository

import (
	"context"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RectificationRepository handles correction request data access.
type RectificationRepository struct {
	pool *pgxpool.Pool
}

// NewRectificationRepository creates a new RectificationRepository.
func NewRectificationRepository(pool *pgxpool.Pool) *RectificationRepository {
	return &RectificationRepository{pool: pool}
}

const rectificationSelect = `SELECT r.id, r.branch_id, r.kind, r.target_id, r.current_value, r.requested_value,
	r.reason, r.status, r.requested_by, u.name, r.reviewed_by, r.remarks, r.reviewed_at, r.created_at
	FROM rectification_requests r JOIN users u ON u.id = r.requested_by`

func scanRectification(row pgx.Row) (*model.Rectification, error) {
	x := &model.Rectification{}
	err := row.Scan(&x.ID, &x.BranchID, &x.Kind, &x.TargetID, &x.CurrentValue, &x.RequestedValue,
		&x.Reason, &x.Status, &x.RequestedBy, &x.RequesterName, &x.ReviewedBy, &x.Remarks, &x.ReviewedAt, &x.CreatedAt)
	if err != nil {
		return nil, err
	}
	return x, nil
}

// Create inserts a pending correction request.
func (r *RectificationRepository) Create(ctx context.Context, x *model.Rectification) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO rectification_requests
		 (branch_id, kind, target_id, current_value, requested_value, reason, status, requested_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at`,
		x.BranchID, x.Kind, x.TargetID, x.CurrentValue, x.RequestedValue, x.Reason,
		model.RectificationPending, x.RequestedBy,
	).Scan(&x.ID, &x.CreatedAt)
}

// GetByID retrieves a correction request of a branch.
func (r *RectificationRepository) GetByID(ctx context.Context, branchID, id int) (*model.Rectification, error) {
	return scanRectification(r.pool.QueryRow(ctx, rectificationSelect+` WHERE r.id = $1 AND r.branch_id = $2`, id, branchID))
}

// List retrieves correction requests of a branch. requestedBy 0 means anyone.
func (r *RectificationRepository) List(ctx context.Context, branchID int, f model.RectificationFilter, requestedBy int) ([]model.Rectification, error) {
	rows, err := r.pool.Query(ctx,
		rectificationSelect+` WHERE r.branch_id = $1 AND ($2 = '' OR r.status = $2) AND ($3 = '' OR r.kind = $3)
		 AND ($4 = 0 OR r.requested_by = $4)
		 ORDER BY r.created_at DESC`,
		branchID, f.Status, f.Kind, requestedBy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Rectification
	for rows.Next() {
		x, err := scanRectification(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *x)
	}
	return list, rows.Err()
}

// Review moves a pending request to status, or returns ErrStateChanged.
func (r *RectificationRepository) Review(ctx context.Context, branchID, id int, status model.RectificationStatus, reviewerID int, remarks string) (*model.Rectification, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE rectification_requests SET status = $1, reviewed_by = $2, remarks = $3, reviewed_at = NOW()
		 WHERE id = $4 AND branch_id = $5 AND status = $6`,
		status, reviewerID, remarks, id, branchID, model.RectificationPending)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrStateChanged
	}
	return r.GetByID(ctx, branchID, id)
}
