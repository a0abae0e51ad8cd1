package repository

import (
	"context"

	"github.com/edunexus/schoolhub/internal/calendar"
	"github.com/edunexus/schoolhub/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LeaveRepository handles leave application data access.
type LeaveRepository struct {
	pool *pgxpool.Pool
}

// NewLeaveRepository creates a new LeaveRepository.
func NewLeaveRepository(pool *pgxpool.Pool) *LeaveRepository {
	return &LeaveRepository{pool: pool}
}

const leaveSelect = `SELECT l.id, l.branch_id, l.staff_id, st.name, l.leave_type, l.from_date::text, l.to_date::text,
	l.reason, l.status, l.reviewed_by, l.remarks, l.reviewed_at, l.created_at
	FROM leave_applications l JOIN staff st ON st.id = l.staff_id`

func scanLeave(row pgx.Row) (*model.LeaveApplication, error) {
	l := &model.LeaveApplication{}
	err := row.Scan(&l.ID, &l.BranchID, &l.StaffID, &l.StaffName, &l.LeaveType, &l.FromDate, &l.ToDate,
		&l.Reason, &l.Status, &l.ReviewedBy, &l.Remarks, &l.ReviewedAt, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func collectLeaves(rows pgx.Rows) ([]model.LeaveApplication, error) {
	defer rows.Close()
	var list []model.LeaveApplication
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *l)
	}
	return list, rows.Err()
}

// Create inserts a pending leave application.
func (r *LeaveRepository) Create(ctx context.Context, l *model.LeaveApplication) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO leave_applications (branch_id, staff_id, leave_type, from_date, to_date, reason, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		l.BranchID, l.StaffID, l.LeaveType, l.FromDate, l.ToDate, l.Reason, model.LeavePending,
	).Scan(&l.ID, &l.CreatedAt)
}

// GetByID retrieves a leave application of a branch.
func (r *LeaveRepository) GetByID(ctx context.Context, branchID, id int) (*model.LeaveApplication, error) {
	return scanLeave(r.pool.QueryRow(ctx, leaveSelect+` WHERE l.id = $1 AND l.branch_id = $2`, id, branchID))
}

// List retrieves the leave applications of a branch.
func (r *LeaveRepository) List(ctx context.Context, branchID int, f model.LeaveFilter) ([]model.LeaveApplication, error) {
	rows, err := r.pool.Query(ctx,
		leaveSelect+` WHERE l.branch_id = $1 AND ($2 = '' OR l.status = $2) AND ($3 = 0 OR l.staff_id = $3)
		 ORDER BY l.created_at DESC`,
		branchID, f.Status, f.StaffID)
	if err != nil {
		return nil, err
	}
	return collectLeaves(rows)
}

// Review moves a pending application to status. It returns ErrStateChanged
// when the application is no longer pending.
func (r *LeaveRepository) Review(ctx context.Context, branchID, id int, status model.LeaveStatus, reviewerID *int, remarks string) (*model.LeaveApplication, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE leave_applications
		 SET status = $1, reviewed_by = $2, remarks = $3, reviewed_at = NOW()
		 WHERE id = $4 AND branch_id = $5 AND status = $6`,
		status, reviewerID, remarks, id, branchID, model.LeavePending)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrStateChanged
	}
	return r.GetByID(ctx, branchID, id)
}

// ApprovedRanges returns the approved leave ranges overlapping from..to,
// keyed by staff ID. A staffID of 0 means every staff member of the branch.
func (r *LeaveRepository) ApprovedRanges(ctx context.Context, branchID, staffID int, from, to string) (map[int][]calendar.LeaveRange, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT staff_id, from_date::text, to_date::text
		 FROM leave_applications
		 WHERE branch_id = $1 AND ($2 = 0 OR staff_id = $2) AND status = $3
		   AND from_date <= $5 AND to_date >= $4
		 ORDER BY from_date`,
		branchID, staffID, model.LeaveApproved, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int][]calendar.LeaveRange)
	for rows.Next() {
		var id int
		var lr calendar.LeaveRange
		if err := rows.Scan(&id, &lr.FromDate, &lr.ToDate); err != nil {
			return nil, err
		}
		out[id] = append(out[id], lr)
	}
	return out, rows.Err()
}
