package repository

import (
	"context"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DashboardRepository handles branch dashboard data access.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// GetSummaryCounts retrieves the headline counts of a branch. today decides
// which open loans are overdue.
func (r *DashboardRepository) GetSummaryCounts(ctx context.Context, branchID int, today string) (*model.DashboardStats, error) {
	s := &model.DashboardStats{}
	err := r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM students WHERE branch_id = $1 AND status = 'active'),
			(SELECT COUNT(*) FROM staff WHERE branch_id = $1),
			(SELECT COUNT(*) FROM classes WHERE branch_id = $1),
			(SELECT COUNT(*) FROM leave_applications WHERE branch_id = $1 AND status = 'pending'),
			(SELECT COUNT(*) FROM rectification_requests WHERE branch_id = $1 AND status = 'pending'),
			(SELECT COUNT(*) FROM fee_invoices WHERE branch_id = $1 AND status = 'unpaid'),
			(SELECT COUNT(*) FROM book_issues i JOIN books b ON b.id = i.book_id
			  WHERE b.branch_id = $1 AND i.returned_on IS NULL AND i.due_date < $2)`,
		branchID, today,
	).Scan(&s.Students, &s.Staff, &s.Classes, &s.PendingLeaves, &s.PendingRectifications,
		&s.UnpaidInvoices, &s.OverdueBooks)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetStaffOnLeave lists the staff whose approved leave covers day.
func (r *DashboardRepository) GetStaffOnLeave(ctx context.Context, branchID int, day string) ([]model.StaffOnLeave, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT st.id, st.name, l.leave_type, l.to_date::text
		 FROM leave_applications l JOIN staff st ON st.id = l.staff_id
		 WHERE l.branch_id = $1 AND l.status = 'approved' AND $2 BETWEEN l.from_date AND l.to_date
		 ORDER BY st.name`,
		branchID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.StaffOnLeave
	for rows.Next() {
		var s model.StaffOnLeave
		if err := rows.Scan(&s.StaffID, &s.Name, &s.LeaveType, &s.Until); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
