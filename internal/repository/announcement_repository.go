package repository

import (
	"context"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AnnouncementRepository handles announcement data access.
type AnnouncementRepository struct {
	pool *pgxpool.Pool
}

// NewAnnouncementRepository creates a new AnnouncementRepository.
func NewAnnouncementRepository(pool *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{pool: pool}
}

const announcementSelect = `SELECT a.id, a.branch_id, a.title, a.body, a.audience, a.class_id, a.author_id,
	COALESCE(u.name, ''), a.publish_at, a.created_at
	FROM announcements a LEFT JOIN users u ON u.id = a.author_id`

func collectAnnouncements(rows pgx.Rows) ([]model.Announcement, error) {
	defer rows.Close()
	var list []model.Announcement
	for rows.Next() {
		var a model.Announcement
		if err := rows.Scan(&a.ID, &a.BranchID, &a.Title, &a.Body, &a.Audience, &a.ClassID, &a.AuthorID,
			&a.AuthorName, &a.PublishAt, &a.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// List retrieves every announcement of a branch, newest first.
func (r *AnnouncementRepository) List(ctx context.Context, branchID int) ([]model.Announcement, error) {
	rows, err := r.pool.Query(ctx, announcementSelect+` WHERE a.branch_id = $1 ORDER BY a.publish_at DESC`, branchID)
	if err != nil {
		return nil, err
	}
	return collectAnnouncements(rows)
}

// GetByID retrieves an announcement of a branch.
func (r *AnnouncementRepository) GetByID(ctx context.Context, branchID, id int) (*model.Announcement, error) {
	rows, err := r.pool.Query(ctx, announcementSelect+` WHERE a.id = $1 AND a.branch_id = $2`, id, branchID)
	if err != nil {
		return nil, err
	}
	list, err := collectAnnouncements(rows)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &list[0], nil
}

// Feed retrieves published announcements visible to a reader.
func (r *AnnouncementRepository) Feed(ctx context.Context, scope model.FeedScope, limit int) ([]model.Announcement, error) {
	audiences := make([]string, len(scope.Audiences))
	for i, a := range scope.Audiences {
		audiences[i] = string(a)
	}
	classIDs := scope.ClassIDs
	if classIDs == nil {
		classIDs = []int{}
	}

	rows, err := r.pool.Query(ctx,
		announcementSelect+` WHERE a.branch_id = $1 AND a.publish_at <= NOW()
		 AND (a.audience = ANY($2) OR (a.audience = 'class' AND a.class_id = ANY($3)))
		 ORDER BY a.publish_at DESC LIMIT $4`,
		scope.BranchID, audiences, classIDs, limit)
	if err != nil {
		return nil, err
	}
	return collectAnnouncements(rows)
}

// Create inserts a new announcement.
func (r *AnnouncementRepository) Create(ctx context.Context, a *model.Announcement) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO announcements (branch_id, title, body, audience, class_id, author_id, publish_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at`,
		a.BranchID, a.Title, a.Body, a.Audience, a.ClassID, a.AuthorID, a.PublishAt,
	).Scan(&a.ID, &a.CreatedAt)
}

// Update modifies an announcement.
func (r *AnnouncementRepository) Update(ctx context.Context, a *model.Announcement) error {
	return r.pool.QueryRow(ctx,
		`UPDATE announcements SET title = $1, body = $2, audience = $3, class_id = $4, publish_at = $5
		 WHERE id = $6 AND branch_id = $7 RETURNING author_id, created_at`,
		a.Title, a.Body, a.Audience, a.ClassID, a.PublishAt, a.ID, a.BranchID,
	).Scan(&a.AuthorID, &a.CreatedAt)
}

// Delete removes an announcement.
func (r *AnnouncementRepository) Delete(ctx context.Context, branchID, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM announcements WHERE id = $1 AND branch_id = $2`, id, branchID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
