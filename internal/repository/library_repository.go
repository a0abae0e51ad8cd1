package repository

import (
	"context"
	"errors"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LibraryRepository handles the book catalogue and circulation.
type LibraryRepository struct {
	pool *pgxpool.Pool
}

// NewLibraryRepository creates a new LibraryRepository.
func NewLibraryRepository(pool *pgxpool.Pool) *LibraryRepository {
	return &LibraryRepository{pool: pool}
}

// ─── Books ──────────────────────────────────────────────────────────────────

// ListBooks retrieves the catalogue of a branch, optionally filtered by a
// title/author/ISBN search.
func (r *LibraryRepository) ListBooks(ctx context.Context, branchID int, q string) ([]model.Book, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, branch_id, isbn, title, author, total_copies, available_copies, created_at
		 FROM books
		 WHERE branch_id = $1 AND ($2 = '' OR title ILIKE '%' || $2 || '%' OR author ILIKE '%' || $2 || '%' OR isbn = $2)
		 ORDER BY title`, branchID, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.BranchID, &b.ISBN, &b.Title, &b.Author, &b.TotalCopies, &b.AvailableCopies, &b.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// CreateBook inserts a new book with every copy available.
func (r *LibraryRepository) CreateBook(ctx context.Context, b *model.Book) error {
	b.AvailableCopies = b.TotalCopies
	return r.pool.QueryRow(ctx,
		`INSERT INTO books (branch_id, isbn, title, author, total_copies, available_copies)
		 VALUES ($1, $2, $3, $4, $5, $5) RETURNING id, created_at`,
		b.BranchID, b.ISBN, b.Title, b.Author, b.TotalCopies,
	).Scan(&b.ID, &b.CreatedAt)
}

// UpdateBook modifies a book. Changing total copies shifts availability by
// the same amount; a check violation is returned if copies are on loan.
func (r *LibraryRepository) UpdateBook(ctx context.Context, b *model.Book) error {
	return r.pool.QueryRow(ctx,
		`UPDATE books SET isbn = $1, title = $2, author = $3,
		 available_copies = available_copies + ($4 - total_copies), total_copies = $4
		 WHERE id = $5 AND branch_id = $6
		 RETURNING available_copies, created_at`,
		b.ISBN, b.Title, b.Author, b.TotalCopies, b.ID, b.BranchID,
	).Scan(&b.AvailableCopies, &b.CreatedAt)
}

// DeleteBook removes a book without circulation history.
func (r *LibraryRepository) DeleteBook(ctx context.Context, branchID, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1 AND branch_id = $2`, id, branchID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ─── Circulation ────────────────────────────────────────────────────────────

const issueSelect = `SELECT i.id, i.book_id, b.title, i.student_id, s.name, i.issued_on::text, i.due_date::text,
	i.returned_on::text, i.fine
	FROM book_issues i JOIN books b ON b.id = i.book_id JOIN students s ON s.id = i.student_id`

func scanIssue(row pgx.Row) (*model.BookIssue, error) {
	i := &model.BookIssue{}
	err := row.Scan(&i.ID, &i.BookID, &i.BookTitle, &i.StudentID, &i.StudentName, &i.IssuedOn, &i.DueDate,
		&i.ReturnedOn, &i.Fine)
	if err != nil {
		return nil, err
	}
	return i, nil
}

// GetIssue retrieves a circulation record of a branch.
func (r *LibraryRepository) GetIssue(ctx context.Context, branchID, id int) (*model.BookIssue, error) {
	return scanIssue(r.pool.QueryRow(ctx, issueSelect+` WHERE i.id = $1 AND b.branch_id = $2`, id, branchID))
}

// ListIssues retrieves circulation records of a branch.
func (r *LibraryRepository) ListIssues(ctx context.Context, branchID int, f model.IssueFilter) ([]model.BookIssue, error) {
	rows, err := r.pool.Query(ctx,
		issueSelect+` WHERE b.branch_id = $1 AND ($2 = 0 OR i.student_id = $2) AND ($3 = false OR i.returned_on IS NULL)
		 ORDER BY i.issued_on DESC, i.id DESC`,
		branchID, f.StudentID, f.Open)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.BookIssue
	for rows.Next() {
		i, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *i)
	}
	return list, rows.Err()
}

// Issue lends a copy of a book. Availability is decremented in the same
// statement that checks it, so the count never goes negative.
func (r *LibraryRepository) Issue(ctx context.Context, branchID int, req model.IssueBookRequest, issuedOn string, issuedBy int) (*model.BookIssue, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var bookID int
	err = tx.QueryRow(ctx,
		`UPDATE books SET available_copies = available_copies - 1
		 WHERE id = $1 AND branch_id = $2 AND available_copies > 0 RETURNING id`,
		req.BookID, branchID,
	).Scan(&bookID)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM books WHERE id = $1 AND branch_id = $2)`,
			req.BookID, branchID).Scan(&exists); err != nil {
			return nil, err
		}
		if !exists {
			return nil, pgx.ErrNoRows
		}
		return nil, ErrNoCopies
	}
	if err != nil {
		return nil, err
	}

	var id int
	err = tx.QueryRow(ctx,
		`INSERT INTO book_issues (book_id, student_id, issued_on, due_date, issued_by)
		 SELECT $1, s.id, $3, $4, $5 FROM students s WHERE s.id = $2 AND s.branch_id = $6
		 RETURNING id`,
		bookID, req.StudentID, issuedOn, req.DueDate, issuedBy, branchID,
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetIssue(ctx, branchID, id)
}

// Return closes a circulation record with its fine and puts the copy back.
// ErrAlreadyClosed is returned if the record was already closed.
func (r *LibraryRepository) Return(ctx context.Context, branchID, id int, returnedOn string, fine int64) (*model.BookIssue, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var bookID int
	err = tx.QueryRow(ctx,
		`UPDATE book_issues i SET returned_on = $1, fine = $2
		 FROM books b
		 WHERE i.id = $3 AND b.id = i.book_id AND b.branch_id = $4 AND i.returned_on IS NULL
		 RETURNING i.book_id`,
		returnedOn, fine, id, branchID,
	).Scan(&bookID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAlreadyClosed
	}
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `UPDATE books SET available_copies = available_copies + 1 WHERE id = $1`, bookID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetIssue(ctx, branchID, id)
}
