package repository

import (
	"context"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FeeRepository handles fee templates, invoices and payments.
type FeeRepository struct {
	pool *pgxpool.Pool
}

// NewFeeRepository creates a new FeeRepository.
func NewFeeRepository(pool *pgxpool.Pool) *FeeRepository {
	return &FeeRepository{pool: pool}
}

// ─── Templates ──────────────────────────────────────────────────────────────

const templateSelect = `SELECT id, branch_id, name, items, total, created_at, updated_at FROM fee_templates`

func scanTemplate(row pgx.Row) (*model.FeeTemplate, error) {
	t := &model.FeeTemplate{}
	if err := row.Scan(&t.ID, &t.BranchID, &t.Name, &t.Items, &t.Total, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return t, nil
}

// GetTemplate retrieves a fee template of a branch.
func (r *FeeRepository) GetTemplate(ctx context.Context, branchID, id int) (*model.FeeTemplate, error) {
	return scanTemplate(r.pool.QueryRow(ctx, templateSelect+` WHERE id = $1 AND branch_id = $2`, id, branchID))
}

// ListTemplates retrieves the fee templates of a branch.
func (r *FeeRepository) ListTemplates(ctx context.Context, branchID int) ([]model.FeeTemplate, error) {
	rows, err := r.pool.Query(ctx, templateSelect+` WHERE branch_id = $1 ORDER BY name`, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.FeeTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *t)
	}
	return list, rows.Err()
}

// CreateTemplate inserts a new fee template.
func (r *FeeRepository) CreateTemplate(ctx context.Context, t *model.FeeTemplate) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO fee_templates (branch_id, name, items, total) VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		t.BranchID, t.Name, t.Items, t.Total,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// UpdateTemplate modifies a fee template. Existing invoices keep their amount.
func (r *FeeRepository) UpdateTemplate(ctx context.Context, t *model.FeeTemplate) error {
	return r.pool.QueryRow(ctx,
		`UPDATE fee_templates SET name = $1, items = $2, total = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4 AND branch_id = $5 RETURNING created_at, updated_at`,
		t.Name, t.Items, t.Total, t.ID, t.BranchID,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
}

// DeleteTemplate removes a template that has not been billed.
func (r *FeeRepository) DeleteTemplate(ctx context.Context, branchID, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM fee_templates WHERE id = $1 AND branch_id = $2`, id, branchID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// AssignToClass creates one invoice per active student of the class.
// Students already billed for this template and due date are skipped.
func (r *FeeRepository) AssignToClass(ctx context.Context, t *model.FeeTemplate, classID int, dueDate string) (*model.AssignFeeResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var students int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM students WHERE class_id = $1 AND branch_id = $2 AND status = 'active'`,
		classID, t.BranchID,
	).Scan(&students)
	if err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx,
		`INSERT INTO fee_invoices (branch_id, student_id, template_id, amount, due_date)
		 SELECT s.branch_id, s.id, $1, $2, $3 FROM students s
		 WHERE s.class_id = $4 AND s.branch_id = $5 AND s.status = 'active'
		 ON CONFLICT (student_id, template_id, due_date) DO NOTHING`,
		t.ID, t.Total, dueDate, classID, t.BranchID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	created := int(tag.RowsAffected())
	return &model.AssignFeeResult{Created: created, Skipped: students - created}, nil
}

// ─── Invoices ───────────────────────────────────────────────────────────────

const invoiceSelect = `SELECT i.id, i.branch_id, i.student_id, s.name, i.template_id, t.name, i.amount,
	i.due_date::text, i.status, i.paid_at, i.created_at
	FROM fee_invoices i JOIN students s ON s.id = i.student_id JOIN fee_templates t ON t.id = i.template_id`

func scanInvoice(row pgx.Row) (*model.Invoice, error) {
	inv := &model.Invoice{}
	err := row.Scan(&inv.ID, &inv.BranchID, &inv.StudentID, &inv.StudentName, &inv.TemplateID, &inv.TemplateName,
		&inv.Amount, &inv.DueDate, &inv.Status, &inv.PaidAt, &inv.CreatedAt)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// GetInvoice retrieves an invoice of a branch.
func (r *FeeRepository) GetInvoice(ctx context.Context, branchID, id int) (*model.Invoice, error) {
	return scanInvoice(r.pool.QueryRow(ctx, invoiceSelect+` WHERE i.id = $1 AND i.branch_id = $2`, id, branchID))
}

// ListInvoices retrieves invoices of a branch. When studentIDs is non-nil
// only those students' invoices are returned.
func (r *FeeRepository) ListInvoices(ctx context.Context, branchID int, f model.InvoiceFilter, studentIDs []int) ([]model.Invoice, error) {
	rows, err := r.pool.Query(ctx,
		invoiceSelect+` WHERE i.branch_id = $1 AND ($2 = 0 OR i.student_id = $2) AND ($3 = '' OR i.status = $3)
		 AND ($4::int[] IS NULL OR i.student_id = ANY($4))
		 ORDER BY i.due_date DESC, s.name`,
		branchID, f.StudentID, f.Status, studentIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *inv)
	}
	return list, rows.Err()
}

// ─── Payments ───────────────────────────────────────────────────────────────

const paymentSelect = `SELECT id, order_id::text, invoice_id, amount, status, provider, transaction_id,
	payment_type, created_at, updated_at FROM payments`

func scanPayment(row pgx.Row) (*model.Payment, error) {
	p := &model.Payment{}
	err := row.Scan(&p.ID, &p.OrderID, &p.InvoiceID, &p.Amount, &p.Status, &p.Provider, &p.TransactionID,
		&p.PaymentType, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreatePayment records a pending checkout attempt.
func (r *FeeRepository) CreatePayment(ctx context.Context, p *model.Payment) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO payments (order_id, invoice_id, amount, status, provider)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`,
		p.OrderID, p.InvoiceID, p.Amount, p.Status, p.Provider,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetPaymentByOrderID retrieves a payment by its gateway order ID.
func (r *FeeRepository) GetPaymentByOrderID(ctx context.Context, orderID string) (*model.Payment, error) {
	return scanPayment(r.pool.QueryRow(ctx, paymentSelect+` WHERE order_id = $1`, orderID))
}

// GetBranchPayment retrieves a payment whose invoice belongs to branchID.
func (r *FeeRepository) GetBranchPayment(ctx context.Context, branchID int, orderID string) (*model.Payment, error) {
	return scanPayment(r.pool.QueryRow(ctx, paymentSelect+`
		WHERE order_id = $1 AND invoice_id IN (SELECT id FROM fee_invoices WHERE branch_id = $2)`,
		orderID, branchID))
}

// PaymentUpdate is the gateway outcome applied to a payment.
type PaymentUpdate struct {
	OrderID       string
	Status        model.PaymentStatus
	TransactionID string
	PaymentType   string
}

// ApplyPayment stores the gateway outcome and, when paid, settles the
// invoice. A payment already marked paid is never downgraded. It returns the
// stored payment and the invoice's branch.
func (r *FeeRepository) ApplyPayment(ctx context.Context, u PaymentUpdate) (*model.Payment, int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback(ctx)

	p, err := scanPayment(tx.QueryRow(ctx, paymentSelect+` WHERE order_id = $1 FOR UPDATE`, u.OrderID))
	if err != nil {
		return nil, 0, err
	}

	if p.Status != model.PaymentPaid {
		err = tx.QueryRow(ctx,
			`UPDATE payments SET status = $1, transaction_id = $2, payment_type = $3, updated_at = NOW()
			 WHERE id = $4 RETURNING updated_at`,
			u.Status, u.TransactionID, u.PaymentType, p.ID,
		).Scan(&p.UpdatedAt)
		if err != nil {
			return nil, 0, err
		}
		p.Status, p.TransactionID, p.PaymentType = u.Status, u.TransactionID, u.PaymentType
	}

	var branchID int
	if p.Status == model.PaymentPaid {
		err = tx.QueryRow(ctx,
			`UPDATE fee_invoices SET status = $1, paid_at = COALESCE(paid_at, NOW())
			 WHERE id = $2 RETURNING branch_id`,
			model.InvoicePaid, p.InvoiceID,
		).Scan(&branchID)
	} else {
		err = tx.QueryRow(ctx, `SELECT branch_id FROM fee_invoices WHERE id = $1`, p.InvoiceID).Scan(&branchID)
	}
	if err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, err
	}
	return p, branchID, nil
}
