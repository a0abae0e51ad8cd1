package model

import "time"

// FeeItem is one labelled line of a fee template. Amounts are minor units.
type FeeItem struct {
	Label  string `json:"label" binding:"required,min=1,max=100"`
	Amount int64  `json:"amount" binding:"required,min=1"`
}

// FeeTemplate groups fee items billed together.
type FeeTemplate struct {
	ID        int       `json:"id"`
	BranchID  int       `json:"branch_id"`
	Name      string    `json:"name"`
	Items     []FeeItem `json:"items"`
	Total     int64     `json:"total"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FeeTemplateRequest is the payload for creating or updating a template.
type FeeTemplateRequest struct {
	Name  string    `json:"name" binding:"required,min=2,max=100"`
	Items []FeeItem `json:"items" binding:"required,min=1,dive"`
}

// Total sums the item amounts.
func (r *FeeTemplateRequest) Total() int64 {
	var total int64
	for _, it := range r.Items {
		total += it.Amount
	}
	return total
}

// AssignFeeRequest bills a template to every student of a class.
type AssignFeeRequest struct {
	ClassID int    `json:"class_id" binding:"required,min=1"`
	DueDate string `json:"due_date" binding:"required,date"`
}

// AssignFeeResult reports how many invoices were created.
type AssignFeeResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// InvoiceStatus is the settlement state of an invoice.
type InvoiceStatus string

const (
	InvoiceUnpaid InvoiceStatus = "unpaid"
	InvoicePaid   InvoiceStatus = "paid"
)

// Invoice is a fee bill for one student.
type Invoice struct {
	ID           int           `json:"id"`
	BranchID     int           `json:"branch_id"`
	StudentID    int           `json:"student_id"`
	StudentName  string        `json:"student_name"`
	TemplateID   int           `json:"template_id"`
	TemplateName string        `json:"template_name"`
	Amount       int64         `json:"amount"`
	DueDate      string        `json:"due_date"`
	Status       InvoiceStatus `json:"status"`
	PaidAt       *time.Time    `json:"paid_at"`
	CreatedAt    time.Time     `json:"created_at"`
}

// InvoiceFilter narrows invoice listings.
type InvoiceFilter struct {
	StudentID int    `form:"student_id"`
	Status    string `form:"status" binding:"omitempty,oneof=unpaid paid"`
}

// PaymentStatus is the gateway outcome of a payment attempt.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Payment is one checkout attempt against an invoice.
type Payment struct {
	ID            int           `json:"id"`
	OrderID       string        `json:"order_id"`
	InvoiceID     int           `json:"invoice_id"`
	Amount        int64         `json:"amount"`
	Status        PaymentStatus `json:"status"`
	Provider      string        `json:"provider"`
	TransactionID string        `json:"transaction_id"`
	PaymentType   string        `json:"payment_type"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// CheckoutResponse is returned to the portal to open the payment page.
type CheckoutResponse struct {
	OrderID     string `json:"order_id"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
	ClientKey   string `json:"client_key"`
	Amount      int64  `json:"amount"`
}
