package service

import (
	"context"
	"fmt"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/payment"
	"github.com/edunexus/schoolhub/internal/refresh"
	"github.com/edunexus/schoolhub/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// FeeService handles fee templates, invoices and checkout.
type FeeService struct {
	feeRepo     *repository.FeeRepository
	classRepo   *repository.ClassRepository
	studentRepo *repository.StudentRepository
	gateway     payment.Gateway
	events      refresh.Publisher
	log         zerolog.Logger
}

// NewFeeService creates a new FeeService.
func NewFeeService(
	feeRepo *repository.FeeRepository,
	classRepo *repository.ClassRepository,
	studentRepo *repository.StudentRepository,
	gateway payment.Gateway,
	events refresh.Publisher,
	log zerolog.Logger,
) *FeeService {
	return &FeeService{
		feeRepo:     feeRepo,
		classRepo:   classRepo,
		studentRepo: studentRepo,
		gateway:     gateway,
		events:      events,
		log:         log.With().Str("component", "fee_service").Logger(),
	}
}

// ─── Templates ──────────────────────────────────────────────────────────────

func (s *FeeService) ListTemplates(ctx context.Context, branchID int) ([]model.FeeTemplate, error) {
	return s.feeRepo.ListTemplates(ctx, branchID)
}

func (s *FeeService) GetTemplate(ctx context.Context, branchID, id int) (*model.FeeTemplate, error) {
	return s.feeRepo.GetTemplate(ctx, branchID, id)
}

func (s *FeeService) CreateTemplate(ctx context.Context, branchID int, req model.FeeTemplateRequest) (*model.FeeTemplate, error) {
	t := &model.FeeTemplate{BranchID: branchID, Name: req.Name, Items: req.Items, Total: req.Total()}
	if err := s.feeRepo.CreateTemplate(ctx, t); err != nil {
		return nil, err
	}
	s.changed(refresh.ActionCreated, branchID, t.ID)
	return t, nil
}

// UpdateTemplate edits a template. Invoices already issued keep their amount.
func (s *FeeService) UpdateTemplate(ctx context.Context, branchID, id int, req model.FeeTemplateRequest) (*model.FeeTemplate, error) {
	t := &model.FeeTemplate{ID: id, BranchID: branchID, Name: req.Name, Items: req.Items, Total: req.Total()}
	if err := s.feeRepo.UpdateTemplate(ctx, t); err != nil {
		return nil, err
	}
	s.changed(refresh.ActionUpdated, branchID, id)
	return s.feeRepo.GetTemplate(ctx, branchID, id)
}

func (s *FeeService) DeleteTemplate(ctx context.Context, branchID, id int) error {
	if err := s.feeRepo.DeleteTemplate(ctx, branchID, id); err != nil {
		return err
	}
	s.changed(refresh.ActionDeleted, branchID, id)
	return nil
}

// AssignToClass bills a template to every active student of a class,
// skipping students already billed for the same template and due date.
func (s *FeeService) AssignToClass(ctx context.Context, branchID, templateID int, req model.AssignFeeRequest) (*model.AssignFeeResult, error) {
	t, err := s.feeRepo.GetTemplate(ctx, branchID, templateID)
	if err != nil {
		return nil, err
	}
	if _, err := s.classRepo.GetByID(ctx, branchID, req.ClassID); err != nil {
		return nil, err
	}

	result, err := s.feeRepo.AssignToClass(ctx, t, req.ClassID, req.DueDate)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int("template_id", templateID).
		Int("class_id", req.ClassID).
		Int("created", result.Created).
		Int("skipped", result.Skipped).
		Msg("Fee assigned to class")
	if result.Created > 0 {
		s.changed(refresh.ActionCreated, branchID, 0)
	}
	return result, nil
}

// ─── Invoices ───────────────────────────────────────────────────────────────

// ListInvoices lists invoices visible to the caller. Students see their own
// and parents see their children's.
func (s *FeeService) ListInvoices(ctx context.Context, actor *Claims, branchID int, f model.InvoiceFilter) ([]model.Invoice, error) {
	scope, err := s.studentScope(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.feeRepo.ListInvoices(ctx, branchID, f, scope)
}

// Checkout opens a gateway payment for an unpaid invoice. Each attempt gets
// a fresh order ID recorded as a pending payment.
func (s *FeeService) Checkout(ctx context.Context, actor *Claims, branchID, invoiceID int) (*model.CheckoutResponse, error) {
	inv, err := s.visibleInvoice(ctx, actor, branchID, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status == model.InvoicePaid {
		return nil, ErrInvoicePaid
	}

	student, err := s.studentRepo.GetByID(ctx, inv.BranchID, inv.StudentID)
	if err != nil {
		return nil, err
	}

	p := &model.Payment{
		OrderID:   uuid.NewString(),
		InvoiceID: inv.ID,
		Amount:    inv.Amount,
		Status:    model.PaymentPending,
		Provider:  "midtrans",
	}
	if err := s.feeRepo.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	session, err := s.gateway.CreateCheckout(ctx, payment.Checkout{
		OrderID:       p.OrderID,
		Amount:        inv.Amount,
		ItemName:      inv.TemplateName,
		CustomerName:  student.Name,
		CustomerEmail: student.GuardianEmail,
	})
	if err != nil {
		if _, _, applyErr := s.feeRepo.ApplyPayment(ctx, repository.PaymentUpdate{
			OrderID: p.OrderID,
			Status:  model.PaymentFailed,
		}); applyErr != nil {
			s.log.Warn().Err(applyErr).Str("order_id", p.OrderID).Msg("Failed to mark payment failed")
		}
		return nil, fmt.Errorf("%w: %v", ErrPaymentGateway, err)
	}

	s.log.Info().Int("invoice_id", inv.ID).Str("order_id", p.OrderID).Msg("Checkout opened")
	s.events.Publish(refresh.Changed(refresh.TopicPayments, refresh.ActionCreated, inv.BranchID, inv.ID))
	return &model.CheckoutResponse{
		OrderID:     p.OrderID,
		Token:       session.Token,
		RedirectURL: session.RedirectURL,
		ClientKey:   s.gateway.ClientKey(),
		Amount:      inv.Amount,
	}, nil
}

func (s *FeeService) visibleInvoice(ctx context.Context, actor *Claims, branchID, invoiceID int) (*model.Invoice, error) {
	inv, err := s.feeRepo.GetInvoice(ctx, branchID, invoiceID)
	if err != nil {
		return nil, err
	}
	scope, err := s.studentScope(ctx, actor)
	if err != nil {
		return nil, err
	}
	if scope != nil && !containsInt(scope, inv.StudentID) {
		return nil, ErrForbidden
	}
	return inv, nil
}

// studentScope returns the students whose records the caller may see, or
// nil when the caller is not restricted.
func (s *FeeService) studentScope(ctx context.Context, actor *Claims) ([]int, error) {
	switch actor.Role {
	case model.RoleStudent:
		if actor.StudentID == nil {
			return []int{}, nil
		}
		return []int{*actor.StudentID}, nil
	case model.RoleParent:
		children, err := s.studentRepo.ListByGuardian(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		ids := make([]int, 0, len(children))
		for _, c := range children {
			ids = append(ids, c.ID)
		}
		return ids, nil
	}
	return nil, nil
}

func (s *FeeService) changed(action refresh.Action, branchID, id int) {
	s.events.Publish(refresh.Changed(refresh.TopicFees, action, branchID, id))
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
