package payment

import (
	"context"
	"fmt"

	"github.com/edunexus/schoolhub/internal/config"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/rs/zerolog"
)

// Midtrans implements Gateway with Snap for checkout and Core API for
// status checks.
type Midtrans struct {
	snap      snap.Client
	core      coreapi.Client
	clientKey string
	log       zerolog.Logger
}

// NewMidtrans creates a gateway client for the configured environment.
func NewMidtrans(cfg *config.Config, log zerolog.Logger) *Midtrans {
	env := midtrans.Sandbox
	if cfg.MidtransProduction {
		env = midtrans.Production
	}

	m := &Midtrans{
		clientKey: cfg.MidtransClientKey,
		log:       log.With().Str("component", "midtrans").Logger(),
	}
	m.snap.New(cfg.MidtransServerKey, env)
	m.core.New(cfg.MidtransServerKey, env)
	return m
}

// ClientKey returns the publishable key the portal passes to Snap.js.
func (m *Midtrans) ClientKey() string { return m.clientKey }

// CreateCheckout opens a Snap transaction for the order.
func (m *Midtrans) CreateCheckout(_ context.Context, c Checkout) (*Session, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  c.OrderID,
			GrossAmt: c.Amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: c.CustomerName,
			Email: c.CustomerEmail,
			Phone: c.CustomerPhone,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:       c.OrderID,
			Name:     truncate(c.ItemName, 50),
			Price:    c.Amount,
			Qty:      1,
			Category: "school-fee",
		}},
	}

	resp, merr := m.snap.CreateTransaction(req)
	if merr != nil {
		m.log.Error().Err(merr).Str("order_id", c.OrderID).Msg("Snap transaction failed")
		return nil, fmt.Errorf("snap create transaction: %w", merr)
	}
	return &Session{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

// Status fetches the current transaction state from the Core API.
func (m *Midtrans) Status(_ context.Context, orderID string) (*Notification, error) {
	resp, merr := m.core.CheckTransaction(orderID)
	if merr != nil {
		return nil, fmt.Errorf("check transaction: %w", merr)
	}
	return &Notification{
		OrderID:           resp.OrderID,
		StatusCode:        resp.StatusCode,
		GrossAmount:       resp.GrossAmount,
		SignatureKey:      resp.SignatureKey,
		TransactionStatus: resp.TransactionStatus,
		FraudStatus:       resp.FraudStatus,
		TransactionID:     resp.TransactionID,
		PaymentType:       resp.PaymentType,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
