// Package payment talks to the Midtrans gateway: Snap checkout sessions,
// Core API status checks and webhook signature verification.
package payment

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/edunexus/schoolhub/internal/model"
)

// ErrInvalidSignature is returned when a notification fails verification.
var ErrInvalidSignature = errors.New("invalid notification signature")

// Checkout describes the invoice being paid.
type Checkout struct {
	OrderID       string
	Amount        int64
	ItemName      string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

// Session is what the portal needs to open the hosted payment page.
type Session struct {
	Token       string
	RedirectURL string
}

// Notification is the transaction state reported by the gateway, either
// pushed to the webhook or fetched through the status API.
type Notification struct {
	OrderID           string `json:"order_id" binding:"required"`
	StatusCode        string `json:"status_code" binding:"required"`
	GrossAmount       string `json:"gross_amount" binding:"required"`
	SignatureKey      string `json:"signature_key" binding:"required"`
	TransactionStatus string `json:"transaction_status" binding:"required"`
	FraudStatus       string `json:"fraud_status"`
	TransactionID     string `json:"transaction_id"`
	PaymentType       string `json:"payment_type"`
}

// Gateway is the payment provider used by the fee service.
type Gateway interface {
	CreateCheckout(ctx context.Context, c Checkout) (*Session, error)
	Status(ctx context.Context, orderID string) (*Notification, error)
	ClientKey() string
}

// Signature computes sha512(order_id + status_code + gross_amount + server_key).
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// Verify checks the notification's signature against serverKey.
func Verify(n Notification, serverKey string) error {
	want := strings.ToLower(strings.TrimSpace(n.SignatureKey))
	if want == "" || serverKey == "" {
		return ErrInvalidSignature
	}
	got := Signature(n.OrderID, n.StatusCode, n.GrossAmount, serverKey)
	if subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
		return ErrInvalidSignature
	}
	return nil
}

// MapStatus converts a gateway transaction status into a payment status.
// Card captures flagged "challenge" stay pending until reviewed.
func MapStatus(transactionStatus, fraudStatus string) model.PaymentStatus {
	switch strings.ToLower(transactionStatus) {
	case "settlement":
		return model.PaymentPaid
	case "capture":
		if strings.EqualFold(fraudStatus, "challenge") {
			return model.PaymentPending
		}
		if strings.EqualFold(fraudStatus, "deny") {
			return model.PaymentFailed
		}
		return model.PaymentPaid
	case "deny", "cancel", "expire", "failure":
		return model.PaymentFailed
	default:
		return model.PaymentPending
	}
}
