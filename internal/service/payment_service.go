package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/edunexus/schoolhub/internal/config"
	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/payment"
	"github.com/edunexus/schoolhub/internal/refresh"
	"github.com/edunexus/schoolhub/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrPaymentBusy is returned when another confirmation of the same order
// is in flight.
var ErrPaymentBusy = errors.New("payment confirmation in progress")

const paymentLockTTL = 30 * time.Second

// releaseLock deletes the lock only while it still holds the caller's token.
var releaseLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// PaymentService applies gateway outcomes to payments and invoices.
type PaymentService struct {
	feeRepo *repository.FeeRepository
	gateway payment.Gateway
	rdb     *redis.Client
	cfg     *config.Config
	events  refresh.Publisher
	log     zerolog.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	feeRepo *repository.FeeRepository,
	gateway payment.Gateway,
	rdb *redis.Client,
	cfg *config.Config,
	events refresh.Publisher,
	log zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		feeRepo: feeRepo,
		gateway: gateway,
		rdb:     rdb,
		cfg:     cfg,
		events:  events,
		log:     log.With().Str("component", "payment_service").Logger(),
	}
}

// HandleNotification verifies a webhook and queues it for the payment
// worker. Unknown orders are acknowledged and dropped.
func (s *PaymentService) HandleNotification(ctx context.Context, n payment.Notification) error {
	if err := payment.Verify(n, s.cfg.MidtransServerKey); err != nil {
		s.log.Warn().Str("order_id", n.OrderID).Msg("Rejected notification with bad signature")
		return err
	}
	if _, err := s.feeRepo.GetPaymentByOrderID(ctx, n.OrderID); err != nil {
		if repository.IsNotFound(err) {
			s.log.Warn().Str("order_id", n.OrderID).Msg("Notification for unknown order")
			return nil
		}
		return err
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := s.rdb.LPush(ctx, config.WorkerKey.PaymentConfirmQueue, payload).Err(); err != nil {
		return fmt.Errorf("enqueue notification: %w", err)
	}
	return nil
}

// Confirm re-checks an order of the branch with the gateway and applies the
// result. It is used by the portal after the payment page closes.
func (s *PaymentService) Confirm(ctx context.Context, branchID int, orderID string) (*model.Payment, error) {
	if _, err := s.feeRepo.GetBranchPayment(ctx, branchID, orderID); err != nil {
		return nil, err
	}
	n, err := s.gateway.Status(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentGateway, err)
	}
	return s.Apply(ctx, *n)
}

// Apply stores a verified gateway outcome. The Redis lock keeps the webhook
// worker and portal confirmations of one order from interleaving.
func (s *PaymentService) Apply(ctx context.Context, n payment.Notification) (*model.Payment, error) {
	unlock, err := s.lockOrder(ctx, n.OrderID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	current, err := s.feeRepo.GetPaymentByOrderID(ctx, n.OrderID)
	if err != nil {
		return nil, err
	}

	status := payment.MapStatus(n.TransactionStatus, n.FraudStatus)
	if status == model.PaymentPaid && !amountMatches(n.GrossAmount, current.Amount) {
		s.log.Error().
			Str("order_id", n.OrderID).
			Str("gross_amount", n.GrossAmount).
			Int64("expected", current.Amount).
			Msg("Paid amount does not match invoice")
		return nil, fmt.Errorf("%w: amount mismatch", ErrInvalidState)
	}

	p, branchID, err := s.feeRepo.ApplyPayment(ctx, repository.PaymentUpdate{
		OrderID:       n.OrderID,
		Status:        status,
		TransactionID: n.TransactionID,
		PaymentType:   n.PaymentType,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("order_id", p.OrderID).Str("status", string(p.Status)).Msg("Payment applied")
	s.events.Publish(refresh.Changed(refresh.TopicPayments, refresh.ActionUpdated, branchID, p.InvoiceID))
	if p.Status == model.PaymentPaid {
		s.events.Publish(refresh.Changed(refresh.TopicFees, refresh.ActionUpdated, branchID, p.InvoiceID))
	}
	return p, nil
}

// lockOrder takes the per-order lock. The returned func releases it unless
// the TTL has already handed it to someone else.
func (s *PaymentService) lockOrder(ctx context.Context, orderID string) (func(), error) {
	key := config.CacheKey.PaymentLockKey(orderID)
	token := uuid.NewString()

	ok, err := s.rdb.SetNX(ctx, key, token, paymentLockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire payment lock: %w", err)
	}
	if !ok {
		return nil, ErrPaymentBusy
	}

	return func() {
		ctx := context.WithoutCancel(ctx)
		if err := releaseLock.Run(ctx, s.rdb, []string{key}, token).Err(); err != nil {
			s.log.Warn().Err(err).Str("order_id", orderID).Msg("Release payment lock")
		}
	}, nil
}

// amountMatches compares the gateway's decimal gross amount ("150000.00")
// with the stored minor-unit amount.
func amountMatches(gross string, amount int64) bool {
	f, err := strconv.ParseFloat(gross, 64)
	if err != nil {
		return false
	}
	return int64(math.Round(f)) == amount
}
