package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/edunexus/schoolhub/internal/config"
	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/payment"
	"github.com/edunexus/schoolhub/internal/repository"
	"github.com/edunexus/schoolhub/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	PaymentPollTimeout = 1 * time.Second
	PaymentMaxAttempts = 5
)

// PaymentApplier stores a verified gateway outcome.
type PaymentApplier interface {
	Apply(ctx context.Context, n payment.Notification) (*model.Payment, error)
}

// PaymentWorker consumes payment_confirm_queue and applies each
// notification to its payment and invoice.
type PaymentWorker struct {
	rdb        *redis.Client
	applier    PaymentApplier
	queue      string
	retryDelay time.Duration
	log        zerolog.Logger
}

// NewPaymentWorker creates a new PaymentWorker.
func NewPaymentWorker(rdb *redis.Client, applier PaymentApplier, log zerolog.Logger) *PaymentWorker {
	return &PaymentWorker{
		rdb:        rdb,
		applier:    applier,
		queue:      config.WorkerKey.PaymentConfirmQueue,
		retryDelay: 5 * time.Second,
		log:        log.With().Str("component", "payment_worker").Logger(),
	}
}

// queuedNotification is the queue payload. Attempts is absent on the first
// delivery.
type queuedNotification struct {
	payment.Notification
	Attempts int `json:"attempts,omitempty"`
}

// Start begins the worker loop. Call in a goroutine.
func (w *PaymentWorker) Start(ctx context.Context) {
	w.log.Info().Msg("PaymentWorker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("PaymentWorker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *PaymentWorker) processNext(ctx context.Context) {
	result, err := w.rdb.BLPop(ctx, PaymentPollTimeout, w.queue).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
			w.sleep(ctx)
		}
		return
	}
	if len(result) < 2 {
		return
	}
	w.handle(ctx, result[1])
}

// handle applies one payload. Transient failures are pushed back to the
// tail of the queue until PaymentMaxAttempts.
func (w *PaymentWorker) handle(ctx context.Context, raw string) {
	var item queuedNotification
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		w.log.Error().Err(err).Msg("Unmarshal error, dropping payload")
		return
	}

	_, err := w.applier.Apply(ctx, item.Notification)
	if err == nil {
		return
	}

	logger := w.log.With().Str("order_id", item.OrderID).Int("attempt", item.Attempts+1).Logger()
	if !retryable(err) {
		logger.Error().Err(err).Msg("Payment notification rejected")
		return
	}

	item.Attempts++
	if item.Attempts >= PaymentMaxAttempts {
		logger.Error().Err(err).Msg("Giving up on payment notification")
		return
	}

	payload, mErr := json.Marshal(item)
	if mErr != nil {
		logger.Error().Err(mErr).Msg("Marshal retry payload")
		return
	}
	logger.Warn().Err(err).Dur("retry_in", w.retryDelay).Msg("Apply failed, requeueing")
	w.rdb.RPush(context.WithoutCancel(ctx), w.queue, payload)
	w.sleep(ctx)
}

func (w *PaymentWorker) sleep(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(w.retryDelay):
	}
}

func retryable(err error) bool {
	switch {
	case repository.IsNotFound(err), errors.Is(err, service.ErrInvalidState):
		return false
	}
	return true
}
