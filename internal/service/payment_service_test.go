package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/edunexus/schoolhub/internal/config"
	"github.com/edunexus/schoolhub/internal/payment"
	"github.com/edunexus/schoolhub/internal/refresh"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPayments(t *testing.T) (*PaymentService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	cfg := &config.Config{MidtransServerKey: "server-key"}
	bus := refresh.NewBus(4, zerolog.Nop())
	return NewPaymentService(nil, nil, rdb, cfg, bus, zerolog.Nop()), mr
}

func TestHandleNotification_RejectsBadSignature(t *testing.T) {
	svc, mr := newTestPayments(t)

	err := svc.HandleNotification(context.Background(), payment.Notification{
		OrderID:           "order-1",
		StatusCode:        "200",
		GrossAmount:       "1000.00",
		SignatureKey:      payment.Signature("order-1", "200", "1000.00", "wrong-key"),
		TransactionStatus: "settlement",
	})
	assert.ErrorIs(t, err, payment.ErrInvalidSignature)
	assert.False(t, mr.Exists(config.WorkerKey.PaymentConfirmQueue))
}

func TestApply_LockedOrderIsBusy(t *testing.T) {
	svc, mr := newTestPayments(t)
	require.NoError(t, mr.Set(config.CacheKey.PaymentLockKey("order-1"), "1"))

	_, err := svc.Apply(context.Background(), payment.Notification{OrderID: "order-1", TransactionStatus: "settlement"})
	assert.ErrorIs(t, err, ErrPaymentBusy)
	// The other holder's lock is left alone.
	assert.True(t, mr.Exists(config.CacheKey.PaymentLockKey("order-1")))
}

func TestLockOrder_ReleasesOwnLock(t *testing.T) {
	svc, mr := newTestPayments(t)
	key := config.CacheKey.PaymentLockKey("order-1")

	unlock, err := svc.lockOrder(context.Background(), "order-1")
	require.NoError(t, err)
	assert.True(t, mr.Exists(key))

	_, err = svc.lockOrder(context.Background(), "order-1")
	assert.ErrorIs(t, err, ErrPaymentBusy)

	unlock()
	assert.False(t, mr.Exists(key))
}

func TestLockOrder_ExpiredLockTakenOverIsKept(t *testing.T) {
	svc, mr := newTestPayments(t)
	key := config.CacheKey.PaymentLockKey("order-1")

	unlock, err := svc.lockOrder(context.Background(), "order-1")
	require.NoError(t, err)

	// The TTL runs out and a second confirmation takes the lock.
	mr.FastForward(paymentLockTTL + time.Second)
	require.False(t, mr.Exists(key))
	next, err := svc.lockOrder(context.Background(), "order-1")
	require.NoError(t, err)
	held, err := mr.Get(key)
	require.NoError(t, err)

	unlock()
	got, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, held, got)

	next()
	assert.False(t, mr.Exists(key))
}
