package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/edunexus/schoolhub/internal/config"
	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/payment"
	"github.com/edunexus/schoolhub/internal/service"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeApplier struct {
	mu   sync.Mutex
	seen []string
	err  error
}

func (f *fakeApplier) Apply(_ context.Context, n payment.Notification) (*model.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, n.OrderID)
	if f.err != nil {
		return nil, f.err
	}
	return &model.Payment{OrderID: n.OrderID, Status: model.PaymentPaid}, nil
}

func (f *fakeApplier) orders() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.seen...)
}

func newTestWorker(t *testing.T, applier PaymentApplier) (*PaymentWorker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	w := NewPaymentWorker(rdb, applier, zerolog.Nop())
	w.retryDelay = time.Millisecond
	return w, mr
}

func push(t *testing.T, mr *miniredis.Miniredis, n payment.Notification) {
	t.Helper()
	b, err := json.Marshal(n)
	require.NoError(t, err)
	_, err = mr.Lpush(config.WorkerKey.PaymentConfirmQueue, string(b))
	require.NoError(t, err)
}

func TestPaymentWorker_AppliesQueuedNotifications(t *testing.T) {
	applier := &fakeApplier{}
	w, mr := newTestWorker(t, applier)
	push(t, mr, payment.Notification{OrderID: "a", TransactionStatus: "settlement"})
	push(t, mr, payment.Notification{OrderID: "b", TransactionStatus: "settlement"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return len(applier.orders()) == 2 }, 2*time.Second, 10*time.Millisecond)
	cancel()
	<-done

	// LPUSH + BLPOP serves the newest first.
	assert.Equal(t, []string{"b", "a"}, applier.orders())
}

func TestPaymentWorker_RequeuesTransientFailure(t *testing.T) {
	applier := &fakeApplier{err: service.ErrPaymentBusy}
	w, mr := newTestWorker(t, applier)

	b, err := json.Marshal(queuedNotification{Notification: payment.Notification{OrderID: "a"}})
	require.NoError(t, err)
	w.handle(context.Background(), string(b))

	items, err := mr.List(config.WorkerKey.PaymentConfirmQueue)
	require.NoError(t, err)
	require.Len(t, items, 1)

	var again queuedNotification
	require.NoError(t, json.Unmarshal([]byte(items[0]), &again))
	assert.Equal(t, "a", again.OrderID)
	assert.Equal(t, 1, again.Attempts)
}

func TestPaymentWorker_DropsPermanentFailure(t *testing.T) {
	for _, err := range []error{pgx.ErrNoRows, service.ErrInvalidState} {
		applier := &fakeApplier{err: err}
		w, mr := newTestWorker(t, applier)

		b, mErr := json.Marshal(queuedNotification{Notification: payment.Notification{OrderID: "a"}})
		require.NoError(t, mErr)
		w.handle(context.Background(), string(b))

		assert.False(t, mr.Exists(config.WorkerKey.PaymentConfirmQueue))
	}
}

func TestPaymentWorker_GivesUpAfterMaxAttempts(t *testing.T) {
	applier := &fakeApplier{err: errors.New("db down")}
	w, mr := newTestWorker(t, applier)

	b, err := json.Marshal(queuedNotification{Notification: payment.Notification{OrderID: "a"}, Attempts: PaymentMaxAttempts - 1})
	require.NoError(t, err)
	w.handle(context.Background(), string(b))

	assert.False(t, mr.Exists(config.WorkerKey.PaymentConfirmQueue))
}
