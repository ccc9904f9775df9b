package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockClient_RequiresTransaction(t *testing.T) {
	store := NewReservationStore()
	assert.ErrorIs(t, store.LockClient(context.Background(), 10), ErrNoTransaction)
}

func TestLockClient_HeldUntilDoReturns(t *testing.T) {
	store := NewReservationStore()
	ctx := context.Background()

	locked := make(chan struct{})
	finish := make(chan struct{})
	firstDone := make(chan struct{})

	go func() {
		defer close(firstDone)
		_ = TxManager{}.Do(ctx, func(txCtx context.Context) error {
			assert.NoError(t, store.LockClient(txCtx, 10))
			close(locked)
			<-finish
			return nil
		})
	}()
	<-locked

	// другой клиент не ждёт
	require.NoError(t, TxManager{}.Do(ctx, func(txCtx context.Context) error {
		return store.LockClient(txCtx, 11)
	}))

	secondDone := make(chan struct{})
	go func() {
		defer close(secondDone)
		_ = TxManager{}.Do(ctx, func(txCtx context.Context) error {
			return store.LockClient(txCtx, 10)
		})
	}()

	select {
	case <-secondDone:
		t.Fatal("second lock of the same client acquired while the first Do is running")
	case <-time.After(50 * time.Millisecond):
	}

	close(finish)
	<-firstDone

	select {
	case <-secondDone:
	case <-time.After(time.Second):
		t.Fatal("lock was not released when Do returned")
	}

	store.locksMu.Lock()
	defer store.locksMu.Unlock()
	assert.Empty(t, store.clientLocks)
}

func TestTxManager_NestedDoSharesScope(t *testing.T) {
	store := NewReservationStore()
	ctx := context.Background()

	err := TxManager{}.Do(ctx, func(outer context.Context) error {
		require.NoError(t, TxManager{}.Do(outer, func(inner context.Context) error {
			return store.LockClient(inner, 10)
		}))

		// вложенный Do не отпускает блокировку внешнего
		store.locksMu.Lock()
		defer store.locksMu.Unlock()
		assert.Len(t, store.clientLocks, 1)
		return nil
	})
	require.NoError(t, err)

	store.locksMu.Lock()
	defer store.locksMu.Unlock()
	assert.Empty(t, store.clientLocks)
}
