package memory

import (
	"context"
	"errors"
	"sync"
)

// ErrNoTransaction возвращается, когда блокировку пытаются взять вне TxManager.Do
var ErrNoTransaction = errors.New("memory: lock requires TxManager.Do")

type scopeKey struct{}

// txScope единица работы: держит взятые блокировки до выхода из Do
type txScope struct {
	mu       sync.Mutex
	releases []func()
}

func (s *txScope) onRelease(release func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releases = append(s.releases, release)
}

func (s *txScope) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.releases) - 1; i >= 0; i-- {
		s.releases[i]()
	}
	s.releases = nil
}

// TxManager выполняет функцию без отката: каждая операция хранилища атомарна сама по себе.
// Блокировки, взятые внутри Do (ReservationStore.LockClient), отпускаются при выходе из Do
type TxManager struct{}

func (TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(scopeKey{}).(*txScope); ok {
		return fn(ctx)
	}

	scope := &txScope{}
	defer scope.release()

	return fn(context.WithValue(ctx, scopeKey{}, scope))
}

func scopeFromContext(ctx context.Context) (*txScope, bool) {
	scope, ok := ctx.Value(scopeKey{}).(*txScope)
	return scope, ok
}
