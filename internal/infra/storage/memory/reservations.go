package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage"
)

// ReservationStore хранилище записей в памяти
type ReservationStore struct {
	mu           sync.RWMutex
	reservations map[uuid.UUID]*domain.Reservation

	locksMu     sync.Mutex
	clientLocks map[int64]*clientLock
}

// clientLock мьютекс клиента; refs - сколько Do сейчас держат или ждут его
type clientLock struct {
	mu   sync.Mutex
	refs int
}

func NewReservationStore() *ReservationStore {
	return &ReservationStore{
		reservations: make(map[uuid.UUID]*domain.Reservation),
		clientLocks:  make(map[int64]*clientLock),
	}
}

// LockClient блокирует записи клиента до выхода из TxManager.Do
func (s *ReservationStore) LockClient(ctx context.Context, clientID int64) error {
	scope, ok := scopeFromContext(ctx)
	if !ok {
		return ErrNoTransaction
	}

	s.locksMu.Lock()
	lock, exists := s.clientLocks[clientID]
	if !exists {
		lock = &clientLock{}
		s.clientLocks[clientID] = lock
	}
	lock.refs++
	s.locksMu.Unlock()

	lock.mu.Lock()
	scope.onRelease(func() {
		lock.mu.Unlock()

		s.locksMu.Lock()
		defer s.locksMu.Unlock()
		lock.refs--
		if lock.refs == 0 {
			delete(s.clientLocks, clientID)
		}
	})

	return nil
}

// Create сохраняет запись
// У клиента может быть только одна неотменённая запись на слот
func (s *ReservationStore) Create(_ context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.reservations {
		if existing.ClientID == reservation.ClientID &&
			existing.SlotID == reservation.SlotID &&
			existing.IsActive() {
			return nil, storage.ErrDuplicateReservation
		}
	}

	stored := cloneReservation(reservation)
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = stored.CreatedAt
	}
	stored.Date = domain.DateOnly(stored.Date)

	s.reservations[stored.ID] = stored
	return cloneReservation(stored), nil
}

func (s *ReservationStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reservation, ok := s.reservations[id]
	if !ok {
		return nil, storage.ErrReservationNotFound
	}
	return cloneReservation(reservation), nil
}

// GetActiveByClientAndDate возвращает неотменённые записи клиента на дату
func (s *ReservationStore) GetActiveByClientAndDate(_ context.Context, clientID int64, date time.Time) ([]*domain.Reservation, error) {
	return s.filter(func(r *domain.Reservation) bool {
		return r.ClientID == clientID && r.IsActive() && domain.SameDate(r.Date, date)
	}, false), nil
}

// GetByClientID возвращает записи клиента, сначала новые. status - опциональный фильтр
func (s *ReservationStore) GetByClientID(_ context.Context, clientID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	return s.filter(func(r *domain.Reservation) bool {
		if r.ClientID != clientID {
			return false
		}
		return status == nil || r.Status == *status
	}, true), nil
}

// GetByProvider возвращает записи врача с фильтрацией
// Для конкретной даты сортировка по времени начала, иначе сначала новые
func (s *ReservationStore) GetByProvider(_ context.Context, f domain.ProviderReservationsFilter) ([]*domain.Reservation, error) {
	return s.filter(func(r *domain.Reservation) bool {
		if r.ProviderID != f.ProviderID {
			return false
		}
		if f.Date != nil && !domain.SameDate(r.Date, *f.Date) {
			return false
		}
		if f.Status != nil {
			return r.Status == *f.Status
		}
		return f.IncludeInactive || r.IsActive()
	}, f.Date == nil), nil
}

// UpdateStatus меняет статус, только если текущий статус равен update.From
func (s *ReservationStore) UpdateStatus(_ context.Context, update domain.StatusUpdate) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reservation, ok := s.reservations[update.ReservationID]
	if !ok {
		return nil, storage.ErrReservationNotFound
	}
	if reservation.Status != update.From {
		return nil, storage.ErrStatusConflict
	}

	at := update.At
	if at.IsZero() {
		at = time.Now()
	}

	reservation.Status = update.To
	reservation.UpdatedAt = at
	if update.Notes != nil {
		reservation.Notes = update.Notes
	}
	if update.To == domain.StatusCancelled {
		reservation.CancellationReason = update.CancellationReason
		reservation.CancelledAt = &at
	}

	return cloneReservation(reservation), nil
}

func (s *ReservationStore) filter(match func(r *domain.Reservation) bool, newestFirst bool) []*domain.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Reservation, 0)
	for _, r := range s.reservations {
		if match(r) {
			result = append(result, cloneReservation(r))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.Date.Equal(b.Date) {
			if newestFirst {
				return a.Date.After(b.Date)
			}
			return a.Date.Before(b.Date)
		}
		if a.StartTime != b.StartTime {
			if newestFirst {
				return a.StartTime.IsAfter(b.StartTime)
			}
			return a.StartTime.IsBefore(b.StartTime)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	return result
}

func cloneReservation(r *domain.Reservation) *domain.Reservation {
	clone := *r
	return &clone
}
