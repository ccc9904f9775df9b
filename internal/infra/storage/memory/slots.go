// Package memory provides in-process implementations of the slot and reservation
// stores. Every operation holds the store mutex, so counter updates are atomic.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/types"
)

type slotKey struct {
	providerID int64
	date       string
	startTime  types.TimeString
}

func keyOf(slot *domain.TimeSlot) slotKey {
	return slotKey{
		providerID: slot.ProviderID,
		date:       slot.Date.Format(domain.DateFormat),
		startTime:  slot.StartTime,
	}
}

// SlotStore хранилище слотов в памяти
type SlotStore struct {
	mu    sync.RWMutex
	slots map[uuid.UUID]*domain.TimeSlot
	byKey map[slotKey]uuid.UUID
	now   func() time.Time
}

func NewSlotStore() *SlotStore {
	return &SlotStore{
		slots: make(map[uuid.UUID]*domain.TimeSlot),
		byKey: make(map[slotKey]uuid.UUID),
		now:   time.Now,
	}
}

// GetSlots возвращает слоты врача на дату, упорядоченные по времени начала
func (s *SlotStore) GetSlots(_ context.Context, providerID int64, date time.Time) ([]*domain.TimeSlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.TimeSlot, 0)
	for _, slot := range s.slots {
		if slot.ProviderID == providerID && domain.SameDate(slot.Date, date) {
			result = append(result, cloneSlot(slot))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.IsBefore(result[j].StartTime)
	})

	return result, nil
}

func (s *SlotStore) GetSlotByID(_ context.Context, id uuid.UUID) (*domain.TimeSlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slot, ok := s.slots[id]
	if !ok {
		return nil, storage.ErrSlotNotFound
	}
	return cloneSlot(slot), nil
}

// UpsertSlots добавляет слоты, которых ещё нет по ключу (provider, date, start_time)
// Существующие слоты не изменяются
func (s *SlotStore) UpsertSlots(_ context.Context, slots []*domain.TimeSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, slot := range slots {
		if slot == nil {
			continue
		}
		if slot.MaxCapacity < domain.MinCapacity {
			return fmt.Errorf("memory: UpsertSlots - slot %s has capacity %d", slot.ID, slot.MaxCapacity)
		}

		key := keyOf(slot)
		if _, exists := s.byKey[key]; exists {
			continue
		}

		stored := cloneSlot(slot)
		if stored.ID == uuid.Nil {
			stored.ID = uuid.New()
		}
		stored.Date = domain.DateOnly(stored.Date)
		stored.RecomputeAvailability()
		stored.CreatedAt = now
		stored.UpdatedAt = now

		s.slots[stored.ID] = stored
		s.byKey[key] = stored.ID
	}

	return nil
}

// IncrementBooking занимает место, только если current_bookings < max_capacity и слот открыт
func (s *SlotStore) IncrementBooking(_ context.Context, id uuid.UUID) (*domain.TimeSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[id]
	if !ok {
		return nil, storage.ErrSlotNotFound
	}
	if slot.IsClosed || slot.CurrentBookings >= slot.MaxCapacity {
		return nil, storage.ErrSlotFull
	}

	slot.CurrentBookings++
	slot.RecomputeAvailability()
	slot.UpdatedAt = s.now()

	return cloneSlot(slot), nil
}

// DecrementBooking освобождает место, счётчик не опускается ниже нуля
func (s *SlotStore) DecrementBooking(_ context.Context, id uuid.UUID) (*domain.TimeSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[id]
	if !ok {
		return nil, storage.ErrSlotNotFound
	}

	if slot.CurrentBookings > 0 {
		slot.CurrentBookings--
	}
	slot.IsAvailable = !slot.IsClosed
	slot.UpdatedAt = s.now()

	return cloneSlot(slot), nil
}

func (s *SlotStore) SetClosed(_ context.Context, id uuid.UUID, closed bool) (*domain.TimeSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[id]
	if !ok {
		return nil, storage.ErrSlotNotFound
	}

	slot.IsClosed = closed
	slot.RecomputeAvailability()
	slot.UpdatedAt = s.now()

	return cloneSlot(slot), nil
}

func cloneSlot(slot *domain.TimeSlot) *domain.TimeSlot {
	clone := *slot
	return &clone
}
