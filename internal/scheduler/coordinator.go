// Package scheduler implements slot generation, conflict detection and the
// booking coordinator on top of the slot and reservation stores.
// The package does not log; callers log the outcome of each operation.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage"
)

// BookingDetails дополнительные данные записи от клиента
type BookingDetails struct {
	MedicalCondition *string
	Notes            *string
}

// Coordinator координатор бронирования слотов
// Единственный механизм защиты от перебронирования - атомарный IncrementBooking хранилища.
// Записи одного клиента сериализует хранилище (LockClient), собственных блокировок координатор не держит
type Coordinator struct {
	slots        SlotStore
	reservations ReservationStore
	txManager    TransactionManager
	hours        domain.ClinicHours
	timeProvider TimeProvider
}

// NewCoordinator создает координатор. hours должны быть провалидированы заранее
func NewCoordinator(
	slots SlotStore,
	reservations ReservationStore,
	txManager TransactionManager,
	hours domain.ClinicHours,
) *Coordinator {
	return &Coordinator{
		slots:        slots,
		reservations: reservations,
		txManager:    txManager,
		hours:        hours,
		timeProvider: &RealTimeProvider{},
	}
}

// ClinicHours возвращает конфигурацию рабочего дня
func (c *Coordinator) ClinicHours() domain.ClinicHours {
	return c.hours
}

// GenerateTimeSlots возвращает шаблон слотов на дату по конфигурации клиники
func (c *Coordinator) GenerateTimeSlots(date time.Time) []domain.SlotWindow {
	return GenerateTimeSlots(date, c.hours)
}

// ListSlots возвращает слоты врача на дату, упорядоченные по времени начала
// При первом обращении недостающие слоты шаблона создаются в хранилище (идемпотентно по provider+date+start)
func (c *Coordinator) ListSlots(ctx context.Context, providerID int64, date time.Time) ([]*domain.TimeSlot, error) {
	if providerID <= 0 {
		return nil, fmt.Errorf("%w: provider id must be positive", ErrInvalidInput)
	}

	day := domain.DateOnly(date)

	// 1. Читаем уже сохранённые слоты
	existing, err := c.slots.GetSlots(ctx, providerID, day)
	if err != nil {
		return nil, unavailable("ListSlots - get slots", err)
	}

	// 2. Находим окна шаблона, которые не пересекаются с сохранёнными слотами
	// (после смены длительности слота старая сетка дня остаётся как есть)
	missing := make([]*domain.TimeSlot, 0)
	for _, window := range GenerateTimeSlots(day, c.hours) {
		if overlapsAny(window, existing) {
			continue
		}
		missing = append(missing, domain.NewTimeSlot(providerID, window, c.hours.DefaultMaxCapacity))
	}

	if len(missing) == 0 {
		sortSlots(existing)
		return existing, nil
	}

	// 3. Материализуем недостающие слоты и перечитываем
	// (параллельный запрос мог вставить те же слоты - их строки побеждают)
	if err := c.slots.UpsertSlots(ctx, missing); err != nil {
		return nil, unavailable("ListSlots - upsert slots", err)
	}

	slots, err := c.slots.GetSlots(ctx, providerID, day)
	if err != nil {
		return nil, unavailable("ListSlots - reload slots", err)
	}

	sortSlots(slots)
	return slots, nil
}

// GetSlot возвращает слот по ID
func (c *Coordinator) GetSlot(ctx context.Context, slotID uuid.UUID) (*domain.TimeSlot, error) {
	if slotID == uuid.Nil {
		return nil, fmt.Errorf("%w: slot id is required", ErrInvalidInput)
	}
	return c.getSlot(ctx, slotID)
}

// BookSlot записывает клиента на слот
//
// Порядок проверок:
//  1. слот существует (ErrSlotNotFound)
//  2. слот доступен (ErrSlotFull) - предварительная проверка без гарантий
//  3. в транзакции под блокировкой клиента:
//     нет дубля и пересечений с другими записями клиента (ErrDuplicateBooking, ErrOverlapConflict),
//     атомарный захват места (ErrSlotFull) - единственная гарантия против перебронирования,
//     создание записи; при ошибке место возвращается компенсирующим DecrementBooking
func (c *Coordinator) BookSlot(ctx context.Context, clientID int64, slotID uuid.UUID, details BookingDetails) (*domain.Reservation, error) {
	if clientID <= 0 {
		return nil, fmt.Errorf("%w: client id must be positive", ErrInvalidInput)
	}
	if slotID == uuid.Nil {
		return nil, fmt.Errorf("%w: slot id is required", ErrInvalidInput)
	}

	// 1. Получаем слот
	slot, err := c.getSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}

	// 2. Быстрая проверка доступности
	if !slot.CanBeBooked() {
		return nil, ErrSlotFull
	}

	// 3. Проверка конфликтов, захват места и вставка - одна единица работы
	var created *domain.Reservation
	err = c.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		created, err = c.bookLocked(txCtx, clientID, slot, details)
		return err
	})
	if err != nil {
		if isBookingError(err) {
			return nil, err
		}
		return nil, unavailable("BookSlot - transaction", err)
	}

	return created, nil
}

// bookLocked выполняется внутри транзакции BookSlot
func (c *Coordinator) bookLocked(ctx context.Context, clientID int64, slot *domain.TimeSlot, details BookingDetails) (*domain.Reservation, error) {
	// Пока блокировка держится, параллельная запись того же клиента ждёт
	if err := c.reservations.LockClient(ctx, clientID); err != nil {
		return nil, unavailable("BookSlot - lock client", err)
	}

	candidate := CandidateFromSlot(slot)
	conflict, err := c.findConflict(ctx, clientID, candidate)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, conflictError(candidate, conflict)
	}

	// Атомарно занимаем место
	if _, err := c.slots.IncrementBooking(ctx, slot.ID); err != nil {
		switch {
		case errors.Is(err, storage.ErrSlotFull):
			return nil, ErrSlotFull
		case errors.Is(err, storage.ErrSlotNotFound):
			return nil, ErrSlotNotFound
		default:
			return nil, unavailable("BookSlot - increment booking", err)
		}
	}

	now := c.timeProvider.Now()
	reservation := &domain.Reservation{
		ID:               uuid.New(),
		ClientID:         clientID,
		SlotID:           slot.ID,
		Status:           domain.StatusScheduled,
		ProviderID:       slot.ProviderID,
		Date:             slot.Date,
		StartTime:        slot.StartTime,
		EndTime:          slot.EndTime,
		MedicalCondition: details.MedicalCondition,
		Notes:            details.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	created, err := c.reservations.Create(ctx, reservation)
	if err != nil {
		// В транзакционном хранилище откат отменит и увеличение, и компенсацию
		compensateErr := c.releasePlace(ctx, slot.ID)
		if compensateErr == nil && errors.Is(err, storage.ErrDuplicateReservation) {
			return nil, ErrDuplicateBooking
		}
		return nil, unavailable("BookSlot - create reservation", errors.Join(err, compensateErr))
	}

	return created, nil
}

// CancelReservation отменяет запись. Отменить может клиент записи или её врач
// Повторная отмена уже отменённой записи успешна и не освобождает место второй раз
// Завершённую (completed, no_show) запись отменить нельзя - ErrInvalidTransition
func (c *Coordinator) CancelReservation(ctx context.Context, reservationID uuid.UUID, actorID int64, reason *string) (*domain.Reservation, error) {
	if reservationID == uuid.Nil {
		return nil, fmt.Errorf("%w: reservation id is required", ErrInvalidInput)
	}
	if actorID <= 0 {
		return nil, fmt.Errorf("%w: actor id must be positive", ErrInvalidInput)
	}

	reservation, err := c.getReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if !reservation.IsParticipant(actorID) {
		return nil, ErrUnauthorized
	}

	return c.transition(ctx, reservation, domain.StatusCancelled, nil, reason)
}

// UpdateStatus меняет статус записи по таблице переходов. Доступно только врачу записи
// Переход в cancelled освобождает место так же, как CancelReservation
func (c *Coordinator) UpdateStatus(
	ctx context.Context,
	reservationID uuid.UUID,
	actorID int64,
	status domain.ReservationStatus,
	notes *string,
) (*domain.Reservation, error) {
	if reservationID == uuid.Nil {
		return nil, fmt.Errorf("%w: reservation id is required", ErrInvalidInput)
	}
	if _, err := domain.ParseReservationStatus(string(status)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	reservation, err := c.getReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if reservation.ProviderID != actorID {
		return nil, ErrUnauthorized
	}

	return c.transition(ctx, reservation, status, notes, nil)
}

// CheckConflict сообщает, помешает ли существующая запись клиента записаться на кандидата
func (c *Coordinator) CheckConflict(ctx context.Context, clientID int64, candidate Candidate) (bool, error) {
	if clientID <= 0 {
		return false, fmt.Errorf("%w: client id must be positive", ErrInvalidInput)
	}

	conflict, err := c.findConflict(ctx, clientID, candidate)
	if err != nil {
		return false, err
	}
	return conflict != nil, nil
}

// SetSlotAvailability закрывает или открывает слот вручную. Доступно только врачу слота
// Существующие записи при закрытии не отменяются
func (c *Coordinator) SetSlotAvailability(ctx context.Context, actorID int64, slotID uuid.UUID, closed bool) (*domain.TimeSlot, error) {
	slot, err := c.GetSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}

	if slot.ProviderID != actorID {
		return nil, ErrUnauthorized
	}

	updated, err := c.slots.SetClosed(ctx, slotID, closed)
	if err != nil {
		if errors.Is(err, storage.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, unavailable("SetSlotAvailability - set closed", err)
	}

	return updated, nil
}

// transition переводит запись в статус to по таблице переходов
// Статус меняется через compare-and-set, поэтому из двух параллельных отмен место освобождает только одна
func (c *Coordinator) transition(
	ctx context.Context,
	reservation *domain.Reservation,
	to domain.ReservationStatus,
	notes *string,
	reason *string,
) (*domain.Reservation, error) {
	if to == domain.StatusCancelled && reservation.IsCancelled() {
		return reservation, nil
	}

	if !reservation.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, reservation.Status, to)
	}

	update := domain.StatusUpdate{
		ReservationID:      reservation.ID,
		From:               reservation.Status,
		To:                 to,
		Notes:              notes,
		CancellationReason: reason,
		At:                 c.timeProvider.Now(),
	}
	releases := reservation.HoldsCapacity() && to == domain.StatusCancelled

	var result *domain.Reservation
	err := c.txManager.Do(ctx, func(txCtx context.Context) error {
		updated, err := c.reservations.UpdateStatus(txCtx, update)
		if err != nil {
			return err
		}

		if releases {
			if _, err := c.slots.DecrementBooking(txCtx, updated.SlotID); err != nil {
				return err
			}
		}

		result = updated
		return nil
	})

	if err == nil {
		return result, nil
	}

	switch {
	case errors.Is(err, storage.ErrStatusConflict):
		// статус успели изменить параллельно - смотрим, чем всё закончилось
		current, getErr := c.getReservation(ctx, reservation.ID)
		if getErr != nil {
			return nil, getErr
		}
		if to == domain.StatusCancelled && current.IsCancelled() {
			return current, nil
		}
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, to)
	case errors.Is(err, storage.ErrReservationNotFound):
		return nil, ErrReservationNotFound
	default:
		return nil, unavailable("transition", err)
	}
}

func (c *Coordinator) findConflict(ctx context.Context, clientID int64, candidate Candidate) (*domain.Reservation, error) {
	existing, err := c.reservations.GetActiveByClientAndDate(ctx, clientID, candidate.Window.Date)
	if err != nil {
		return nil, unavailable("get client reservations", err)
	}
	return FindConflict(clientID, candidate, existing), nil
}

func (c *Coordinator) getSlot(ctx context.Context, slotID uuid.UUID) (*domain.TimeSlot, error) {
	slot, err := c.slots.GetSlotByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, storage.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, unavailable("get slot", err)
	}
	return slot, nil
}

func (c *Coordinator) getReservation(ctx context.Context, reservationID uuid.UUID) (*domain.Reservation, error) {
	reservation, err := c.reservations.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, storage.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, unavailable("get reservation", err)
	}
	return reservation, nil
}

// releasePlace компенсирует IncrementBooking. Выполняется даже если ctx уже отменён
func (c *Coordinator) releasePlace(ctx context.Context, slotID uuid.UUID) error {
	if _, err := c.slots.DecrementBooking(context.WithoutCancel(ctx), slotID); err != nil {
		return fmt.Errorf("compensate increment of slot %s: %w", slotID, err)
	}
	return nil
}

// isBookingError сообщает, что ошибка уже приведена к ошибкам пакета
func isBookingError(err error) bool {
	for _, target := range []error{
		ErrSlotNotFound, ErrSlotFull, ErrDuplicateBooking, ErrOverlapConflict, ErrAdapterUnavailable,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrAdapterUnavailable, op, err)
}

func overlapsAny(window domain.SlotWindow, slots []*domain.TimeSlot) bool {
	for _, slot := range slots {
		if slot.Window().Overlaps(window) {
			return true
		}
	}
	return false
}

func sortSlots(slots []*domain.TimeSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})
}
