package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/scheduler"
)

const operationBook = "book"

// UseCase use case записи клиента на слот
type UseCase struct {
	coordinator Coordinator
	metrics     MetricsRecorder
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	coordinator Coordinator,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		coordinator: coordinator,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет use case записи на приём
// Защита от перебронирования и конфликтов - в координаторе
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, slot=%s", req.ClientID, req.SlotID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.record("invalid_input")
		return nil, err
	}

	// 2. Записываем через координатор
	reservation, err := uc.coordinator.BookSlot(ctx, req.ClientID, req.SlotID, scheduler.BookingDetails{
		MedicalCondition: req.MedicalCondition,
		Notes:            req.Notes,
	})
	if err != nil {
		return nil, uc.handleError(req, err)
	}

	uc.record("success")
	uc.logger.Info("CreateBooking: created reservation id=%s for client=%d, provider=%d, %s %s",
		reservation.ID, reservation.ClientID, reservation.ProviderID,
		reservation.Date.Format(domain.DateFormat), reservation.Window().Display())

	return &Response{
		ID:               reservation.ID,
		ClientID:         reservation.ClientID,
		ProviderID:       reservation.ProviderID,
		SlotID:           reservation.SlotID,
		Date:             reservation.Date,
		StartTime:        reservation.StartTime,
		EndTime:          reservation.EndTime,
		Display:          reservation.Window().Display(),
		Status:           string(reservation.Status),
		MedicalCondition: reservation.MedicalCondition,
		Notes:            reservation.Notes,
		CreatedAt:        reservation.CreatedAt,
		UpdatedAt:        reservation.UpdatedAt,
	}, nil
}

// handleError логирует ошибку координатора и приводит её к ошибкам usecase
func (uc *UseCase) handleError(req *Request, err error) error {
	switch {
	case errors.Is(err, scheduler.ErrSlotNotFound):
		uc.logger.Warn("CreateBooking: slot id=%s not found", req.SlotID)
		uc.record("slot_not_found")
		return ErrSlotNotFound
	case errors.Is(err, scheduler.ErrSlotFull):
		uc.logger.Warn("CreateBooking: slot id=%s is full or closed", req.SlotID)
		uc.record("slot_full")
		return ErrSlotFull
	case errors.Is(err, scheduler.ErrDuplicateBooking):
		uc.logger.Warn("CreateBooking: client=%d already booked slot id=%s", req.ClientID, req.SlotID)
		uc.record("duplicate")
		return ErrDuplicateBooking
	case errors.Is(err, scheduler.ErrOverlapConflict):
		uc.logger.Warn("CreateBooking: client=%d has an overlapping reservation for slot id=%s", req.ClientID, req.SlotID)
		uc.record("overlap")
		return ErrOverlapConflict
	case errors.Is(err, scheduler.ErrInvalidInput):
		uc.logger.Warn("CreateBooking: invalid input: %v", err)
		uc.record("invalid_input")
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case scheduler.IsRetryable(err):
		uc.logger.Error("CreateBooking: storage unavailable for client=%d, slot id=%s: %v", req.ClientID, req.SlotID, err)
		uc.record("unavailable")
		return err
	default:
		uc.logger.Error("CreateBooking: failed to book slot id=%s: %v", req.SlotID, err)
		uc.record("error")
		return fmt.Errorf("%w: failed to book slot: %v", ErrInternal, err)
	}
}

func (uc *UseCase) record(result string) {
	if uc.metrics != nil {
		uc.metrics.RecordReservation(operationBook, result)
	}
}
