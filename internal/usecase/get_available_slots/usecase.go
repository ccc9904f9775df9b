package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/integrations/providerdirectory"
	"github.com/m04kA/SMC-ClinicScheduler/internal/scheduler"
)

// UseCase use case получения слотов врача на дату
type UseCase struct {
	coordinator  Coordinator
	directory    ProviderDirectory
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// directory может быть nil - тогда врач не проверяется по справочнику
func NewUseCase(
	coordinator Coordinator,
	directory ProviderDirectory,
	logger Logger,
) *UseCase {
	return &UseCase{
		coordinator:  coordinator,
		directory:    directory,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, provider=%d, date=%s",
		req.UserID, req.ProviderID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не должна быть в прошлом
	if err := validateDate(req.Date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Проверяем врача по справочнику
	if err := uc.checkProvider(ctx, req.ProviderID); err != nil {
		return nil, err
	}

	// 4. Получаем слоты (недостающие создаются по шаблону клиники)
	slots, err := uc.coordinator.ListSlots(ctx, req.ProviderID, req.Date)
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrInvalidInput):
			uc.logger.Warn("GetAvailableSlots: invalid input: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		case errors.Is(err, scheduler.ErrAdapterUnavailable):
			uc.logger.Error("GetAvailableSlots: slot store unavailable for provider=%d: %v", req.ProviderID, err)
			return nil, err
		default:
			uc.logger.Error("GetAvailableSlots: failed to list slots for provider=%d: %v", req.ProviderID, err)
			return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
		}
	}

	result := make([]Slot, 0, len(slots))
	for _, slot := range slots {
		result = append(result, Slot{
			ID:              slot.ID,
			StartTime:       slot.StartTime,
			EndTime:         slot.EndTime,
			Display:         slot.Window().Display(),
			MaxCapacity:     slot.MaxCapacity,
			CurrentBookings: slot.CurrentBookings,
			AvailableSpots:  slot.RemainingCapacity(),
			IsAvailable:     slot.IsAvailable,
		})
	}

	uc.logger.Info("GetAvailableSlots: returned %d slots for provider=%d, date=%s",
		len(result), req.ProviderID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:       domain.DateOnly(req.Date),
		ProviderID: req.ProviderID,
		Slots:      result,
	}, nil
}

// checkProvider проверяет, что врач существует и принимает пациентов
// При недоступности справочника применяется graceful degradation: слоты отдаются без проверки
func (uc *UseCase) checkProvider(ctx context.Context, providerID int64) error {
	if uc.directory == nil {
		return nil
	}

	provider, err := uc.directory.GetProvider(ctx, providerID)
	if err != nil {
		if errors.Is(err, providerdirectory.ErrProviderNotFound) {
			uc.logger.Warn("GetAvailableSlots: provider id=%d not found", providerID)
			return ErrProviderNotFound
		}
		uc.logger.Error("GetAvailableSlots: provider directory unavailable, skipping check for provider=%d: %v", providerID, err)
		return nil
	}

	if !provider.IsActive {
		uc.logger.Warn("GetAvailableSlots: provider id=%d is inactive", providerID)
		return ErrProviderInactive
	}

	return nil
}
