package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/scheduler"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/slots/models"
)

// Service сервис для работы с конфигурацией рабочего дня и слотами врача
type Service struct {
	coordinator Coordinator
	logger      Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(coordinator Coordinator, logger Logger) *Service {
	return &Service{
		coordinator: coordinator,
		logger:      logger,
	}
}

// GetClinicHours возвращает конфигурацию рабочего дня и шаблон окон на дату
// Публичный метод - доступен всем. Без даты шаблон строится на сегодня
func (s *Service) GetClinicHours(date *time.Time) *models.ClinicHoursResponse {
	day := time.Now()
	if date != nil {
		day = *date
	}

	hours := s.coordinator.ClinicHours()
	windows := s.coordinator.GenerateTimeSlots(day)

	s.logger.Info("GetClinicHours: %d slots per day, %d-minute slots", len(windows), hours.SlotDurationMinutes)
	return models.FromClinicHours(hours, windows)
}

// SetAvailability закрывает или открывает слот
// Доступно только врачу слота, существующие записи не отменяются
func (s *Service) SetAvailability(ctx context.Context, req *models.SetAvailabilityRequest) (*models.SlotResponse, error) {
	s.logger.Info("SetAvailability: slot=%s, closed=%t by user=%d", req.SlotID, req.Closed, req.UserID)

	slot, err := s.coordinator.SetSlotAvailability(ctx, req.UserID, req.SlotID, req.Closed)
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrSlotNotFound):
			s.logger.Warn("SetAvailability: slot id=%s not found", req.SlotID)
			return nil, ErrSlotNotFound
		case errors.Is(err, scheduler.ErrUnauthorized):
			s.logger.Warn("SetAvailability: user=%d is not the provider of slot id=%s", req.UserID, req.SlotID)
			return nil, ErrAccessDenied
		case errors.Is(err, scheduler.ErrInvalidInput):
			s.logger.Warn("SetAvailability: invalid input: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		case scheduler.IsRetryable(err):
			s.logger.Error("SetAvailability: storage unavailable for slot id=%s: %v", req.SlotID, err)
			return nil, err
		default:
			s.logger.Error("SetAvailability: failed for slot id=%s: %v", req.SlotID, err)
			return nil, fmt.Errorf("%w: SetAvailability - %v", ErrInternal, err)
		}
	}

	s.logger.Info("SetAvailability: slot id=%s closed=%t, available=%t", slot.ID, slot.IsClosed, slot.IsAvailable)
	return models.FromDomainSlot(slot), nil
}
