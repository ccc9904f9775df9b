package reservations

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage"
	"github.com/m04kA/SMC-ClinicScheduler/internal/scheduler"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/reservations/models"
)

const (
	operationCancel       = "cancel"
	operationUpdateStatus = "update_status"
)

// Service сервис для работы с записями на приём
type Service struct {
	coordinator     Coordinator
	reservationRepo ReservationRepository
	metrics         MetricsRecorder
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	coordinator Coordinator,
	reservationRepo ReservationRepository,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		coordinator:     coordinator,
		reservationRepo: reservationRepo,
		metrics:         metrics,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Запись видят только её клиент и её врач
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%s for user=%d", id, userID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%s not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrServiceUnavailable, err)
	}

	if !reservation.IsParticipant(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%s", id)
	return models.FromDomainReservation(reservation), nil
}

// GetClientReservations получает историю записей клиента
// Клиент видит только свои записи
func (s *Service) GetClientReservations(ctx context.Context, req *models.GetClientReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetClientReservations: fetching reservations for client=%d by user=%d", req.ClientID, req.UserID)

	if req.ClientID != req.UserID {
		s.logger.Warn("GetClientReservations: user=%d is not client=%d", req.UserID, req.ClientID)
		return nil, ErrAccessDenied
	}

	var status *domain.ReservationStatus
	if req.Status != nil {
		parsed, err := domain.ParseReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientReservations: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		status = &parsed
	}

	reservations, err := s.reservationRepo.GetByClientID(ctx, req.ClientID, status)
	if err != nil {
		s.logger.Error("GetClientReservations: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientReservations - repository error: %v", ErrServiceUnavailable, err)
	}

	s.logger.Info("GetClientReservations: successfully fetched %d reservations for client=%d", len(reservations), req.ClientID)
	return models.FromDomainReservationList(reservations), nil
}

// GetProviderReservations получает записи к врачу с фильтрацией по дате и статусу
// Доступно только самому врачу
func (s *Service) GetProviderReservations(ctx context.Context, req *models.GetProviderReservationsRequest) (*models.ReservationListResponse, error) {
	logMsg := fmt.Sprintf("GetProviderReservations: fetching reservations for provider=%d, user=%d", req.ProviderID, req.UserID)
	if req.Date != nil {
		logMsg += fmt.Sprintf(", date=%s", req.Date.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if req.ProviderID != req.UserID {
		s.logger.Warn("GetProviderReservations: user=%d is not provider=%d", req.UserID, req.ProviderID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetProviderReservations: invalid filter for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	reservations, err := s.reservationRepo.GetByProvider(ctx, filter)
	if err != nil {
		s.logger.Error("GetProviderReservations: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetProviderReservations - repository error: %v", ErrServiceUnavailable, err)
	}

	s.logger.Info("GetProviderReservations: successfully fetched %d reservations for provider=%d", len(reservations), req.ProviderID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет запись
// Отменить может клиент записи или её врач, место в слоте освобождается
func (s *Service) Cancel(ctx context.Context, reservationID uuid.UUID, req *models.CancelReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%s by user=%d", reservationID, req.UserID)

	if req.CancellationReason != nil && utf8.RuneCountInString(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long for reservation id=%s", reservationID)
		return nil, fmt.Errorf("%w: cancellationReason must be at most %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	reservation, err := s.coordinator.CancelReservation(ctx, reservationID, req.UserID, req.CancellationReason)
	if err != nil {
		return nil, s.handleError("Cancel", operationCancel, reservationID, req.UserID, err)
	}

	s.record(operationCancel, "success")
	s.logger.Info("Cancel: reservation id=%s is cancelled", reservationID)
	return models.FromDomainReservation(reservation), nil
}

// UpdateStatus меняет статус записи (completed, no_show, cancelled)
// Доступно только врачу записи
func (s *Service) UpdateStatus(ctx context.Context, reservationID uuid.UUID, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: updating reservation id=%s to status=%s by user=%d", reservationID, req.Status, req.UserID)

	status, err := domain.ParseReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%s", req.Status, reservationID)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		s.logger.Warn("UpdateStatus: notes too long for reservation id=%s", reservationID)
		return nil, fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	reservation, err := s.coordinator.UpdateStatus(ctx, reservationID, req.UserID, status, req.Notes)
	if err != nil {
		return nil, s.handleError("UpdateStatus", operationUpdateStatus, reservationID, req.UserID, err)
	}

	s.record(operationUpdateStatus, "success")
	s.logger.Info("UpdateStatus: reservation id=%s moved to status=%s", reservationID, reservation.Status)
	return models.FromDomainReservation(reservation), nil
}

// CheckConflict проверяет, помешают ли записи пользователя записаться на слот
func (s *Service) CheckConflict(ctx context.Context, req *models.CheckConflictRequest) (*models.ConflictResponse, error) {
	s.logger.Info("CheckConflict: user=%d, slot=%s", req.UserID, req.SlotID)

	slot, err := s.coordinator.GetSlot(ctx, req.SlotID)
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrSlotNotFound):
			s.logger.Warn("CheckConflict: slot id=%s not found", req.SlotID)
			return nil, ErrSlotNotFound
		case errors.Is(err, scheduler.ErrInvalidInput):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			s.logger.Error("CheckConflict: failed to get slot id=%s: %v", req.SlotID, err)
			return nil, err
		}
	}

	conflict, err := s.coordinator.CheckConflict(ctx, req.UserID, scheduler.CandidateFromSlot(slot))
	if err != nil {
		if errors.Is(err, scheduler.ErrInvalidInput) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		s.logger.Error("CheckConflict: failed for user=%d, slot id=%s: %v", req.UserID, req.SlotID, err)
		return nil, err
	}

	return &models.ConflictResponse{SlotID: slot.ID, HasConflict: conflict}, nil
}

// handleError логирует ошибку координатора и приводит её к ошибкам сервиса
func (s *Service) handleError(method, operation string, reservationID uuid.UUID, userID int64, err error) error {
	switch {
	case errors.Is(err, scheduler.ErrReservationNotFound):
		s.logger.Warn("%s: reservation id=%s not found", method, reservationID)
		s.record(operation, "not_found")
		return ErrReservationNotFound
	case errors.Is(err, scheduler.ErrUnauthorized):
		s.logger.Warn("%s: access denied for user=%d to reservation id=%s", method, userID, reservationID)
		s.record(operation, "unauthorized")
		return ErrAccessDenied
	case errors.Is(err, scheduler.ErrInvalidTransition):
		s.logger.Warn("%s: %v", method, err)
		s.record(operation, "invalid_transition")
		return err
	case errors.Is(err, scheduler.ErrInvalidInput):
		s.logger.Warn("%s: invalid input: %v", method, err)
		s.record(operation, "invalid_input")
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case scheduler.IsRetryable(err):
		s.logger.Error("%s: storage unavailable for reservation id=%s: %v", method, reservationID, err)
		s.record(operation, "unavailable")
		return err
	default:
		s.logger.Error("%s: unexpected error for reservation id=%s: %v", method, reservationID, err)
		s.record(operation, "error")
		return fmt.Errorf("%w: %s - %v", ErrInternal, method, err)
	}
}

func (s *Service) record(operation, result string) {
	if s.metrics != nil {
		s.metrics.RecordReservation(operation, result)
	}
}
