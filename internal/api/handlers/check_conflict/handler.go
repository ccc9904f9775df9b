package check_conflict

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/reservations"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/reservations/models"
)

const (
	msgInvalidSlotID      = "некорректный или отсутствующий slotId"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSlotNotFound       = "слот не найден"
	msgServiceUnavailable = "сервис временно недоступен, повторите запрос"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations/conflicts?slotId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /reservations/conflicts - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	slotID, err := uuid.Parse(r.URL.Query().Get("slotId"))
	if err != nil {
		h.logger.Warn("GET /reservations/conflicts - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	result, err := h.service.CheckConflict(r.Context(), &models.CheckConflictRequest{UserID: userID, SlotID: slotID})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrSlotNotFound):
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, reservations.ErrServiceUnavailable):
			handlers.RespondServiceUnavailable(w, msgServiceUnavailable)

		default:
			h.logger.Error("GET /reservations/conflicts - Failed to check conflict: slot_id=%s, user_id=%d, error=%v",
				slotID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
