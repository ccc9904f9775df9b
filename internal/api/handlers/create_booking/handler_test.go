package create_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ClinicScheduler/internal/scheduler"
	createBooking "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/logger"
)

func newHandler(t *testing.T) (*Handler, []*domain.TimeSlot) {
	t.Helper()
	hours := domain.DefaultClinicHours()
	hours.DefaultMaxCapacity = 1
	coordinator := scheduler.NewCoordinator(memory.NewSlotStore(), memory.NewReservationStore(), memory.TxManager{}, hours)

	slots, err := coordinator.ListSlots(context.Background(), 7, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	uc := createBooking.NewUseCase(coordinator, nil, logger.NewNop())
	return NewHandler(uc, logger.NewNop()), slots
}

func post(h *Handler, userID int64, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	if userID != 0 {
		r = r.WithContext(middleware.WithUserID(r.Context(), userID))
	}
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle(t *testing.T) {
	h, slots := newHandler(t)
	body := `{"slotId":"` + slots[0].ID.String() + `","medicalCondition":"headache"}`

	w := post(h, 42, body)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"display":"8:00 AM - 9:30 AM"`)
	assert.Contains(t, w.Body.String(), `"status":"scheduled"`)

	assert.Equal(t, http.StatusConflict, post(h, 42, body).Code)
	assert.Equal(t, http.StatusConflict, post(h, 43, body).Code)
}

func TestHandle_BadRequests(t *testing.T) {
	h, _ := newHandler(t)

	tests := []struct {
		name   string
		userID int64
		body   string
		status int
	}{
		{name: "no user", body: `{}`, status: http.StatusUnauthorized},
		{name: "broken json", userID: 1, body: `{`, status: http.StatusBadRequest},
		{name: "bad slot id", userID: 1, body: `{"slotId":"nope"}`, status: http.StatusBadRequest},
		{name: "unknown slot", userID: 1, body: `{"slotId":"6f1c1e9e-4bb4-4c8e-9d3c-0d7e5c1f0a11"}`, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, post(h, tt.userID, tt.body).Code)
		})
	}
}
