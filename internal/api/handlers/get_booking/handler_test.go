package get_booking

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/reservations"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/reservations/models"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/logger"
)

type stubService struct {
	gotID   uuid.UUID
	gotUser int64
	err     error
}

func (s *stubService) GetByID(_ context.Context, id uuid.UUID, userID int64) (*models.ReservationResponse, error) {
	s.gotID, s.gotUser = id, userID
	if s.err != nil {
		return nil, s.err
	}
	return &models.ReservationResponse{ID: id, ClientID: userID, Status: "scheduled", Display: "8:00 AM - 9:30 AM"}, nil
}

func serve(svc ReservationService, id, userID string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/reservations/{reservationId}", NewHandler(svc, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodGet, "/reservations/"+id, nil)
	req.Header.Set(middleware.HeaderUserID, userID)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandle(t *testing.T) {
	svc := &stubService{}
	id := uuid.New()

	w := serve(svc, id.String(), "42")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, svc.gotID)
	assert.Equal(t, int64(42), svc.gotUser)
	assert.Contains(t, w.Body.String(), `"display":"8:00 AM - 9:30 AM"`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		err        error
		wantStatus int
	}{
		{name: "invalid id", id: "not-a-uuid", wantStatus: http.StatusBadRequest},
		{name: "not found", id: uuid.NewString(), err: reservations.ErrReservationNotFound, wantStatus: http.StatusNotFound},
		{name: "stranger", id: uuid.NewString(), err: reservations.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "storage down", id: uuid.NewString(), err: fmt.Errorf("%w: timeout", reservations.ErrServiceUnavailable), wantStatus: http.StatusServiceUnavailable},
		{name: "unexpected", id: uuid.NewString(), err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&stubService{err: tt.err}, tt.id, "42")
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusServiceUnavailable {
				assert.Equal(t, "1", w.Header().Get("Retry-After"))
			}
		})
	}
}
