package check_conflict

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/reservations"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/reservations/models"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/logger"
)

type stubService struct {
	got *models.CheckConflictRequest
	err error
}

func (s *stubService) CheckConflict(_ context.Context, req *models.CheckConflictRequest) (*models.ConflictResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.ConflictResponse{SlotID: req.SlotID, HasConflict: true}, nil
}

func serve(svc ReservationService, target, userID string) *httptest.ResponseRecorder {
	h := middleware.Auth(http.HandlerFunc(NewHandler(svc, logger.NewNop()).Handle))

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set(middleware.HeaderUserID, userID)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHandle(t *testing.T) {
	svc := &stubService{}
	slotID := uuid.New()

	w := serve(svc, "/reservations/conflicts?slotId="+slotID.String(), "42")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(42), svc.got.UserID)
	assert.Equal(t, slotID, svc.got.SlotID)
	assert.Contains(t, w.Body.String(), `"hasConflict":true`)
}

func TestHandle_Errors(t *testing.T) {
	valid := "/reservations/conflicts?slotId=" + uuid.NewString()

	tests := []struct {
		name       string
		target     string
		userID     string
		err        error
		wantStatus int
	}{
		{name: "no user", target: valid, wantStatus: http.StatusUnauthorized},
		{name: "missing slot id", target: "/reservations/conflicts", userID: "42", wantStatus: http.StatusBadRequest},
		{name: "slot not found", target: valid, userID: "42", err: reservations.ErrSlotNotFound, wantStatus: http.StatusNotFound},
		{name: "invalid input", target: valid, userID: "42", err: fmt.Errorf("%w: client id", reservations.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{name: "storage down", target: valid, userID: "42", err: fmt.Errorf("%w: timeout", reservations.ErrServiceUnavailable), wantStatus: http.StatusServiceUnavailable},
		{name: "unexpected", target: valid, userID: "42", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&stubService{err: tt.err}, tt.target, tt.userID)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
