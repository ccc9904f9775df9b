package get_clinic_hours

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ClinicScheduler/internal/scheduler"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/slots"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/logger"
)

func TestHandle(t *testing.T) {
	coordinator := scheduler.NewCoordinator(memory.NewSlotStore(), memory.NewReservationStore(), memory.TxManager{}, domain.DefaultClinicHours())
	h := NewHandler(slots.NewService(coordinator, logger.NewNop()), logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/clinic-hours?date=2025-03-10", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slotsPerDay":6`)
	assert.Contains(t, w.Body.String(), `"display":"3:30 PM - 5:00 PM"`)

	w = httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/clinic-hours?date=tomorrow", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
