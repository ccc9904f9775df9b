package update_slot_availability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ClinicScheduler/internal/scheduler"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/slots"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/logger"
)

func TestHandle(t *testing.T) {
	coordinator := scheduler.NewCoordinator(memory.NewSlotStore(), memory.NewReservationStore(), memory.TxManager{}, domain.DefaultClinicHours())
	list, err := coordinator.ListSlots(context.Background(), 7, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	slotID := list[2].ID.String()

	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/slots/{slotId}/availability",
		NewHandler(slots.NewService(coordinator, logger.NewNop()), logger.NewNop()).Handle)

	put := func(id, userID, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, "/slots/"+id+"/availability", strings.NewReader(body))
		req.Header.Set(middleware.HeaderUserID, userID)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := put(slotID, "7", `{"closed":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isClosed":true`)
	assert.Contains(t, w.Body.String(), `"isAvailable":false`)

	assert.Equal(t, http.StatusForbidden, put(slotID, "42", `{"closed":false}`).Code)
	assert.Equal(t, http.StatusBadRequest, put(slotID, "7", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, put("x", "7", `{"closed":true}`).Code)
	assert.Equal(t, http.StatusNotFound, put("6f1c1e9e-4bb4-4c8e-9d3c-0d7e5c1f0a11", "7", `{"closed":true}`).Code)
}
