package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ClinicScheduler/internal/scheduler"
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/reservations/models"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/logger"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/ptr"
)

const (
	providerID int64 = 7
	clientID   int64 = 42
	strangerID int64 = 99
)

var testDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

type env struct {
	service     *Service
	coordinator *scheduler.Coordinator
	slots       []*domain.TimeSlot
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewReservationStore()
	coordinator := scheduler.NewCoordinator(memory.NewSlotStore(), store, memory.TxManager{}, domain.DefaultClinicHours())

	slots, err := coordinator.ListSlots(context.Background(), providerID, testDate)
	require.NoError(t, err)

	return &env{
		service:     NewService(coordinator, store, nil, logger.NewNop()),
		coordinator: coordinator,
		slots:       slots,
	}
}

func (e *env) book(t *testing.T, client int64, slot int) *domain.Reservation {
	t.Helper()
	r, err := e.coordinator.BookSlot(context.Background(), client, e.slots[slot].ID, scheduler.BookingDetails{})
	require.NoError(t, err)
	return r
}

func TestGetByID_OnlyParticipants(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	r := e.book(t, clientID, 0)

	resp, err := e.service.GetByID(ctx, r.ID, clientID)
	require.NoError(t, err)
	assert.Equal(t, "8:00 AM - 9:30 AM", resp.Display)
	assert.Equal(t, "2025-03-10", resp.Date)

	_, err = e.service.GetByID(ctx, r.ID, providerID)
	assert.NoError(t, err)

	_, err = e.service.GetByID(ctx, r.ID, strangerID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = e.service.GetByID(ctx, uuid.New(), clientID)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetClientReservations(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.book(t, clientID, 0)
	e.book(t, clientID, 2)

	resp, err := e.service.GetClientReservations(ctx, &models.GetClientReservationsRequest{UserID: clientID, ClientID: clientID})
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 2)

	_, err = e.service.GetClientReservations(ctx, &models.GetClientReservationsRequest{UserID: strangerID, ClientID: clientID})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = e.service.GetClientReservations(ctx, &models.GetClientReservationsRequest{
		UserID: clientID, ClientID: clientID, Status: ptr.Ptr("confirmed"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetProviderReservations(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	first := e.book(t, clientID, 0)
	e.book(t, clientID+1, 0)

	_, err := e.service.Cancel(ctx, first.ID, &models.CancelReservationRequest{UserID: clientID})
	require.NoError(t, err)

	active, err := e.service.GetProviderReservations(ctx, &models.GetProviderReservationsRequest{
		UserID: providerID, ProviderID: providerID, Date: &testDate,
	})
	require.NoError(t, err)
	assert.Len(t, active.Reservations, 1)

	all, err := e.service.GetProviderReservations(ctx, &models.GetProviderReservationsRequest{
		UserID: providerID, ProviderID: providerID, IncludeInactive: true,
	})
	require.NoError(t, err)
	assert.Len(t, all.Reservations, 2)

	_, err = e.service.GetProviderReservations(ctx, &models.GetProviderReservationsRequest{
		UserID: clientID, ProviderID: providerID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	r := e.book(t, clientID, 1)

	_, err := e.service.Cancel(ctx, r.ID, &models.CancelReservationRequest{UserID: strangerID})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := e.service.Cancel(ctx, r.ID, &models.CancelReservationRequest{
		UserID:             providerID,
		CancellationReason: ptr.Ptr("doctor is on leave"),
	})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.NotNil(t, resp.CancelledAt)

	slot, err := e.coordinator.GetSlot(ctx, e.slots[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 0, slot.CurrentBookings)
}

func TestUpdateStatus(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	r := e.book(t, clientID, 1)

	_, err := e.service.UpdateStatus(ctx, r.ID, &models.UpdateStatusRequest{UserID: providerID, Status: "unknown"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = e.service.UpdateStatus(ctx, r.ID, &models.UpdateStatusRequest{UserID: clientID, Status: "completed"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := e.service.UpdateStatus(ctx, r.ID, &models.UpdateStatusRequest{
		UserID: providerID, Status: "completed", Notes: ptr.Ptr("follow up in a month"),
	})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)

	_, err = e.service.Cancel(ctx, r.ID, &models.CancelReservationRequest{UserID: clientID})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCheckConflict(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.book(t, clientID, 2)

	resp, err := e.service.CheckConflict(ctx, &models.CheckConflictRequest{UserID: clientID, SlotID: e.slots[2].ID})
	require.NoError(t, err)
	assert.True(t, resp.HasConflict)

	resp, err = e.service.CheckConflict(ctx, &models.CheckConflictRequest{UserID: clientID, SlotID: e.slots[3].ID})
	require.NoError(t, err)
	assert.False(t, resp.HasConflict)

	_, err = e.service.CheckConflict(ctx, &models.CheckConflictRequest{UserID: clientID, SlotID: uuid.New()})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}
