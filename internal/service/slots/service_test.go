package slots

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
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/slots/models"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/logger"
)

const providerID int64 = 7

var testDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func newCoordinator() *scheduler.Coordinator {
	return scheduler.NewCoordinator(memory.NewSlotStore(), memory.NewReservationStore(), memory.TxManager{}, domain.DefaultClinicHours())
}

func TestGetClinicHours(t *testing.T) {
	svc := NewService(newCoordinator(), logger.NewNop())

	resp := svc.GetClinicHours(&testDate)

	assert.Equal(t, "08:00", resp.DayStart)
	assert.Equal(t, "17:00", resp.DayEnd)
	assert.Equal(t, 90, resp.SlotDurationMinutes)
	assert.Equal(t, 5, resp.DefaultMaxCapacity)
	assert.Equal(t, 6, resp.SlotsPerDay)
	require.Len(t, resp.Template, 6)
	assert.Equal(t, "8:00 AM - 9:30 AM", resp.Template[0].Display)
	assert.Equal(t, "3:30 PM - 5:00 PM", resp.Template[5].Display)
}

func TestSetAvailability(t *testing.T) {
	coordinator := newCoordinator()
	svc := NewService(coordinator, logger.NewNop())
	ctx := context.Background()

	slots, err := coordinator.ListSlots(ctx, providerID, testDate)
	require.NoError(t, err)
	slotID := slots[0].ID

	closed, err := svc.SetAvailability(ctx, &models.SetAvailabilityRequest{UserID: providerID, SlotID: slotID, Closed: true})
	require.NoError(t, err)
	assert.True(t, closed.IsClosed)
	assert.False(t, closed.IsAvailable)

	opened, err := svc.SetAvailability(ctx, &models.SetAvailabilityRequest{UserID: providerID, SlotID: slotID})
	require.NoError(t, err)
	assert.False(t, opened.IsClosed)
	assert.True(t, opened.IsAvailable)

	_, err = svc.SetAvailability(ctx, &models.SetAvailabilityRequest{UserID: 42, SlotID: slotID, Closed: true})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.SetAvailability(ctx, &models.SetAvailabilityRequest{UserID: providerID, SlotID: uuid.New()})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}
