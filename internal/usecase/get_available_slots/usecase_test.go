package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	"github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ClinicScheduler/internal/integrations/providerdirectory"
	"github.com/m04kA/SMC-ClinicScheduler/internal/scheduler"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/logger"
)

var (
	now      = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	tomorrow = time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
)

type fixedTime struct{}

func (fixedTime) Now() time.Time { return now }

type stubDirectory struct {
	providers map[int64]*providerdirectory.Provider
	err       error
}

func (d *stubDirectory) GetProvider(_ context.Context, id int64) (*providerdirectory.Provider, error) {
	if d.err != nil {
		return nil, d.err
	}
	p, ok := d.providers[id]
	if !ok {
		return nil, providerdirectory.ErrProviderNotFound
	}
	return p, nil
}

func newUseCase(directory ProviderDirectory) *UseCase {
	coordinator := scheduler.NewCoordinator(
		memory.NewSlotStore(),
		memory.NewReservationStore(),
		memory.TxManager{},
		domain.DefaultClinicHours(),
	)
	uc := NewUseCase(coordinator, directory, logger.NewNop())
	uc.timeProvider = fixedTime{}
	return uc
}

func TestExecute_ReturnsClinicDay(t *testing.T) {
	uc := newUseCase(nil)

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: 7, Date: tomorrow})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 6)
	assert.Equal(t, int64(7), resp.ProviderID)
	assert.Equal(t, "8:00 AM - 9:30 AM", resp.Slots[0].Display)
	assert.Equal(t, "3:30 PM - 5:00 PM", resp.Slots[5].Display)
	for _, s := range resp.Slots {
		assert.Equal(t, domain.DefaultMaxCapacity, s.AvailableSpots)
		assert.True(t, s.IsAvailable)
	}
}

func TestExecute_TodayIsAllowed(t *testing.T) {
	uc := newUseCase(nil)
	_, err := uc.Execute(context.Background(), &Request{ProviderID: 7, Date: now})
	assert.NoError(t, err)
}

func TestExecute_Validation(t *testing.T) {
	uc := newUseCase(nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{ProviderID: 0, Date: tomorrow})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{ProviderID: 7})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(ctx, &Request{ProviderID: 7, Date: now.AddDate(0, 0, -1)})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_ProviderDirectory(t *testing.T) {
	directory := &stubDirectory{providers: map[int64]*providerdirectory.Provider{
		7: {ID: 7, IsActive: true},
		8: {ID: 8, IsActive: false},
	}}
	uc := newUseCase(directory)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{ProviderID: 7, Date: tomorrow})
	assert.NoError(t, err)

	_, err = uc.Execute(ctx, &Request{ProviderID: 8, Date: tomorrow})
	assert.ErrorIs(t, err, ErrProviderInactive)

	_, err = uc.Execute(ctx, &Request{ProviderID: 9, Date: tomorrow})
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestExecute_DirectoryUnavailableDegradesGracefully(t *testing.T) {
	uc := newUseCase(&stubDirectory{err: errors.New("timeout")})

	resp, err := uc.Execute(context.Background(), &Request{ProviderID: 7, Date: tomorrow})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 6)
}
