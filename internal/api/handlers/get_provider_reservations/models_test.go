package get_provider_reservations

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest(t *testing.T) {
	req, err := ToServiceRequest(7, 7, "scheduled", "2025-03-10", "true")
	require.NoError(t, err)

	assert.Equal(t, int64(7), req.ProviderID)
	assert.Equal(t, "scheduled", *req.Status)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), *req.Date)
	assert.True(t, req.IncludeInactive)

	req, err = ToServiceRequest(7, 7, "", "", "")
	require.NoError(t, err)
	assert.Nil(t, req.Status)
	assert.Nil(t, req.Date)
	assert.False(t, req.IncludeInactive)

	_, err = ToServiceRequest(7, 7, "", "10/03/2025", "")
	assert.Error(t, err)

	_, err = ToServiceRequest(7, 7, "", "", "maybe")
	assert.Error(t, err)
}
