package providerdirectory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicScheduler/pkg/logger"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/internal/providers/7", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"name":"Dr. Ivanova","specialization":"cardiology","is_active":true}`))
	})
	mux.HandleFunc("/internal/providers/8", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})
	mux.HandleFunc("/internal/providers/9", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetProvider(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(srv.URL, time.Second, logger.NewNop())

	provider, err := client.GetProvider(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), provider.ID)
	assert.Equal(t, "cardiology", provider.Specialization)
	assert.True(t, provider.IsActive)
}

func TestClient_GetProviderErrors(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(srv.URL, time.Second, logger.NewNop())
	ctx := context.Background()

	_, err := client.GetProvider(ctx, 404)
	assert.ErrorIs(t, err, ErrProviderNotFound)

	_, err = client.GetProvider(ctx, 8)
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = client.GetProvider(ctx, 9)
	assert.ErrorIs(t, err, ErrInvalidResponse)

	srv.Close()
	_, err = client.GetProvider(ctx, 7)
	assert.ErrorIs(t, err, ErrInternal)
}
