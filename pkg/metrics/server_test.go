package metrics_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/otpkit/pkg/metrics"
	"github.com/dmitrymomot/otpkit/pkg/otp"
)

func TestServer_Handler(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	obs := metrics.MustNewObserver(reg)
	obs.CodeGenerated(otp.TimeBased, false)

	h := metrics.NewServer(reg).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `otpkit_codes_generated_total{source="backend",type="totp"} 1`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/other", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_ServeAndShutdown(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	metrics.MustNewObserver(reg)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := metrics.NewServer(reg, metrics.WithShutdownTimeout(time.Second))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/healthz"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "ALIVE"
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}

	assert.NoError(t, srv.Shutdown(context.Background()))
}

func TestServer_RunInvalidAddr(t *testing.T) {
	t.Parallel()

	srv := metrics.NewServer(prometheus.NewRegistry(), metrics.WithAddr("256.0.0.1:-1"))
	err := srv.Run(context.Background())
	assert.ErrorIs(t, err, metrics.ErrStart)
}

func TestServerOptions_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { metrics.WithAddr("") })
	assert.Panics(t, func() { metrics.WithShutdownTimeout(0) })
}
