package httpclient_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salon-booking-service/config"
	"salon-booking-service/internal/pkg/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitHttpClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := &config.HttpClientConfig{Timeout: time.Second, Threshold: 3, Rate: 0.5, MinSamples: 10}

	for _, breakerType := range []string{httpclient.BreakerConsecutive, httpclient.BreakerThreshold, httpclient.BreakerRate} {
		t.Run(breakerType, func(t *testing.T) {
			cb := httpclient.InitCircuitBreaker(cfg, breakerType)
			require.NotNil(t, cb)

			client := httpclient.InitHttpClient(cfg, cb)
			resp, err := client.Get(srv.URL)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

func TestBreakerTrips(t *testing.T) {
	cfg := &config.HttpClientConfig{Timeout: 100 * time.Millisecond, Threshold: 2}
	cb := httpclient.InitCircuitBreaker(cfg, httpclient.BreakerConsecutive)
	client := httpclient.InitHttpClient(cfg, cb)

	// nothing listens on this port
	for i := 0; i < 2; i++ {
		_, err := client.Get("http://127.0.0.1:1/")
		assert.Error(t, err)
	}
	assert.True(t, cb.Tripped())
}
