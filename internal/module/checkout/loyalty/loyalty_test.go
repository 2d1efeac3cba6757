package loyalty_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"salon-booking-service/config"
	"salon-booking-service/internal/module/checkout/loyalty"
	"salon-booking-service/internal/pkg/errors"
	"salon-booking-service/internal/pkg/httpclient"
	log_internal "salon-booking-service/internal/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.HandlerFunc) loyalty.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	host, port, err := net.SplitHostPort(u.Host)
	require.NoError(t, err)

	httpCfg := &config.HttpClientConfig{Timeout: time.Second, Threshold: 5}
	client := httpclient.InitHttpClient(httpCfg, httpclient.InitCircuitBreaker(httpCfg, httpclient.BreakerConsecutive))

	return loyalty.New(client, &config.LoyaltyServiceConfig{Host: host, Port: port}, log_internal.Nop())
}

func TestAccrue(t *testing.T) {
	t.Run("credited", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/private/loyalty/accrue", r.URL.Path)
			raw, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"customer_id":"cust-1","transaction_id":"trx-1","amount":"50"}`, string(raw))
			w.WriteHeader(http.StatusNoContent)
		})

		assert.NoError(t, c.Accrue(context.Background(), "cust-1", "trx-1", 5000))
	})

	t.Run("service down is retryable", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		err := c.Accrue(context.Background(), "cust-1", "trx-1", 5000)
		assert.True(t, errors.IsRetryable(err))
	})

	t.Run("unknown customer", func(t *testing.T) {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		err := c.Accrue(context.Background(), "cust-9", "trx-1", 5000)
		assert.True(t, errors.Is(err, errors.CodeReferencedEntityMissing))
		assert.False(t, errors.IsRetryable(err))
	})
}
