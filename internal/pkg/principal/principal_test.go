package principal_test

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"salon-booking-service/config"
	"salon-booking-service/internal/pkg/errors"
	"salon-booking-service/internal/pkg/httpclient"
	log_internal "salon-booking-service/internal/pkg/log"
	"salon-booking-service/internal/pkg/principal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLookup(t *testing.T, handler http.HandlerFunc) principal.Lookup {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	host, port, err := net.SplitHostPort(u.Host)
	require.NoError(t, err)

	httpCfg := &config.HttpClientConfig{Timeout: time.Second, Threshold: 5}
	client := httpclient.InitHttpClient(httpCfg, httpclient.InitCircuitBreaker(httpCfg, httpclient.BreakerConsecutive))

	return principal.New(client, &config.UserServiceConfig{Host: host, Port: port}, log_internal.Nop())
}

func TestValidateToken(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		lookup := newLookup(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/private/token/validate", r.URL.Path)
			assert.Equal(t, "abc", r.URL.Query().Get("token"))
			_, _ = w.Write([]byte(`{"is_valid":true,"user_id":"staff-1","role":"staff"}`))
		})

		p, err := lookup.ValidateToken(context.Background(), "abc")
		require.NoError(t, err)
		assert.Equal(t, principal.Principal{IsValid: true, UserID: "staff-1", Role: principal.RoleStaff}, p)
	})

	t.Run("rejected", func(t *testing.T) {
		lookup := newLookup(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := lookup.ValidateToken(context.Background(), "abc")
		assert.True(t, errors.Is(err, errors.CodeUnauthorized))
	})

	t.Run("reported invalid", func(t *testing.T) {
		lookup := newLookup(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"is_valid":false}`))
		})

		_, err := lookup.ValidateToken(context.Background(), "abc")
		assert.True(t, errors.Is(err, errors.CodeUnauthorized))
	})
}
