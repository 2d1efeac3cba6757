package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"salon-booking-service/internal/pkg/errors"
	log_internal "salon-booking-service/internal/pkg/log"
	"salon-booking-service/internal/pkg/middleware"
	"salon-booking-service/internal/pkg/principal"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookup struct {
	principal principal.Principal
	err       error
}

func (f fakeLookup) ValidateToken(ctx context.Context, token string) (principal.Principal, error) {
	return f.principal, f.err
}

func newApp(lookup principal.Lookup) *fiber.App {
	m := &middleware.Middleware{Log: log_internal.Nop(), Principal: lookup}
	app := fiber.New()
	app.Get("/staff", m.ValidateToken, m.RequireRole(principal.RoleStaff), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(middleware.LocalPrincipalID).(string))
	})
	app.Use("/webhook", middleware.WebhookCORS())
	app.Post("/webhook", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func TestValidateToken(t *testing.T) {
	t.Run("missing header", func(t *testing.T) {
		app := newApp(fakeLookup{})
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/staff", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("staff allowed", func(t *testing.T) {
		app := newApp(fakeLookup{principal: principal.Principal{IsValid: true, UserID: "staff-1", Role: principal.RoleStaff}})
		req := httptest.NewRequest(http.MethodGet, "/staff", nil)
		req.Header.Set("Authorization", "Bearer token")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("customer rejected by role", func(t *testing.T) {
		app := newApp(fakeLookup{principal: principal.Principal{IsValid: true, UserID: "cust-1", Role: principal.RoleCustomer}})
		req := httptest.NewRequest(http.MethodGet, "/staff", nil)
		req.Header.Set("Authorization", "Bearer token")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("user service down", func(t *testing.T) {
		app := newApp(fakeLookup{err: errors.Transient("user service unavailable")})
		req := httptest.NewRequest(http.MethodGet, "/staff", nil)
		req.Header.Set("Authorization", "Bearer token")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestWebhookCORS(t *testing.T) {
	app := newApp(fakeLookup{})
	req := httptest.NewRequest(http.MethodOptions, "/webhook", nil)
	req.Header.Set("Origin", "https://terminal.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
