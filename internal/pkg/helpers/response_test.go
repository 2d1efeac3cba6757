package helpers_test

import (
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"salon-booking-service/internal/pkg/errors"
	"salon-booking-service/internal/pkg/helpers"
	log_internal "salon-booking-service/internal/pkg/log"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespError(t *testing.T) {
	logger := log_internal.Nop()
	app := fiber.New()
	app.Get("/custom", func(c *fiber.Ctx) error {
		return helpers.RespError(c, logger, errors.AmountMismatch(5250, 5000))
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		return helpers.RespError(c, logger, stderrors.New("secret database detail"))
	})

	t.Run("custom error", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/custom", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var body helpers.ErrorResponse
		raw, _ := io.ReadAll(resp.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, errors.CodeAmountMismatch, body.ErrorCode)
		assert.Equal(t, "-2.50", body.Details["difference"])
	})

	t.Run("plain error is hidden", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/plain", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		raw, _ := io.ReadAll(resp.Body)
		assert.NotContains(t, string(raw), "secret database detail")
	})
}

func TestRespSuccess(t *testing.T) {
	logger := log_internal.Nop()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return helpers.RespSuccess(c, logger, map[string]string{"id": "1"}, "ok")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"message":"ok","data":{"id":"1"}}`, string(raw))
}
