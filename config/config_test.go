package config_test

import (
	"testing"
	"time"

	"salon-booking-service/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults with signature key", func(t *testing.T) {
		t.Setenv("WEBHOOK_SIGNATURE_KEY", "secret")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, config.SignatureModeEnforced, cfg.Webhook.SignatureMode)
		assert.Equal(t, config.ReadFailurePolicyOpen, cfg.Booking.ReadFailurePolicy)
		assert.Equal(t, 10*time.Second, cfg.Database.QueryTimeout)
		assert.Equal(t, 30*time.Minute, cfg.Booking.SlotSize)
		assert.Equal(t, int64(1), cfg.Checkout.PaymentToleranceCents)
		assert.Equal(t, "0.05", cfg.Checkout.TaxRate.String())
	})

	t.Run("enforced mode without key", func(t *testing.T) {
		t.Setenv("WEBHOOK_SIGNATURE_KEY", "")

		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("development bypass without key", func(t *testing.T) {
		t.Setenv("WEBHOOK_SIGNATURE_MODE", config.SignatureModeDevelopmentBypass)
		t.Setenv("WEBHOOK_SIGNATURE_KEY", "")

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, config.SignatureModeDevelopmentBypass, cfg.Webhook.SignatureMode)
	})

	t.Run("unknown read failure policy", func(t *testing.T) {
		t.Setenv("WEBHOOK_SIGNATURE_KEY", "secret")
		t.Setenv("AVAILABILITY_READ_FAILURE_POLICY", "maybe")

		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("tax rate is read exactly", func(t *testing.T) {
		t.Setenv("WEBHOOK_SIGNATURE_KEY", "secret")
		t.Setenv("TAX_RATE", "0.0825")

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "0.0825", cfg.Checkout.TaxRate.String())
	})

	t.Run("negative tax rate", func(t *testing.T) {
		t.Setenv("WEBHOOK_SIGNATURE_KEY", "secret")
		t.Setenv("TAX_RATE", "-0.01")

		_, err := config.Load()
		assert.Error(t, err)
	})
}
