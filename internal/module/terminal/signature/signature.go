// Package signature checks the HMAC the terminal provider attaches to each
// webhook delivery.
package signature

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"

	"salon-booking-service/config"
	"salon-booking-service/internal/pkg/errors"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const Header = "X-Square-Hmacsha256-Signature"

// Sign returns base64(HMAC-SHA256(key, notificationURL + body)).
func Sign(key, notificationURL string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(notificationURL))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

type Verifier struct {
	mode            string
	key             string
	notificationURL string
	log             *otelzap.Logger
}

func New(cfg *config.WebhookConfig, log *otelzap.Logger) *Verifier {
	return &Verifier{
		mode:            cfg.SignatureMode,
		key:             cfg.SignatureKey,
		notificationURL: cfg.NotificationURL,
		log:             log,
	}
}

// Verify returns InvalidSignature when the signature does not match. In
// development bypass mode a mismatch is only logged.
func (v *Verifier) Verify(ctx context.Context, signature string, body []byte) error {
	if v.key == "" {
		if v.mode == config.SignatureModeDevelopmentBypass {
			v.log.Ctx(ctx).Warn("webhook signature key not set, accepting unsigned event")
			return nil
		}
		return errors.InvalidSignature("webhook signature key not configured")
	}

	expected := Sign(v.key, v.notificationURL, body)
	if hmac.Equal([]byte(expected), []byte(signature)) {
		return nil
	}

	if v.mode == config.SignatureModeDevelopmentBypass {
		v.log.Ctx(ctx).Warn("webhook signature mismatch, accepted in development bypass mode")
		return nil
	}
	v.log.Ctx(ctx).Error("webhook signature mismatch", zap.Int("body_size", len(body)))
	return errors.InvalidSignature("invalid webhook signature")
}
