// Package principal resolves a bearer token to a staff or customer id by
// asking the user service.
package principal

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"salon-booking-service/config"
	"salon-booking-service/internal/pkg/errors"

	"github.com/goccy/go-json"
	circuit "github.com/rubyist/circuitbreaker"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const (
	RoleStaff    = "staff"
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type Principal struct {
	IsValid bool   `json:"is_valid"`
	UserID  string `json:"user_id"`
	Role    string `json:"role"`
}

type Lookup interface {
	ValidateToken(ctx context.Context, token string) (Principal, error)
}

type client struct {
	httpClient *circuit.HTTPClient
	cfg        *config.UserServiceConfig
	log        *otelzap.Logger
}

func New(httpClient *circuit.HTTPClient, cfg *config.UserServiceConfig, log *otelzap.Logger) Lookup {
	return &client{httpClient: httpClient, cfg: cfg, log: log}
}

func (c *client) ValidateToken(ctx context.Context, token string) (Principal, error) {
	endpoint := fmt.Sprintf("http://%s:%s/api/private/token/validate?token=%s", c.cfg.Host, c.cfg.Port, url.QueryEscape(token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Principal{}, errors.InternalServerError("error build token request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Ctx(ctx).Error("error call user service", zap.Error(err))
		return Principal{}, errors.Transient("user service unavailable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Ctx(ctx).Error("invalid token", zap.Int("status", resp.StatusCode))
		return Principal{}, errors.UnauthorizedError("invalid token")
	}

	var p Principal
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return Principal{}, errors.InternalServerError("error decode user service response")
	}
	if !p.IsValid {
		return Principal{}, errors.UnauthorizedError("invalid token")
	}

	return p, nil
}
