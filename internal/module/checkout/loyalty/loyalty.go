// Package loyalty credits points to a customer after a sale.
package loyalty

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"salon-booking-service/config"
	"salon-booking-service/internal/pkg/errors"
	"salon-booking-service/internal/pkg/money"

	"github.com/goccy/go-json"
	circuit "github.com/rubyist/circuitbreaker"
	"github.com/shopspring/decimal"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

type Client interface {
	Accrue(ctx context.Context, customerID, transactionID string, amount money.Cents) error
}

type accrueRequest struct {
	CustomerID    string          `json:"customer_id"`
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
}

type client struct {
	httpClient *circuit.HTTPClient
	cfg        *config.LoyaltyServiceConfig
	log        *otelzap.Logger
}

func New(httpClient *circuit.HTTPClient, cfg *config.LoyaltyServiceConfig, log *otelzap.Logger) Client {
	return &client{httpClient: httpClient, cfg: cfg, log: log}
}

// Accrue asks the loyalty service to credit amount. The transaction id lets
// the loyalty service drop repeated credits for the same sale.
func (c *client) Accrue(ctx context.Context, customerID, transactionID string, amount money.Cents) error {
	body, err := json.Marshal(accrueRequest{CustomerID: customerID, TransactionID: transactionID, Amount: amount.Decimal()})
	if err != nil {
		return errors.InternalServerError("error encode loyalty request")
	}

	endpoint := fmt.Sprintf("http://%s:%s/api/private/loyalty/accrue", c.cfg.Host, c.cfg.Port)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.InternalServerError("error build loyalty request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Ctx(ctx).Error("error call loyalty service", zap.Error(err))
		return errors.Transient("loyalty service unavailable")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return errors.Transient(fmt.Sprintf("loyalty service returned %d", resp.StatusCode))
	case resp.StatusCode == http.StatusNotFound:
		return errors.ReferencedEntityMissing("customer", customerID)
	case resp.StatusCode >= 300:
		return errors.BadRequest(fmt.Sprintf("loyalty service rejected accrual with %d", resp.StatusCode))
	}
	return nil
}
