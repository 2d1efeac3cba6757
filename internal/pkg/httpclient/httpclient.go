package httpclient

import (
	"net/http"

	"salon-booking-service/config"

	circuit "github.com/rubyist/circuitbreaker"
)

const (
	BreakerConsecutive = "consecutive"
	BreakerThreshold   = "threshold"
	BreakerRate        = "rate"
)

func InitCircuitBreaker(cfg *config.HttpClientConfig, breakerType string) *circuit.Breaker {
	switch breakerType {
	case BreakerThreshold:
		return circuit.NewThresholdBreaker(cfg.Threshold)
	case BreakerRate:
		return circuit.NewRateBreaker(cfg.Rate, cfg.MinSamples)
	default:
		return circuit.NewConsecutiveBreaker(cfg.Threshold)
	}
}

func InitHttpClient(cfg *config.HttpClientConfig, cb *circuit.Breaker) *circuit.HTTPClient {
	client := &http.Client{Timeout: cfg.Timeout}
	return circuit.NewHTTPClientWithBreaker(cb, cfg.Timeout, client)
}
