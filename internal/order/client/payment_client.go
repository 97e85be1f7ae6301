package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"denethor/internal/config"
	"denethor/internal/dto"
	"denethor/internal/errors"
)

// PaymentClient calls the payment service. The details-by-order-id read
// is guarded by a circuit breaker shared by all callers; payment
// submission is not, since it is single-shot per order.
type PaymentClient struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker[*dto.PaymentDetails]
	logger  *zap.Logger
}

func NewPaymentClient(baseURL string, timeout time.Duration, breakerCfg config.BreakerConfig, logger *zap.Logger) *PaymentClient {
	breaker := gobreaker.NewCircuitBreaker[*dto.PaymentDetails](gobreaker.Settings{
		Name:        "payment-details",
		MaxRequests: breakerCfg.MaxHalfOpenRequests,
		Interval:    breakerCfg.Interval,
		Timeout:     breakerCfg.CoolDown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < breakerCfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= breakerCfg.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			// A 404 is a well-formed answer from a healthy service; it
			// must not trip the breaker.
			_, notFound := errors.IsNotFoundError(err)
			return notFound
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &PaymentClient{
		http:    resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
		breaker: breaker,
		logger:  logger,
	}
}

func (c *PaymentClient) SubmitPayment(ctx context.Context, request *dto.PaymentRequest) (int64, error) {
	var paymentID int64

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		SetResult(&paymentID).
		Post("/payment")
	if err != nil {
		return 0, errors.NewTransportError("calling payment service", err)
	}

	if resp.IsError() {
		return 0, errors.NewTransportError(fmt.Sprintf("payment service returned status %d", resp.StatusCode()), nil)
	}

	return paymentID, nil
}

// GetPaymentByOrderID fetches payment details through the circuit
// breaker. An explicit not-found propagates to the caller; any other
// failure, an open circuit included, degrades to a placeholder so that
// payment unavailability never blocks viewing an order.
func (c *PaymentClient) GetPaymentByOrderID(ctx context.Context, orderID uint) (*dto.PaymentDetails, error) {
	details, err := c.breaker.Execute(func() (*dto.PaymentDetails, error) {
		return c.fetchPaymentByOrderID(ctx, orderID)
	})
	if err != nil {
		if _, ok := errors.IsNotFoundError(err); ok {
			return nil, err
		}

		c.logger.Error("payment details unavailable, serving fallback",
			zap.Uint("orderId", orderID), zap.Error(err))

		return &dto.PaymentDetails{
			PaymentID:   0,
			Status:      dto.PaymentStatusUnavailable,
			PaymentMode: "",
			Amount:      0,
			PaymentDate: time.Now().UTC(),
			OrderID:     orderID,
		}, nil
	}

	return details, nil
}

func (c *PaymentClient) fetchPaymentByOrderID(ctx context.Context, orderID uint) (*dto.PaymentDetails, error) {
	var details dto.PaymentDetails

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("orderId", fmt.Sprintf("%d", orderID)).
		SetResult(&details).
		Get("/payment/order/{orderId}")
	if err != nil {
		return nil, errors.NewTransportError("calling payment service", err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, errors.NewNotFoundError(fmt.Sprintf("payment details for order %d not found", orderID))
	case resp.IsError():
		return nil, errors.NewTransportError(fmt.Sprintf("payment service returned status %d", resp.StatusCode()), nil)
	}

	return &details, nil
}
