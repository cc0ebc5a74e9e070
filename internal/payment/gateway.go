// Package payment wraps the external payment gateway as a black box: a
// checkout either yields a payment identifier or a structured error.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Card is the minimal card input forwarded to the gateway. It is never
// persisted.
type Card struct {
	Number   string `json:"number"`
	ExpMonth int    `json:"expMonth"`
	ExpYear  int    `json:"expYear"`
	CVV      string `json:"cvv"`
}

// CheckoutRequest charges the cart's server-quoted total.
type CheckoutRequest struct {
	CartID      string `json:"cartId"`
	AmountCents int64  `json:"amountCents"`
	Currency    string `json:"currency"`
	Card        Card   `json:"card"`
}

// Result is a successful authorization.
type Result struct {
	PaymentID string `json:"paymentId"`
	Status    string `json:"status"`
}

// Error is the gateway's structured decline/failure response.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("payment declined: %s: %s", e.Code, e.Message)
}

// Gateway authorizes checkouts.
type Gateway interface {
	Checkout(ctx context.Context, req CheckoutRequest) (*Result, error)
}

// HTTPGateway calls the gateway's authorize endpoint.
type HTTPGateway struct {
	url    string
	httpc  *http.Client
	logger *zap.Logger
}

// NewHTTPGateway builds a gateway client for the given authorize URL.
func NewHTTPGateway(url string, timeout time.Duration, logger *zap.Logger) *HTTPGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPGateway{url: url, httpc: &http.Client{Timeout: timeout}, logger: logger}
}

func (g *HTTPGateway) Checkout(ctx context.Context, req CheckoutRequest) (*Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode checkout: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build checkout request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		gwErr := &Error{Code: "gateway_error"}
		if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(gwErr); err != nil || gwErr.Code == "" {
			gwErr = &Error{Code: "gateway_error", Message: fmt.Sprintf("status %d", resp.StatusCode)}
		}
		g.logger.Warn("checkout declined",
			zap.String("cartId", req.CartID), zap.String("code", gwErr.Code))
		return nil, gwErr
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode checkout response: %w", err)
	}
	if result.PaymentID == "" {
		return nil, fmt.Errorf("checkout response missing paymentId")
	}
	return &result, nil
}
