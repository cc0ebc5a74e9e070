package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) *HTTPGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPGateway(srv.URL, 2*time.Second, nil)
}

func TestCheckoutAuthorized(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		var req CheckoutRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "cart-1", req.CartID)
		require.Equal(t, int64(10000), req.AmountCents)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"paymentId": "pay-1", "status": "authorized"}`))
	})

	result, err := gw.Checkout(context.Background(), CheckoutRequest{
		CartID:      "cart-1",
		AmountCents: 10000,
		Currency:    "INR",
		Card:        Card{Number: "4242424242424242", ExpMonth: 12, ExpYear: 2030, CVV: "123"},
	})
	require.NoError(t, err)
	require.Equal(t, "pay-1", result.PaymentID)
	require.Equal(t, "authorized", result.Status)
}

func TestCheckoutDeclinedReturnsStructuredError(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"code": "card_declined", "message": "card was declined"}`))
	})

	_, err := gw.Checkout(context.Background(), CheckoutRequest{CartID: "cart-1", AmountCents: 10000})

	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	require.Equal(t, "card_declined", gwErr.Code)
}

func TestCheckoutMissingPaymentIDRejected(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "authorized"}`))
	})

	_, err := gw.Checkout(context.Background(), CheckoutRequest{CartID: "cart-1", AmountCents: 10000})
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing paymentId")
}
