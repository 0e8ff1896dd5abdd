//go:build !integration

package paypal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"PayPalReconciler/internal/domain/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const capturedOrderJSON = `{
  "id": "5O190127TN364715T",
  "status": "COMPLETED",
  "purchase_units": [{
    "reference_id": "default",
    "payments": {"captures": [{"id": "3C679366HH908993F", "status": "COMPLETED", "amount": {"currency_code": "USD", "value": "100.00"}}]}
  }]
}`

type fakePayPal struct {
	tokenCalls atomic.Int32
	mux        *http.ServeMux
}

func newFakePayPal(t *testing.T) (*fakePayPal, *httptest.Server) {
	t.Helper()

	f := &fakePayPal{mux: http.NewServeMux()}
	f.mux.HandleFunc("POST /v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls.Add(1)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "client-id", user)
		assert.Equal(t, "client-secret", pass)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"A21AA-token","token_type":"Bearer","expires_in":32400}`))
	})

	server := httptest.NewServer(f.mux)
	t.Cleanup(server.Close)
	return f, server
}

func newTestClient(baseURL string, attempts int) *Client {
	return NewClient(Config{
		BaseURL:        baseURL,
		ClientID:       "client-id",
		ClientSecret:   "client-secret",
		Timeout:        5 * time.Second,
		RetryAttempts:  attempts,
		RetryBaseDelay: time.Millisecond,
		RetryMaxDelay:  10 * time.Millisecond,
	}, nil)
}

func TestClient_CapturePaymentForOrder(t *testing.T) {
	t.Parallel()

	t.Run("should capture with idempotency key and bearer token", func(t *testing.T) {
		// given
		fake, server := newFakePayPal(t)
		fake.mux.HandleFunc("POST /v2/checkout/orders/{id}/capture", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "5O190127TN364715T", r.PathValue("id"))
			assert.Equal(t, "Bearer A21AA-token", r.Header.Get("Authorization"))
			assert.Equal(t, "capture-5O190127TN364715T", r.Header.Get("PayPal-Request-Id"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(capturedOrderJSON))
		})
		client := newTestClient(server.URL, 1)

		// when
		resp, err := client.CapturePaymentForOrder(context.Background(), gateway.CaptureRequest{
			PayPalOrderID: "5O190127TN364715T",
			RequestID:     "capture-5O190127TN364715T",
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, gateway.OrderStatusCompleted, resp.Status)
		capture, ok := resp.FirstCapture()
		require.True(t, ok)
		assert.Equal(t, "3C679366HH908993F", capture.ID)
		assert.Equal(t, "100", resp.CapturedTotal().String())
	})

	t.Run("should report already captured without retry", func(t *testing.T) {
		// given
		fake, server := newFakePayPal(t)
		var calls atomic.Int32
		fake.mux.HandleFunc("POST /v2/checkout/orders/{id}/capture", func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Header().Set("Paypal-Debug-Id", "f1d2e3")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"name":"UNPROCESSABLE_ENTITY","message":"The requested action could not be performed.","details":[{"issue":"ORDER_ALREADY_CAPTURED","description":"Order already captured."}]}`))
		})
		client := newTestClient(server.URL, 3)

		// when
		_, err := client.CapturePaymentForOrder(context.Background(), gateway.CaptureRequest{PayPalOrderID: "ORDER1"})

		// then
		require.Error(t, err)
		assert.True(t, gateway.IsAlreadyCaptured(err))
		assert.ErrorIs(t, err, gateway.ErrProviderRejected)
		assert.Contains(t, err.Error(), "debug_id=f1d2e3")
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("should retry unavailable provider", func(t *testing.T) {
		// given
		fake, server := newFakePayPal(t)
		var calls atomic.Int32
		fake.mux.HandleFunc("POST /v2/checkout/orders/{id}/capture", func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(capturedOrderJSON))
		})
		client := newTestClient(server.URL, 3)

		// when
		resp, err := client.CapturePaymentForOrder(context.Background(), gateway.CaptureRequest{PayPalOrderID: "5O190127TN364715T"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "5O190127TN364715T", resp.ID)
		assert.Equal(t, int32(3), calls.Load())
		assert.Equal(t, int32(1), fake.tokenCalls.Load())
	})

	t.Run("should give up after max attempts", func(t *testing.T) {
		// given
		fake, server := newFakePayPal(t)
		fake.mux.HandleFunc("POST /v2/checkout/orders/{id}/capture", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"name":"INTERNAL_SERVER_ERROR","message":"An internal server error occurred.","debug_id":"abc123"}`))
		})
		client := newTestClient(server.URL, 2)

		// when
		_, err := client.CapturePaymentForOrder(context.Background(), gateway.CaptureRequest{PayPalOrderID: "ORDER1"})

		// then
		assert.ErrorIs(t, err, gateway.ErrProviderUnavailable)
		assert.EqualError(t, err, "capture paypal order ORDER1: paypal api error: status 500 INTERNAL_SERVER_ERROR: An internal server error occurred. debug_id=abc123")
	})
}

func TestClient_ShowOrderDetails(t *testing.T) {
	t.Parallel()

	t.Run("should reuse cached token", func(t *testing.T) {
		// given
		fake, server := newFakePayPal(t)
		fake.mux.HandleFunc("GET /v2/checkout/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer A21AA-token", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"id":"` + r.PathValue("id") + `","intent":"CAPTURE","status":"APPROVED"}`))
		})
		client := newTestClient(server.URL, 1)

		// when
		first, errFirst := client.ShowOrderDetails(context.Background(), "ORDER1")
		second, errSecond := client.ShowOrderDetails(context.Background(), "ORDER2")

		// then
		require.NoError(t, errFirst)
		require.NoError(t, errSecond)
		assert.Equal(t, "ORDER1", first.ID)
		assert.Equal(t, gateway.OrderStatusApproved, second.Status)
		assert.True(t, second.AcceptsAnotherPaymentMethod())
		assert.Equal(t, int32(1), fake.tokenCalls.Load())
	})

	t.Run("should refresh token after unauthorized", func(t *testing.T) {
		// given
		fake, server := newFakePayPal(t)
		var calls atomic.Int32
		fake.mux.HandleFunc("GET /v2/checkout/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"invalid_token","error_description":"Token signature verification failed"}`))
				return
			}
			_, _ = w.Write([]byte(`{"id":"ORDER1","status":"APPROVED"}`))
		})
		client := newTestClient(server.URL, 1)

		// when
		_, errFirst := client.ShowOrderDetails(context.Background(), "ORDER1")
		_, errSecond := client.ShowOrderDetails(context.Background(), "ORDER1")

		// then
		assert.ErrorIs(t, errFirst, gateway.ErrProviderRejected)
		assert.Contains(t, errFirst.Error(), "invalid_token")
		assert.NoError(t, errSecond)
		assert.Equal(t, int32(2), fake.tokenCalls.Load())
	})

	t.Run("should fail on rejected credentials", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_client","error_description":"Client Authentication failed"}`))
		}))
		t.Cleanup(server.Close)
		client := newTestClient(server.URL, 3)

		// when
		_, err := client.ShowOrderDetails(context.Background(), "ORDER1")

		// then
		assert.ErrorIs(t, err, gateway.ErrProviderRejected)
		assert.Contains(t, err.Error(), "fetch token")
	})
}

func TestTokenSource_Expiry(t *testing.T) {
	t.Parallel()

	// given
	fake, server := newFakePayPal(t)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	src := newTokenSource(server.Client(), server.URL, "client-id", "client-secret")
	src.now = func() time.Time { return now }

	// when
	_, err := src.Token(context.Background())
	require.NoError(t, err)
	now = now.Add(8 * time.Hour)
	_, err = src.Token(context.Background())
	require.NoError(t, err)
	now = now.Add(time.Hour)
	_, err = src.Token(context.Background())
	require.NoError(t, err)

	// then: 32400s lifetime minus skew covers the first hop only
	assert.Equal(t, int32(2), fake.tokenCalls.Load())
}

func TestCalculateBackoff(t *testing.T) {
	t.Parallel()

	for attempt := 0; attempt < 10; attempt++ {
		d := calculateBackoff(attempt, 100*time.Millisecond, time.Second)
		assert.LessOrEqual(t, d, time.Second)
		assert.Greater(t, d, time.Duration(0))
	}
}
