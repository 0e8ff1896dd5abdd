//go:build integration
// +build integration

package integration_test

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"

	"PayPalReconciler/config"
	"PayPalReconciler/internal/app"
	"PayPalReconciler/internal/domain/order"
	"PayPalReconciler/internal/testinfra"

	"github.com/google/go-querystring/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/orders.sql
var ordersFixture string

var suite *testinfra.TestSuite

func TestMain(m *testing.M) {
	ctx := context.Background()

	var err error
	suite, err = testinfra.NewTestSuite(ctx, testinfra.SuiteOptions{
		WithKafka:    true,
		WithWiremock: true,
		WithRedis:    true,
		MappingsPath: "testdata/wiremock",
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to start test suite: %v", err))
	}

	code := m.Run()

	suite.Cleanup(ctx)
	os.Exit(code)
}

func testConfig(mode string) config.Config {
	return config.Config{
		LogLevel:      "debug",
		StorageDriver: config.StorageDriverPostgres,
		PgURL:         suite.Postgres.DSN,
		PgPoolMax:     5,
		PayPal: config.PayPal{
			BaseURL:        suite.Wiremock.BaseURL,
			ClientID:       "test-client",
			ClientSecret:   "test-secret",
			Timeout:        5 * time.Second,
			RetryAttempts:  2,
			RetryBaseDelay: 10 * time.Millisecond,
			RetryMaxDelay:  50 * time.Millisecond,
		},
		WebhookMode:        mode,
		KafkaBrokers:       suite.Kafka.Brokers,
		KafkaWebhooksTopic: suite.Kafka.WebhooksTopic,
		KafkaWebhooksDLQ:   suite.Kafka.DLQTopic,
		KafkaConsumerGroup: suite.Kafka.Group,
		EventSink:          config.EventSinkPostgres,
		RedisURL:           suite.Redis.URL,
		DeliveryTTL:        time.Hour,
		DeliveryLease:      time.Minute,
	}
}

func setupTestServer(t *testing.T, mode string) *httptest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, suite.Postgres.Truncate(ctx))
	_, err := suite.Postgres.Pool.Pool.Exec(ctx, ordersFixture)
	require.NoError(t, err)

	cfg := testConfig(mode)
	require.NoError(t, cfg.Validate())

	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := app.New(ctx, cfg, l)
	require.NoError(t, err)

	server := httptest.NewServer(svc.Engine)
	t.Cleanup(func() {
		server.Close()
		cancel()
		svc.Close()
	})
	return server
}

func postWebhook(t *testing.T, baseURL string, body map[string]any) (int, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(baseURL+"/webhooks/paypal", "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func getOrder(t *testing.T, baseURL, orderID string) order.Order {
	t.Helper()
	resp, err := http.Get(baseURL + "/orders/" + orderID)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var o order.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&o))
	return o
}

func getOrderEvents(t *testing.T, baseURL, orderID string, q order.OrderEventQuery) order.OrderEventPage {
	t.Helper()
	values, err := query.Values(q)
	require.NoError(t, err)
	values.Del("order_ids")

	u := fmt.Sprintf("%s/orders/%s/events?%s", baseURL, url.PathEscape(orderID), values.Encode())
	resp, err := http.Get(u)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page order.OrderEventPage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	return page
}

func eventKinds(page order.OrderEventPage) []order.OrderEventKind {
	kinds := make([]order.OrderEventKind, 0, len(page.Items))
	for _, item := range page.Items {
		kinds = append(kinds, item.Kind)
	}
	return kinds
}

func approvedEvent() map[string]any {
	return map[string]any{
		"id":            "WH-7Y7254563A4550640-11V2110439233750P",
		"event_type":    "CHECKOUT.ORDER.APPROVED",
		"resource_type": "checkout-order",
		"resource": map[string]any{
			"id":     "5O190127TN364715T",
			"intent": "CAPTURE",
			"status": "APPROVED",
		},
	}
}

func completedEvent(eventID, payPalOrderID string) map[string]any {
	return map[string]any{
		"id":            eventID,
		"event_type":    "CHECKOUT.ORDER.COMPLETED",
		"resource_type": "checkout-order",
		"resource": map[string]any{
			"id":     payPalOrderID,
			"intent": "CAPTURE",
			"status": "COMPLETED",
		},
	}
}

func deniedEvent() map[string]any {
	return map[string]any{
		"id":            "WH-4SW78779LY2325805-07E03580SX1414828",
		"event_type":    "PAYMENT.CAPTURE.DENIED",
		"resource_type": "capture",
		"resource": map[string]any{
			"id":     "7NW873794T343360M",
			"status": "DECLINED",
			"supplementary_data": map[string]any{
				"related_ids": map[string]any{"order_id": "8PR65097T8571330M"},
			},
		},
	}
}

func TestCheckoutFlow_Sync(t *testing.T) {
	server := setupTestServer(t, config.WebhookModeSync)

	// approved: capture through PayPal, bind the capture id, no status change
	status, body := postWebhook(t, server.URL, approvedEvent())
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "processed", body["status"])

	o := getOrder(t, server.URL, "order_approved")
	assert.Equal(t, order.PaymentStatusPending, o.PaymentStatus)
	assert.Equal(t, "3C679366HH908993F", o.TransactionID)

	// completed: pending -> paid
	status, _ = postWebhook(t, server.URL, completedEvent("WH-COMPLETED-1", "5O190127TN364715T"))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, order.PaymentStatusPaid, getOrder(t, server.URL, "order_approved").PaymentStatus)

	page := getOrderEvents(t, server.URL, "order_approved", order.OrderEventQuery{SortAsc: true})
	assert.Equal(t, []order.OrderEventKind{order.OrderEventCaptureRequested, order.OrderEventStatusChanged}, eventKinds(page))
}

func TestCaptureDenied_Sync(t *testing.T) {
	server := setupTestServer(t, config.WebhookModeSync)

	status, _ := postWebhook(t, server.URL, deniedEvent())
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, order.PaymentStatusFailed, getOrder(t, server.URL, "order_denied").PaymentStatus)

	// duplicate delivery is acknowledged without a second dispatch
	status, _ = postWebhook(t, server.URL, deniedEvent())
	require.Equal(t, http.StatusOK, status)

	page := getOrderEvents(t, server.URL, "order_denied", order.OrderEventQuery{SortAsc: true})
	require.Equal(t, []order.OrderEventKind{order.OrderEventStatusChanged, order.OrderEventRemediationChecked}, eventKinds(page))

	var remediation map[string]any
	require.NoError(t, json.Unmarshal(page.Items[1].Data, &remediation))
	assert.Equal(t, "APPROVED", remediation["remote_status"])
	assert.Equal(t, true, remediation["accepts_another_payment_method"])

	// a late completion for a failed order is ignored
	status, _ = postWebhook(t, server.URL, completedEvent("WH-LATE-1", "8PR65097T8571330M"))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, order.PaymentStatusFailed, getOrder(t, server.URL, "order_denied").PaymentStatus)
}

func TestWebhookErrors_Sync(t *testing.T) {
	server := setupTestServer(t, config.WebhookModeSync)

	testCases := []struct {
		name       string
		body       map[string]any
		wantStatus int
	}{
		{
			name:       "unknown order",
			body:       completedEvent("WH-UNKNOWN-1", "0XX00000XX0000000"),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unsupported event type",
			body:       map[string]any{"id": "WH-DISPUTE-1", "event_type": "CUSTOMER.DISPUTE.CREATED", "resource": map[string]any{"id": "PP-D-1"}},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "missing resource id",
			body:       map[string]any{"id": "WH-NOID-1", "event_type": "CHECKOUT.ORDER.COMPLETED", "resource": map[string]any{"status": "COMPLETED"}},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := postWebhook(t, server.URL, tc.body)
			assert.Equal(t, tc.wantStatus, status)
		})
	}
}

func TestCheckoutCompleted_Kafka(t *testing.T) {
	server := setupTestServer(t, config.WebhookModeKafka)

	status, body := postWebhook(t, server.URL, completedEvent("WH-ASYNC-1", "1AB23456CD789012E"))
	require.Equal(t, http.StatusAccepted, status)
	assert.Equal(t, "accepted", body["status"])

	require.Eventually(t, func() bool {
		return getOrder(t, server.URL, "order_async").PaymentStatus == order.PaymentStatusPaid
	}, 30*time.Second, 200*time.Millisecond)

	page := getOrderEvents(t, server.URL, "order_async", order.OrderEventQuery{
		Kinds: []order.OrderEventKind{order.OrderEventStatusChanged},
	})
	require.Len(t, page.Items, 1)
	assert.Equal(t, "WH-ASYNC-1", page.Items[0].ProviderEventID)
}
