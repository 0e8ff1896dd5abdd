// Package paypal is the REST client for the PayPal Orders v2 API.
package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"PayPalReconciler/internal/domain/gateway"
	"PayPalReconciler/pkg/correlation"
	"PayPalReconciler/pkg/metrics"
)

type Config struct {
	BaseURL        string
	ClientID       string
	ClientSecret   string
	Timeout        time.Duration
	RetryAttempts  int
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration
}

// Client implements gateway.PayPal over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retryCfg   RetryConfig
	tokens     *tokenSource
	logger     *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = 1
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		retryCfg: RetryConfig{
			MaxAttempts: cfg.RetryAttempts,
			BaseDelay:   cfg.RetryBaseDelay,
			MaxDelay:    cfg.RetryMaxDelay,
		},
		tokens: newTokenSource(httpClient, baseURL, cfg.ClientID, cfg.ClientSecret),
		logger: logger.With("component", "paypal_client"),
	}
}

// CapturePaymentForOrder calls POST /v2/checkout/orders/{id}/capture.
// RequestID is sent as PayPal-Request-Id so a retried capture is not doubled.
func (c *Client) CapturePaymentForOrder(ctx context.Context, req gateway.CaptureRequest) (gateway.OrderResponse, error) {
	path := "/v2/checkout/orders/" + url.PathEscape(req.PayPalOrderID) + "/capture"
	headers := http.Header{}
	if req.RequestID != "" {
		headers.Set("PayPal-Request-Id", req.RequestID)
	}
	headers.Set("Prefer", "return=representation")

	c.logger.InfoContext(ctx, "Capturing PayPal order",
		"paypal_order_id", req.PayPalOrderID,
		"payment_method_id", req.PaymentMethodID)

	var out gateway.OrderResponse
	err := DoWithRetry(ctx, c.retryCfg, func() error {
		return c.do(ctx, "capture", http.MethodPost, path, headers, struct{}{}, &out)
	})
	if err != nil {
		return gateway.OrderResponse{}, fmt.Errorf("capture paypal order %s: %w", req.PayPalOrderID, err)
	}
	return out, nil
}

// ShowOrderDetails calls GET /v2/checkout/orders/{id}.
func (c *Client) ShowOrderDetails(ctx context.Context, payPalOrderID string) (gateway.OrderResponse, error) {
	path := "/v2/checkout/orders/" + url.PathEscape(payPalOrderID)

	var out gateway.OrderResponse
	err := DoWithRetry(ctx, c.retryCfg, func() error {
		return c.do(ctx, "show_order_details", http.MethodGet, path, nil, nil, &out)
	})
	if err != nil {
		return gateway.OrderResponse{}, fmt.Errorf("show paypal order %s: %w", payPalOrderID, err)
	}
	return out, nil
}

func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *Client) do(ctx context.Context, op, method, path string, headers http.Header, body, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for k, v := range headers {
		httpReq.Header[k] = v
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if id := correlation.FromContext(ctx); id != "" {
		httpReq.Header.Set(correlation.HeaderName, id)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		metrics.PayPalRequestDuration.WithLabelValues(op, "error").Observe(time.Since(start).Seconds())
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", gateway.ErrProviderUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()
	metrics.PayPalRequestDuration.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusUnauthorized {
		c.tokens.Invalidate()
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := parseAPIError(resp, raw)
		c.logger.WarnContext(ctx, "PayPal request failed",
			"operation", op,
			"status_code", resp.StatusCode,
			"debug_id", apiErr.DebugID,
			"issue", apiErr.Issue)
		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type errorBody struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	DebugID string `json:"debug_id"`
	Details []struct {
		Issue       string `json:"issue"`
		Description string `json:"description"`
	} `json:"details"`

	// OAuth endpoint error format
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func parseAPIError(resp *http.Response, raw []byte) *gateway.APIError {
	apiErr := &gateway.APIError{
		StatusCode: resp.StatusCode,
		DebugID:    resp.Header.Get("Paypal-Debug-Id"),
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		apiErr.Message = strings.TrimSpace(string(raw))
		return apiErr
	}

	apiErr.Name = body.Name
	apiErr.Message = body.Message
	if body.DebugID != "" {
		apiErr.DebugID = body.DebugID
	}
	if len(body.Details) > 0 {
		apiErr.Issue = body.Details[0].Issue
	}
	if apiErr.Name == "" && body.Error != "" {
		apiErr.Name = body.Error
		apiErr.Message = body.ErrorDescription
	}
	return apiErr
}

var _ gateway.PayPal = (*Client)(nil)
