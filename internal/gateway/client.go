package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rhenando/gopay-api/internal/config"
	"github.com/rhenando/gopay-api/internal/domain"
	"github.com/rhenando/gopay-api/pkg/errors"
)

// Client calls the billing gateway with the configured credential pair.
// The gateway expects the credentials in custom `username`/`password`
// headers on every request.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a billing gateway HTTP client
func NewClient(cfg config.GatewayConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		username:   cfg.Username,
		password:   cfg.Password,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// UploadResponse is the gateway's answer to an invoice upload. BillNumber is
// the gateway-assigned number; it may differ from the one we submitted.
type UploadResponse struct {
	BillNumber string `json:"billNumber"`
	Message    string `json:"message,omitempty"`
}

// BillInfoResponse is the gateway's bill info payload. QR is free text and
// typically contains an embedded payment verification URL.
type BillInfoResponse struct {
	BillNumber string `json:"billNumber"`
	Status     string `json:"status,omitempty"`
	QR         string `json:"qr,omitempty"`
}

func (c *Client) setAuthHeaders(req *http.Request) {
	req.Header.Set("username", c.username)
	req.Header.Set("password", c.password)
	req.Header.Set("Content-Type", "application/json")
}

// CreateInvoice uploads an invoice via POST {base}/simple/upload.
// A non-2xx answer is returned as *errors.ErrGateway carrying the upstream
// status code and body verbatim. Single attempt, no retries.
func (c *Client) CreateInvoice(ctx context.Context, invoice *domain.InvoiceRequest) (*UploadResponse, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("gateway client not configured: base URL required")
	}

	jsonData, err := json.Marshal(invoice)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal invoice: %w", err)
	}

	c.logger.Info("Gateway upload request",
		zap.String("bill_number", invoice.BillNumber),
		zap.String("total_amount", invoice.TotalAmount),
		zap.Int("line_count", len(invoice.Items)),
	)
	c.logger.Debug("Gateway upload payload", zap.ByteString("body", jsonData))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/simple/upload", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway upload failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}

	c.logger.Info("Gateway upload response",
		zap.Int("status", resp.StatusCode),
		zap.ByteString("body", body),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &errors.ErrGateway{Status: resp.StatusCode, Body: string(body)}
	}

	var out UploadResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &errors.ErrGateway{
			Status:  resp.StatusCode,
			Body:    string(body),
			Message: "gateway returned malformed upload response",
		}
	}

	return &out, nil
}

// FetchBillInfo looks a bill up via GET {base}/bill/info?billNumber=...
// Failures are swallowed: callers use this for the payment link only, so a
// transport or upstream error yields an empty result rather than aborting
// an already-created invoice.
func (c *Client) FetchBillInfo(ctx context.Context, billNumber string) *BillInfoResponse {
	empty := &BillInfoResponse{}
	if c.baseURL == "" || billNumber == "" {
		return empty
	}

	u, err := url.Parse(c.baseURL + "/bill/info")
	if err != nil {
		return empty
	}
	q := u.Query()
	q.Set("billNumber", billNumber)
	u.RawQuery = q.Encode()

	c.logger.Info("Gateway bill info request", zap.String("bill_number", billNumber))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return empty
	}
	c.setAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Gateway bill info request failed", zap.String("bill_number", billNumber), zap.Error(err))
		return empty
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("Failed to read bill info response", zap.Error(err))
		return empty
	}

	c.logger.Info("Gateway bill info response",
		zap.Int("status", resp.StatusCode),
		zap.ByteString("body", body),
	)

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Gateway bill info returned non-OK status",
			zap.Int("status", resp.StatusCode),
			zap.String("bill_number", billNumber),
		)
		return empty
	}

	var out BillInfoResponse
	if err := json.Unmarshal(body, &out); err != nil {
		c.logger.Warn("Gateway bill info returned malformed JSON", zap.Error(err))
		return empty
	}

	return &out
}
