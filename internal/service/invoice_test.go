package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rhenando/gopay-api/internal/domain"
	"github.com/rhenando/gopay-api/internal/gateway"
	"github.com/rhenando/gopay-api/pkg/errors"
)

type mockGateway struct {
	createFn    func(ctx context.Context, invoice *domain.InvoiceRequest) (*gateway.UploadResponse, error)
	fetchFn     func(ctx context.Context, billNumber string) *gateway.BillInfoResponse
	createCalls int
	fetchCalls  int
}

func (m *mockGateway) CreateInvoice(ctx context.Context, invoice *domain.InvoiceRequest) (*gateway.UploadResponse, error) {
	m.createCalls++
	return m.createFn(ctx, invoice)
}

func (m *mockGateway) FetchBillInfo(ctx context.Context, billNumber string) *gateway.BillInfoResponse {
	m.fetchCalls++
	if m.fetchFn == nil {
		return &gateway.BillInfoResponse{}
	}
	return m.fetchFn(ctx, billNumber)
}

func newTestInvoiceService(gw GatewayClient) *invoiceService {
	svc := NewInvoiceService(gw, "ACT-100", zap.NewNop())
	svc.qrSettleDelay = 0 // no point waiting for a fake gateway
	return svc
}

func validRequest() CreateInvoiceRequest {
	return CreateInvoiceRequest{
		FirstName: "Sara",
		LastName:  "Ahmed",
		Phone:     "0501234567",
		Email:     "sara@example.com",
		Items: []domain.CartItem{
			{ID: "A", ProductName: "Widget", Quantity: 2, Subtotal: 10.00},
		},
		Amount: 10,
	}
}

func TestCreateInvoice_EmptyCartNoGatewayCall(t *testing.T) {
	gw := &mockGateway{}
	svc := newTestInvoiceService(gw)

	req := validRequest()
	req.Items = nil

	_, err := svc.CreateInvoice(context.Background(), req)
	require.Error(t, err)
	assert.IsType(t, &errors.ErrValidation{}, err)
	assert.Zero(t, gw.createCalls)
	assert.Zero(t, gw.fetchCalls)
}

func TestCreateInvoice_GatewayErrorPropagates(t *testing.T) {
	upstream := &errors.ErrGateway{Status: 422, Body: `{"message":"duplicate bill"}`}
	gw := &mockGateway{
		createFn: func(_ context.Context, _ *domain.InvoiceRequest) (*gateway.UploadResponse, error) {
			return nil, upstream
		},
	}
	svc := newTestInvoiceService(gw)

	_, err := svc.CreateInvoice(context.Background(), validRequest())
	require.Error(t, err)

	gerr, ok := err.(*errors.ErrGateway)
	require.True(t, ok)
	assert.Equal(t, 422, gerr.Status)
	assert.Equal(t, `{"message":"duplicate bill"}`, gerr.Body)
	assert.Zero(t, gw.fetchCalls, "fetch must not run after a failed upload")
}

func TestCreateInvoice_MissingBillNumberIsFatal(t *testing.T) {
	gw := &mockGateway{
		createFn: func(_ context.Context, _ *domain.InvoiceRequest) (*gateway.UploadResponse, error) {
			return &gateway.UploadResponse{}, nil
		},
	}
	svc := newTestInvoiceService(gw)

	_, err := svc.CreateInvoice(context.Background(), validRequest())
	require.Error(t, err)
	assert.IsType(t, &errors.ErrGateway{}, err)
	assert.Zero(t, gw.fetchCalls)
}

func TestCreateInvoice_UsesGatewayAssignedBillNumber(t *testing.T) {
	var fetchedBill string
	gw := &mockGateway{
		createFn: func(_ context.Context, inv *domain.InvoiceRequest) (*gateway.UploadResponse, error) {
			// gateway normalizes the submitted number
			return &gateway.UploadResponse{BillNumber: "GW-" + inv.BillNumber}, nil
		},
		fetchFn: func(_ context.Context, billNumber string) *gateway.BillInfoResponse {
			fetchedBill = billNumber
			return &gateway.BillInfoResponse{
				QR: "scan me: https://pay.example.com/verify/bill?billNumber=GW777abc end",
			}
		},
	}
	svc := newTestInvoiceService(gw)

	req := validRequest()
	req.BillNumber = "CLIENT-1"

	result, err := svc.CreateInvoice(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "GW-CLIENT-1", result.BillNumber)
	assert.Equal(t, "GW-CLIENT-1", fetchedBill)
	require.NotNil(t, result.RedirectURL)
	assert.Equal(t, "https://pay.example.com/verify/bill?billNumber=GW777abc", *result.RedirectURL)
}

func TestCreateInvoice_NoQRMatchStillSucceeds(t *testing.T) {
	gw := &mockGateway{
		createFn: func(_ context.Context, _ *domain.InvoiceRequest) (*gateway.UploadResponse, error) {
			return &gateway.UploadResponse{BillNumber: "B1"}, nil
		},
		fetchFn: func(_ context.Context, _ string) *gateway.BillInfoResponse {
			return &gateway.BillInfoResponse{QR: "no link in here"}
		},
	}
	svc := newTestInvoiceService(gw)

	result, err := svc.CreateInvoice(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "B1", result.BillNumber)
	assert.Nil(t, result.RedirectURL)
}

func TestCreateInvoice_InfoFetchFailureStillSucceeds(t *testing.T) {
	gw := &mockGateway{
		createFn: func(_ context.Context, _ *domain.InvoiceRequest) (*gateway.UploadResponse, error) {
			return &gateway.UploadResponse{BillNumber: "B2"}, nil
		},
		// fetchFn nil: client contract returns an empty result on failure
	}
	svc := newTestInvoiceService(gw)

	result, err := svc.CreateInvoice(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "B2", result.BillNumber)
	assert.Nil(t, result.RedirectURL)
	assert.Equal(t, 1, gw.fetchCalls)
}

func TestCreateInvoice_DefaultsMissingCustomerFields(t *testing.T) {
	var captured *domain.InvoiceRequest
	gw := &mockGateway{
		createFn: func(_ context.Context, inv *domain.InvoiceRequest) (*gateway.UploadResponse, error) {
			captured = inv
			return &gateway.UploadResponse{BillNumber: "B3"}, nil
		},
	}
	svc := newTestInvoiceService(gw)

	before := time.Now()
	_, err := svc.CreateInvoice(context.Background(), CreateInvoiceRequest{
		Items: []domain.CartItem{
			{ID: "A", ProductName: "Widget", Quantity: 2, Subtotal: 10.00},
		},
		Amount: 10,
	})
	require.NoError(t, err)
	require.NotNil(t, captured)

	assert.Equal(t, "Unknown Buyer", captured.CustomerName)
	assert.Equal(t, "unknown@example.com", captured.CustomerEmail)
	assert.Equal(t, "0000000000", captured.CustomerPhone)
	assert.Equal(t, "Order Payment", captured.ServiceName)
	assert.Equal(t, "ACT-100", captured.EntityActivityID)
	assert.Equal(t, "10.00", captured.TotalAmount)
	assert.True(t, captured.IsPublished)
	assert.True(t, captured.IsVisible)

	assert.Equal(t, before.Format(dateLayout), captured.IssueDate)
	assert.Equal(t, before.Add(expireAfter).Format(dateLayout), captured.ExpireDate)

	// generated bill number is an epoch-millis timestamp
	millis, err := strconv.ParseInt(captured.BillNumber, 10, 64)
	require.NoError(t, err)
	assert.InDelta(t, before.UnixMilli(), millis, 5000)
}

func TestCreateInvoice_KeepsClientSuppliedFields(t *testing.T) {
	var captured *domain.InvoiceRequest
	gw := &mockGateway{
		createFn: func(_ context.Context, inv *domain.InvoiceRequest) (*gateway.UploadResponse, error) {
			captured = inv
			return &gateway.UploadResponse{BillNumber: "B4"}, nil
		},
	}
	svc := newTestInvoiceService(gw)

	req := validRequest()
	req.BillNumber = "MY-BILL"
	req.IssueDate = "2026-01-15"
	req.ExpireDate = "2026-02-15"
	req.ServiceName = "Subscription"

	_, err := svc.CreateInvoice(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "MY-BILL", captured.BillNumber)
	assert.Equal(t, "2026-01-15", captured.IssueDate)
	assert.Equal(t, "2026-02-15", captured.ExpireDate)
	assert.Equal(t, "Subscription", captured.ServiceName)
	assert.Equal(t, "Sara Ahmed", captured.CustomerName)
}

func TestExtractRedirectURL(t *testing.T) {
	url, ok := extractRedirectURL("pay here https://gw.example.com/verify/bill?billNumber=abc123 thanks")
	require.True(t, ok)
	assert.Equal(t, "https://gw.example.com/verify/bill?billNumber=abc123", url)

	_, ok = extractRedirectURL("")
	assert.False(t, ok)

	_, ok = extractRedirectURL("https://gw.example.com/other/path?billNumber=abc123")
	assert.False(t, ok)

	_, ok = extractRedirectURL("http://gw.example.com/verify/bill?billNumber=abc123")
	assert.False(t, ok, "only https links are trusted")
}
