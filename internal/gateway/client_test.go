package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rhenando/gopay-api/internal/config"
	"github.com/rhenando/gopay-api/internal/domain"
	"github.com/rhenando/gopay-api/pkg/errors"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.GatewayConfig{
		BaseURL:  baseURL,
		Username: "merchant",
		Password: "secret",
	}, zap.NewNop())
}

func sampleInvoice() *domain.InvoiceRequest {
	return &domain.InvoiceRequest{
		BillNumber:   "1001",
		CustomerName: "Sara Ahmed",
		TotalAmount:  "10.00",
		Items: []domain.BillLine{
			{Reference: "A", Name: "Widget", Quantity: 2, UnitPrice: "5.00", Discount: "0", VATRate: domain.VATStandard},
		},
	}
}

func TestCreateInvoice_SendsCredentialHeaders(t *testing.T) {
	var gotUser, gotPass, gotContentType, gotPath string
	var gotBody domain.InvoiceRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = r.Header.Get("username")
		gotPass = r.Header.Get("password")
		gotContentType = r.Header.Get("Content-Type")
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(UploadResponse{BillNumber: "1001"})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	resp, err := client.CreateInvoice(context.Background(), sampleInvoice())
	require.NoError(t, err)

	assert.Equal(t, "merchant", gotUser)
	assert.Equal(t, "secret", gotPass)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "/simple/upload", gotPath)
	assert.Equal(t, "1001", gotBody.BillNumber)
	assert.Equal(t, "1001", resp.BillNumber)
}

func TestCreateInvoice_UpstreamErrorKeepsStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"bill already exists"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.CreateInvoice(context.Background(), sampleInvoice())
	require.Error(t, err)

	gerr, ok := err.(*errors.ErrGateway)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, gerr.Status)
	assert.JSONEq(t, `{"message":"bill already exists"}`, gerr.Body)
}

func TestCreateInvoice_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.CreateInvoice(context.Background(), sampleInvoice())
	require.Error(t, err)
	assert.IsType(t, &errors.ErrGateway{}, err)
}

func TestFetchBillInfo_ParsesQRPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bill/info", r.URL.Path)
		assert.Equal(t, "1001", r.URL.Query().Get("billNumber"))
		assert.Equal(t, "merchant", r.Header.Get("username"))
		_ = json.NewEncoder(w).Encode(BillInfoResponse{
			BillNumber: "1001",
			QR:         "https://gw.example.com/verify/bill?billNumber=1001x",
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	info := client.FetchBillInfo(context.Background(), "1001")
	require.NotNil(t, info)
	assert.Equal(t, "1001", info.BillNumber)
	assert.Contains(t, info.QR, "verify/bill")
}

func TestFetchBillInfo_UpstreamFailureYieldsEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	info := client.FetchBillInfo(context.Background(), "1001")
	require.NotNil(t, info)
	assert.Empty(t, info.QR)
}

func TestFetchBillInfo_TransportFailureYieldsEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := newTestClient(srv.URL)
	info := client.FetchBillInfo(context.Background(), "1001")
	require.NotNil(t, info)
	assert.Empty(t, info.QR)
}
