package service

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rhenando/gopay-api/internal/domain"
	"github.com/rhenando/gopay-api/internal/gateway"
	"github.com/rhenando/gopay-api/pkg/errors"
)

const (
	defaultBuyerName   = "Unknown Buyer"
	defaultBuyerEmail  = "unknown@example.com"
	defaultBuyerPhone  = "0000000000"
	defaultServiceName = "Order Payment"

	dateLayout      = "2006-01-02"
	expireAfter     = 7 * 24 * time.Hour
	defaultQRSettle = 3 * time.Second
)

// redirectURLPattern matches the payment verification link the gateway embeds
// in the free-text qr field.
var redirectURLPattern = regexp.MustCompile(`https://\S*verify/bill\S*billNumber=[A-Za-z0-9]+`)

// GatewayClient is the slice of the billing gateway the orchestrator needs
type GatewayClient interface {
	CreateInvoice(ctx context.Context, invoice *domain.InvoiceRequest) (*gateway.UploadResponse, error)
	FetchBillInfo(ctx context.Context, billNumber string) *gateway.BillInfoResponse
}

type invoiceService struct {
	gw               GatewayClient
	entityActivityID string
	qrSettleDelay    time.Duration
	logger           *zap.Logger
}

// NewInvoiceService creates the invoice orchestrator. The gateway generates
// the QR asynchronously with no readiness signal, so the service waits a
// fixed settle delay before fetching bill info.
func NewInvoiceService(gw GatewayClient, entityActivityID string, logger *zap.Logger) *invoiceService {
	return &invoiceService{
		gw:               gw,
		entityActivityID: entityActivityID,
		qrSettleDelay:    defaultQRSettle,
		logger:           logger,
	}
}

// CreateInvoice runs the four-stage flow: validate the cart, build the upload
// payload, submit it, then fetch bill info for the payment redirect link.
// A submit failure aborts the whole operation; a resolve failure does not,
// since the invoice already exists upstream.
func (s *invoiceService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*domain.InvoiceResult, error) {
	lines, err := BuildBillLines(req.Items, req.ShippingCost)
	if err != nil {
		return nil, err
	}

	invoice := s.buildInvoiceRequest(req, lines)

	s.logger.Info("Submitting invoice to gateway",
		zap.String("bill_number", invoice.BillNumber),
		zap.String("total_amount", invoice.TotalAmount),
	)
	resp, err := s.gw.CreateInvoice(ctx, invoice)
	if err != nil {
		s.logger.Error("Gateway invoice upload failed", zap.Error(err))
		return nil, err
	}
	if resp.BillNumber == "" {
		return nil, &errors.ErrGateway{
			Status:  500,
			Message: "gateway accepted the upload but returned no bill number",
		}
	}

	// The gateway may normalize the bill number; its answer is authoritative.
	result := &domain.InvoiceResult{BillNumber: resp.BillNumber}

	select {
	case <-ctx.Done():
		// Invoice exists upstream; report it without a redirect link.
		s.logger.Warn("Request canceled before QR settle delay", zap.String("bill_number", resp.BillNumber))
		return result, nil
	case <-time.After(s.qrSettleDelay):
	}

	info := s.gw.FetchBillInfo(ctx, resp.BillNumber)
	if url, ok := extractRedirectURL(info.QR); ok {
		result.RedirectURL = &url
	} else {
		s.logger.Warn("No redirect URL found in bill info",
			zap.String("bill_number", resp.BillNumber),
		)
	}

	return result, nil
}

func (s *invoiceService) buildInvoiceRequest(req CreateInvoiceRequest, lines []domain.BillLine) *domain.InvoiceRequest {
	now := time.Now()

	name := strings.TrimSpace(req.FirstName + " " + req.LastName)
	if name == "" {
		name = defaultBuyerName
	}
	email := req.Email
	if email == "" {
		email = defaultBuyerEmail
	}
	phone := req.Phone
	if phone == "" {
		phone = defaultBuyerPhone
	}
	billNumber := req.BillNumber
	if billNumber == "" {
		billNumber = strconv.FormatInt(now.UnixMilli(), 10)
	}
	issueDate := req.IssueDate
	if issueDate == "" {
		issueDate = now.Format(dateLayout)
	}
	expireDate := req.ExpireDate
	if expireDate == "" {
		expireDate = now.Add(expireAfter).Format(dateLayout)
	}
	serviceName := req.ServiceName
	if serviceName == "" {
		serviceName = defaultServiceName
	}

	return &domain.InvoiceRequest{
		BillNumber:       billNumber,
		EntityActivityID: s.entityActivityID,
		CustomerName:     name,
		CustomerEmail:    email,
		CustomerPhone:    phone,
		IssueDate:        issueDate,
		ExpireDate:       expireDate,
		ServiceName:      serviceName,
		Items:            lines,
		TotalAmount:      decimal.NewFromFloat(req.Amount).StringFixed(2),
		IsPublished:      true,
		IsVisible:        true,
	}
}

// extractRedirectURL pulls the verification link out of the free-text QR
// payload. Best effort only: the qr field has no fixed structure.
func extractRedirectURL(qr string) (string, bool) {
	if qr == "" {
		return "", false
	}
	match := redirectURLPattern.FindString(qr)
	return match, match != ""
}
