package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rhenando/gopay-api/internal/domain"
	"github.com/rhenando/gopay-api/internal/repository"
	"github.com/rhenando/gopay-api/pkg/errors"
)

const defaultBankID = "Unknown"

type notificationService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewNotificationService creates the callback ingestion service
func NewNotificationService(repos *repository.Repositories, logger *zap.Logger) *notificationService {
	return &notificationService{
		repos:  repos,
		logger: logger,
	}
}

// RecordPayment validates and persists a payment notification. The ack is
// about receipt, not business outcome: a FAILED paymentStatus still persists
// and still acknowledges.
func (s *notificationService) RecordPayment(ctx context.Context, req PaymentNotificationRequest) error {
	fields := map[string]string{}
	if req.BillNumber == "" {
		fields["billNumber"] = "required"
	}
	if req.PaymentStatus == "" {
		fields["paymentStatus"] = "required"
	}
	if len(fields) > 0 {
		return &errors.ErrValidation{Message: "missing required notification fields", Fields: fields}
	}

	record := &domain.PaymentRecord{
		BillNumber:    req.BillNumber,
		PaymentStatus: req.PaymentStatus,
		PaymentAmount: amountOrZero(req.PaymentAmount),
		PaymentDate:   dateOrNow(req.PaymentDate),
	}

	if err := s.repos.Payment.Upsert(ctx, record); err != nil {
		s.logger.Error("Failed to persist payment notification",
			zap.String("bill_number", req.BillNumber),
			zap.Error(err),
		)
		return &errors.ErrPersistence{Op: "payment notification"}
	}

	s.logger.Info("Payment notification recorded",
		zap.String("bill_number", req.BillNumber),
		zap.String("payment_status", req.PaymentStatus),
	)
	return nil
}

// RecordSettlement validates and persists a bank settlement notification
func (s *notificationService) RecordSettlement(ctx context.Context, req SettlementNotificationRequest) error {
	fields := map[string]string{}
	if req.BillNumber == "" {
		fields["billNumber"] = "required"
	}
	if req.SettlementStatus == "" {
		fields["settlementStatus"] = "required"
	}
	if len(fields) > 0 {
		return &errors.ErrValidation{Message: "missing required notification fields", Fields: fields}
	}

	bankID := req.BankID
	if bankID == "" {
		bankID = defaultBankID
	}

	record := &domain.SettlementRecord{
		BillNumber:       req.BillNumber,
		SettlementStatus: req.SettlementStatus,
		PaymentAmount:    amountOrZero(req.PaymentAmount),
		PaymentDate:      dateOrNow(req.PaymentDate),
		BankID:           bankID,
	}

	if err := s.repos.Settlement.Upsert(ctx, record); err != nil {
		s.logger.Error("Failed to persist settlement notification",
			zap.String("bill_number", req.BillNumber),
			zap.Error(err),
		)
		return &errors.ErrPersistence{Op: "settlement notification"}
	}

	s.logger.Info("Settlement notification recorded",
		zap.String("bill_number", req.BillNumber),
		zap.String("settlement_status", req.SettlementStatus),
		zap.String("bank_id", bankID),
	)
	return nil
}

func amountOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func dateOrNow(v string) string {
	if v == "" {
		return time.Now().UTC().Format(time.RFC3339)
	}
	return v
}
