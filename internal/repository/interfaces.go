package repository

import (
	"context"

	"github.com/rhenando/gopay-api/internal/domain"
)

// PaymentRepository defines payment notification data access methods.
// Upsert merges the given fields into the document for the bill number,
// preserving fields the current callback did not carry.
type PaymentRepository interface {
	Upsert(ctx context.Context, record *domain.PaymentRecord) error
	GetByBillNumber(ctx context.Context, billNumber string) (*domain.PaymentRecord, error)
}

// SettlementRepository defines settlement notification data access methods
type SettlementRepository interface {
	Upsert(ctx context.Context, record *domain.SettlementRecord) error
	GetByBillNumber(ctx context.Context, billNumber string) (*domain.SettlementRecord, error)
}

// Repositories aggregates all repositories
type Repositories struct {
	Payment    PaymentRepository
	Settlement SettlementRepository
}
