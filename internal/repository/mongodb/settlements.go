package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/rhenando/gopay-api/internal/domain"
	"github.com/rhenando/gopay-api/internal/repository"
	"github.com/rhenando/gopay-api/pkg/errors"
)

const settlementsCollection = "settlements"

type settlementRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewSettlementRepository creates a settlement record repository
func NewSettlementRepository(db *mongo.Database, logger *zap.Logger) repository.SettlementRepository {
	return &settlementRepository{
		collection: db.Collection(settlementsCollection),
		logger:     logger,
	}
}

func (r *settlementRepository) Upsert(ctx context.Context, record *domain.SettlementRecord) error {
	now := time.Now().UTC()

	filter := bson.M{"bill_number": record.BillNumber}
	update := bson.M{
		"$set": bson.M{
			"bill_number":       record.BillNumber,
			"settlement_status": record.SettlementStatus,
			"payment_amount":    record.PaymentAmount,
			"payment_date":      record.PaymentDate,
			"bank_id":           record.BankID,
			"updated_at":        now,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.Update().SetUpsert(true)

	result, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert settlement record: %w", err)
	}

	r.logger.Debug("Settlement record upserted",
		zap.String("bill_number", record.BillNumber),
		zap.Int64("matched", result.MatchedCount),
		zap.Int64("upserted", result.UpsertedCount),
	)
	return nil
}

func (r *settlementRepository) GetByBillNumber(ctx context.Context, billNumber string) (*domain.SettlementRecord, error) {
	var record domain.SettlementRecord

	filter := bson.M{"bill_number": billNumber}
	if err := r.collection.FindOne(ctx, filter).Decode(&record); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &errors.ErrNotFound{Resource: "settlement record", ID: billNumber}
		}
		return nil, fmt.Errorf("failed to get settlement record: %w", err)
	}

	return &record, nil
}
