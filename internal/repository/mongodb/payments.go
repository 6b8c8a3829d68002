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

const paymentsCollection = "payments"

type paymentRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewPaymentRepository creates a payment record repository
func NewPaymentRepository(db *mongo.Database, logger *zap.Logger) repository.PaymentRepository {
	return &paymentRepository{
		collection: db.Collection(paymentsCollection),
		logger:     logger,
	}
}

// Upsert merges the callback fields into the document for this bill number.
// Fields an earlier callback wrote but this one does not carry stay intact;
// updated_at is stamped on every write and created_at only on first insert.
func (r *paymentRepository) Upsert(ctx context.Context, record *domain.PaymentRecord) error {
	now := time.Now().UTC()

	filter := bson.M{"bill_number": record.BillNumber}
	update := bson.M{
		"$set": bson.M{
			"bill_number":    record.BillNumber,
			"payment_status": record.PaymentStatus,
			"payment_amount": record.PaymentAmount,
			"payment_date":   record.PaymentDate,
			"updated_at":     now,
		},
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.Update().SetUpsert(true)

	result, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert payment record: %w", err)
	}

	r.logger.Debug("Payment record upserted",
		zap.String("bill_number", record.BillNumber),
		zap.Int64("matched", result.MatchedCount),
		zap.Int64("upserted", result.UpsertedCount),
	)
	return nil
}

func (r *paymentRepository) GetByBillNumber(ctx context.Context, billNumber string) (*domain.PaymentRecord, error) {
	var record domain.PaymentRecord

	filter := bson.M{"bill_number": billNumber}
	if err := r.collection.FindOne(ctx, filter).Decode(&record); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &errors.ErrNotFound{Resource: "payment record", ID: billNumber}
		}
		return nil, fmt.Errorf("failed to get payment record: %w", err)
	}

	return &record, nil
}
