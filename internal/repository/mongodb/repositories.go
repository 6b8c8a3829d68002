package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/rhenando/gopay-api/internal/repository"
)

// NewRepositories creates a new set of repositories
func NewRepositories(db *mongo.Database, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Payment:    NewPaymentRepository(db, logger),
		Settlement: NewSettlementRepository(db, logger),
	}
}

// EnsureIndexes creates the unique bill_number indexes on both collections
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "bill_number", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	for _, name := range []string{paymentsCollection, settlementsCollection} {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", name, err)
		}
	}
	return nil
}
