package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/rhenando/gopay-api/internal/config"
	"github.com/rhenando/gopay-api/internal/repository/mongodb"
	"github.com/rhenando/gopay-api/pkg/errors"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/find-bill/main.go <bill_number>")
		fmt.Println("Example: go run cmd/find-bill/main.go 1735689600000")
		os.Exit(1)
	}

	billNumber := os.Args[1]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Initialize document store
	db, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to document store: %v\n", err)
		os.Exit(1)
	}
	defer db.Client().Disconnect(context.Background())

	repos := mongodb.NewRepositories(db, logger)

	fmt.Printf("🔍 Looking up callback records for bill: %s\n\n", billNumber)

	payment, err := repos.Payment.GetByBillNumber(ctx, billNumber)
	switch err.(type) {
	case nil:
		fmt.Printf("✅ Payment record found!\n")
		fmt.Printf("  Payment Status: %s\n", payment.PaymentStatus)
		fmt.Printf("  Payment Amount: %.2f\n", payment.PaymentAmount)
		fmt.Printf("  Payment Date: %s\n", payment.PaymentDate)
		fmt.Printf("  Updated At: %s\n\n", payment.UpdatedAt.Format(time.RFC3339))
	case *errors.ErrNotFound:
		fmt.Printf("❌ No payment record for this bill\n\n")
	default:
		fmt.Fprintf(os.Stderr, "Failed to look up payment record: %v\n", err)
		os.Exit(1)
	}

	settlement, err := repos.Settlement.GetByBillNumber(ctx, billNumber)
	switch err.(type) {
	case nil:
		fmt.Printf("✅ Settlement record found!\n")
		fmt.Printf("  Settlement Status: %s\n", settlement.SettlementStatus)
		fmt.Printf("  Bank: %s\n", settlement.BankID)
		fmt.Printf("  Payment Amount: %.2f\n", settlement.PaymentAmount)
		fmt.Printf("  Updated At: %s\n", settlement.UpdatedAt.Format(time.RFC3339))
	case *errors.ErrNotFound:
		fmt.Printf("❌ No settlement record for this bill\n")
	default:
		fmt.Fprintf(os.Stderr, "Failed to look up settlement record: %v\n", err)
		os.Exit(1)
	}
}
