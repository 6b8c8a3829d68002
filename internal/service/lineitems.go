package service

import (
	"github.com/shopspring/decimal"

	"github.com/rhenando/gopay-api/internal/domain"
	"github.com/rhenando/gopay-api/pkg/errors"
)

const shippingReference = "shipping"

// BuildBillLines converts cart items into gateway-formatted billable lines.
// Unit price is subtotal/quantity rendered with exactly two fractional digits
// (half-up). A positive shipping cost appends one synthetic line; zero or
// negative shipping adds nothing.
func BuildBillLines(items []domain.CartItem, shippingCost float64) ([]domain.BillLine, error) {
	if len(items) == 0 {
		return nil, &errors.ErrValidation{Message: "cart must contain at least one item"}
	}

	lines := make([]domain.BillLine, 0, len(items)+1)
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, &errors.ErrValidation{
				Message: "item quantity must be positive",
				Fields:  map[string]string{"id": item.ID},
			}
		}

		unitPrice := decimal.NewFromFloat(item.Subtotal).
			Div(decimal.NewFromInt(int64(item.Quantity)))

		lines = append(lines, domain.BillLine{
			Reference: item.ID,
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice.StringFixed(2),
			Discount:  "0",
			VATRate:   domain.VATStandard,
		})
	}

	if shippingCost > 0 {
		lines = append(lines, domain.BillLine{
			Reference: shippingReference,
			Name:      "Shipping",
			Quantity:  1,
			UnitPrice: decimal.NewFromFloat(shippingCost).StringFixed(2),
			Discount:  "0",
			VATRate:   domain.VATStandard,
		})
	}

	return lines, nil
}
