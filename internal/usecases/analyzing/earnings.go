package analyzing

import (
	"github.com/royaltyx/royaltyx-api/internal/domain"
	"github.com/royaltyx/royaltyx-api/pkg/log"
	"github.com/shopspring/decimal"
)

// productEarnings sums royalty_amount * quantity over the non-refund sales of
// a product. Unlike the series revenue, refunds are left out entirely.
func productEarnings(logger log.Logger, product *domain.Product, sales []*domain.ProductSale) *domain.ProductEarnings {
	earnings := &domain.ProductEarnings{
		ProductID:            product.ID,
		Title:                product.Title,
		TotalRoyaltyEarnings: decimal.Zero,
	}

	for _, sale := range sales {
		if sale.IsRefund {
			earnings.RefundCount++
			continue
		}

		royalty := parseAmount(logger, sale.RoyaltyAmount, "royalty_amount", sale.ID)
		earnings.SalesCount++
		earnings.TotalRoyaltyEarnings = earnings.TotalRoyaltyEarnings.Add(royalty.Mul(decimal.NewFromInt(sale.Quantity)))
	}

	return earnings
}
