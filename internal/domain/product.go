package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"project_id"`
	Title     string `json:"title"`
	IsActive  bool   `json:"is_active"`
}

// ProductEarnings is the lifetime royalty of a product: royalty_amount times
// quantity, summed over non-refund sales.
type ProductEarnings struct {
	ProductID            int64           `json:"product_id"`
	Title                string          `json:"title,omitempty"`
	TotalRoyaltyEarnings decimal.Decimal `json:"total_royalty_earnings"`
	SalesCount           int             `json:"sales_count"`
	RefundCount          int             `json:"refund_count"`
}
