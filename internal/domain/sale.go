package domain

import "time"

type SaleType string

const (
	SaleTypePurchase SaleType = "purchase"
	SaleTypeRental   SaleType = "rental"
)

// ProductSale is one imported sale line. Monetary columns keep the raw database
// text so a malformed value can be skipped without failing the whole read.
type ProductSale struct {
	ID                int64
	ProductID         int64
	FileID            *int64
	Type              SaleType
	UnitPrice         string
	UnitPriceCurrency string
	Quantity          int64
	IsRefund          bool
	RoyaltyAmount     string
	RoyaltyCurrency   string
	PeriodStart       time.Time
	PeriodEnd         time.Time
}
