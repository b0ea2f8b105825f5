package domain

import "time"

type ProductImpression struct {
	ID          int64
	ProductID   int64
	FileID      *int64
	Impressions int64
	ECPM        string
	PeriodStart time.Time
	PeriodEnd   time.Time
}
