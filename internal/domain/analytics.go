package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityMonthly Granularity = "monthly"
	GranularityYearly  Granularity = "yearly"
)

func (g Granularity) IsValid() bool {
	switch g {
	case GranularityDaily, GranularityMonthly, GranularityYearly:
		return true
	}
	return false
}

// Date is a calendar day rendered as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(time.DateOnly)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

type AnalyticsRequest struct {
	Scope       Scope
	PeriodStart *time.Time
	PeriodEnd   *time.Time
	Granularity Granularity
	Filters     map[string]any
}

// ResolvedRange is the outcome of range resolution: the bounds actually used
// and the granularity implied by their span.
type ResolvedRange struct {
	Start       time.Time
	End         time.Time
	Granularity Granularity
	Explicit    bool
}

type TimeStat struct {
	BucketLabel       string          `json:"bucket_label"`
	Impressions       int64           `json:"impressions"`
	Sales             int             `json:"sales"`
	Rentals           int             `json:"rentals"`
	ImpressionRevenue decimal.Decimal `json:"impression_revenue"`
	RoyaltyRevenue    decimal.Decimal `json:"royalty_revenue"`
}

type Analytics struct {
	Granularity         Granularity     `json:"granularity"`
	PeriodStart         Date            `json:"period_start"`
	PeriodEnd           Date            `json:"period_end"`
	TotalImpressions    int64           `json:"total_impressions"`
	ImpressionRevenue   decimal.Decimal `json:"impression_revenue"`
	TotalSalesCount     int             `json:"total_sales_count"`
	TotalRoyaltyRevenue decimal.Decimal `json:"total_royalty_revenue"`
	RentalsCount        int             `json:"rentals_count"`
	RentalsRevenue      decimal.Decimal `json:"rentals_revenue"`
	PurchasesCount      int             `json:"purchases_count"`
	PurchasesRevenue    decimal.Decimal `json:"purchases_revenue"`
	ProductCount        *int            `json:"product_count,omitempty"`
	TimeStats           []*TimeStat     `json:"time_stats"`
}
