package domain

import "time"

// Scope identifies the set of records an analytics request reads: every product
// of a project, or a single product of that project.
type Scope struct {
	ProjectID int64
	ProductID *int64
}

func (s Scope) IsProduct() bool {
	return s.ProductID != nil
}

// Filter keys accepted as equality pass-through on analytics requests.
const (
	FilterType            = "type"
	FilterRoyaltyCurrency = "royalty_currency"
	FilterIsRefund        = "is_refund"
	FilterFileID          = "file_id"
)

// SaleFilterColumns maps the accepted filter keys to product_sales columns.
var SaleFilterColumns = map[string]string{
	FilterType:            "ps.type",
	FilterRoyaltyCurrency: "ps.royalty_currency",
	FilterIsRefund:        "ps.is_refund",
	FilterFileID:          "ps.file_id",
}

// ImpressionFilterColumns maps the accepted filter keys to product_impressions columns.
var ImpressionFilterColumns = map[string]string{
	FilterFileID: "pi.file_id",
}

type RecordFilters struct {
	PeriodStartGTE *time.Time
	PeriodEndLTE   *time.Time
	Equals         map[string]any
}

// IsSupportedFilter reports whether key applies to at least one record type.
func IsSupportedFilter(key string) bool {
	_, sale := SaleFilterColumns[key]
	_, impression := ImpressionFilterColumns[key]
	return sale || impression
}
