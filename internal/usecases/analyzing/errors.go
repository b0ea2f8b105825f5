package analyzing

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidGranularity = errors.New("invalid granularity")
	ErrUnsupportedFilter  = errors.New("unsupported filter")
	ErrTooManyBuckets     = errors.New("range produces too many buckets")
	ErrFetchRecords       = errors.New("error fetching records")
	ErrFetchProducts      = errors.New("error fetching products")
)

// AnalyticsError carries the API error code a failure should be reported with.
type AnalyticsError struct {
	Err     error
	Code    string
	Details string
}

func (e *AnalyticsError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AnalyticsError) Unwrap() error {
	return e.Err
}

func NewAnalyticsError(baseErr error, code string, details string) *AnalyticsError {
	return &AnalyticsError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

// IsValidationError reports whether err was caused by the request itself.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidGranularity) ||
		errors.Is(err, ErrUnsupportedFilter) ||
		errors.Is(err, ErrTooManyBuckets)
}
