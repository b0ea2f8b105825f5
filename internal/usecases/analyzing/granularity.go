package analyzing

import (
	"strings"
	"time"

	"github.com/royaltyx/royaltyx-api/internal/domain"
	"github.com/royaltyx/royaltyx-api/pkg/apiErrors"
	"github.com/royaltyx/royaltyx-api/pkg/utils"
)

const (
	dailySpanLimit      = 7
	daysPerMonth        = 30
	daysPerYear         = 365
	yearlySpanInYears   = 2.0
	defaultLookbackDays = 365
)

// SelectGranularity picks the bucket size for [start, end]. Spans of a week or
// less (including inverted ranges) are daily, spans above two years are yearly.
func SelectGranularity(start, end time.Time) domain.Granularity {
	span := utils.DaysBetween(start, end)

	if span <= dailySpanLimit {
		return domain.GranularityDaily
	}

	if float64(span)/daysPerYear > yearlySpanInYears {
		return domain.GranularityYearly
	}

	return domain.GranularityMonthly
}

// ParseGranularity validates a granularity query value. An empty value means
// the granularity is derived from the range.
func ParseGranularity(raw string) (domain.Granularity, error) {
	if raw == "" {
		return "", nil
	}

	granularity := domain.Granularity(strings.ToLower(strings.TrimSpace(raw)))
	if !granularity.IsValid() {
		return "", NewAnalyticsError(ErrInvalidGranularity, apiErrors.ErrInvalidRequest, "expected one of daily, monthly, yearly, got "+raw)
	}

	return granularity, nil
}

func monthCount(start, end time.Time) int {
	return utils.DaysBetween(start, end) / daysPerMonth
}

func yearCount(start, end time.Time) int {
	return utils.DaysBetween(start, end) / daysPerYear
}
