package analyzing

import (
	"errors"
	"testing"
	"time"

	"github.com/royaltyx/royaltyx-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectGranularity(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		spanDays int
		expected domain.Granularity
	}{
		{spanDays: -30, expected: domain.GranularityDaily},
		{spanDays: -1, expected: domain.GranularityDaily},
		{spanDays: 0, expected: domain.GranularityDaily},
		{spanDays: 1, expected: domain.GranularityDaily},
		{spanDays: 7, expected: domain.GranularityDaily},
		{spanDays: 8, expected: domain.GranularityMonthly},
		{spanDays: 300, expected: domain.GranularityMonthly},
		{spanDays: 730, expected: domain.GranularityMonthly},
		{spanDays: 731, expected: domain.GranularityYearly},
		{spanDays: 1000, expected: domain.GranularityYearly},
		{spanDays: 1500, expected: domain.GranularityYearly},
	}

	for _, tt := range tests {
		end := start.AddDate(0, 0, tt.spanDays)
		assert.Equal(t, tt.expected, SelectGranularity(start, end), "span of %d days", tt.spanDays)
	}
}

func TestSelectGranularity_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)
	end := time.Date(2024, 3, 9, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, domain.GranularityMonthly, SelectGranularity(start, end))
}

func TestParseGranularity(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected domain.Granularity
		wantErr  bool
	}{
		{name: "empty defers to the range", raw: "", expected: ""},
		{name: "daily", raw: "daily", expected: domain.GranularityDaily},
		{name: "case and spaces are ignored", raw: " Monthly ", expected: domain.GranularityMonthly},
		{name: "yearly", raw: "yearly", expected: domain.GranularityYearly},
		{name: "unknown value", raw: "weekly", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			granularity, err := ParseGranularity(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidGranularity))
				assert.True(t, IsValidationError(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, granularity)
		})
	}
}
