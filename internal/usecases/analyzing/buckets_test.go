package analyzing

import (
	"testing"
	"time"

	"github.com/royaltyx/royaltyx-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestBucketLabels(t *testing.T) {
	tests := []struct {
		name        string
		granularity domain.Granularity
		start, end  time.Time
		expected    []string
	}{
		{
			name:        "monthly half year",
			granularity: domain.GranularityMonthly,
			start:       day(2024, 1, 1),
			end:         day(2024, 6, 30),
			expected:    []string{"2024-01", "2024-02", "2024-03", "2024-04", "2024-05", "2024-06"},
		},
		{
			name:        "single month is widened to two and shifted forward",
			granularity: domain.GranularityMonthly,
			start:       day(2024, 6, 1),
			end:         day(2024, 7, 15),
			expected:    []string{"2024-06", "2024-07", "2024-08"},
		},
		{
			name:        "span under a month still covers both edge months",
			granularity: domain.GranularityMonthly,
			start:       day(2024, 5, 20),
			end:         day(2024, 6, 10),
			expected:    []string{"2024-05", "2024-06", "2024-07"},
		},
		{
			name:        "yearly extends back to the start year",
			granularity: domain.GranularityYearly,
			start:       day(2020, 3, 1),
			end:         day(2024, 6, 30),
			expected:    []string{"2020", "2021", "2022", "2023", "2024"},
		},
		{
			name:        "daily crosses a leap day",
			granularity: domain.GranularityDaily,
			start:       day(2024, 2, 27),
			end:         day(2024, 3, 2),
			expected:    []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"},
		},
		{
			name:        "daily single day",
			granularity: domain.GranularityDaily,
			start:       day(2024, 3, 1),
			end:         day(2024, 3, 1),
			expected:    []string{"2024-03-01"},
		},
		{
			name:        "inverted daily range is empty",
			granularity: domain.GranularityDaily,
			start:       day(2024, 5, 10),
			end:         day(2024, 5, 1),
			expected:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			labels := bucketLabels(tt.granularity, tt.start, tt.end, tt.end)

			assert.NotNil(t, labels)
			assert.Equal(t, tt.expected, labels)
		})
	}
}

func TestBucketLabels_AnchorIsTheEndOfTheWalk(t *testing.T) {
	labels := bucketLabels(domain.GranularityMonthly, day(2024, 1, 1), day(2024, 4, 30), day(2024, 9, 1))

	assert.Equal(t, "2024-09", labels[len(labels)-1])
	assert.Equal(t, "2024-01", labels[0])
}

func TestBucketLabels_Ascending(t *testing.T) {
	granularities := []domain.Granularity{
		domain.GranularityDaily,
		domain.GranularityMonthly,
		domain.GranularityYearly,
	}

	for _, granularity := range granularities {
		labels := bucketLabels(granularity, day(2019, 11, 3), day(2024, 2, 14), day(2024, 2, 14))
		for i := 1; i < len(labels); i++ {
			assert.Less(t, labels[i-1], labels[i], "%s labels out of order at %d", granularity, i)
		}
	}
}

func TestBucketLabel(t *testing.T) {
	date := day(2023, 8, 20)

	assert.Equal(t, "2023-08-20", bucketLabel(domain.GranularityDaily, date))
	assert.Equal(t, "2023-08", bucketLabel(domain.GranularityMonthly, date))
	assert.Equal(t, "2023", bucketLabel(domain.GranularityYearly, date))
}

func TestEstimateBuckets(t *testing.T) {
	assert.Equal(t, 10, estimateBuckets(domain.GranularityDaily, day(2024, 1, 1), day(2024, 1, 10)))
	assert.Equal(t, 0, estimateBuckets(domain.GranularityDaily, day(2024, 1, 10), day(2024, 1, 1)))

	// the estimate must never be below the real series length
	start, end := day(2015, 7, 9), day(2024, 2, 14)
	for _, granularity := range []domain.Granularity{domain.GranularityMonthly, domain.GranularityYearly} {
		assert.GreaterOrEqual(t, estimateBuckets(granularity, start, end), len(bucketLabels(granularity, start, end, end)))
	}
}
