package analyzing

import (
	"slices"
	"time"

	"github.com/royaltyx/royaltyx-api/internal/domain"
	"github.com/royaltyx/royaltyx-api/pkg/utils"
)

// DefaultMaxBuckets bounds the length of a time series, roughly ten years of days.
const DefaultMaxBuckets = 3660

const (
	monthLabelLayout = "2006-01"
	yearLabelLayout  = "2006"
)

// bucketLabel returns the label of the bucket a record starting on day falls into.
func bucketLabel(granularity domain.Granularity, day time.Time) string {
	switch granularity {
	case domain.GranularityYearly:
		return day.Format(yearLabelLayout)
	case domain.GranularityMonthly:
		return day.Format(monthLabelLayout)
	default:
		return day.Format(time.DateOnly)
	}
}

// estimateBuckets is an upper bound on len(bucketLabels(...)) for the range.
func estimateBuckets(granularity domain.Granularity, start, end time.Time) int {
	span := utils.DaysBetween(start, end)

	switch granularity {
	case domain.GranularityYearly:
		return max(span/daysPerYear, 0) + 2
	case domain.GranularityMonthly:
		return max(span/daysPerMonth, 0) + 3
	default:
		return max(span+1, 0)
	}
}

// bucketLabels lists the series labels in ascending order.
//
// Monthly and yearly series hold max(span/30, 1) months or max(span/365, 1)
// years counted back from the anchor. A count of one is widened to two and
// shifted one unit forward, so the anchor period and the next one are shown.
// The walk then continues back until it reaches the period of start.
// Steps are whole calendar units; a fixed 30-day step would skip or repeat
// months when walking back from the 31st.
func bucketLabels(granularity domain.Granularity, start, end, anchor time.Time) []string {
	switch granularity {
	case domain.GranularityYearly:
		return walkBack(
			utils.FirstOfYear(anchor),
			utils.FirstOfYear(start),
			yearCount(start, end),
			func(t time.Time, n int) time.Time { return t.AddDate(n, 0, 0) },
			yearLabelLayout,
		)
	case domain.GranularityMonthly:
		return walkBack(
			utils.FirstOfMonth(anchor),
			utils.FirstOfMonth(start),
			monthCount(start, end),
			func(t time.Time, n int) time.Time { return t.AddDate(0, n, 0) },
			monthLabelLayout,
		)
	default:
		return dailyLabels(start, end)
	}
}

func dailyLabels(start, end time.Time) []string {
	start, end = utils.TruncateToDay(start), utils.TruncateToDay(end)

	labels := make([]string, 0, max(utils.DaysBetween(start, end)+1, 0))
	for day := start; !day.After(end) && len(labels) < DefaultMaxBuckets; day = day.AddDate(0, 0, 1) {
		labels = append(labels, day.Format(time.DateOnly))
	}

	return labels
}

func walkBack(anchor, floor time.Time, count int, step func(time.Time, int) time.Time, layout string) []string {
	shift := 0
	if count < 1 {
		count = 1
	}
	if count == 1 {
		count = 2
		shift = 1
	}

	labels := make([]string, 0, count)
	for i := 0; i < DefaultMaxBuckets; i++ {
		point := step(anchor, shift-i)
		if i >= count && point.Before(floor) {
			break
		}
		labels = append(labels, point.Format(layout))
	}

	slices.Reverse(labels)
	return labels
}
