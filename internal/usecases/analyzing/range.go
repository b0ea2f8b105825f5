package analyzing

import (
	"context"
	"time"

	"github.com/royaltyx/royaltyx-api/infrastructure/repository"
	"github.com/royaltyx/royaltyx-api/internal/domain"
	"github.com/royaltyx/royaltyx-api/pkg/utils"
	"golang.org/x/sync/errgroup"
)

// RangeResolver decides which period an analytics request covers.
type RangeResolver struct {
	sales        repository.SaleRepository
	impressions  repository.ImpressionRepository
	lookbackDays int
	now          func() time.Time
}

func NewRangeResolver(sales repository.SaleRepository, impressions repository.ImpressionRepository, lookbackDays int) *RangeResolver {
	if lookbackDays <= 0 {
		lookbackDays = defaultLookbackDays
	}

	return &RangeResolver{
		sales:        sales,
		impressions:  impressions,
		lookbackDays: lookbackDays,
		now:          utcNow,
	}
}

// Resolve uses start and end verbatim when both are given. Otherwise both are
// ignored and the range runs from the earliest record in scope (or the
// lookback window when the scope is empty) to today.
func (r *RangeResolver) Resolve(ctx context.Context, scope domain.Scope, start, end *time.Time) (*domain.ResolvedRange, error) {
	if start != nil && end != nil {
		periodStart, periodEnd := utils.TruncateToDay(*start), utils.TruncateToDay(*end)
		return &domain.ResolvedRange{
			Start:       periodStart,
			End:         periodEnd,
			Granularity: SelectGranularity(periodStart, periodEnd),
			Explicit:    true,
		}, nil
	}

	today := utils.TruncateToDay(r.now())

	earliest, err := r.earliestRecord(ctx, scope)
	if err != nil {
		return nil, err
	}

	periodStart := today.AddDate(0, 0, -r.lookbackDays)
	if earliest != nil {
		periodStart = *earliest
	}

	return &domain.ResolvedRange{
		Start:       periodStart,
		End:         today,
		Granularity: SelectGranularity(periodStart, today),
	}, nil
}

func (r *RangeResolver) earliestRecord(ctx context.Context, scope domain.Scope) (*time.Time, error) {
	var saleStart, impressionStart *time.Time

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		saleStart, err = r.sales.EarliestPeriodStart(gctx, scope)
		return err
	})
	g.Go(func() error {
		var err error
		impressionStart, err = r.impressions.EarliestPeriodStart(gctx, scope)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return earliestOf(saleStart, impressionStart), nil
}

// utcNow is the default clock; "today" is always the UTC calendar date.
func utcNow() time.Time {
	return time.Now().UTC()
}

func earliestOf(dates ...*time.Time) *time.Time {
	var earliest *time.Time
	for _, date := range dates {
		if date == nil {
			continue
		}
		if earliest == nil || date.Before(*earliest) {
			day := utils.TruncateToDay(*date)
			earliest = &day
		}
	}
	return earliest
}
