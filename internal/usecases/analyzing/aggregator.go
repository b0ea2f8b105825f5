package analyzing

import (
	"context"
	"time"

	"github.com/royaltyx/royaltyx-api/infrastructure/repository"
	"github.com/royaltyx/royaltyx-api/internal/domain"
	"github.com/royaltyx/royaltyx-api/pkg/log"
	"github.com/royaltyx/royaltyx-api/pkg/utils"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Aggregator turns the records of a scope into totals and a gap-filled time series.
type Aggregator struct {
	sales       repository.SaleRepository
	impressions repository.ImpressionRepository
	now         func() time.Time
}

func NewAggregator(sales repository.SaleRepository, impressions repository.ImpressionRepository) *Aggregator {
	return &Aggregator{
		sales:       sales,
		impressions: impressions,
		now:         utcNow,
	}
}

type bucketTotals struct {
	impressions       int64
	impressionRevenue decimal.Decimal
	sales             int
	rentals           int
	royaltyRevenue    decimal.Decimal
}

// Aggregate loads sales and impressions once each and groups them in memory.
// Buckets are anchored at filters.PeriodEndLTE, or at the current time when
// no end bound is set.
func (a *Aggregator) Aggregate(
	ctx context.Context,
	scope domain.Scope,
	start, end time.Time,
	granularity domain.Granularity,
	filters *domain.RecordFilters,
) (*domain.Analytics, error) {
	var (
		sales       []*domain.ProductSale
		impressions []*domain.ProductImpression
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sales, err = a.sales.FindByScope(gctx, scope, filters)
		return err
	})
	g.Go(func() error {
		var err error
		impressions, err = a.impressions.FindByScope(gctx, scope, filters)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	anchor := a.now()
	if filters != nil && filters.PeriodEndLTE != nil {
		anchor = *filters.PeriodEndLTE
	}

	logger := log.ForContext(ctx)
	logger.WithFields(log.Fields{
		"granularity":      granularity,
		"sale_count":       len(sales),
		"impression_count": len(impressions),
	}).Debug("analytics: records loaded")

	return summarize(logger, granularity, start, end, anchor, sales, impressions), nil
}

func summarize(
	logger log.Logger,
	granularity domain.Granularity,
	start, end, anchor time.Time,
	sales []*domain.ProductSale,
	impressions []*domain.ProductImpression,
) *domain.Analytics {
	analytics := &domain.Analytics{
		Granularity:         granularity,
		PeriodStart:         domain.NewDate(start),
		PeriodEnd:           domain.NewDate(end),
		ImpressionRevenue:   decimal.Zero,
		TotalRoyaltyRevenue: decimal.Zero,
		RentalsRevenue:      decimal.Zero,
		PurchasesRevenue:    decimal.Zero,
	}

	buckets := make(map[string]*bucketTotals)
	bucket := func(day time.Time) *bucketTotals {
		label := bucketLabel(granularity, day)
		b, ok := buckets[label]
		if !ok {
			b = &bucketTotals{impressionRevenue: decimal.Zero, royaltyRevenue: decimal.Zero}
			buckets[label] = b
		}
		return b
	}

	impressionRevenue := decimal.Zero
	for _, impression := range impressions {
		ecpm := parseAmount(logger, impression.ECPM, "ecpm", impression.ID)
		revenue := impressionValue(impression.Impressions, ecpm)

		analytics.TotalImpressions += impression.Impressions
		impressionRevenue = impressionRevenue.Add(revenue)

		b := bucket(impression.PeriodStart)
		b.impressions += impression.Impressions
		b.impressionRevenue = b.impressionRevenue.Add(revenue)
	}
	analytics.ImpressionRevenue = utils.RoundRevenue(impressionRevenue)

	for _, sale := range sales {
		royalty := parseAmount(logger, sale.RoyaltyAmount, "royalty_amount", sale.ID)

		analytics.TotalSalesCount++
		analytics.TotalRoyaltyRevenue = analytics.TotalRoyaltyRevenue.Add(royalty)

		b := bucket(sale.PeriodStart)
		b.sales++
		b.royaltyRevenue = b.royaltyRevenue.Add(royalty)

		switch sale.Type {
		case domain.SaleTypeRental:
			analytics.RentalsCount++
			analytics.RentalsRevenue = analytics.RentalsRevenue.Add(royalty)
			b.rentals++
		case domain.SaleTypePurchase:
			analytics.PurchasesCount++
			analytics.PurchasesRevenue = analytics.PurchasesRevenue.Add(royalty)
		}
	}

	labels := bucketLabels(granularity, start, end, anchor)
	analytics.TimeStats = make([]*domain.TimeStat, 0, len(labels))
	for _, label := range labels {
		stat := &domain.TimeStat{
			BucketLabel:       label,
			ImpressionRevenue: decimal.Zero,
			RoyaltyRevenue:    decimal.Zero,
		}

		if b, ok := buckets[label]; ok {
			stat.Impressions = b.impressions
			stat.ImpressionRevenue = utils.RoundRevenue(b.impressionRevenue)
			stat.Sales = b.sales
			stat.Rentals = b.rentals
			stat.RoyaltyRevenue = b.royaltyRevenue
		}

		analytics.TimeStats = append(analytics.TimeStats, stat)
	}

	return analytics
}

// impressionValue is the revenue of impressions sold at ecpm per thousand.
func impressionValue(impressions int64, ecpm decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(impressions).Mul(ecpm).Shift(-3)
}

// parseAmount reads a stored decimal. Missing or malformed values count as zero.
func parseAmount(logger log.Logger, raw, field string, recordID int64) decimal.Decimal {
	if raw == "" {
		return decimal.Zero
	}

	amount, err := utils.ParseDecimal(raw)
	if err != nil {
		logger.WithFields(log.Fields{
			"record_id": recordID,
			"field":     field,
			"value":     raw,
		}).WithError(err).Warn("analytics: skipping unparseable amount")
		return decimal.Zero
	}

	return amount
}
