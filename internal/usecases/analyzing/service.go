package analyzing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/royaltyx/royaltyx-api/infrastructure/repository"
	"github.com/royaltyx/royaltyx-api/internal/config"
	"github.com/royaltyx/royaltyx-api/internal/domain"
	"github.com/royaltyx/royaltyx-api/pkg/apiErrors"
	"github.com/royaltyx/royaltyx-api/pkg/log"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

type Analyzer interface {
	CalculateAnalytics(ctx context.Context, req *domain.AnalyticsRequest) (*domain.Analytics, error)
	ProductEarnings(ctx context.Context, projectID, productID int64) (*domain.ProductEarnings, error)
	ListProductEarnings(ctx context.Context, projectID int64) ([]*domain.ProductEarnings, error)
}

type Service struct {
	resolver   *RangeResolver
	aggregator *Aggregator
	sales      repository.SaleRepository
	products   repository.ProductRepository
	maxBuckets int
}

var _ Analyzer = (*Service)(nil)

func NewService(
	cfg *config.Config,
	sales repository.SaleRepository,
	impressions repository.ImpressionRepository,
	products repository.ProductRepository,
) *Service {
	maxBuckets := cfg.Analytics.MaxBuckets
	if maxBuckets <= 0 || maxBuckets > DefaultMaxBuckets {
		maxBuckets = DefaultMaxBuckets
	}

	return &Service{
		resolver:   NewRangeResolver(sales, impressions, cfg.Analytics.DefaultLookbackDays),
		aggregator: NewAggregator(sales, impressions),
		sales:      sales,
		products:   products,
		maxBuckets: maxBuckets,
	}
}

// WithClock replaces the time source used for "today" and the bucket anchor.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.resolver.now = now
	s.aggregator.now = now
	return s
}

func (s *Service) CalculateAnalytics(ctx context.Context, req *domain.AnalyticsRequest) (*domain.Analytics, error) {
	logger := log.ForContext(ctx).WithField("project_id", req.Scope.ProjectID)
	if req.Scope.IsProduct() {
		logger = logger.WithField("product_id", *req.Scope.ProductID)
	}

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	resolved, err := s.resolver.Resolve(ctx, req.Scope, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		logger.WithError(err).Error("analytics: failed to resolve default range")
		return nil, NewAnalyticsError(ErrFetchRecords, apiErrors.ErrDatabaseOperation, err.Error())
	}

	granularity := resolved.Granularity
	if req.Granularity != "" {
		granularity = req.Granularity
	}

	if buckets := estimateBuckets(granularity, resolved.Start, resolved.End); buckets > s.maxBuckets {
		return nil, NewAnalyticsError(ErrTooManyBuckets, apiErrors.ErrInvalidRequest,
			fmt.Sprintf("%s series over %s..%s needs %d buckets, limit is %d",
				granularity, resolved.Start.Format(time.DateOnly), resolved.End.Format(time.DateOnly), buckets, s.maxBuckets))
	}

	filters := &domain.RecordFilters{
		PeriodStartGTE: &resolved.Start,
		PeriodEndLTE:   &resolved.End,
		Equals:         req.Filters,
	}

	analytics, err := s.aggregator.Aggregate(ctx, req.Scope, resolved.Start, resolved.End, granularity, filters)
	if err != nil {
		logger.WithError(err).Error("analytics: failed to load records")
		return nil, NewAnalyticsError(ErrFetchRecords, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if !req.Scope.IsProduct() {
		count, err := s.products.CountByProject(ctx, req.Scope.ProjectID)
		if err != nil {
			logger.WithError(err).Error("analytics: failed to count products")
			return nil, NewAnalyticsError(ErrFetchProducts, apiErrors.ErrDatabaseOperation, err.Error())
		}
		analytics.ProductCount = &count
	}

	logger.WithFields(log.Fields{
		"granularity":  analytics.Granularity,
		"period_start": analytics.PeriodStart.String(),
		"period_end":   analytics.PeriodEnd.String(),
		"buckets":      len(analytics.TimeStats),
	}).Info("analytics: summary computed")

	return analytics, nil
}

// ProductEarnings returns a zero result when the product is not part of the project.
func (s *Service) ProductEarnings(ctx context.Context, projectID, productID int64) (*domain.ProductEarnings, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"project_id": projectID,
		"product_id": productID,
	})

	product, err := s.products.GetByID(ctx, projectID, productID)
	if err != nil {
		logger.WithError(err).Error("earnings: failed to load product")
		return nil, NewAnalyticsError(ErrFetchProducts, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if product == nil {
		return productEarnings(logger, &domain.Product{ID: productID}, nil), nil
	}

	sales, err := s.sales.FindByScope(ctx, domain.Scope{ProjectID: projectID, ProductID: &productID}, nil)
	if err != nil {
		logger.WithError(err).Error("earnings: failed to load sales")
		return nil, NewAnalyticsError(ErrFetchRecords, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return productEarnings(logger, product, sales), nil
}

func (s *Service) ListProductEarnings(ctx context.Context, projectID int64) ([]*domain.ProductEarnings, error) {
	logger := log.ForContext(ctx).WithField("project_id", projectID)

	products, err := s.products.ListByProject(ctx, projectID)
	if err != nil {
		logger.WithError(err).Error("earnings: failed to list products")
		return nil, NewAnalyticsError(ErrFetchProducts, apiErrors.ErrDatabaseOperation, err.Error())
	}

	result := make([]*domain.ProductEarnings, 0, len(products))
	if len(products) == 0 {
		return result, nil
	}

	sales, err := s.sales.FindByScope(ctx, domain.Scope{ProjectID: projectID}, nil)
	if err != nil {
		logger.WithError(err).Error("earnings: failed to load sales")
		return nil, NewAnalyticsError(ErrFetchRecords, apiErrors.ErrDatabaseOperation, err.Error())
	}

	salesByProduct := make(map[int64][]*domain.ProductSale, len(products))
	for _, sale := range sales {
		salesByProduct[sale.ProductID] = append(salesByProduct[sale.ProductID], sale)
	}

	for _, product := range products {
		result = append(result, productEarnings(logger, product, salesByProduct[product.ID]))
	}

	return result, nil
}

func validateRequest(req *domain.AnalyticsRequest) error {
	if req.Granularity != "" && !req.Granularity.IsValid() {
		return NewAnalyticsError(ErrInvalidGranularity, apiErrors.ErrInvalidRequest, string(req.Granularity))
	}

	keys := make([]string, 0, len(req.Filters))
	for key := range req.Filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !domain.IsSupportedFilter(key) {
			return NewAnalyticsError(ErrUnsupportedFilter, apiErrors.ErrInvalidRequest, key)
		}
	}

	return nil
}
