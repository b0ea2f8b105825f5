package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/royaltyx/royaltyx-api/internal/domain"
	"github.com/royaltyx/royaltyx-api/internal/usecases/analyzing"
	"github.com/royaltyx/royaltyx-api/pkg/apiErrors"
	"github.com/royaltyx/royaltyx-api/pkg/log"
	"github.com/royaltyx/royaltyx-api/pkg/middleware"
	"github.com/royaltyx/royaltyx-api/pkg/utils"
)

// GetProjectAnalytics summarises every product of the caller's selected project.
func GetProjectAnalytics(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "user is not authenticated", nil)
			return
		}

		serveAnalytics(w, r, service, domain.Scope{ProjectID: claims.ProjectID})
	})
}

func GetProductAnalytics(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "user is not authenticated", nil)
			return
		}

		productID, err := productIDParam(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "product_id must be a positive integer", nil)
			return
		}

		serveAnalytics(w, r, service, domain.Scope{ProjectID: claims.ProjectID, ProductID: &productID})
	})
}

func serveAnalytics(w http.ResponseWriter, r *http.Request, service analyzing.Analyzer, scope domain.Scope) {
	logger := log.ForContext(r.Context()).WithField("project_id", scope.ProjectID)

	req, errCode, err := parseAnalyticsRequest(r, scope)
	if err != nil {
		logger.WithFields(log.Fields{
			"query": r.URL.RawQuery,
			"error": err.Error(),
		}).Warn("analytics: invalid query parameters")
		apiErrors.WriteError(w, errCode, err.Error(), nil)
		return
	}

	analytics, err := service.CalculateAnalytics(r.Context(), req)
	if err != nil {
		logger.WithError(err).Warn("analytics: request failed")
		writeUsecaseError(w, err)
		return
	}

	writeJSON(w, logger, http.StatusOK, analytics)
}

// parseAnalyticsRequest reads period_start, period_end, granularity and the
// equality filters from the query string.
func parseAnalyticsRequest(r *http.Request, scope domain.Scope) (*domain.AnalyticsRequest, string, error) {
	query := r.URL.Query()

	periodStart, err := utils.ParseDate(query.Get("period_start"))
	if err != nil {
		return nil, apiErrors.ErrInvalidFormat, err
	}

	periodEnd, err := utils.ParseDate(query.Get("period_end"))
	if err != nil {
		return nil, apiErrors.ErrInvalidFormat, err
	}

	granularity, err := analyzing.ParseGranularity(query.Get("granularity"))
	if err != nil {
		return nil, apiErrors.ErrInvalidRequest, err
	}

	filters := make(map[string]any)

	for _, key := range []string{domain.FilterType, domain.FilterRoyaltyCurrency} {
		if query.Has(key) {
			filters[key] = query.Get(key)
		}
	}

	if query.Has(domain.FilterIsRefund) {
		isRefund, err := strconv.ParseBool(query.Get(domain.FilterIsRefund))
		if err != nil {
			return nil, apiErrors.ErrInvalidFormat, invalidParam(domain.FilterIsRefund, "a boolean")
		}
		filters[domain.FilterIsRefund] = isRefund
	}

	if query.Has(domain.FilterFileID) {
		fileID, err := strconv.ParseInt(query.Get(domain.FilterFileID), 10, 64)
		if err != nil {
			return nil, apiErrors.ErrInvalidFormat, invalidParam(domain.FilterFileID, "an integer")
		}
		filters[domain.FilterFileID] = fileID
	}

	return &domain.AnalyticsRequest{
		Scope:       scope,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Granularity: granularity,
		Filters:     filters,
	}, "", nil
}

func productIDParam(r *http.Request) (int64, error) {
	raw := httprouter.ParamsFromContext(r.Context()).ByName("product_id")

	productID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if productID <= 0 {
		return 0, invalidParam("product_id", "a positive integer")
	}

	return productID, nil
}

func invalidParam(name, expected string) error {
	return fmt.Errorf("%s must be %s", name, expected)
}
