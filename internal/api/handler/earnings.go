package handler

import (
	"net/http"

	"github.com/royaltyx/royaltyx-api/internal/usecases/analyzing"
	"github.com/royaltyx/royaltyx-api/pkg/apiErrors"
	"github.com/royaltyx/royaltyx-api/pkg/log"
	"github.com/royaltyx/royaltyx-api/pkg/middleware"
)

func GetProductEarnings(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

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

		earnings, err := service.ProductEarnings(r.Context(), claims.ProjectID, productID)
		if err != nil {
			logger.WithError(err).WithField("product_id", productID).Error("earnings: request failed")
			writeUsecaseError(w, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, earnings)
	})
}

func ListProductEarnings(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "user is not authenticated", nil)
			return
		}

		earnings, err := service.ListProductEarnings(r.Context(), claims.ProjectID)
		if err != nil {
			logger.WithError(err).WithField("project_id", claims.ProjectID).Error("earnings: list failed")
			writeUsecaseError(w, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, earnings)
	})
}
