package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/royaltyx/royaltyx-api/internal/usecases/analyzing"
	"github.com/royaltyx/royaltyx-api/pkg/apiErrors"
	"github.com/royaltyx/royaltyx-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, logger log.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.WithError(err).Error("failed to encode response")
	}
}

// writeUsecaseError maps usecase failures to the API error envelope. Server
// side details stay in the logs.
func writeUsecaseError(w http.ResponseWriter, err error) {
	var analyticsErr *analyzing.AnalyticsError
	if !errors.As(err, &analyticsErr) {
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "internal server error", nil)
		return
	}

	if apiErrors.StatusFor(analyticsErr.Code) >= http.StatusInternalServerError {
		apiErrors.WriteError(w, analyticsErr.Code, analyticsErr.Err.Error(), nil)
		return
	}

	apiErrors.WriteError(w, analyticsErr.Code, analyticsErr.Error(), nil)
}
