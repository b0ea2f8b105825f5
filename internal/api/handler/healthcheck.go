package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/royaltyx/royaltyx-api/pkg/log"
)

const healthcheckTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthcheckHandler reports liveness and whether the database answers.
func HealthcheckHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		body := map[string]any{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		}

		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthcheckTimeout)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				logger.WithError(err).Warn("healthcheck: database unreachable")
				body["status"] = "degraded"
				body["database"] = "unreachable"
				writeJSON(w, logger, http.StatusServiceUnavailable, body)
				return
			}
			body["database"] = "ok"
		}

		writeJSON(w, logger, http.StatusOK, body)
	})
}
