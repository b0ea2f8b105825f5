package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/royaltyx/royaltyx-api/internal/scheduler"
	"github.com/royaltyx/royaltyx-api/pkg/apiErrors"
	"github.com/royaltyx/royaltyx-api/pkg/log"
)

const (
	CronJobTypeRecordPurge = "record-purge"
	CronJobTypeAll         = "all"
)

// CronJobServices holds the jobs that can be triggered over HTTP.
type CronJobServices struct {
	RecordPurgeService *scheduler.RecordPurgeService
}

func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "cron job type is required", nil)
			return
		}

		switch cronType {
		case CronJobTypeRecordPurge, CronJobTypeAll:
			if services.RecordPurgeService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "record purge service is not available", nil)
				return
			}

			started := services.RecordPurgeService.TriggerManualRun()
			logger.WithFields(log.Fields{"type": cronType, "started": started}).Info("cron: manual run requested")

			message := "cron job started"
			if !started {
				message = "cron job already running"
			}

			writeJSON(w, logger, http.StatusAccepted, map[string]any{
				"message": message,
				"type":    cronType,
				"started": started,
			})
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid cron job type, expected one of: record-purge, all", nil)
		}
	})
}

func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")

		status := map[string]any{}
		switch cronType {
		case CronJobTypeRecordPurge, CronJobTypeAll:
			if services.RecordPurgeService != nil {
				status[CronJobTypeRecordPurge] = services.RecordPurgeService.GetStatus()
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid cron job type, expected one of: record-purge, all", nil)
			return
		}

		writeJSON(w, log.ForContext(r.Context()), http.StatusOK, status)
	})
}
