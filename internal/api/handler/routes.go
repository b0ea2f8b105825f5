package handler

import (
	"net/http"

	"github.com/royaltyx/royaltyx-api/internal/api/handler/router"
	"github.com/royaltyx/royaltyx-api/internal/usecases/analyzing"
	"github.com/royaltyx/royaltyx-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Analytics(service analyzing.Analyzer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/analytics",
			Method:      http.MethodGet,
			Handler:     GetProjectAnalytics(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/products/:product_id/analytics",
			Method:      http.MethodGet,
			Handler:     GetProductAnalytics(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Earnings(service analyzing.Analyzer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/products/:product_id/earnings",
			Method:      http.MethodGet,
			Handler:     GetProductEarnings(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/earnings",
			Method:      http.MethodGet,
			Handler:     ListProductEarnings(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.OwnerOnly()},
		},
		{
			Path:        "/v1/cron/:type/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.OwnerOnly()},
		},
	}
}
