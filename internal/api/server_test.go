package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/royaltyx/royaltyx-api/internal/api/handler"
	"github.com/royaltyx/royaltyx-api/internal/config"
	"github.com/royaltyx/royaltyx-api/internal/domain"
	"github.com/royaltyx/royaltyx-api/internal/usecases/analyzing/mocks"
	"github.com/royaltyx/royaltyx-api/internal/usecases/authenticating"
	authmocks "github.com/royaltyx/royaltyx-api/internal/usecases/authenticating/mocks"
	"github.com/royaltyx/royaltyx-api/pkg/apiErrors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func TestNewHandler(t *testing.T) {
	cfg := &config.Config{Cors: config.Cors{AllowedOrigins: []string{"http://localhost:3000"}}}

	tests := []struct {
		name         string
		method       string
		target       string
		token        string
		setup        func(analyzer *mocks.MockAnalyzer, auth *authmocks.MockAuthenticator)
		expectedCode int
	}{
		{
			name:         "healthcheck is public",
			method:       http.MethodGet,
			target:       "/healthcheck",
			setup:        func(*mocks.MockAnalyzer, *authmocks.MockAuthenticator) {},
			expectedCode: http.StatusOK,
		},
		{
			name:         "preflight skips auth",
			method:       http.MethodOptions,
			target:       "/v1/analytics",
			setup:        func(*mocks.MockAnalyzer, *authmocks.MockAuthenticator) {},
			expectedCode: http.StatusOK,
		},
		{
			name:         "missing token",
			method:       http.MethodGet,
			target:       "/v1/analytics",
			setup:        func(*mocks.MockAnalyzer, *authmocks.MockAuthenticator) {},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:   "expired token",
			method: http.MethodGet,
			target: "/v1/analytics",
			token:  "expired",
			setup: func(_ *mocks.MockAnalyzer, auth *authmocks.MockAuthenticator) {
				auth.EXPECT().ValidateToken("expired").
					Return(nil, authenticating.NewAuthError(authenticating.ErrExpiredToken, apiErrors.ErrExpiredToken, ""))
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:   "valid token reaches the analyzer with the claimed project",
			method: http.MethodGet,
			target: "/v1/analytics",
			token:  "valid",
			setup: func(analyzer *mocks.MockAnalyzer, auth *authmocks.MockAuthenticator) {
				auth.EXPECT().ValidateToken("valid").
					Return(&domain.Claims{UserID: 2, ProjectID: 77, Role: domain.RoleProducer}, nil)
				analyzer.EXPECT().CalculateAnalytics(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req *domain.AnalyticsRequest) (*domain.Analytics, error) {
						assert.Equal(t, int64(77), req.Scope.ProjectID)
						assert.False(t, req.Scope.IsProduct())
						return &domain.Analytics{Granularity: domain.GranularityMonthly, TimeStats: []*domain.TimeStat{}}, nil
					})
			},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			analyzer := mocks.NewMockAnalyzer(ctrl)
			auth := authmocks.NewMockAuthenticator(ctrl)
			tt.setup(analyzer, auth)

			h := NewHandler(cfg, okPinger{}, analyzer, auth, handler.CronJobServices{})

			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
		})
	}
}
