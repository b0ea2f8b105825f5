package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/royaltyx/royaltyx-api/internal/domain"
	"github.com/royaltyx/royaltyx-api/internal/usecases/authenticating"
	"github.com/royaltyx/royaltyx-api/internal/usecases/authenticating/mocks"
	"github.com/royaltyx/royaltyx-api/pkg/apiErrors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	authenticator := mocks.NewMockAuthenticator(ctrl)

	tests := []struct {
		name       string
		path       string
		header     string
		setup      func()
		wantStatus int
		wantBody   string
	}{
		{
			name:       "healthcheck is public",
			path:       "/healthcheck",
			setup:      func() {},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "missing header",
			path:       "/v1/analytics",
			setup:      func() {},
			wantStatus: http.StatusUnauthorized,
			wantBody:   apiErrors.ErrInvalidToken,
		},
		{
			name:       "not a bearer token",
			path:       "/v1/analytics",
			header:     "Basic abc",
			setup:      func() {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "expired token keeps its code",
			path:   "/v1/analytics",
			header: "Bearer expired",
			setup: func() {
				authenticator.EXPECT().ValidateToken("expired").
					Return(nil, authenticating.NewAuthError(authenticating.ErrExpiredToken, apiErrors.ErrExpiredToken, ""))
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   apiErrors.ErrExpiredToken,
		},
		{
			name:   "valid token reaches the handler",
			path:   "/v1/analytics",
			header: "Bearer good",
			setup: func() {
				authenticator.EXPECT().ValidateToken("good").
					Return(&domain.Claims{UserID: 1, ProjectID: 7, Role: domain.RoleProducer}, nil)
			},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(authenticator)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		claims     *domain.Claims
		middleware func(http.Handler) http.Handler
		wantStatus int
	}{
		{name: "owner on owner route", claims: &domain.Claims{Role: domain.RoleOwner}, middleware: OwnerOnly(), wantStatus: http.StatusNoContent},
		{name: "producer on owner route", claims: &domain.Claims{Role: domain.RoleProducer}, middleware: OwnerOnly(), wantStatus: http.StatusForbidden},
		{name: "producer on member route", claims: &domain.Claims{Role: domain.RoleProducer}, middleware: AllRoles(), wantStatus: http.StatusNoContent},
		{name: "unknown role", claims: &domain.Claims{Role: "guest"}, middleware: AllRoles(), wantStatus: http.StatusForbidden},
		{name: "no claims", middleware: AllRoles(), wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil)
			if tt.claims != nil {
				req = req.WithContext(WithClaims(req.Context(), tt.claims))
			}
			rec := httptest.NewRecorder()

			tt.middleware(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"http://localhost:3000"})(okHandler())

	t.Run("allowed origin preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/analytics", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("foreign origin gets no cors headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/analytics", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestLogPanicMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	rec := httptest.NewRecorder()

	LoggingMiddleware()(LogPanicMiddleware()(panicking)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/analytics", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrInternalServer)
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name     string
		limiter  *RateLimiter
		expected []int
	}{
		{
			name:     "burst then reject",
			limiter:  NewRateLimiter(true, 0.001, 2),
			expected: []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests},
		},
		{
			name:     "disabled never rejects",
			limiter:  NewRateLimiter(false, 0.001, 1),
			expected: []int{http.StatusNoContent, http.StatusNoContent, http.StatusNoContent},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := RateLimit(tt.limiter)(okHandler())

			for i, expected := range tt.expected {
				req := httptest.NewRequest(http.MethodGet, "/v1/analytics", nil)
				req = req.WithContext(WithClaims(req.Context(), &domain.Claims{ProjectID: 5, Role: domain.RoleOwner}))
				rec := httptest.NewRecorder()

				h.ServeHTTP(rec, req)

				assert.Equal(t, expected, rec.Code, "request %d", i)
			}
		})
	}
}

func TestRateLimit_SeparateProjects(t *testing.T) {
	h := RateLimit(NewRateLimiter(true, 0.001, 1))(okHandler())

	for _, projectID := range []int64{1, 2} {
		req := httptest.NewRequest(http.MethodGet, "/v1/analytics", nil)
		req = req.WithContext(WithClaims(req.Context(), &domain.Claims{ProjectID: projectID, Role: domain.RoleOwner}))
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
}
