package middleware

import (
	"net/http"
	"slices"

	"github.com/royaltyx/royaltyx-api/internal/domain"
	"github.com/royaltyx/royaltyx-api/pkg/apiErrors"
	"github.com/royaltyx/royaltyx-api/pkg/log"
)

// RoleMiddleware lets the request through only when the caller's role in the
// selected project is one of allowedRoles.
func RoleMiddleware(allowedRoles []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := log.ForContext(r.Context())

			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				logger.Warn("role: request without authentication")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "user is not authenticated", nil)
				return
			}

			if !slices.Contains(allowedRoles, claims.Role) {
				logger.WithFields(log.Fields{
					"user_id":    claims.UserID,
					"project_id": claims.ProjectID,
					"role":       claims.Role,
				}).Warn("role: access denied")
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "you are not allowed to access this resource", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func OwnerOnly() func(http.Handler) http.Handler {
	return RoleMiddleware([]string{domain.RoleOwner})
}

// AllRoles admits any member of the selected project.
func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware([]string{domain.RoleOwner, domain.RoleProducer})
}
