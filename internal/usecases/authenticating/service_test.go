package authenticating

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/royaltyx/royaltyx-api/internal/config"
	"github.com/royaltyx/royaltyx-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims *domain.Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestService_ValidateToken(t *testing.T) {
	service := NewService(&config.Config{Auth: config.Auth{Secret: testSecret}})
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))
	past := jwt.NewNumericDate(time.Now().Add(-time.Hour))

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		wantErr error
	}{
		{
			name: "valid owner token",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), &domain.Claims{
					UserID: 1, ProjectID: 7, Role: domain.RoleOwner,
					RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: future},
				})
			},
		},
		{
			name: "expired token",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), &domain.Claims{
					UserID: 1, ProjectID: 7, Role: domain.RoleOwner,
					RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: past},
				})
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "signed with another secret",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, []byte("other"), &domain.Claims{
					UserID: 1, ProjectID: 7, Role: domain.RoleOwner,
				})
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "no selected project",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), &domain.Claims{
					UserID: 1, Role: domain.RoleProducer,
				})
			},
			wantErr: ErrMissingProjectClaim,
		},
		{
			name:    "garbage",
			token:   func(t *testing.T) string { return "not-a-jwt" },
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token(t))

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, claims)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(7), claims.ProjectID)
			assert.Equal(t, domain.RoleOwner, claims.Role)
		})
	}
}
