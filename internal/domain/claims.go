package domain

import "github.com/golang-jwt/jwt/v5"

const (
	RoleOwner    = "owner"
	RoleProducer = "producer"
)

// Claims carried by the bearer token issued by the auth service. ProjectID is
// the project currently selected by the user.
type Claims struct {
	UserID    int64  `json:"user_id"`
	ProjectID int64  `json:"project_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}
