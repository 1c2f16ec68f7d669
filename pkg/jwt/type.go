package jwt

import "github.com/golang-jwt/jwt/v5"

// Payload represents the JWT token claims. TenantID scopes every claim
// holder to exactly one tenant.
type Payload struct {
	jwt.RegisteredClaims
	UserID   string `json:"sub"`
	TenantID string `json:"tenant_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// implManager implements Manager.
type implManager struct {
	secretKey string
}
