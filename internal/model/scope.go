package model

const (
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
	RoleViewer = "VIEWER"
)

// Scope is the authenticated identity a request acts under. TenantID is
// always present; every channel the scope can touch embeds it.
type Scope struct {
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
	Username string `json:"username"`
	Role     string `json:"role"` // ADMIN, MEMBER, or VIEWER
}

// IsAdmin checks if the scope has admin role.
func (s Scope) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// SameTenant reports whether the scope belongs to the given tenant.
func (s Scope) SameTenant(tenantID string) bool {
	return s.TenantID == tenantID
}
