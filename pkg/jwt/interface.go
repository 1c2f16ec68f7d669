package jwt

// Manager issues and verifies the service's access tokens.
type Manager interface {
	CreateToken(payload Payload) (string, error)
	Verify(token string) (Payload, error)
}

// New returns a Manager signing with the given HMAC secret.
func New(secretKey string) Manager {
	return &implManager{secretKey: secretKey}
}
