package domain

// TokenVerifier verifies a bearer token and returns the authenticated user ID.
// Token issuance and credential management live in the surrounding application.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}
