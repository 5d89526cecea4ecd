package domain

import "time"

// TokenIssuer issues bearer tokens for a member.
type TokenIssuer interface {
	Issue(memberID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated member ID.
type TokenVerifier interface {
	Verify(token string) (memberID string, err error)
}
