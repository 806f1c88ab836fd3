package auth

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the payload of the visitor session cookie. The registered
// jti carries the session id that scopes persisted storage.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// SessionID returns the visitor session id.
func (c *SessionClaims) SessionID() string {
	if c == nil {
		return ""
	}
	return c.ID
}
