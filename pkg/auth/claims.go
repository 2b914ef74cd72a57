package auth

import "github.com/golang-jwt/jwt/v5"

// AccessTokenPayload carries the identity minted into a gateway token.
type AccessTokenPayload struct {
	UserID    string
	Email     string
	IsAdmin   bool
	SessionID string
}

// AccessTokenClaims is the JWT claim set issued by the gateway. The session
// identifier travels in the registered JTI claim.
type AccessTokenClaims struct {
	UserID  string `json:"uid"`
	Email   string `json:"email,omitempty"`
	IsAdmin bool   `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

// SessionID returns the session identifier embedded in the claims.
func (c AccessTokenClaims) SessionID() string {
	return c.ID
}
