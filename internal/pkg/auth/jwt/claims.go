package jwt

import "github.com/golang-jwt/jwt"

// Payload is the claim set carried by the session cookie.
// It names a server-side session; the user record itself never leaves the server.
type Payload struct {
	jwt.StandardClaims

	// SessionID is the key of the session in the session store.
	SessionID string `json:"sid"`
}
