package utils

import (
	"time" // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// SessionTTL is how long a session token and its stored state live
const SessionTTL = 24 * time.Hour

// Claims carried by the session cookie
type Claims struct {
	SessionID            string `json:"sid"`  // Key of the server-side session
	Role                 string `json:"role"` // Role at login, informational
	jwt.RegisteredClaims                      // Standard JWT claims
}

// GenerateJWT creates a session token for a session id
func GenerateJWT(sessionID, role, secret string) (string, error) {
	// Set token claims
	claims := Claims{
		SessionID: sessionID, // Custom claim for session id
		Role:      role,      // Custom claim for role
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionTTL)), // Token expires with the session
			IssuedAt:  jwt.NewNumericDate(time.Now()),                 // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a session token string
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.SessionID != "" {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, jwt.ErrSignatureInvalid
}
