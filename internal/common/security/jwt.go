package security

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"

	"myflix/internal/domain/model"
)

// TokenManager issues and verifies the stateless bearer credentials.
// The signing key and lifetime are fixed at construction; rotating the
// key invalidates all outstanding tokens.
type TokenManager struct {
	auth     *jwtauth.JWTAuth
	lifetime time.Duration
}

func NewTokenManager(key []byte, lifetime time.Duration) *TokenManager {
	return &TokenManager{
		auth:     jwtauth.New("HS256", key, nil),
		lifetime: lifetime,
	}
}

// JWTAuth exposes the verifier for the router's jwtauth.Verifier middleware.
func (tm *TokenManager) JWTAuth() *jwtauth.JWTAuth {
	return tm.auth
}

func (tm *TokenManager) GenerateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     user.Username,
		"user_id": user.ID,
		"exp":     now.Add(tm.lifetime).Unix(),
		"iat":     now.Unix(),
	}
	_, tokenString, err := tm.auth.Encode(claims)
	return tokenString, err
}

// Helper functions to extract claims, used by the auth middleware.
func UsernameFromClaims(claims jwt.MapClaims) (string, error) {
	username, ok := claims["sub"].(string)
	if !ok || username == "" {
		return "", errors.New("sub claim is missing or not a string")
	}
	return username, nil
}

func UserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}

// TokenFailureReason classifies a verification error for server-side
// logging. Clients always see the same uniform 401.
func TokenFailureReason(err error) string {
	switch {
	case errors.Is(err, jwtauth.ErrNoTokenFound):
		return "missing"
	case errors.Is(err, jwtauth.ErrExpired):
		return "expired"
	case errors.Is(err, jwtauth.ErrAlgoInvalid):
		return "algorithm_mismatch"
	default:
		return "invalid_signature_or_malformed"
	}
}
