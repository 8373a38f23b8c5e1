package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/models"
	"github.com/TejasKeerthi/yatra-smart-guide/internal/pkg/config"
)

// SessionClaims carries the session union through the auth cookie.
type SessionClaims struct {
	Kind        string `json:"kind"`
	DisplayName string `json:"name"`
	Email       string `json:"email,omitempty"`
	PhotoURL    string `json:"photo,omitempty"`
	jwt.RegisteredClaims
}

// IssueToken signs a JWT for the session.
func IssueToken(session models.Session, cfg config.JWTConfig) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Kind:        string(session.Kind),
		DisplayName: session.DisplayName,
		Email:       session.Email,
		PhotoURL:    session.PhotoURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.UID,
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.SecretKey))
}

// ValidateToken parses and verifies a session token, returning the
// embedded session.
func ValidateToken(tokenString string, cfg config.JWTConfig) (models.Session, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return models.Anonymous(), fmt.Errorf("%w: invalid session token", models.ErrUnauthenticated)
	}

	kind := models.SessionKind(claims.Kind)
	switch kind {
	case models.SessionAuthenticated, models.SessionGuest:
	default:
		return models.Anonymous(), fmt.Errorf("%w: unknown session kind %q", models.ErrUnauthenticated, claims.Kind)
	}

	return models.Session{
		Kind:        kind,
		UID:         claims.Subject,
		DisplayName: claims.DisplayName,
		Email:       claims.Email,
		PhotoURL:    claims.PhotoURL,
	}, nil
}
