package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nutriswap/backend/internal/domain"
)

// HealthData is the health section carried in a session token
type HealthData struct {
	HealthIssues []string `json:"healthIssues"`
	Allergies    []string `json:"allergies"`
}

// Claims are the session token claims
type Claims struct {
	HealthData HealthData `json:"healthData"`
	jwt.RegisteredClaims
}

// ProfileFromToken verifies an HS256 session token and returns the health
// profile stored in its claims
func ProfileFromToken(token, secret string) (domain.HealthProfile, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.HealthProfile{}, fmt.Errorf("%w: empty token", domain.ErrInvalidToken)
	}
	if secret == "" {
		return domain.HealthProfile{}, fmt.Errorf("%w: no signing secret configured", domain.ErrInvalidToken)
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.HealthProfile{}, fmt.Errorf("%w: token expired", domain.ErrInvalidToken)
		}
		return domain.HealthProfile{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	return domain.HealthProfile{
		HealthIssues: claims.HealthData.HealthIssues,
		Allergies:    claims.HealthData.Allergies,
	}, nil
}

// BearerToken extracts the token from an Authorization header value.
// It returns "" when the header is not a bearer credential.
func BearerToken(header string) string {
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
