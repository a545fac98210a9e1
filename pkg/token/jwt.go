package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/RogansDev/romedicals-api/pkg/apperror"
)

// Claims is the identity a verified token carries. The domain treats the
// token itself as opaque; only these three fields cross the boundary.
type Claims struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

type jwtClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Service issues and verifies signed, time-limited identity tokens. Tokens
// are stateless: there is no server-side revocation, so logout is a
// client-side concern.
type Service struct {
	secret []byte
	expiry time.Duration
}

// NewService takes the expiry as given; the config layer owns the default.
func NewService(secret string, expiry time.Duration) *Service {
	return &Service{secret: []byte(secret), expiry: expiry}
}

// Generate produces a signed token for the given identity.
func (s *Service) Generate(userID uuid.UUID, email, role string) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token. Expired tokens are reported
// distinctly from malformed or tampered ones.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperror.Wrap(apperror.KindSessionExpired, "session expired", err)
		}
		return nil, apperror.Wrap(apperror.KindInvalidCredential, "invalid token", err)
	}

	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok || !parsed.Valid {
		return nil, apperror.New(apperror.KindInvalidCredential, "invalid token claims")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInvalidCredential, "invalid user ID in token", err)
	}

	return &Claims{UserID: userID, Email: claims.Email, Role: claims.Role}, nil
}
