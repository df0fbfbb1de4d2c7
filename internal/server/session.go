package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonathan/skillgap/internal/server/middleware"
)

// defaultTokenTTL bounds session tokens when no session TTL is configured.
const defaultTokenTTL = 24 * time.Hour

// SessionClaims are the claims of a session cookie. The subject is the session ID.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// SessionService signs and verifies session cookie tokens with HS256.
type SessionService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionService creates a session service. The secret must not be empty.
func NewSessionService(secret []byte, ttl time.Duration) (*SessionService, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("session secret is empty")
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &SessionService{secret: secret, ttl: ttl, now: time.Now}, nil
}

// TTL returns how long issued tokens stay valid.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// GenerateToken generates a signed token for the given session ID.
func (s *SessionService) GenerateToken(sessionID uuid.UUID) (string, error) {
	now := s.now()

	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a token and returns the session ID it carries.
func (s *SessionService) ValidateToken(tokenString string) (uuid.UUID, error) {
	if tokenString == "" {
		return uuid.Nil, fmt.Errorf("token string is empty")
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return uuid.Nil, fmt.Errorf("invalid token signature: %w", err)
		case errors.Is(err, jwt.ErrTokenExpired):
			return uuid.Nil, fmt.Errorf("token expired: %w", err)
		case errors.Is(err, jwt.ErrTokenMalformed):
			return uuid.Nil, fmt.Errorf("malformed token: %w", err)
		}
		return uuid.Nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return uuid.Nil, fmt.Errorf("token is not valid")
	}

	sessionID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid session subject: %w", err)
	}

	return sessionID, nil
}

// AsSessionTokens returns this service as the middleware's token interface.
func (s *SessionService) AsSessionTokens() middleware.SessionTokens {
	return s
}
