// Package middleware provides HTTP middleware for browser sessions.
package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// sessionIDKey is the context key for storing the session ID.
const sessionIDKey ContextKey = "sessionID"

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "skillgap_session"

// SessionTokens issues and verifies session tokens.
type SessionTokens interface {
	GenerateToken(sessionID uuid.UUID) (string, error)
	ValidateToken(tokenString string) (uuid.UUID, error)
	TTL() time.Duration
}

// SessionMiddleware resolves the session ID from the session cookie and adds
// it to the request context. A missing, invalid or expired token starts a new
// session. The cookie is reissued on every request so idle expiry slides.
func SessionMiddleware(tokens SessionTokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := uuid.Nil
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				if id, err := tokens.ValidateToken(cookie.Value); err == nil {
					sessionID = id
				}
			}
			if sessionID == uuid.Nil {
				sessionID = uuid.New()
			}

			token, err := tokens.GenerateToken(sessionID)
			if err != nil {
				log.Printf("[session] failed to issue token: %v", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(tokens.TTL().Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSessionID extracts the session ID from the request context.
func GetSessionID(r *http.Request) (uuid.UUID, error) {
	sessionID, ok := r.Context().Value(sessionIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("session ID not found in request context")
	}
	return sessionID, nil
}

// SessionIDKey returns the context key for the session ID (for testing purposes).
func SessionIDKey() ContextKey {
	return sessionIDKey
}
