// Package auth holds the explicit session context handed to the
// workspace at construction. Components never reach into ambient
// globals for credentials; they receive this context as a parameter.
package auth

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"heritageguard/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// Session carries the signed-in user's identity and access token.
// Signature verification is the server's job; the client only decodes
// the token's registered claims so it can refuse to issue calls with a
// token that has already expired.
type Session struct {
	mu          sync.RWMutex
	accessToken string
	userID      string
	expiresAt   time.Time
}

// NewSession decodes the token's claims and builds a session. The
// token signature is not verified client-side.
func NewSession(accessToken string) (*Session, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, &domain.AuthorizationError{Message: "please sign in again", SignIn: true}
	}

	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, &claims); err != nil {
		return nil, &domain.AuthorizationError{
			Message: fmt.Sprintf("malformed access token: %v", err),
			SignIn:  true,
		}
	}

	s := &Session{
		accessToken: accessToken,
		userID:      claims.Subject,
	}
	if claims.ExpiresAt != nil {
		s.expiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

// Token returns the bearer token for outgoing requests, or an
// AuthorizationError when the token is already expired. This check is
// advisory; the server remains the authority on token validity.
func (s *Session) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.expiresAt.IsZero() && time.Now().After(s.expiresAt) {
		return "", &domain.AuthorizationError{Message: "please sign in again", SignIn: true}
	}
	return s.accessToken, nil
}

// UserID returns the token subject, used as the uploadedBy identity.
func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// Refresh swaps in a new access token after a re-authentication.
func (s *Session) Refresh(accessToken string) error {
	next, err := NewSession(accessToken)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = next.accessToken
	s.userID = next.userID
	s.expiresAt = next.expiresAt
	return nil
}
