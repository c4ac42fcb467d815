package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pres-portal/auth-gateway/internal/core/domain"
	"github.com/pres-portal/auth-gateway/internal/core/ports"
)

// CookieName is the session cookie issued to clients of the user-facing
// route group.
const CookieName = "PRES_SESSION"

const defaultSessionTTL = 12 * time.Hour

type sessionClaims struct {
	SessionID   string   `json:"sid"`
	Authorities []string `json:"auth"`
	jwt.RegisteredClaims
}

// SessionManager issues and validates session tokens. A token is an HS256
// JWT carrying the session id, principal and authorities; the signature
// stops clients from forging ids, and the registry decides whether the id
// is still live. Authorities ride in the token so that reuse does not hit
// the user store on every request.
type SessionManager struct {
	registry ports.SessionRegistry
	secret   []byte
	ttl      time.Duration
}

func NewSessionManager(registry ports.SessionRegistry, secret string, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionManager{registry: registry, secret: []byte(secret), ttl: ttl}
}

// Issue registers a new session for the identity and returns its signed
// token. evicted names the session pushed out by the concurrent-session
// cap, or "" when the cap had room.
func (m *SessionManager) Issue(ctx context.Context, identity *domain.AuthenticatedIdentity, now time.Time) (token, evicted string, err error) {
	sid, err := newSessionID()
	if err != nil {
		return "", "", err
	}

	evicted, err = m.registry.Register(ctx, identity.Username, sid, now)
	if err != nil {
		return "", "", fmt.Errorf("register session: %w", err)
	}

	claims := sessionClaims{
		SessionID:   sid,
		Authorities: identity.Authorities,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", "", err
	}
	return token, evicted, nil
}

// Validate parses a session token and checks the session is still
// registered. Any defect (bad signature, expiry, evicted session) comes
// back as domain.ErrAuthenticationFailed; the caller re-authenticates or
// rejects.
func (m *SessionManager) Validate(ctx context.Context, token string) (*domain.AuthenticatedIdentity, error) {
	claims, err := m.parse(token)
	if err != nil {
		return nil, domain.ErrAuthenticationFailed
	}

	ok, err := m.registry.Contains(ctx, claims.Subject, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrAuthenticationFailed
	}

	return &domain.AuthenticatedIdentity{
		Username:              claims.Subject,
		CredentialsNonExpired: true,
		AccountNonLocked:      true,
		AccountNonExpired:     true,
		Authorities:           claims.Authorities,
	}, nil
}

// Invalidate evicts the token's session. Invalid tokens are a no-op: there
// is nothing to log out.
func (m *SessionManager) Invalidate(ctx context.Context, token string) error {
	claims, err := m.parse(token)
	if err != nil {
		return nil
	}
	return m.registry.Evict(ctx, claims.Subject, claims.SessionID)
}

func (m *SessionManager) parse(token string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid || claims.SessionID == "" || claims.Subject == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func newSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
