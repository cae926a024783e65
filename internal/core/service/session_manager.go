package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/swiftpark/parking-portal/internal/core/domain"
	"github.com/swiftpark/parking-portal/internal/core/ports"
)

const defaultSessionTTL = 24 * time.Hour

// SessionManager binds opaque cookie tokens to server-side session records.
//
// The cookie value is the session ID wrapped in an HS256 JWT signed with the
// configured secret, which makes the token tamper-evident in transit. The
// signature proves nothing beyond possession: the record in the store stays
// the single source of truth, so invalidation takes effect on the very next
// request. Expiry is enforced by the store record, not a token claim, which
// lets the TTL slide on activity.
type SessionManager struct {
	store  ports.SessionStore
	users  ports.UserRepository
	secret []byte
	ttl    time.Duration
	logger zerolog.Logger
}

func NewSessionManager(store ports.SessionStore, users ports.UserRepository, secret string, ttl time.Duration, logger zerolog.Logger) *SessionManager {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionManager{
		store:  store,
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
	}
}

// Start creates a server-side session for the principal and returns the
// signed cookie token.
func (m *SessionManager) Start(ctx context.Context, p *domain.Principal) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	session := &domain.Session{
		ID:        id,
		UserID:    p.UserID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Create(ctx, session); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	token, err := m.sign(id)
	if err != nil {
		// The orphaned record expires on its own; nothing references it.
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// Restore resolves a cookie token back to a principal. Every failure mode —
// malformed or tampered token, missing or expired record, user deleted since
// the session began — degrades to anonymous (nil principal, nil error). A
// successful restore slides the session expiry forward.
func (m *SessionManager) Restore(ctx context.Context, token string) (*domain.Principal, string, error) {
	if token == "" {
		return nil, "", nil
	}

	id, err := m.verify(token)
	if err != nil {
		return nil, "", nil
	}

	session, err := m.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("get session: %w", err)
	}

	now := time.Now().UTC()
	if session.Expired(now) {
		_ = m.store.Delete(ctx, id)
		return nil, "", nil
	}

	user, err := m.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Dangling principal reference: treat as anonymous and drop the
			// session so it is not re-resolved on every request.
			_ = m.store.Delete(ctx, id)
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("resolve session user: %w", err)
	}

	if err := m.store.Refresh(ctx, id, now.Add(m.ttl)); err != nil {
		m.logger.Warn().Err(err).Msg("session refresh failed")
	}

	return &domain.Principal{UserID: user.ID, Email: user.Email, Role: user.Role}, id, nil
}

// Invalidate removes the server-side record for the token. Unknown and
// already-removed tokens are a no-op.
func (m *SessionManager) Invalidate(ctx context.Context, token string) error {
	id, err := m.verify(token)
	if err != nil {
		return nil
	}
	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (m *SessionManager) sign(sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"iat": time.Now().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

func (m *SessionManager) verify(token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrSessionNotFound
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", domain.ErrSessionNotFound
	}
	return sid, nil
}

// newSessionID returns a 32-hex-character random identifier.
func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
