// Package session issues, validates and revokes signed sessions.
//
// A Session is created on sign-in, invalidated on sign-out and re-derived
// on refresh. Handlers receive it from the gin context rather than from
// any global state.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"mumu_delivery/internal/models"
)

const contextKey = "session"

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrRevoked      = errors.New("session has been signed out")
)

type Session struct {
	UserID    uint        `json:"user_id"`
	Name      string      `json:"name"`
	Role      models.Role `json:"role"`
	TokenID   string      `json:"-"`
	ExpiresAt time.Time   `json:"expires_at"`
}

func (s *Session) IsAdmin() bool  { return s.Role == models.RoleAdmin }
func (s *Session) IsDriver() bool { return s.Role == models.RoleDriver }

type Claims struct {
	UserID uint        `json:"user_id"`
	Name   string      `json:"name"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs tokens and keeps the revocation list. Revoked ids are
// dropped once their token would have expired anyway.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret:  []byte(secret),
		ttl:     ttl,
		now:     time.Now,
		revoked: make(map[string]time.Time),
	}
}

// Issue starts a session for u.
func (m *Manager) Issue(u models.User) (string, *Session, error) {
	now := m.now()
	s := &Session{
		UserID:    u.ID,
		Name:      u.Name,
		Role:      u.Role,
		TokenID:   uuid.NewString(),
		ExpiresAt: now.Add(m.ttl),
	}
	claims := Claims{
		UserID: s.UserID,
		Name:   s.Name,
		Role:   s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.TokenID,
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, s, nil
}

// Parse validates a bearer token and rebuilds its session.
func (m *Manager) Parse(tokenStr string) (*Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.Role.Valid() || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	if m.isRevoked(claims.ID) {
		return nil, ErrRevoked
	}
	s := &Session{
		UserID:  claims.UserID,
		Name:    claims.Name,
		Role:    claims.Role,
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

// Revoke ends s; its token is rejected from now on.
func (m *Manager) Revoke(s *Session) {
	if s == nil || s.TokenID == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[s.TokenID] = s.ExpiresAt
	m.pruneLocked()
}

// Refresh replaces s with a session built from the current profile u.
func (m *Manager) Refresh(s *Session, u models.User) (string, *Session, error) {
	token, next, err := m.Issue(u)
	if err != nil {
		return "", nil, err
	}
	m.Revoke(s)
	return token, next, nil
}

func (m *Manager) isRevoked(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[id]
	return ok
}

func (m *Manager) pruneLocked() {
	now := m.now()
	for id, exp := range m.revoked {
		if !exp.IsZero() && exp.Before(now) {
			delete(m.revoked, id)
		}
	}
}

// Set stores s on the request context.
func Set(c *gin.Context, s *Session) {
	c.Set(contextKey, s)
}

// FromContext returns the session placed by the auth middleware.
func FromContext(c *gin.Context) (*Session, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*Session)
	return s, ok && s != nil
}
