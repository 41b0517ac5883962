package utils

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/cppla/classboard/models"
)

// SessionCookieName is the cookie that carries the signed session.
const SessionCookieName = "session"

var (
	ErrNoSession      = errors.New("no session")
	ErrSessionRevoked = errors.New("session revoked")
)

// SessionClaims is the identity carried by the session cookie.
type SessionClaims struct {
	Name string      `json:"name"`
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Account returns the identity stored in the claims.
func (c *SessionClaims) Account() models.Account {
	return models.Account{Name: c.Name, Role: c.Role}
}

// SessionCodec turns an account into a signed cookie value and back.
type SessionCodec struct {
	secret  []byte
	ttl     time.Duration
	secure  bool
	revoker *Revoker
}

// NewSessionCodec creates a codec. revoker may be nil, in which case logout
// only clears the cookie.
func NewSessionCodec(secret string, ttl time.Duration, secure bool, revoker *Revoker) *SessionCodec {
	return &SessionCodec{secret: []byte(secret), ttl: ttl, secure: secure, revoker: revoker}
}

// Issue signs a new session for the account.
func (s *SessionCodec) Issue(account models.Account) (string, *SessionClaims, error) {
	now := time.Now()
	claims := &SessionClaims{
		Name: account.Name,
		Role: account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return token, claims, nil
}

// Parse verifies the signature, expiry and revocation state of a session token.
func (s *SessionCodec) Parse(ctx context.Context, token string) (*SessionClaims, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid session claims")
	}
	if claims.Role != models.RoleStudent && claims.Role != models.RoleTeacher {
		return nil, errors.New("invalid session role")
	}
	if s.revoker != nil && s.revoker.IsRevoked(ctx, claims.ID) {
		return nil, ErrSessionRevoked
	}
	return claims, nil
}

// FromRequest reads and verifies the session cookie of the request.
func (s *SessionCodec) FromRequest(ctx *gin.Context) (*SessionClaims, error) {
	token, err := ctx.Cookie(SessionCookieName)
	if err != nil {
		return nil, ErrNoSession
	}
	return s.Parse(ctx.Request.Context(), token)
}

// Revoke invalidates the session until it would have expired.
func (s *SessionCodec) Revoke(ctx context.Context, claims *SessionClaims) {
	if s.revoker == nil || claims == nil || claims.ExpiresAt == nil {
		return
	}
	s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// SetCookie stores the token as an http-only, same-site-lax, site-wide cookie.
func (s *SessionCodec) SetCookie(ctx *gin.Context, token string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(SessionCookieName, token, int(s.ttl/time.Second), "/", "", s.secure, true)
}

// ClearCookie expires the session cookie.
func (s *SessionCodec) ClearCookie(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(SessionCookieName, "", -1, "/", "", s.secure, true)
}
