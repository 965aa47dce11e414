package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "learnhub_session"

// sessionClaims is the token payload: user id (sub), role, and the standard
// expiry/issued-at pair. Nothing else goes in -- the token is readable by
// anyone holding it, only tampering is prevented.
type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer creates and verifies signed session tokens. Tokens are
// HMAC-SHA256 signed with the server secret; the signature guarantees the
// embedded id and role were issued by this server and not altered.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer builds an issuer from the configured signing secret and
// session lifetime.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured session lifetime.
func (t *TokenIssuer) TTL() time.Duration {
	return t.ttl
}

// Issue creates a signed session token for the given user.
func (t *TokenIssuer) Issue(userID string, role Role) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// Decode verifies a session token and returns the session it carries.
// Returns nil for ANY failure: bad signature, expired, malformed, wrong
// algorithm, missing claims. Callers never learn why a token was rejected;
// a nil session simply means "not signed in".
func (t *TokenIssuer) Decode(tokenString string) *Session {
	if tokenString == "" {
		return nil
	}

	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	role := Role(claims.Role)
	if claims.Subject == "" || !role.IsValid() || claims.ExpiresAt == nil {
		return nil
	}

	return &Session{
		UserID:    claims.Subject,
		Role:      role,
		ExpiresAt: claims.ExpiresAt.Time,
	}
}

// NeedsRefresh reports whether a session has consumed more than half of its
// lifetime. The route guard re-issues the token past this point, giving
// active users a sliding expiry without re-signing on every request.
func (t *TokenIssuer) NeedsRefresh(s *Session) bool {
	return time.Until(s.ExpiresAt) < t.ttl/2
}
