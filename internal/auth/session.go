package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/article-comments-api/internal/config"
	"github.com/article-comments-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// SessionCookie is the cookie the login flow sets after the OIDC exchange
const SessionCookie = "session"

const principalKey = "principal"

// SessionClaims carries the identity-provider assertions inside the session
// token. The moderator flag is trusted as-is; there is no authorization store
// behind it.
type SessionClaims struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	IsModerator bool   `json:"is_moderator"`
	jwt.RegisteredClaims
}

// MintToken signs a session token for a principal. The production login flow
// calls this after the identity provider authenticates the user; tests use it
// to fabricate sessions.
func MintToken(secret string, principal *models.Principal, ttl time.Duration) (string, error) {
	claims := SessionClaims{
		Username:    principal.Username,
		Email:       principal.Email,
		IsModerator: principal.IsModerator,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies a session token and returns the principal it asserts
func ParseToken(secret, tokenString string) (*models.Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}

	return &models.Principal{
		Username:    claims.Username,
		Email:       claims.Email,
		IsModerator: claims.IsModerator,
	}, nil
}

// Middleware resolves the caller's principal from the session cookie or a
// bearer token and stores it in the request context. An absent or invalid
// token leaves the request anonymous; each operation decides whether that is
// acceptable.
func Middleware(cfg *config.AuthConfig, log zerolog.Logger) gin.HandlerFunc {
	authLog := log.With().Str("component", "auth").Logger()

	return func(c *gin.Context) {
		tokenString := ""
		if cookie, err := c.Cookie(SessionCookie); err == nil {
			tokenString = cookie
		} else if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		}

		if tokenString == "" {
			c.Next()
			return
		}

		principal, err := ParseToken(cfg.SessionSecret, tokenString)
		if err != nil {
			authLog.Debug().Err(err).Msg("Rejected session token")
			c.Next()
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// PrincipalFromContext returns the resolved principal, or nil when the
// request is anonymous
func PrincipalFromContext(c *gin.Context) *models.Principal {
	value, exists := c.Get(principalKey)
	if !exists {
		return nil
	}
	principal, ok := value.(*models.Principal)
	if !ok {
		return nil
	}
	return principal
}
