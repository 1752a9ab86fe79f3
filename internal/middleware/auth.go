package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/apierror"
	"github.com/DiegoMeloCoder/FidelizDiego/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	ClaimsKey  = "claims"
	SessionKey = "session"
)

// JWTClaims are the custom claims embedded in every token.
type JWTClaims struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"sid"`
	Type      string `json:"typ"` // access | refresh
	Role      string `json:"role"`
	TenantID  string `json:"tenant_id,omitempty"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	jwt.RegisteredClaims
}

// Session rebuilds the request identity from the claims.
func (c *JWTClaims) Session() (session.Session, error) {
	uid, err := uuid.Parse(c.UserID)
	if err != nil {
		return session.Session{}, err
	}
	sess := session.Session{
		UserID:    uid,
		SessionID: c.SessionID,
		Role:      c.Role,
		Email:     c.Email,
		Name:      c.Name,
	}
	if c.TenantID != "" {
		tid, err := uuid.Parse(c.TenantID)
		if err != nil {
			return session.Session{}, err
		}
		sess.TenantID = &tid
	}
	return sess, nil
}

// RevocationChecker reports whether a session id was signed out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, sid string) (bool, error)
}

// JWTAuth validates the Bearer access token on every protected route.
// Refresh tokens and revoked sessions are rejected. revoked may be nil.
func JWTAuth(secret string, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Authentication required"))
			return
		}

		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid || claims.Type != "access" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Invalid or expired token"))
			return
		}

		sess, err := claims.Session()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Invalid or expired token"))
			return
		}

		if revoked != nil {
			gone, err := revoked.IsRevoked(c.Request.Context(), claims.SessionID)
			if err != nil {
				// fail open on store errors
				log.Warn().Err(err).Str("sid", claims.SessionID).Msg("session revocation check failed")
			} else if gone {
				c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Session has been signed out"))
				return
			}
		}

		c.Set(ClaimsKey, claims)
		c.Set(SessionKey, sess)
		c.Next()
	}
}

// bearerToken reads the Authorization header, falling back to the
// access_token query parameter (EventSource cannot set headers).
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if c.Request.Method == http.MethodGet {
		return c.Query("access_token")
	}
	return ""
}

// RequireRole rejects requests whose JWT role is not in the allowed list.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		claims, ok := c.MustGet(ClaimsKey).(*JWTClaims)
		if !ok || !allowed[claims.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Insufficient permissions"))
			return
		}
		c.Next()
	}
}

// GetSession returns the identity set by JWTAuth.
func GetSession(c *gin.Context) session.Session {
	sess, _ := c.MustGet(SessionKey).(session.Session)
	return sess
}
