package middleware

import (
	"crypto/rand"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	SessionCookie = "hb_sid"
	sessionKey    = "session_id"
)

// SessionOptions configures the browser session cookie.
type SessionOptions struct {
	// Secret signs the cookie. Empty generates a per-process secret, so
	// sessions do not survive a restart.
	Secret []byte
	TTL    time.Duration
	Secure bool
}

type sessionClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

// Session identifies the browser with a signed cookie. Selections and
// checkouts are owned by this id; a missing, expired or tampered cookie
// starts a fresh session.
func Session(opts SessionOptions) gin.HandlerFunc {
	secret := opts.Secret
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			panic(err)
		}
		logrus.Warn("SESSION_SECRET not set; using an ephemeral session secret")
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}

	return func(c *gin.Context) {
		sid := ""
		if raw, err := c.Cookie(SessionCookie); err == nil && raw != "" {
			if parsed, err := parseSession(raw, secret); err == nil {
				sid = parsed
			}
		}
		if sid == "" {
			sid = uuid.NewString()
		}

		token, err := signSession(sid, secret, ttl, time.Now())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable", "request_id": GetRequestID(c)})
			return
		}
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     SessionCookie,
			Value:    token,
			Path:     "/",
			MaxAge:   int(ttl / time.Second),
			HttpOnly: true,
			Secure:   opts.Secure,
			SameSite: http.SameSiteLaxMode,
		})
		c.Set(sessionKey, sid)
		c.Next()
	}
}

func signSession(sid string, secret []byte, ttl time.Duration, now time.Time) (string, error) {
	claims := sessionClaims{
		SID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parseSession(raw string, secret []byte) (string, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if claims.SID == "" {
		return "", errors.New("session cookie without sid")
	}
	return claims.SID, nil
}

// GetSessionID returns the browser session id set by Session.
func GetSessionID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
