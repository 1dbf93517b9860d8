package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const (
	RoleAdmin  = "admin"
	adminIDKey = "admin_subject"
)

type adminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AdminOnly requires an HS256 bearer token carrying the admin role. With
// no secret every request is refused.
func AdminOnly(secret []byte) gin.HandlerFunc {
	if len(secret) == 0 {
		logrus.Warn("ADMIN_TOKEN_SECRET not set; admin routes are disabled")
	}
	return func(c *gin.Context) {
		if len(secret) == 0 {
			abortUnauthorized(c, "admin access is not configured")
			return
		}
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, "missing bearer token")
			return
		}
		sub, err := parseAdminToken(raw, secret)
		if err != nil {
			logrus.WithField("request_id", GetRequestID(c)).WithError(err).Warn("admin token rejected")
			abortUnauthorized(c, "invalid token")
			return
		}
		c.Set(adminIDKey, sub)
		c.Next()
	}
}

// SignAdminToken issues an admin bearer token for subject.
func SignAdminToken(secret []byte, subject string, ttl time.Duration, now time.Time) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("admin token secret is empty")
	}
	claims := adminClaims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parseAdminToken(raw string, secret []byte) (string, error) {
	var claims adminClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	if claims.Role != RoleAdmin {
		return "", errors.New("token lacks admin role")
	}
	return claims.Subject, nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", `Bearer realm="admin"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg, "request_id": GetRequestID(c)})
}

// GetAdminSubject returns the subject of the token accepted by AdminOnly.
func GetAdminSubject(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(adminIDKey)
}
