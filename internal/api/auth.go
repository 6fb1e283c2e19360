package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const userIDKey = "lingoloop.userID"

// IssueToken signs an HS256 token whose subject is userID.
func IssueToken(secret []byte, userID string, ttl time.Duration, now time.Time) (string, error) {
	if userID == "" {
		return "", errors.New("user id is required")
	}
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// parseToken returns the subject of a valid token.
func parseToken(secret []byte, raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}

// requireAuth rejects requests without a valid bearer token and stores
// the token subject as the user ID.
func requireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Unauthorized("missing bearer token"))
			return
		}
		userID, err := parseToken(secret, raw)
		if err != nil {
			appErr := Unauthorized("invalid token")
			if errors.Is(err, jwt.ErrTokenExpired) {
				appErr = TokenExpired()
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(appErr.Status, appErr)
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func userID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
