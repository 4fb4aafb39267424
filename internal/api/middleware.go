// internal/api/middleware.go
package api

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"mission-analyzer/internal/common/errors"
	"mission-analyzer/internal/common/metrics"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	authCookie = "auth-token"
	ctxUserID  = "userID"
	ctxEmail   = "email"
)

func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.APIRequests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request handled", map[string]interface{}{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		})
	}
}

// optionalAuth sets the user ID from the auth cookie or a Bearer token when
// one is present and valid. Anonymous requests pass through.
func (s *Server) optionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token, _ = c.Cookie(authCookie)
		}
		if token == "" {
			c.Next()
			return
		}
		claims, err := s.parseToken(token)
		if err != nil {
			s.logger.Debug("ignoring invalid auth token", map[string]interface{}{"error": err})
			c.Next()
			return
		}
		c.Set(ctxUserID, claims.userID)
		c.Set(ctxEmail, claims.email)
		c.Next()
	}
}

func bearerToken(header string) string {
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

type tokenClaims struct {
	userID string
	email  string
}

func (s *Server) issueToken(userID, email string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"email":  email,
		"exp":    s.now().Add(s.tokenTTL()).Unix(),
	})
	return t.SignedString([]byte(s.cfg.Server.JWTSecret))
}

func (s *Server) parseToken(raw string) (*tokenClaims, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.Server.JWTSecret), nil
	})
	if err != nil || !t.Valid {
		return nil, errors.NewAuthenticationError("invalid token")
	}
	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.NewAuthenticationError("invalid claims")
	}
	userID, _ := claims["userId"].(string)
	if userID == "" {
		return nil, errors.NewAuthenticationError("token has no user")
	}
	email, _ := claims["email"].(string)
	return &tokenClaims{userID: userID, email: email}, nil
}

func (s *Server) tokenTTL() time.Duration {
	if ttl := s.cfg.Server.TokenTTL(); ttl > 0 {
		return ttl
	}
	return 7 * 24 * time.Hour
}

// userID returns the authenticated user, or "".
func userID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// respondError answers with the status mapped from the error code. Internal
// errors are logged and replaced by fallback.
func (s *Server) respondError(c *gin.Context, err error, fallback string) {
	stdErr, ok := errors.As(err)
	if !ok {
		s.logger.Error(fallback, map[string]interface{}{"path": c.FullPath(), "error": err})
		c.JSON(500, gin.H{"error": fallback})
		return
	}
	status := errors.HTTPStatus(stdErr.Code)
	if status >= 500 {
		s.logger.Error(fallback, map[string]interface{}{"path": c.FullPath(), "code": stdErr.Code, "error": err})
		c.JSON(status, gin.H{"error": fallback, "code": stdErr.Code})
		return
	}
	body := gin.H{"error": stdErr.Message, "code": stdErr.Code}
	if stdErr.Details != "" {
		body["details"] = stdErr.Details
	}
	if len(stdErr.Metadata) > 0 {
		body["metadata"] = stdErr.Metadata
	}
	c.JSON(status, body)
}
