// internal/api/auth.go
package api

import (
	stderrors "errors"
	"net/http"
	"strings"

	"mission-analyzer/internal/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	_ = c.ShouldBindJSON(&req)
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	user, err := s.deps.Users.FindByEmail(c.Request.Context(), strings.TrimSpace(req.Email))
	if stderrors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err != nil {
		s.logger.Error("login lookup failed", map[string]interface{}{"error": err})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}
	if user.HashedPassword == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := s.issueToken(user.ID, user.Email)
	if err != nil {
		s.logger.Error("failed to sign token", map[string]interface{}{"error": err})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookie, token, int(s.tokenTTL().Seconds()), "/", "", s.secureCookies(), true)
	c.JSON(http.StatusOK, gin.H{"user": user.Public()})
}

func (s *Server) secureCookies() bool {
	return s.cfg.Server.CookieSecure || s.cfg.Environment() == "production"
}

const passwordCost = 12

// HashPassword is used when seeding users.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
