// internal/api/access.go
package api

import (
	"net/http"
	"strings"

	"mission-analyzer/internal/common/errors"
	"mission-analyzer/internal/common/validation"
	"mission-analyzer/internal/models"
	"mission-analyzer/internal/paywall"

	"github.com/gin-gonic/gin"
)

func (s *Server) purchaseWebhook(c *gin.Context) {
	var hook models.PurchaseWebhook
	if err := c.ShouldBindJSON(&hook); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid webhook payload"})
		return
	}
	s.logger.Info("purchase webhook received", map[string]interface{}{
		"product": hook.ProductPermalink,
		"saleId":  hook.SaleID,
	})

	result, err := s.deps.Paywall.ApplyPurchase(c.Request.Context(), hook)
	if err != nil {
		if stdErr, ok := errors.As(err); ok && stdErr.Code == errors.ErrCodeWebhookInvalid {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": paywall.MessageNoEmail})
			return
		}
		s.logger.Error("webhook processing failed", map[string]interface{}{"error": err})
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Webhook processing failed"})
		return
	}

	body := gin.H{"success": true, "message": result.Message}
	if result.Granted {
		body["email"] = result.Email
	}
	c.JSON(http.StatusOK, body)
}

func (s *Server) accessStatus(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"hasUnlimitedAccess": false, "error": "Email required"})
		return
	}
	s.writeAccess(c, email, "Failed to check access")
}

type verifyAccessRequest struct {
	Email string `json:"email"`
}

func (s *Server) verifyAccess(c *gin.Context) {
	var req verifyAccessRequest
	_ = c.ShouldBindJSON(&req)
	if !strings.Contains(req.Email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"hasUnlimitedAccess": false, "error": "Valid email required"})
		return
	}
	s.writeAccess(c, req.Email, "Verification failed")
}

func (s *Server) writeAccess(c *gin.Context, email, failure string) {
	status, err := s.deps.Paywall.Status(c.Request.Context(), validation.NormalizeEmail(email))
	if err != nil {
		s.logger.Error(failure, map[string]interface{}{"error": err})
		c.JSON(http.StatusInternalServerError, gin.H{"hasUnlimitedAccess": false, "error": failure})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"hasUnlimitedAccess": status.HasUnlimitedAccess,
		"purchaseDate":       nullable(status.PurchaseDate),
		"orderId":            nullable(status.OrderID),
	})
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
