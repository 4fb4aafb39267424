// internal/api/email.go
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"mission-analyzer/internal/common/validation"
	"mission-analyzer/internal/models"
	"mission-analyzer/internal/report"
	"mission-analyzer/internal/scoring"

	"github.com/gin-gonic/gin"
)

const (
	msgReportSent   = "Report sent to your email successfully!"
	msgReportFailed = "Request saved, but email could not be sent at this time."
	msgReportSaved  = "Report request saved successfully"
	msgReportQueued = "Report request saved, your report will arrive shortly"
)

type emailCaptureRequest struct {
	Email           string          `json:"email"`
	FirstName       string          `json:"firstName"`
	Company         string          `json:"company"`
	MissionText     string          `json:"missionText"`
	OverallScore    *int            `json:"overallScore"`
	Industry        string          `json:"industry"`
	Scores          *scoring.Scores `json:"scores"`
	Recommendations json.RawMessage `json:"recommendations"`
	Alternatives    json.RawMessage `json:"alternatives"`
}

func (r emailCaptureRequest) hasAnalysis() bool {
	return r.Scores != nil && present(r.Recommendations) && present(r.Alternatives)
}

func present(raw json.RawMessage) bool {
	v := strings.TrimSpace(string(raw))
	return v != "" && v != "null"
}

func (s *Server) emailCapture(c *gin.Context) {
	var req emailCaptureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	ctx := c.Request.Context()
	email := validation.NormalizeEmail(req.Email)
	capture := &models.EmailCapture{
		Email:        email,
		FirstName:    req.FirstName,
		Company:      req.Company,
		MissionText:  req.MissionText,
		OverallScore: req.OverallScore,
		Industry:     req.Industry,
	}
	if capture.OverallScore == nil && req.Scores != nil {
		overall := req.Scores.Overall
		capture.OverallScore = &overall
	}
	if err := s.deps.Captures.Upsert(ctx, capture); err != nil {
		s.respondError(c, err, "Failed to process request")
		return
	}

	if !req.hasAnalysis() {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": msgReportSaved, "emailSent": false})
		return
	}

	d := report.Data{
		FirstName:   req.FirstName,
		Company:     req.Company,
		MissionText: req.MissionText,
		Industry:    scoring.ParseIndustry(req.Industry),
		Scores:      *req.Scores,
		GeneratedAt: s.now().UTC(),
	}
	d.Recommendations, d.Alternatives = s.decodeExtras(req.Recommendations, req.Alternatives)

	if processID := s.cfg.Camunda.ReportProcessID; processID != "" && s.deps.Processes != nil {
		key, err := s.deps.Processes.StartProcess(ctx, processID, reportVariables(email, d))
		if err == nil {
			c.JSON(http.StatusOK, gin.H{
				"success":            true,
				"message":            msgReportQueued,
				"emailSent":          false,
				"processInstanceKey": key,
			})
			return
		}
		s.logger.Warn("failed to start report process, sending directly", map[string]interface{}{"error": err})
	}

	sent := s.sendReport(c, email, d)
	msg := msgReportFailed
	if sent {
		msg = msgReportSent
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg, "emailSent": sent})
}

// sendReport mails the report and marks the capture. Failures are logged and
// reported as not sent.
func (s *Server) sendReport(c *gin.Context, email string, d report.Data) bool {
	ctx := c.Request.Context()
	n, err := s.deps.Reports.SendReport(ctx, email, report.WithDefaults(d))
	if err != nil {
		s.logger.Warn("failed to send report", map[string]interface{}{"error": err})
		return false
	}
	if n.Status != models.StatusSent {
		return false
	}
	if err := s.deps.Captures.MarkReportSent(ctx, email, n.SentAt); err != nil {
		s.logger.Warn("failed to mark report sent", map[string]interface{}{"notificationId": n.ID, "error": err})
	}
	return true
}

// decodeExtras reads caller-supplied recommendations and rewrites. Shapes we
// cannot read are dropped and replaced by the computed defaults.
func (s *Server) decodeExtras(recsRaw, altsRaw json.RawMessage) ([]scoring.Recommendation, scoring.Alternatives) {
	var recs []scoring.Recommendation
	if present(recsRaw) {
		if err := json.Unmarshal(recsRaw, &recs); err != nil {
			s.logger.Debug("ignoring recommendations", map[string]interface{}{"error": err})
			recs = nil
		}
	}
	var alts scoring.Alternatives
	if present(altsRaw) {
		if err := json.Unmarshal(altsRaw, &alts); err != nil {
			s.logger.Debug("ignoring alternatives", map[string]interface{}{"error": err})
			alts = scoring.Alternatives{}
		}
	}
	return recs, alts
}

// reportVariables are the process variables read by the send-analysis-report
// worker.
func reportVariables(email string, d report.Data) map[string]interface{} {
	vars := map[string]interface{}{
		"email":       email,
		"firstName":   d.FirstName,
		"company":     d.Company,
		"missionText": d.MissionText,
		"industry":    string(d.Industry),
		"scores":      d.Scores,
	}
	if len(d.Recommendations) > 0 {
		vars["recommendations"] = d.Recommendations
	}
	if !d.Alternatives.IsEmpty() {
		vars["alternatives"] = d.Alternatives
	}
	return vars
}

type emailReportRequest struct {
	Email       string          `json:"email"`
	FirstName   string          `json:"firstName"`
	Company     string          `json:"company"`
	MissionText string          `json:"missionText"`
	Industry    string          `json:"industry"`
	Scores      *scoring.Scores `json:"scores"`
	AIAnalysis  struct {
		Recommendations json.RawMessage `json:"recommendations"`
		Alternatives    json.RawMessage `json:"alternatives"`
	} `json:"aiAnalysis"`
}

func (s *Server) emailReport(c *gin.Context) {
	var req emailReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if !validation.IsValidEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid email address is required"})
		return
	}
	if strings.TrimSpace(req.MissionText) == "" || req.Scores == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mission text and scores are required"})
		return
	}

	d := report.Data{
		FirstName:   req.FirstName,
		Company:     req.Company,
		MissionText: req.MissionText,
		Industry:    scoring.ParseIndustry(req.Industry),
		Scores:      *req.Scores,
		GeneratedAt: s.now().UTC(),
	}
	d.Recommendations, d.Alternatives = s.decodeExtras(req.AIAnalysis.Recommendations, req.AIAnalysis.Alternatives)

	n, err := s.deps.Reports.SendReport(c.Request.Context(), validation.NormalizeEmail(req.Email), report.WithDefaults(d))
	if err != nil {
		s.respondError(c, err, "Failed to send email")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Email sent successfully",
		"status":  n.Status,
	})
}
