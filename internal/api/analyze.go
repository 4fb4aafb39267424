// internal/api/analyze.go
package api

import (
	"net/http"
	"strconv"
	"time"

	"mission-analyzer/internal/common/errors"
	"mission-analyzer/internal/common/metrics"
	"mission-analyzer/internal/common/validation"
	"mission-analyzer/internal/models"
	"mission-analyzer/internal/scoring"

	"github.com/gin-gonic/gin"
)

type analyzeRequest struct {
	MissionText interface{} `json:"missionText"`
	Industry    string      `json:"industry"`
	Profile     string      `json:"profile"`
	Aggregation string      `json:"aggregation"`
	Email       string      `json:"email"`
	ClientID    string      `json:"clientId"`
}

type analyzeResponse struct {
	*scoring.Result
	Access *models.AccessStatus `json:"access,omitempty"`
}

func (s *Server) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	text, err := scoring.TextFrom(req.MissionText)
	if err != nil {
		s.respondError(c, errors.NewInvalidArgumentError(err.Error()), "Failed to analyze mission")
		return
	}
	err = validation.CheckMissionText(text, s.cfg.Paywall.MinTextLength, s.cfg.Paywall.MaxTextLength)
	if err != nil {
		s.respondError(c, err, "Failed to analyze mission")
		return
	}

	profile, agg, err := s.scoringProfile(req.Profile, req.Aggregation)
	if err != nil {
		s.respondError(c, errors.NewInvalidArgumentError(err.Error()), "Failed to analyze mission")
		return
	}

	var access *models.AccessStatus
	if s.deps.Paywall != nil {
		clientID := req.ClientID
		if clientID == "" && req.Email == "" {
			clientID = "ip:" + c.ClientIP()
		}
		access, err = s.deps.Paywall.Check(c.Request.Context(), req.Email, clientID, true)
		if err != nil {
			s.respondError(c, err, "Failed to check analysis access")
			return
		}
	}

	start := time.Now()
	report := scoring.ScoreWith(text, profile, agg)
	metrics.ObserveScore(profile.Name, report.Overall)
	s.deps.Obs.RecordAnalysis(c.Request.Context(), profile.Name, "api", time.Since(start))

	c.JSON(http.StatusOK, analyzeResponse{
		Result: scoring.Assemble(report, text, scoring.Industry(req.Industry)),
		Access: access,
	})
}

func (s *Server) scoringProfile(name, aggName string) (scoring.Profile, scoring.Aggregation, error) {
	if name == "" {
		name = s.cfg.Scoring.Profile
	}
	if aggName == "" {
		aggName = s.cfg.Scoring.Aggregation
	}
	profile, err := scoring.ProfileByName(name)
	if err != nil {
		return scoring.Profile{}, "", err
	}
	agg, err := scoring.ParseAggregation(aggName)
	if err != nil {
		return scoring.Profile{}, "", err
	}
	return profile, agg, nil
}

type compareRequest struct {
	Versions []scoring.Version `json:"versions"`
}

// compare answers {comparison: null} when fewer than two drafts qualify.
func (s *Server) compare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	versions := scoring.FillScores(req.Versions)
	c.JSON(http.StatusOK, gin.H{
		"comparison": scoring.CompareVersions(versions),
		"versions":   versions,
	})
}

type workshopRequest struct {
	Answers  scoring.WorkshopAnswers `json:"answers"`
	Industry string                  `json:"industry"`
}

func (s *Server) workshop(c *gin.Context) {
	var req workshopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if !req.Answers.Complete() {
		s.respondError(c, errors.NewWorkshopIncompleteError(), "Failed to generate mission")
		return
	}
	profile, err := scoring.ProfileByName(s.cfg.Scoring.Profile)
	if err != nil {
		s.respondError(c, errors.NewInvalidArgumentError(err.Error()), "Failed to generate mission")
		return
	}

	ind := scoring.ParseIndustry(req.Industry)
	text := scoring.GenerateMission(req.Answers, ind)
	report := scoring.Score(text, profile)
	metrics.ObserveScore(profile.Name, report.Overall)

	c.JSON(http.StatusOK, gin.H{
		"missionText": text,
		"report":      report,
		"benchmark":   scoring.Benchmarked(report.Overall, ind),
	})
}

// benchmark returns the industry row. With ?score= the score is placed
// within the industry too.
func (s *Server) benchmark(c *gin.Context) {
	ind := scoring.ParseIndustry(c.Param("industry"))
	raw := c.Query("score")
	if raw == "" {
		c.JSON(http.StatusOK, gin.H{
			"industry":  ind,
			"label":     scoring.IndustryLabel(ind),
			"benchmark": scoring.BenchmarkFor(ind),
		})
		return
	}
	score, err := strconv.Atoi(raw)
	if err != nil || score < 0 || score > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "score must be an integer between 0 and 100"})
		return
	}
	c.JSON(http.StatusOK, scoring.Benchmarked(score, ind))
}
