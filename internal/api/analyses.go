// internal/api/analyses.go
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"mission-analyzer/internal/models"
	"mission-analyzer/internal/scoring"
	"mission-analyzer/internal/store"

	"github.com/gin-gonic/gin"
)

func (s *Server) listAnalyses(c *gin.Context) {
	uid := userID(c)
	if uid == "" {
		c.JSON(http.StatusOK, gin.H{"analyses": []models.Analysis{}})
		return
	}
	analyses, err := s.deps.Analyses.ListByUser(c.Request.Context(), uid, store.DefaultListLimit)
	if err != nil {
		s.respondError(c, err, "Failed to fetch analyses")
		return
	}
	if analyses == nil {
		analyses = []models.Analysis{}
	}
	c.JSON(http.StatusOK, gin.H{"analyses": analyses})
}

type saveAnalysisRequest struct {
	MissionText         string          `json:"missionText" binding:"required"`
	Industry            string          `json:"industry"`
	Scores              *scoring.Scores `json:"scores" binding:"required"`
	Analysis            json.RawMessage `json:"analysis"`
	Weaknesses          json.RawMessage `json:"weaknesses"`
	Recommendations     json.RawMessage `json:"recommendations"`
	AlternativeRewrites json.RawMessage `json:"alternativeRewrites"`
}

func (s *Server) saveAnalysis(c *gin.Context) {
	var req saveAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missionText and scores are required"})
		return
	}

	full, err := json.Marshal(map[string]json.RawMessage{
		"analysis":   orNull(req.Analysis),
		"weaknesses": orNull(req.Weaknesses),
	})
	if err != nil {
		s.respondError(c, err, "Failed to save analysis")
		return
	}

	a := &models.Analysis{
		MissionText:     req.MissionText,
		Industry:        string(scoring.ParseIndustry(req.Industry)),
		WordCount:       scoring.WordCount(req.MissionText),
		FullAnalysis:    full,
		Recommendations: req.Recommendations,
		Alternatives:    req.AlternativeRewrites,
		IsAIAnalysis:    true,
	}
	if uid := userID(c); uid != "" {
		a.UserID = &uid
	}
	a.SetScores(*req.Scores)

	if err := s.deps.Analyses.Create(c.Request.Context(), a); err != nil {
		s.respondError(c, err, "Failed to save analysis")
		return
	}

	if s.deps.Search != nil {
		if err := s.deps.Search.Index(c.Request.Context(), a.Document()); err != nil {
			s.logger.Warn("failed to index analysis", map[string]interface{}{"analysisId": a.ID, "error": err})
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "analysisId": a.ID})
}

func orNull(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	return raw
}

func (s *Server) searchAnalyses(c *gin.Context) {
	if s.deps.Search == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Search is not configured"})
		return
	}
	q := store.SearchQuery{
		Text:     c.Query("q"),
		Industry: c.Query("industry"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		q.Limit = limit
	}
	if q.Industry != "" {
		q.Industry = string(scoring.ParseIndustry(q.Industry))
	}

	docs, total, err := s.deps.Search.Search(c.Request.Context(), q)
	if err != nil {
		s.respondError(c, err, "Failed to search analyses")
		return
	}
	if docs == nil {
		docs = []models.AnalysisDocument{}
	}
	c.JSON(http.StatusOK, gin.H{"results": docs, "total": total})
}

func (s *Server) analytics(c *gin.Context) {
	out, err := s.deps.Analyses.Analytics(c.Request.Context(), s.now())
	if err != nil {
		s.respondError(c, err, "Failed to fetch analytics")
		return
	}
	c.JSON(http.StatusOK, out)
}
