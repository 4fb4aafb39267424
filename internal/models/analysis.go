// internal/models/analysis.go
package models

import (
	"encoding/json"
	"time"

	"mission-analyzer/internal/scoring"
)

// Analysis is a saved mission-statement analysis.
type Analysis struct {
	ID                string          `json:"id"`
	UserID            *string         `json:"userId,omitempty"`
	MissionText       string          `json:"missionText"`
	Industry          string          `json:"industry"`
	WordCount         int             `json:"wordCount"`
	OverallScore      int             `json:"overallScore"`
	ClarityScore      int             `json:"clarityScore"`
	SpecificityScore  int             `json:"specificityScore"`
	ImpactScore       int             `json:"impactScore"`
	AuthenticityScore int             `json:"authenticityScore"`
	MemorabilityScore int             `json:"memorabilityScore"`
	FullAnalysis      json.RawMessage `json:"fullAnalysis,omitempty"`
	Recommendations   json.RawMessage `json:"recommendations,omitempty"`
	Alternatives      json.RawMessage `json:"alternatives,omitempty"`
	IsAIAnalysis      bool            `json:"isAiAnalysis"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// Scores returns the five metric scores and the overall score.
func (a *Analysis) Scores() scoring.Scores {
	return scoring.Scores{
		Clarity:      a.ClarityScore,
		Specificity:  a.SpecificityScore,
		Impact:       a.ImpactScore,
		Authenticity: a.AuthenticityScore,
		Memorability: a.MemorabilityScore,
		Overall:      a.OverallScore,
	}
}

// SetScores copies s into the score columns.
func (a *Analysis) SetScores(s scoring.Scores) {
	a.ClarityScore = s.Clarity
	a.SpecificityScore = s.Specificity
	a.ImpactScore = s.Impact
	a.AuthenticityScore = s.Authenticity
	a.MemorabilityScore = s.Memorability
	a.OverallScore = s.Overall
}

// AnalysisDocument is the search-index projection of an Analysis.
type AnalysisDocument struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId,omitempty"`
	MissionText  string    `json:"missionText"`
	Industry     string    `json:"industry"`
	WordCount    int       `json:"wordCount"`
	OverallScore int       `json:"overallScore"`
	Category     string    `json:"category"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (a *Analysis) Document() AnalysisDocument {
	doc := AnalysisDocument{
		ID:           a.ID,
		MissionText:  a.MissionText,
		Industry:     a.Industry,
		WordCount:    a.WordCount,
		OverallScore: a.OverallScore,
		Category:     scoring.ScoreCategory(a.OverallScore),
		CreatedAt:    a.CreatedAt,
	}
	if a.UserID != nil {
		doc.UserID = *a.UserID
	}
	return doc
}

// IndustryStat is one row of the per-industry aggregate.
type IndustryStat struct {
	Industry string `json:"industry"`
	Count    int    `json:"count"`
	AvgScore int    `json:"avgScore"`
}

type ScoreRange struct {
	Range string `json:"score_range"`
	Count int    `json:"count"`
}

type WeeklyTrend struct {
	Week     string `json:"week"`
	Count    int    `json:"count"`
	AvgScore int    `json:"avgScore"`
}

type AverageScores struct {
	Overall      int `json:"overall"`
	Clarity      int `json:"clarity"`
	Specificity  int `json:"specificity"`
	Impact       int `json:"impact"`
	Authenticity int `json:"authenticity"`
	Memorability int `json:"memorability"`
}

// Analytics is the dashboard summary across all saved analyses.
type Analytics struct {
	Overview struct {
		TotalAnalyses int           `json:"totalAnalyses"`
		AverageScores AverageScores `json:"averageScores"`
	} `json:"overview"`
	Industries        []IndustryStat `json:"industries"`
	ScoreDistribution []ScoreRange   `json:"scoreDistribution"`
	Trends            struct {
		Weekly                  []WeeklyTrend  `json:"weekly"`
		TopPerformingIndustries []IndustryStat `json:"topPerformingIndustries"`
	} `json:"trends"`
}
