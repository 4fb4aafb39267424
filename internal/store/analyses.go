// internal/store/analyses.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mission-analyzer/internal/common/errors"
	"mission-analyzer/internal/models"

	"github.com/google/uuid"
)

const (
	// DefaultListLimit is the number of analyses shown on the dashboard.
	DefaultListLimit = 20

	trendWeeks = 4
	week       = 7 * 24 * time.Hour
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Create inserts a, assigning ID and CreatedAt when unset.
func (r *AnalysisRepository) Create(ctx context.Context, a *models.Analysis) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO analyses (
			id, user_id, mission_text, industry, word_count,
			overall_score, clarity_score, specificity_score, impact_score,
			authenticity_score, memorability_score,
			full_analysis, recommendations, alternatives, is_ai_analysis, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		a.ID, a.UserID, a.MissionText, a.Industry, a.WordCount,
		a.OverallScore, a.ClarityScore, a.SpecificityScore, a.ImpactScore,
		a.AuthenticityScore, a.MemorabilityScore,
		nullableJSON(a.FullAnalysis), nullableJSON(a.Recommendations), nullableJSON(a.Alternatives),
		a.IsAIAnalysis, a.CreatedAt,
	)
	if err != nil {
		return errors.NewDatabaseInsertFailedError(err)
	}
	return nil
}

// ListByUser returns the user's newest analyses first.
func (r *AnalysisRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.Analysis, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, mission_text, industry, word_count,
			overall_score, clarity_score, specificity_score, impact_score,
			authenticity_score, memorability_score,
			full_analysis, recommendations, alternatives, is_ai_analysis, created_at
		FROM analyses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, queryError("list_analyses", err)
	}
	defer rows.Close()

	analyses := []models.Analysis{}
	for rows.Next() {
		var (
			a                       models.Analysis
			uid                     sql.NullString
			full, recs, alternative []byte
		)
		if err := rows.Scan(
			&a.ID, &uid, &a.MissionText, &a.Industry, &a.WordCount,
			&a.OverallScore, &a.ClarityScore, &a.SpecificityScore, &a.ImpactScore,
			&a.AuthenticityScore, &a.MemorabilityScore,
			&full, &recs, &alternative, &a.IsAIAnalysis, &a.CreatedAt,
		); err != nil {
			return nil, queryError("list_analyses", err)
		}
		if uid.Valid {
			a.UserID = &uid.String
		}
		a.FullAnalysis = full
		a.Recommendations = recs
		a.Alternatives = alternative
		analyses = append(analyses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError("list_analyses", err)
	}
	return analyses, nil
}

// Analytics aggregates every saved analysis. now anchors the weekly trend
// windows.
func (r *AnalysisRepository) Analytics(ctx context.Context, now time.Time) (*models.Analytics, error) {
	out := &models.Analytics{}

	var avg [6]float64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(AVG(overall_score), 0), COALESCE(AVG(clarity_score), 0),
			COALESCE(AVG(specificity_score), 0), COALESCE(AVG(impact_score), 0),
			COALESCE(AVG(authenticity_score), 0), COALESCE(AVG(memorability_score), 0)
		FROM analyses`).Scan(&out.Overview.TotalAnalyses, &avg[0], &avg[1], &avg[2], &avg[3], &avg[4], &avg[5])
	if err != nil {
		return nil, queryError("analytics_overview", err)
	}
	out.Overview.AverageScores = models.AverageScores{
		Overall:      roundHalfUp(avg[0]),
		Clarity:      roundHalfUp(avg[1]),
		Specificity:  roundHalfUp(avg[2]),
		Impact:       roundHalfUp(avg[3]),
		Authenticity: roundHalfUp(avg[4]),
		Memorability: roundHalfUp(avg[5]),
	}

	if err := r.industryStats(ctx, out); err != nil {
		return nil, err
	}
	if err := r.scoreRanges(ctx, out); err != nil {
		return nil, err
	}
	if err := r.weeklyTrends(ctx, out, now); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AnalysisRepository) industryStats(ctx context.Context, out *models.Analytics) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT industry, COUNT(*), COALESCE(AVG(overall_score), 0)
		FROM analyses
		GROUP BY industry
		ORDER BY COUNT(*) DESC`)
	if err != nil {
		return queryError("analytics_industries", err)
	}
	defer rows.Close()

	out.Industries = []models.IndustryStat{}
	out.Trends.TopPerformingIndustries = []models.IndustryStat{}
	for rows.Next() {
		var (
			stat models.IndustryStat
			avg  float64
		)
		if err := rows.Scan(&stat.Industry, &stat.Count, &avg); err != nil {
			return queryError("analytics_industries", err)
		}
		stat.AvgScore = roundHalfUp(avg)
		out.Industries = append(out.Industries, stat)
		if avg >= 80 && len(out.Trends.TopPerformingIndustries) < 5 {
			out.Trends.TopPerformingIndustries = append(out.Trends.TopPerformingIndustries, stat)
		}
	}
	return rows.Err()
}

func (r *AnalysisRepository) scoreRanges(ctx context.Context, out *models.Analytics) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT score_range, COUNT(*) FROM (
			SELECT CASE
				WHEN overall_score >= 90 THEN '90-100'
				WHEN overall_score >= 80 THEN '80-89'
				WHEN overall_score >= 70 THEN '70-79'
				WHEN overall_score >= 60 THEN '60-69'
				ELSE '0-59'
			END AS score_range
			FROM analyses
		) ranged
		GROUP BY score_range
		ORDER BY score_range DESC`)
	if err != nil {
		return queryError("analytics_ranges", err)
	}
	defer rows.Close()

	out.ScoreDistribution = []models.ScoreRange{}
	for rows.Next() {
		var sr models.ScoreRange
		if err := rows.Scan(&sr.Range, &sr.Count); err != nil {
			return queryError("analytics_ranges", err)
		}
		out.ScoreDistribution = append(out.ScoreDistribution, sr)
	}
	return rows.Err()
}

func (r *AnalysisRepository) weeklyTrends(ctx context.Context, out *models.Analytics, now time.Time) error {
	since := now.Add(-30 * 24 * time.Hour)
	rows, err := r.db.QueryContext(ctx, `
		SELECT overall_score, created_at
		FROM analyses
		WHERE created_at >= $1
		ORDER BY created_at DESC`, since)
	if err != nil {
		return queryError("analytics_trends", err)
	}
	defer rows.Close()

	type point struct {
		score int
		at    time.Time
	}
	var points []point
	for rows.Next() {
		var p point
		if err := rows.Scan(&p.score, &p.at); err != nil {
			return queryError("analytics_trends", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	out.Trends.Weekly = make([]models.WeeklyTrend, trendWeeks)
	for i := 0; i < trendWeeks; i++ {
		start := now.Add(-time.Duration(i+1) * week)
		end := now.Add(-time.Duration(i) * week)

		count, sum := 0, 0
		for _, p := range points {
			if !p.at.Before(start) && p.at.Before(end) {
				count++
				sum += p.score
			}
		}
		trend := models.WeeklyTrend{Week: fmt.Sprintf("Week %d", trendWeeks-i), Count: count}
		if count > 0 {
			trend.AvgScore = roundHalfUp(float64(sum) / float64(count))
		}
		out.Trends.Weekly[trendWeeks-1-i] = trend
	}
	return nil
}

func nullableJSON(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return []byte(b)
}
