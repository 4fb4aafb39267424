// internal/store/email_captures.go
package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"mission-analyzer/internal/common/errors"
	"mission-analyzer/internal/models"
)

type EmailCaptureRepository struct {
	db *sql.DB
}

func NewEmailCaptureRepository(db *sql.DB) *EmailCaptureRepository {
	return &EmailCaptureRepository{db: db}
}

// Upsert creates the capture or overwrites its contact and analysis fields.
// The report-sent flags are left untouched on update.
func (r *EmailCaptureRepository) Upsert(ctx context.Context, c *models.EmailCapture) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO email_captures (email, first_name, company, mission_text, overall_score, industry, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (email) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			company = EXCLUDED.company,
			mission_text = EXCLUDED.mission_text,
			overall_score = EXCLUDED.overall_score,
			industry = EXCLUDED.industry,
			updated_at = EXCLUDED.updated_at`,
		c.Email, c.FirstName, c.Company, c.MissionText, c.OverallScore, c.Industry, now)
	if err != nil {
		return errors.NewDatabaseInsertFailedError(err)
	}
	c.UpdatedAt = now
	return nil
}

// MarkReportSent flags the capture as delivered at the given time.
func (r *EmailCaptureRepository) MarkReportSent(ctx context.Context, email string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE email_captures SET report_sent = TRUE, report_sent_at = $2, updated_at = $2
		WHERE email = $1`, email, at)
	if err != nil {
		return queryError("mark_report_sent", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EmailCaptureRepository) Get(ctx context.Context, email string) (*models.EmailCapture, error) {
	var (
		c        models.EmailCapture
		first    sql.NullString
		company  sql.NullString
		text     sql.NullString
		industry sql.NullString
		score    sql.NullInt64
		sentAt   sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT email, first_name, company, mission_text, overall_score, industry,
			report_sent, report_sent_at, created_at, updated_at
		FROM email_captures WHERE email = $1`, email).Scan(
		&c.Email, &first, &company, &text, &score, &industry,
		&c.ReportSent, &sentAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, queryError("get_email_capture", err)
	}
	c.FirstName = first.String
	c.Company = company.String
	c.MissionText = text.String
	c.Industry = industry.String
	if score.Valid {
		s := int(score.Int64)
		c.OverallScore = &s
	}
	if sentAt.Valid {
		t := sentAt.Time
		c.ReportSentAt = &t
	}
	return &c, nil
}
