// Package report renders and delivers the emailed analysis report.
package report

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"mission-analyzer/internal/scoring"

	"github.com/microcosm-cc/bluemonday"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	htmlTemplate = template.Must(template.ParseFS(templateFS, "templates/report.html.tmpl"))
	textTemplate = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/report.txt.tmpl"))

	// stripTags removes any markup from caller-supplied text before it is
	// placed into the template.
	stripTags = bluemonday.StrictPolicy()
)

var reportNextSteps = []string{
	"Review the detailed metrics to identify areas for improvement",
	"Consider testing the suggested alternatives with your team",
	"Use the highest-scoring version in your marketing materials",
	"Re-analyze after making changes to track improvement",
}

// Data is everything the report shows.
type Data struct {
	FirstName       string
	Company         string
	MissionText     string
	Industry        scoring.Industry
	Scores          scoring.Scores
	Recommendations []scoring.Recommendation
	Alternatives    scoring.Alternatives
	GeneratedAt     time.Time
}

// Rendered is a ready-to-send message.
type Rendered struct {
	Subject string
	HTML    string
	Text    string
}

// Subject is the report email subject line.
func Subject(overall int) string {
	return fmt.Sprintf("Your Mission Statement Analysis Report - Score: %d/100", overall)
}

type scoreView struct {
	Name     string
	Score    int
	Category string
	Color    template.CSS
	Bar      template.CSS
}

type view struct {
	FirstName       string
	Company         string
	MissionText     string
	IndustryLabel   string
	WordCount       int
	GeneratedOn     string
	Overall         scoreView
	Metrics         []scoreView
	Recommendations []scoring.Recommendation
	Alternatives    []scoring.NamedAlternative
	NextSteps       []string
}

func newScoreView(name string, score int) scoreView {
	color := scoring.ScoreColor(score)
	return scoreView{
		Name:     name,
		Score:    score,
		Category: scoring.ScoreCategory(score),
		Color:    template.CSS("color: " + color),
		Bar:      template.CSS(fmt.Sprintf("width: %d%%; background-color: %s", score, color)),
	}
}

// clean drops markup and returns plain text; the templates do the escaping.
func clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(stripTags.Sanitize(s)))
}

func buildView(d Data) view {
	generated := d.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	v := view{
		FirstName:     clean(d.FirstName),
		Company:       clean(d.Company),
		MissionText:   clean(d.MissionText),
		IndustryLabel: scoring.IndustryLabel(d.Industry),
		WordCount:     scoring.WordCount(d.MissionText),
		GeneratedOn:   generated.Format("January 2, 2006"),
		Overall:       newScoreView("Overall", d.Scores.Overall),
		Metrics: []scoreView{
			newScoreView("Clarity", d.Scores.Clarity),
			newScoreView("Specificity", d.Scores.Specificity),
			newScoreView("Impact", d.Scores.Impact),
			newScoreView("Authenticity", d.Scores.Authenticity),
			newScoreView("Memorability", d.Scores.Memorability),
		},
		NextSteps: reportNextSteps,
	}

	for _, r := range d.Recommendations {
		v.Recommendations = append(v.Recommendations, scoring.Recommendation{
			Category:   clean(r.Category),
			Issue:      clean(r.Issue),
			Suggestion: clean(r.Suggestion),
		})
	}
	for _, alt := range d.Alternatives.Named() {
		if alt.Text == "" {
			continue
		}
		alt.Text = clean(alt.Text)
		alt.Rationale = clean(alt.Rationale)
		v.Alternatives = append(v.Alternatives, alt)
	}
	return v
}

// WithDefaults fills in recommendations from the quick statement check and
// the fallback rewrites when the caller supplied none.
func WithDefaults(d Data) Data {
	if len(d.Recommendations) == 0 {
		check := scoring.AnalyzeStatement(d.MissionText, scoring.WordCount(d.MissionText))
		d.Recommendations = scoring.Recommendations(check, d.Scores.Specificity)
	}
	if d.Alternatives.IsEmpty() {
		d.Alternatives = scoring.FallbackAlternatives(d.MissionText, d.Scores.Overall)
	}
	return d
}

// Render produces the HTML and plain-text bodies.
func Render(d Data) (*Rendered, error) {
	v := buildView(d)

	var htmlBody bytes.Buffer
	if err := htmlTemplate.Execute(&htmlBody, v); err != nil {
		return nil, fmt.Errorf("render html report: %w", err)
	}
	var text bytes.Buffer
	if err := textTemplate.Execute(&text, v); err != nil {
		return nil, fmt.Errorf("render text report: %w", err)
	}

	return &Rendered{
		Subject: Subject(d.Scores.Overall),
		HTML:    htmlBody.String(),
		Text:    text.String(),
	}, nil
}
