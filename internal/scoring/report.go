// Package scoring rates short mission statements with fixed keyword, regex
// and length heuristics. Every function is pure and safe for concurrent use.
package scoring

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a caller hands the engine something that
// is not text.
var ErrInvalidArgument = errors.New("invalid argument")

// Metric names in report order.
const (
	MetricClarity      = "clarity"
	MetricSpecificity  = "specificity"
	MetricImpact       = "impact"
	MetricAuthenticity = "authenticity"
	MetricMemorability = "memorability"
	MetricOverall      = "overall"
)

// Metrics lists the six metrics compared between versions.
var Metrics = []string{MetricClarity, MetricSpecificity, MetricImpact, MetricAuthenticity, MetricMemorability, MetricOverall}

type Scores struct {
	Clarity      int `json:"clarity"`
	Specificity  int `json:"specificity"`
	Impact       int `json:"impact"`
	Authenticity int `json:"authenticity"`
	Memorability int `json:"memorability"`
	Overall      int `json:"overall"`
}

// Metric returns the score by metric name, or 0 for an unknown name.
func (s Scores) Metric(name string) int {
	switch name {
	case MetricClarity:
		return s.Clarity
	case MetricSpecificity:
		return s.Specificity
	case MetricImpact:
		return s.Impact
	case MetricAuthenticity:
		return s.Authenticity
	case MetricMemorability:
		return s.Memorability
	case MetricOverall:
		return s.Overall
	}
	return 0
}

// Report is the result of one scoring pass. The diagnostic sections are only
// set by extended profiles.
type Report struct {
	Scores
	Profile     string       `json:"profile"`
	WordCount   int          `json:"wordCount"`
	Components  *Components  `json:"components,omitempty"`
	Readability *Readability `json:"readability,omitempty"`
	PsychMemory *PsychMemory `json:"psychMemory,omitempty"`
	Sentiment   *Sentiment   `json:"sentiment,omitempty"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

// Score rates text with the profile's own aggregation.
func Score(text string, p Profile) *Report {
	return ScoreWith(text, p, p.Aggregation)
}

// ScoreWith rates text and folds the core metrics with the given aggregation.
// Extended profiles ignore the aggregation and average all nine scores.
func ScoreWith(text string, p Profile, agg Aggregation) *Report {
	wc := WordCount(text)
	r := &Report{
		Profile:   p.Name,
		WordCount: wc,
		Scores: Scores{
			Clarity:      Clarity(text, wc, p),
			Specificity:  Specificity(text),
			Impact:       Impact(text),
			Authenticity: Authenticity(text, wc),
			Memorability: Memorability(text, wc, p),
		},
	}

	if !p.Extended {
		r.Overall = aggregate(r.Scores, agg)
		return r
	}

	components := DetectComponents(text)
	readability := MeasureReadability(text)
	psych := MeasurePsychMemory(text)
	sentiment := MeasureSentiment(text)
	r.Components = &components
	r.Readability = &readability
	r.PsychMemory = &psych
	r.Sentiment = &sentiment

	sum := r.Clarity + r.Specificity + r.Impact + r.Authenticity + r.Memorability +
		components.Score + readability.Score + psych.Score + sentiment.Score
	r.Overall = roundHalfUp(float64(sum) / 9)
	r.Suggestions = Suggest(r, text, wc)
	return r
}

func aggregate(s Scores, agg Aggregation) int {
	if agg == AggregationMean {
		sum := s.Clarity + s.Specificity + s.Impact + s.Authenticity + s.Memorability
		return roundHalfUp(float64(sum) / 5)
	}
	return roundHalfUp(0.25*float64(s.Clarity) +
		0.25*float64(s.Specificity) +
		0.25*float64(s.Impact) +
		0.15*float64(s.Authenticity) +
		0.10*float64(s.Memorability))
}

// TextFrom accepts a dynamically typed value, such as a decoded JSON field,
// and returns it as mission text.
func TextFrom(v any) (string, error) {
	text, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: mission text must be a string, got %T", ErrInvalidArgument, v)
	}
	return text, nil
}
