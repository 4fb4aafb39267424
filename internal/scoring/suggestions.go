package scoring

import (
	"fmt"
	"sort"
	"strings"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// MaxSuggestions caps the suggestion list.
const MaxSuggestions = 4

type Suggestion struct {
	Icon       string   `json:"icon"`
	Type       string   `json:"type"`
	Issue      string   `json:"issue"`
	Suggestion string   `json:"suggestion"`
	Priority   Priority `json:"priority"`
	Example    string   `json:"example"`
}

var (
	strongActionPattern = foldASCII(`accelerate|transform|empower|organize|unlock|revolutionize|pioneer|create|build`)
	audiencePattern     = foldASCII(`every person|everyone|people|families|businesses|companies|organizations|community|humanity`)
)

// Suggest derives up to four improvement suggestions, highest priority first.
// Diagnostics missing from the report (simple profile) are computed from text.
func Suggest(r *Report, text string, wordCount int) []Suggestion {
	if r == nil {
		return []Suggestion{}
	}

	components := r.Components
	if components == nil {
		c := DetectComponents(text)
		components = &c
	}
	sentiment := r.Sentiment
	if sentiment == nil {
		s := MeasureSentiment(text)
		sentiment = &s
	}
	readability := r.Readability
	if readability == nil {
		rd := MeasureReadability(text)
		readability = &rd
	}

	var out []Suggestion

	if wordCount > 20 {
		example := "Cut 3-5 non-essential words"
		if wordCount > 30 {
			example = "Try removing 'and' clauses or combining ideas"
		}
		out = append(out, Suggestion{
			Icon:       "✂️",
			Type:       "Length",
			Issue:      fmt.Sprintf("Too long (%d words)", wordCount),
			Suggestion: "Reduce to under 20 words for maximum impact",
			Priority:   PriorityHigh,
			Example:    example,
		})
	} else if wordCount < 6 {
		out = append(out, Suggestion{
			Icon:       "📝",
			Type:       "Length",
			Issue:      "Too brief",
			Suggestion: "Add more specific details about your impact",
			Priority:   PriorityMedium,
			Example:    "Specify WHO you serve and HOW you help them",
		})
	}

	if !strongActionPattern.MatchString(text) && r.Specificity < 70 {
		out = append(out, Suggestion{
			Icon:       "💪",
			Type:       "Action",
			Issue:      "Weak action language",
			Suggestion: "Start with a powerful action verb",
			Priority:   PriorityHigh,
			Example:    fmt.Sprintf(`Try "To accelerate..." or "To transform..." instead of "%s..."`, leadingWords(text, 3)),
		})
	}

	if !audiencePattern.MatchString(text) && components.DetectedCount < 5 {
		out = append(out, Suggestion{
			Icon:       "🎯",
			Type:       "Audience",
			Issue:      "Missing target audience",
			Suggestion: "Specify WHO you serve",
			Priority:   PriorityMedium,
			Example:    "Add 'for every business', 'for families', or 'for manufacturers'",
		})
	}

	if r.Specificity < 60 {
		out = append(out, Suggestion{
			Icon:       "🔍",
			Type:       "Specificity",
			Issue:      "Too generic",
			Suggestion: "Add industry-specific terms or unique value",
			Priority:   PriorityMedium,
			Example:    "What makes your approach different from competitors?",
		})
	}

	if sentiment.Score < 50 {
		out = append(out, Suggestion{
			Icon:       "❤️",
			Type:       "Emotion",
			Issue:      "Low emotional impact",
			Suggestion: "Add inspirational or purpose-driven language",
			Priority:   PriorityMedium,
			Example:    "Include words like 'inspire', 'empower', or focus on positive change",
		})
	}

	lower := lowerText(text)
	var found []string
	for _, b := range buzzwords {
		if strings.Contains(lower, b) {
			found = append(found, b)
		}
	}
	if len(found) > 0 {
		plural := ""
		if len(found) > 1 {
			plural = "s"
		}
		out = append(out, Suggestion{
			Icon:       "🚫",
			Type:       "Buzzwords",
			Issue:      fmt.Sprintf("Contains buzzword%s: %s", plural, strings.Join(found, ", ")),
			Suggestion: "Replace with specific, concrete language",
			Priority:   PriorityHigh,
			Example:    "What do you actually DO instead of being 'innovative'?",
		})
	}

	if readability.Score < 60 {
		out = append(out, Suggestion{
			Icon:       "📚",
			Type:       "Clarity",
			Issue:      "Too complex to read easily",
			Suggestion: "Simplify language and sentence structure",
			Priority:   PriorityMedium,
			Example:    "Break long sentences or use simpler words",
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.rank() > out[j].Priority.rank()
	})
	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	if out == nil {
		out = []Suggestion{}
	}
	return out
}

// leadingWords splits on single spaces, not whitespace runs.
func leadingWords(text string, n int) string {
	parts := strings.Split(text, " ")
	if len(parts) > n {
		parts = parts[:n]
	}
	return strings.Join(parts, " ")
}
