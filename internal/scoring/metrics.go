package scoring

import "strings"

var (
	buzzwords      = []string{"world-class", "leading", "solutions", "synergy", "innovative", "excellence"}
	strongVerbs    = []string{"accelerate", "organize", "empower", "unlock", "transform"}
	globalScope    = []string{"world", "planet", "every person", "every organization", "humanity"}
	transformWords = []string{"transition", "accelerate", "empower", "organize", "unlock"}
	corporateSpeak = []string{"stakeholders", "leverage", "optimize", "maximize", "strategically"}
	genuineActions = []string{"save", "transition", "empower", "organize"}
)

const (
	clarityMin, clarityMax           = 25, 100
	specificityMin, specificityMax   = 15, 100
	impactMin, impactMax             = 20, 100
	authenticityMin, authenticityMax = 30, 100
	memorabilityMin, memorabilityMax = 35, 100
)

// Clarity scores length against the profile's band table and penalises buzzwords.
func Clarity(text string, wordCount int, p Profile) int {
	lower := lowerText(text)
	score := p.Clarity.Base(wordCount)
	score -= 6 * float64(countContained(lower, buzzwords))
	return clamp(score, clarityMin, clarityMax)
}

func Specificity(text string) int {
	lower := lowerText(text)
	score := 45.0
	score += 25 * float64(countContained(lower, strongVerbs))
	if strings.Contains(lower, "energy") {
		score += 13
	}
	if strings.Contains(lower, "information") {
		score += 15
	}
	if strings.Contains(lower, "planet") {
		score += 20
	}
	return clamp(score, specificityMin, specificityMax)
}

func Impact(text string) int {
	lower := lowerText(text)
	score := 35.0
	score += 22 * float64(countContained(lower, globalScope))
	score += 13 * float64(countContained(lower, transformWords))
	if containsAny(lower, "sustainable", "planet") {
		score += 23
	}
	if containsAny(lower, "accessible", "universally") {
		score += 20
	}
	if strings.Contains(lower, "information") {
		score += 15
	}
	if strings.Contains(lower, "organize") && strings.Contains(lower, "information") {
		score += 5
	}
	return clamp(score, impactMin, impactMax)
}

// Authenticity penalises corporate speak. The short-text bonus checks the
// original casing, so "Innovative" at the start of a sentence does not block it.
func Authenticity(text string, wordCount int) int {
	lower := lowerText(text)
	score := 75.0
	score -= 15 * float64(countContained(lower, corporateSpeak))
	if wordCount < 15 && !strings.Contains(text, "innovative") && !strings.Contains(text, "solutions") {
		score += 2
	}
	if containsAny(lower, genuineActions...) {
		score += 8
	}
	return clamp(score, authenticityMin, authenticityMax)
}

// Memorability is case-sensitive for the opener bonus.
func Memorability(text string, wordCount int, p Profile) int {
	score := p.Memorability.Base(wordCount)
	if strings.HasPrefix(text, "To ") || strings.Contains(text, "We're in business to") {
		score += 5
	}
	score += p.SingleIdea.apply(text)
	return clamp(score, memorabilityMin, memorabilityMax)
}
