package scoring

type CheckStatus string

const (
	StatusGood    CheckStatus = "good"
	StatusWarning CheckStatus = "warning"
	StatusPoor    CheckStatus = "poor"
)

type Check struct {
	Status CheckStatus `json:"status"`
	Text   string      `json:"text"`
}

// StatementCheck is the quick structural read-out shown next to the scores.
type StatementCheck struct {
	Length     Check `json:"length"`
	ActionVerb Check `json:"actionVerb"`
	Impact     Check `json:"impact"`
	Buzzwords  Check `json:"buzzwords"`
}

var (
	checkVerbs     = []string{"accelerate", "empower", "organize", "transform", "unlock", "inspire", "connect"}
	checkAudiences = []string{"world", "people", "planet", "customers", "society", "lives"}
	checkBuzzwords = []string{"solutions", "synergy", "innovative", "excellence"}
)

func AnalyzeStatement(text string, wordCount int) StatementCheck {
	lower := lowerText(text)
	var c StatementCheck

	switch {
	case wordCount < 8:
		c.Length = Check{StatusPoor, "Too Short"}
	case wordCount > 35:
		c.Length = Check{StatusWarning, "Too Long"}
	default:
		c.Length = Check{StatusGood, "Good (8-35 words)"}
	}

	if containsAny(lower, checkVerbs...) {
		c.ActionVerb = Check{StatusGood, "Found"}
	} else {
		c.ActionVerb = Check{StatusPoor, "Missing"}
	}

	if containsAny(lower, checkAudiences...) {
		c.Impact = Check{StatusGood, "Clear"}
	} else {
		c.Impact = Check{StatusWarning, "Unclear"}
	}

	if containsAny(lower, checkBuzzwords...) {
		c.Buzzwords = Check{StatusWarning, "Avoid Buzz"}
	} else {
		c.Buzzwords = Check{StatusGood, "Clear"}
	}
	return c
}

type Recommendation struct {
	Category   string `json:"category"`
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion"`
}

// Recommendations turns a statement check into the category/issue/suggestion
// list used by the emailed report.
func Recommendations(c StatementCheck, specificity int) []Recommendation {
	recs := []Recommendation{}
	switch c.Length.Status {
	case StatusPoor:
		recs = append(recs, Recommendation{"Length", "Too short", "Expand your mission to 8-20 words for optimal clarity and impact."})
	case StatusWarning:
		recs = append(recs, Recommendation{"Length", "Too long", "Condense your mission to under 35 words for better memorability."})
	}
	if c.ActionVerb.Status == StatusPoor {
		recs = append(recs, Recommendation{"Action Verb", "Missing strong action verb", "Add a powerful verb like 'accelerate', 'empower', 'transform', or 'unlock'."})
	}
	if c.Impact.Status == StatusWarning {
		recs = append(recs, Recommendation{"Impact", "Unclear impact scope", "Specify who you serve: 'world', 'people', 'customers', or 'society'."})
	}
	if c.Buzzwords.Status == StatusWarning {
		recs = append(recs, Recommendation{"Buzzwords", "Contains overused terms", "Replace buzzwords with specific, concrete language about what you do."})
	}
	if specificity < 70 {
		recs = append(recs, Recommendation{"Specificity", "Too generic", "Be more specific about your unique value proposition and target market."})
	}
	return recs
}
