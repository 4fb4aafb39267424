package scoring

import (
	"math"
	"regexp"
)

// Component categories of a mission statement, in report order.
const (
	ComponentCustomers     = "customers"
	ComponentProducts      = "products"
	ComponentMarkets       = "markets"
	ComponentTechnology    = "technology"
	ComponentProfitability = "profitability"
	ComponentPhilosophy    = "philosophy"
	ComponentAdvantage     = "advantage"
	ComponentPublicImage   = "publicImage"
	ComponentEmployees     = "employees"
)

var componentPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{ComponentCustomers, foldASCII(`customer|client|user|people|person|everyone|community|society|humanity|individuals`)},
	{ComponentProducts, foldASCII(`product|service|solution|platform|technology|tool|system|energy|information`)},
	{ComponentMarkets, foldASCII(`world|global|local|market|region|nation|everywhere|worldwide|planet`)},
	{ComponentTechnology, foldASCII(`technology|innovation|digital|platform|data|information|software|energy|transition|accelerate`)},
	{ComponentProfitability, foldASCII(`sustainable|growth|value|profit|success|thrive|prosper|achieve|transition`)},
	{ComponentPhilosophy, foldASCII(`believe|value|principle|culture|integrity|excellence|quality|mission|inspire`)},
	{ComponentAdvantage, foldASCII(`best|leading|unique|first|only|superior|innovative|pioneer|accelerate|empower|organize|transform`)},
	{ComponentPublicImage, foldASCII(`responsible|ethical|sustainable|environment|social|community|society|planet|world`)},
	{ComponentEmployees, foldASCII(`employee|team|people|talent|workforce|culture|empower|organization|every person`)},
}

// Components is the Pearce-David component detection result.
type Components struct {
	Score              int             `json:"score"`
	Components         map[string]bool `json:"components"`
	DetectedCount      int             `json:"detectedCount"`
	DetectedComponents []string        `json:"detectedComponents"`
}

func DetectComponents(text string) Components {
	c := Components{
		Components:         make(map[string]bool, len(componentPatterns)),
		DetectedComponents: []string{},
	}
	for _, p := range componentPatterns {
		found := p.re.MatchString(text)
		c.Components[p.name] = found
		if found {
			c.DetectedCount++
			c.DetectedComponents = append(c.DetectedComponents, p.name)
		}
	}
	switch {
	case c.DetectedCount >= 8:
		c.Score = 100
	case c.DetectedCount >= 6:
		c.Score = 75
	case c.DetectedCount >= 4:
		c.Score = 50
	default:
		c.Score = 25
	}
	return c
}

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// Readability is a Gunning-Fog approximation that counts vowels as syllables.
type Readability struct {
	Score      int     `json:"score"`
	FogIndex   float64 `json:"fogIndex"`
	GradeLevel string  `json:"gradeLevel"`
}

func MeasureReadability(text string) Readability {
	sentences := 0
	for _, s := range sentenceSplit.Split(text, -1) {
		if TrimText(s) != "" {
			sentences++
		}
	}
	if sentences == 0 {
		sentences = 1
	}

	ws := words(text)
	complexWords := 0
	for _, w := range ws {
		if vowelCount(w) >= 3 {
			complexWords++
		}
	}
	wordCount := len(ws)
	if wordCount == 0 {
		wordCount = 1
	}

	fog := 0.4 * (float64(wordCount)/float64(sentences) + 100*float64(complexWords)/float64(wordCount))
	if len(ws) == 0 {
		fog = 0
	}

	r := Readability{FogIndex: math.Floor(fog*10+0.5) / 10}
	switch {
	case fog < 8:
		r.Score, r.GradeLevel = 100, "Elementary"
	case fog < 12:
		r.Score, r.GradeLevel = 80, "High School"
	case fog < 16:
		r.Score, r.GradeLevel = 60, "College"
	default:
		r.Score, r.GradeLevel = 40, "Graduate"
	}
	return r
}

func vowelCount(word string) int {
	n := 0
	for _, r := range lowerText(word) {
		switch r {
		case 'a', 'e', 'i', 'o', 'u':
			n++
		}
	}
	return n
}

var (
	conceptSplit    = regexp.MustCompile(`,|;|and|to|for|with|by`)
	emotionalWords  = foldASCII(`inspire|empower|transform|accelerate|create|build|achieve|unlock|breakthrough|innovate|revolutionize|pioneer`)
	concreteWords   = foldASCII(`energy|information|people|world|planet|health|money|technology|product|service`)
	abstractWords   = foldASCII(`excellence|synergy|optimization|leverage|strategic|innovative|solutions`)
	rhythmPattern   = foldASCII(`to \w+` + anyButLineEnd + `*to \w+|every \w+` + anyButLineEnd + `*every \w+|\w+ing` + anyButLineEnd + `*\w+ing`)
	distinctPhrases = foldASCII(`world's|planet's|every person|every organization|transition to|accessible and useful`)
)

// PsychMemory scores how easily the statement sticks, from cognitive-load and
// emotional cues.
type PsychMemory struct {
	Score              int  `json:"score"`
	Concepts           int  `json:"concepts"`
	EmotionalWords     int  `json:"emotionalWords"`
	ConcreteWords      int  `json:"concreteWords"`
	AbstractWords      int  `json:"abstractWords"`
	HasRhythm          bool `json:"hasRhythm"`
	DistinctivePhrases int  `json:"distinctivePhrases"`
}

func MeasurePsychMemory(text string) PsychMemory {
	m := PsychMemory{
		Concepts:           countSegments(conceptSplit, text),
		EmotionalWords:     countMatches(emotionalWords, text),
		ConcreteWords:      countMatches(concreteWords, text),
		AbstractWords:      countMatches(abstractWords, text),
		HasRhythm:          rhythmPattern.MatchString(text),
		DistinctivePhrases: countMatches(distinctPhrases, text),
	}

	score := 50.0
	switch {
	case m.Concepts >= 3 && m.Concepts <= 7:
		score += 15
	case m.Concepts <= 2:
		score += 5
	default:
		score -= 10
	}
	score += 8 * float64(m.EmotionalWords)
	score += 5 * float64(m.ConcreteWords)
	score -= 3 * float64(m.AbstractWords)
	if m.HasRhythm {
		score += 10
	}
	score += 6 * float64(m.DistinctivePhrases)
	score += 4 * float64(countAlliterations(text))

	m.Score = clamp(score, 30, 100)
	return m
}

var (
	inspirationalWords = foldASCII(`inspire|hope|dream|vision|future|better|transform|empower|elevate|uplift`)
	actionWords        = foldASCII(`accelerate|organize|revolutionize|transform|unlock|breakthrough|pioneer|create|build|achieve`)
	connectionWords    = foldASCII(`together|community|everyone|every person|humanity|world|planet|unite|connect`)
	purposeWords       = foldASCII(`mission|purpose|meaning|impact|difference|change|better|improve|help`)
	negativeWords      = foldASCII(`problem|crisis|struggle|difficult|challenge|fail|impossible`)
)

// Sentiment counts every occurrence of each emotional cue.
type Sentiment struct {
	Score         int `json:"score"`
	Inspirational int `json:"inspirational"`
	Action        int `json:"action"`
	Connection    int `json:"connection"`
	Purpose       int `json:"purpose"`
	Negative      int `json:"negative"`
}

func MeasureSentiment(text string) Sentiment {
	s := Sentiment{
		Inspirational: countMatches(inspirationalWords, text),
		Action:        countMatches(actionWords, text),
		Connection:    countMatches(connectionWords, text),
		Purpose:       countMatches(purposeWords, text),
		Negative:      countMatches(negativeWords, text),
	}
	score := 40.0 +
		12*float64(s.Inspirational) +
		10*float64(s.Action) +
		8*float64(s.Connection) +
		6*float64(s.Purpose) -
		8*float64(s.Negative)
	s.Score = clamp(score, 20, 100)
	return s
}
