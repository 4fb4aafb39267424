package scoring

import (
	"fmt"
	"regexp"
	"strings"
)

// Band maps an inclusive word-count range to a base score. A negative Max
// leaves the range open upwards. Inside the band the base moves linearly by
// Slope per word away from Pivot.
type Band struct {
	Min   int
	Max   int
	Base  float64
	Slope float64
	Pivot int
}

func (b Band) contains(wordCount int) bool {
	return wordCount >= b.Min && (b.Max < 0 || wordCount <= b.Max)
}

func (b Band) value(wordCount int) float64 {
	return b.Base + b.Slope*float64(wordCount-b.Pivot)
}

// BandTable is evaluated top to bottom; the first band containing the word
// count wins and Default applies when none does.
type BandTable struct {
	Bands   []Band
	Default float64
}

// Base returns the base score for a word count.
func (t BandTable) Base(wordCount int) float64 {
	for _, b := range t.Bands {
		if b.contains(wordCount) {
			return b.value(wordCount)
		}
	}
	return t.Default
}

// SegmentBonus rewards texts whose number of idea segments falls in
// [Min, Max] after splitting on Split.
type SegmentBonus struct {
	Split *regexp.Regexp
	Min   int
	Max   int
	Bonus float64
}

func (s SegmentBonus) apply(text string) float64 {
	n := countSegments(s.Split, text)
	if n >= s.Min && n <= s.Max {
		return s.Bonus
	}
	return 0
}

// Aggregation selects how the five core metrics are folded into the overall score.
type Aggregation string

const (
	AggregationWeighted Aggregation = "weighted"
	AggregationMean     Aggregation = "mean"
)

// ParseAggregation accepts "weighted" or "mean"; empty means weighted.
func ParseAggregation(s string) (Aggregation, error) {
	switch Aggregation(strings.ToLower(strings.TrimSpace(s))) {
	case "", AggregationWeighted:
		return AggregationWeighted, nil
	case AggregationMean:
		return AggregationMean, nil
	}
	return "", fmt.Errorf("%w: unknown aggregation %q", ErrInvalidArgument, s)
}

// Profile is a bundle of calculator constants.
type Profile struct {
	Name         string
	Clarity      BandTable
	Memorability BandTable
	SingleIdea   SegmentBonus
	// Extended profiles add the four diagnostic calculators and average all
	// nine scores into the overall.
	Extended    bool
	Aggregation Aggregation
}

const (
	ProfileSimple   = "simple"
	ProfileExtended = "extended"
)

var (
	SimpleProfile = Profile{
		Name: ProfileSimple,
		Clarity: BandTable{
			Bands: []Band{
				{Min: 8, Max: 20, Base: 88},
				{Min: 21, Max: 30, Base: 88},
				{Min: 31, Max: -1, Base: 82, Slope: -1.2, Pivot: 30},
				{Min: 0, Max: 7, Base: 65, Slope: 3, Pivot: 8},
			},
			Default: 83,
		},
		Memorability: BandTable{
			Bands: []Band{
				{Min: 6, Max: 12, Base: 93},
				{Min: 13, Max: 20, Base: 90},
				{Min: 21, Max: 30, Base: 82},
				{Min: 31, Max: -1, Base: 75, Slope: -2, Pivot: 30},
			},
			Default: 70,
		},
		SingleIdea: SegmentBonus{
			Split: regexp.MustCompile(`,|—|;`),
			Min:   1,
			Max:   1,
			Bonus: 8,
		},
		Aggregation: AggregationWeighted,
	}

	ExtendedProfile = Profile{
		Name: ProfileExtended,
		Clarity: BandTable{
			Bands: []Band{
				{Min: 6, Max: 12, Base: 100},
				{Min: 13, Max: 33, Base: 90},
				{Min: 34, Max: 50, Base: 70},
				{Min: 51, Max: 100, Base: 40},
				{Min: 101, Max: -1, Base: 20},
				{Min: 0, Max: 5, Base: 50},
			},
			Default: 70,
		},
		Memorability: BandTable{
			Bands: []Band{
				{Min: 6, Max: 12, Base: 100},
				{Min: 13, Max: 33, Base: 85},
				{Min: 34, Max: 50, Base: 65},
				{Min: 51, Max: -1, Base: 40},
				{Min: 0, Max: 5, Base: 70},
			},
			Default: 60,
		},
		SingleIdea: SegmentBonus{
			Split: regexp.MustCompile(`,|—|;|and|to|for`),
			Min:   3,
			Max:   7,
			Bonus: 10,
		},
		Extended:    true,
		Aggregation: AggregationMean,
	}
)

// ProfileByName resolves "simple" or "extended"; empty means simple.
func ProfileByName(name string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ProfileSimple:
		return SimpleProfile, nil
	case ProfileExtended:
		return ExtendedProfile, nil
	}
	return Profile{}, fmt.Errorf("%w: unknown profile %q", ErrInvalidArgument, name)
}
