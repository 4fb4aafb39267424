package scoring

import (
	"math"
	"strings"
)

type Industry string

const (
	IndustryTechnology     Industry = "technology"
	IndustryHealthcare     Industry = "healthcare"
	IndustryFinance        Industry = "finance"
	IndustryRetail         Industry = "retail"
	IndustryManufacturing  Industry = "manufacturing"
	IndustryEducation      Industry = "education"
	IndustryNonprofit      Industry = "nonprofit"
	IndustryHospitality    Industry = "hospitality"
	IndustryEnergy         Industry = "energy"
	IndustryTransportation Industry = "transportation"
	IndustryMedia          Industry = "media"
	IndustryAgriculture    Industry = "agriculture"
	IndustryRealEstate     Industry = "realestate"
	IndustryOther          Industry = "other"
)

// Industries lists every tag in display order.
var Industries = []Industry{
	IndustryTechnology, IndustryHealthcare, IndustryFinance, IndustryRetail,
	IndustryManufacturing, IndustryEducation, IndustryNonprofit, IndustryHospitality,
	IndustryEnergy, IndustryTransportation, IndustryMedia, IndustryAgriculture,
	IndustryRealEstate, IndustryOther,
}

var industryLabels = map[Industry]string{
	IndustryTechnology:     "Technology",
	IndustryHealthcare:     "Healthcare",
	IndustryFinance:        "Finance",
	IndustryRetail:         "Retail",
	IndustryManufacturing:  "Manufacturing",
	IndustryEducation:      "Education",
	IndustryNonprofit:      "Non-Profit",
	IndustryHospitality:    "Hospitality",
	IndustryEnergy:         "Energy",
	IndustryTransportation: "Transportation",
	IndustryMedia:          "Media & Entertainment",
	IndustryAgriculture:    "Agriculture",
	IndustryRealEstate:     "Real Estate",
	IndustryOther:          "Other",
}

// ParseIndustry normalizes a tag; unknown tags become IndustryOther.
func ParseIndustry(s string) Industry {
	ind := Industry(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := industryLabels[ind]; ok {
		return ind
	}
	return IndustryOther
}

func IndustryLabel(ind Industry) string {
	return industryLabels[ParseIndustry(string(ind))]
}

type Benchmark struct {
	Average int `json:"average"`
	Top25   int `json:"top25"`
	Top10   int `json:"top10"`
	Median  int `json:"median"`
}

var benchmarks = map[Industry]Benchmark{
	IndustryTechnology:     {Average: 78, Top25: 87, Top10: 93, Median: 76},
	IndustryHealthcare:     {Average: 75, Top25: 84, Top10: 90, Median: 73},
	IndustryFinance:        {Average: 72, Top25: 82, Top10: 88, Median: 70},
	IndustryRetail:         {Average: 74, Top25: 83, Top10: 89, Median: 72},
	IndustryManufacturing:  {Average: 71, Top25: 80, Top10: 86, Median: 69},
	IndustryEducation:      {Average: 79, Top25: 88, Top10: 94, Median: 77},
	IndustryNonprofit:      {Average: 81, Top25: 89, Top10: 95, Median: 80},
	IndustryHospitality:    {Average: 76, Top25: 85, Top10: 91, Median: 74},
	IndustryEnergy:         {Average: 69, Top25: 78, Top10: 84, Median: 67},
	IndustryTransportation: {Average: 77, Top25: 86, Top10: 92, Median: 75},
	IndustryMedia:          {Average: 80, Top25: 88, Top10: 94, Median: 78},
	IndustryAgriculture:    {Average: 73, Top25: 82, Top10: 88, Median: 71},
	IndustryRealEstate:     {Average: 70, Top25: 79, Top10: 85, Median: 68},
	IndustryOther:          {Average: 74, Top25: 83, Top10: 89, Median: 72},
}

// BenchmarkFor returns the industry row, falling back to "other".
func BenchmarkFor(ind Industry) Benchmark {
	return benchmarks[ParseIndustry(string(ind))]
}

// Percentile estimates where a score sits in its industry's distribution.
func Percentile(score int, ind Industry) int {
	b := BenchmarkFor(ind)
	s := float64(score)
	var p float64
	switch {
	case score >= b.Top10:
		p = math.Min(95, 85+(s-float64(b.Top10))*2)
	case score >= b.Top25:
		p = math.Min(85, 65+(s-float64(b.Top25))*3)
	case score >= b.Median:
		p = math.Min(65, 35+(s-float64(b.Median))*2.5)
	case score >= b.Average-10:
		p = math.Min(35, 15+(s-float64(b.Average-10))*2)
	default:
		p = math.Max(5, s*0.25)
	}
	return roundHalfUp(p)
}

func PerformanceBand(score int) string {
	switch {
	case score >= 90:
		return "Exceptional"
	case score >= 80:
		return "Excellent"
	case score >= 70:
		return "Good"
	case score >= 60:
		return "Fair"
	}
	return "Needs Improvement"
}

// ScoreCategory is the headline label used in the emailed report.
func ScoreCategory(score int) string {
	switch {
	case score >= 90:
		return "Exceptional"
	case score >= 80:
		return "Strong"
	case score >= 70:
		return "Good"
	case score >= 60:
		return "Needs Work"
	}
	return "Poor"
}

// ScoreColor is the hex colour paired with ScoreCategory.
func ScoreColor(score int) string {
	switch {
	case score >= 90:
		return "#10b981"
	case score >= 80:
		return "#3b82f6"
	case score >= 70:
		return "#f59e0b"
	case score >= 60:
		return "#f97316"
	}
	return "#ef4444"
}

type NextStepPlan struct {
	Title string   `json:"title"`
	Steps []string `json:"steps"`
}

func NextSteps(score int) NextStepPlan {
	switch {
	case score >= 85:
		return NextStepPlan{
			Title: "Excellence Achieved - Optimize & Scale",
			Steps: []string{
				"🎉 Celebrate your exceptional mission statement",
				"🧪 A/B test variations with stakeholders and customers",
				"📅 Schedule quarterly reviews to ensure continued relevance",
				"📢 Integrate into all brand communications and materials",
			},
		}
	case score >= 70:
		return NextStepPlan{
			Title: "Strong Foundation - Refine & Perfect",
			Steps: []string{
				"🔧 Focus on improving your lowest-scoring metrics",
				"👥 Conduct stakeholder workshops for feedback and alignment",
				"✏️ Test alternative phrasings for key concepts",
				"📊 Measure employee and customer resonance",
			},
		}
	}
	return NextStepPlan{
		Title: "Rebuild Required - Start Fresh",
		Steps: []string{
			"📝 Complete mission statement rewrite using best practices",
			"🏗️ Establish clear foundation: purpose, values, and impact",
			"🤝 Engage leadership team in collaborative development",
			"📚 Consider professional brand strategy consultation",
		},
	}
}
