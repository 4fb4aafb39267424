package scoring

// BenchmarkResult places an overall score within its industry.
type BenchmarkResult struct {
	Industry   Industry  `json:"industry"`
	Label      string    `json:"label"`
	Benchmark  Benchmark `json:"benchmark"`
	Percentile int       `json:"percentile"`
	Band       string    `json:"band"`
	Category   string    `json:"category"`
	Color      string    `json:"color"`
}

func Benchmarked(score int, ind Industry) BenchmarkResult {
	ind = ParseIndustry(string(ind))
	return BenchmarkResult{
		Industry:   ind,
		Label:      IndustryLabel(ind),
		Benchmark:  BenchmarkFor(ind),
		Percentile: Percentile(score, ind),
		Band:       PerformanceBand(score),
		Category:   ScoreCategory(score),
		Color:      ScoreColor(score),
	}
}

// Result is a scored report with everything shown next to it: suggestions,
// rewrites, the industry benchmark, the quick structural check and the
// next-step plan.
type Result struct {
	Report          *Report          `json:"report"`
	Suggestions     []Suggestion     `json:"suggestions"`
	Alternatives    Alternatives     `json:"alternatives"`
	Benchmark       BenchmarkResult  `json:"benchmark"`
	QuickAnalysis   StatementCheck   `json:"quickAnalysis"`
	Recommendations []Recommendation `json:"recommendations"`
	NextSteps       NextStepPlan     `json:"nextSteps"`
}

// Assemble builds the Result for a report of text. Suggestions already on the
// report are reused.
func Assemble(r *Report, text string, ind Industry) *Result {
	suggestions := r.Suggestions
	if suggestions == nil {
		suggestions = Suggest(r, text, r.WordCount)
	}
	check := AnalyzeStatement(text, r.WordCount)
	return &Result{
		Report:          r,
		Suggestions:     suggestions,
		Alternatives:    FallbackAlternatives(text, r.Overall),
		Benchmark:       Benchmarked(r.Overall, ind),
		QuickAnalysis:   check,
		Recommendations: Recommendations(check, r.Specificity),
		NextSteps:       NextSteps(r.Overall),
	}
}
