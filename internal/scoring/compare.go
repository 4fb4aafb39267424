package scoring

import "fmt"

// Version is one draft in an A/B comparison. Scores is nil until the draft
// has been scored.
type Version struct {
	ID     string  `json:"id"`
	Text   string  `json:"text"`
	Scores *Scores `json:"scores"`
}

type MetricWinner struct {
	Winner string `json:"winner"`
	Score  int    `json:"score"`
}

type Insight struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type Comparison struct {
	Winner        string                  `json:"winner"`
	WinnerScore   int                     `json:"winnerScore"`
	MetricWinners map[string]MetricWinner `json:"metricWinners"`
	Insights      []Insight               `json:"insights"`
}

// Usable reports whether the draft has non-blank text and scores.
func (v Version) Usable() bool {
	return TrimText(v.Text) != "" && v.Scores != nil
}

// CompareVersions ranks scored, non-blank drafts. It returns nil when fewer
// than two drafts are usable. Ties go to the draft seen first.
func CompareVersions(versions []Version) *Comparison {
	var valid []Version
	for _, v := range versions {
		if v.Usable() {
			valid = append(valid, v)
		}
	}
	if len(valid) < 2 {
		return nil
	}

	winner := valid[0]
	for _, v := range valid[1:] {
		if v.Scores.Overall > winner.Scores.Overall {
			winner = v
		}
	}

	c := &Comparison{
		Winner:        winner.ID,
		WinnerScore:   winner.Scores.Overall,
		MetricWinners: make(map[string]MetricWinner, len(Metrics)),
		Insights:      []Insight{},
	}
	for _, m := range Metrics {
		best := MetricWinner{Winner: valid[0].ID, Score: valid[0].Scores.Metric(m)}
		for _, v := range valid[1:] {
			if s := v.Scores.Metric(m); s > best.Score {
				best = MetricWinner{Winner: v.ID, Score: s}
			}
		}
		c.MetricWinners[m] = best
	}

	var loser *Version
	for i := range valid {
		if valid[i].ID != winner.ID {
			loser = &valid[i]
			break
		}
	}
	if loser == nil {
		return c
	}

	w, l := winner.Scores, loser.Scores
	c.Insights = append(c.Insights, Insight{
		Type:    MetricOverall,
		Message: fmt.Sprintf("Version %s wins by %d points (%d vs %d)", winner.ID, w.Overall-l.Overall, w.Overall, l.Overall),
	})
	if w.Clarity > l.Clarity+5 {
		c.Insights = append(c.Insights, Insight{
			Type:    MetricClarity,
			Message: fmt.Sprintf("Version %s is clearer and more concise", winner.ID),
		})
	}
	if w.Authenticity > l.Authenticity+5 {
		c.Insights = append(c.Insights, Insight{
			Type:    MetricAuthenticity,
			Message: fmt.Sprintf("Version %s avoids corporate buzzwords better", winner.ID),
		})
	}
	if TextLength(winner.Text) < TextLength(loser.Text) && w.Memorability > l.Memorability {
		c.Insights = append(c.Insights, Insight{
			Type:    MetricMemorability,
			Message: fmt.Sprintf("Version %s is more memorable due to its conciseness", winner.ID),
		})
	}
	return c
}

// FillScores returns a copy of versions in which drafts with text but no
// scores are scored with the simple profile and mean aggregation.
func FillScores(versions []Version) []Version {
	out := make([]Version, len(versions))
	for i, v := range versions {
		if v.Scores == nil && TrimText(v.Text) != "" {
			s := ScoreWith(v.Text, SimpleProfile, AggregationMean).Scores
			v.Scores = &s
		}
		out[i] = v
	}
	return out
}
