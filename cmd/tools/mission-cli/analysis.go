// cmd/tools/mission-cli/analysis.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"mission-analyzer/internal/scoring"

	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	var (
		profile     string
		aggregation string
		industry    string
		asJSON      bool
	)
	cmd := &cobra.Command{
		Use:   "score [text]",
		Short: "Score a mission statement (reads stdin when no text is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := textArg(cmd, args)
			if err != nil {
				return err
			}
			p, err := scoring.ProfileByName(profile)
			if err != nil {
				return err
			}
			agg, err := scoring.ParseAggregation(aggregation)
			if err != nil {
				return err
			}

			result := scoring.Assemble(scoring.ScoreWith(text, p, agg), text, scoring.Industry(industry))
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().StringVar(&profile, "profile", scoring.ProfileSimple, "scoring profile (simple, extended)")
	cmd.Flags().StringVar(&aggregation, "aggregation", string(scoring.AggregationWeighted), "overall aggregation (weighted, mean)")
	cmd.Flags().StringVar(&industry, "industry", string(scoring.IndustryOther), "industry for the benchmark")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}

func textArg(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	text := strings.TrimSpace(string(b))
	if text == "" {
		return "", fmt.Errorf("no mission text given")
	}
	return text, nil
}

func printResult(w io.Writer, r *scoring.Result) {
	fmt.Fprintf(w, "Overall       %3d  %s\n", r.Report.Overall, r.Benchmark.Category)
	for _, m := range scoring.Metrics[:5] {
		fmt.Fprintf(w, "%-13s %3d\n", strings.ToUpper(m[:1])+m[1:], r.Report.Metric(m))
	}
	fmt.Fprintf(w, "Words         %3d\n", r.Report.WordCount)
	fmt.Fprintf(w, "Benchmark     %s: %dth percentile (%s)\n", r.Benchmark.Label, r.Benchmark.Percentile, r.Benchmark.Band)
	for _, s := range r.Suggestions {
		fmt.Fprintf(w, "- [%s] %s: %s\n", s.Priority, s.Issue, s.Suggestion)
	}
}

func newCompareCmd() *cobra.Command {
	var drafts []string
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare drafts given as --version ID=TEXT",
		RunE: func(cmd *cobra.Command, _ []string) error {
			versions := make([]scoring.Version, 0, len(drafts))
			for _, d := range drafts {
				id, text, ok := strings.Cut(d, "=")
				if !ok {
					return fmt.Errorf("version %q must be ID=TEXT", d)
				}
				versions = append(versions, scoring.Version{ID: id, Text: text})
			}
			comparison := scoring.CompareVersions(scoring.FillScores(versions))
			if comparison == nil {
				return fmt.Errorf("at least two non-empty versions are required")
			}
			return writeJSON(cmd.OutOrStdout(), comparison)
		},
	}
	cmd.Flags().StringArrayVar(&drafts, "version", nil, "draft as ID=TEXT (repeatable)")
	return cmd
}

func newBenchmarkCmd() *cobra.Command {
	var score int
	cmd := &cobra.Command{
		Use:   "benchmark <industry>",
		Short: "Show an industry benchmark, optionally placing a score in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ind := scoring.ParseIndustry(args[0])
			if !cmd.Flags().Changed("score") {
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
					"industry":  ind,
					"label":     scoring.IndustryLabel(ind),
					"benchmark": scoring.BenchmarkFor(ind),
				})
			}
			if score < 0 || score > 100 {
				return fmt.Errorf("score must be between 0 and 100, got %d", score)
			}
			return writeJSON(cmd.OutOrStdout(), scoring.Benchmarked(score, ind))
		},
	}
	cmd.Flags().IntVar(&score, "score", 0, "overall score to place within the industry")
	return cmd
}

func newWorkshopCmd() *cobra.Command {
	var (
		answers  scoring.WorkshopAnswers
		industry string
	)
	cmd := &cobra.Command{
		Use:   "workshop",
		Short: "Assemble a mission statement from workshop answers and score it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ind := scoring.ParseIndustry(industry)
			if !answers.Complete() {
				if preview := scoring.PreviewMission(answers, ind); preview != "" {
					fmt.Fprintln(cmd.OutOrStdout(), preview)
				}
				return fmt.Errorf("--purpose, --audience and --verb are required")
			}
			text := scoring.GenerateMission(answers, ind)
			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
				"missionText": text,
				"report":      scoring.Score(text, scoring.SimpleProfile),
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&answers.Purpose, "purpose", "", "what the organization does")
	f.StringVar(&answers.Audience, "audience", "", "who it serves")
	f.StringVar(&answers.ActionVerb, "verb", "", "leading action verb")
	f.StringVar(&answers.Impact, "impact", "", "the change it makes")
	f.StringVar(&answers.UniqueValue, "unique", "", "what sets it apart")
	f.StringVar(&answers.Timeframe, "timeframe", "", "optional timeframe")
	f.StringVar(&industry, "industry", string(scoring.IndustryOther), "industry template")
	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
