package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run analyses over the trailing window",
	}
	cmd.AddCommand(newAnalyzeSegmentsCmd())
	cmd.AddCommand(newAnalyzeCampaignsCmd())
	cmd.AddCommand(newAnalyzeTimeCmd())
	cmd.AddCommand(newAnalyzeKPICmd())
	cmd.AddCommand(newAnalyzeMetricsCmd())
	return cmd
}

func newAnalyzeSegmentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "segments",
		Short: "Ranked campaign segments with insights",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to := window()
			result, err := apiClient().AnalyzeSegments(cmd.Context(), from, to)
			if err != nil {
				return err
			}

			return printOutput(result, func(w *tabwriter.Writer) {
				fmt.Fprintln(w, "CAMPAIGN\tANOMALIES\tSCORE")
				for _, seg := range result.Segments {
					fmt.Fprintf(w, "%s\t%d\t%d\n", seg.CampaignName, len(seg.Anomalies), seg.SeverityScore)
				}
				if len(result.Insights) > 0 {
					fmt.Fprintln(w, "\nINSIGHTS")
					for _, in := range result.Insights {
						fmt.Fprintf(w, "[%s]\t%s\n", in.Type, in.Title)
					}
				}
				if len(result.Correlations) > 0 {
					fmt.Fprintln(w, "\nCORRELATIONS")
					for _, c := range result.Correlations {
						fmt.Fprintf(w, "%s + %s\t%s\t(%d samples)\n",
							c.Metric1, c.Metric2, c.CorrelationType, c.SampleCount)
					}
				}
				if result.PropagationPath != nil {
					fmt.Fprintln(w, "\nPROPAGATION")
					for i, metric := range result.PropagationPath.PropagationChain {
						if i == 0 {
							fmt.Fprintf(w, "root\t%s\n", metric)
						} else {
							fmt.Fprintf(w, "then\t%s\n", metric)
						}
					}
				}
			})
		},
	}
}

func newAnalyzeCampaignsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "campaigns",
		Short: "Per-campaign health comparison",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to := window()
			comparisons, err := apiClient().CompareCampaigns(cmd.Context(), from, to)
			if err != nil {
				return err
			}

			return printOutput(comparisons, func(w *tabwriter.Writer) {
				fmt.Fprintln(w, "CAMPAIGN\tANOMALIES\tAVG SEVERITY\tHEALTH")
				for _, c := range comparisons {
					fmt.Fprintf(w, "%s\t%d\t%.2f\t%.0f\n",
						c.CampaignName, c.AnomalyCount, c.AvgSeverity, c.HealthScore)
				}
			})
		},
	}
}

func newAnalyzeTimeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "time-patterns",
		Short: "When anomalies tend to occur",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to := window()
			result, err := apiClient().AnalyzeTimePatterns(cmd.Context(), from, to)
			if err != nil {
				return err
			}

			return printOutput(result, func(w *tabwriter.Writer) {
				fmt.Fprintf(w, "PATTERN\t%s\n", result.Pattern)
				fmt.Fprintf(w, "CONFIDENCE\t%.0f%%\n", result.Confidence*100)
				fmt.Fprintf(w, "DETAILS\t%s\n", result.Details)
				for i, day := range result.RecommendedMonitoring {
					if i == 0 {
						fmt.Fprintf(w, "MONITOR\t%s\n", day)
					} else {
						fmt.Fprintf(w, "\t%s\n", day)
					}
				}
			})
		},
	}
}

func newAnalyzeKPICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kpi-patterns",
		Short: "Day-of-week KPI baselines and deviating days",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to := window()
			result, err := apiClient().AnalyzeKPIPatterns(cmd.Context(), from, to)
			if err != nil {
				return err
			}

			return printOutput(result, func(w *tabwriter.Writer) {
				if result.WeekdayAvg != nil {
					fmt.Fprintf(w, "WEEKDAY AVG\timpressions %.0f\tclicks %.0f\tspend %.2f\n",
						result.WeekdayAvg.Impressions, result.WeekdayAvg.Clicks, result.WeekdayAvg.Spend)
				}
				if result.WeekendAvg != nil {
					fmt.Fprintf(w, "WEEKEND AVG\timpressions %.0f\tclicks %.0f\tspend %.2f\n",
						result.WeekendAvg.Impressions, result.WeekendAvg.Clicks, result.WeekendAvg.Spend)
				}
				if len(result.AnomalyDays) > 0 {
					fmt.Fprintln(w, "\nDATE\tMETRIC\tVALUE\tEXPECTED\tDEVIATION")
					for _, d := range result.AnomalyDays {
						fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%+.1f%%\n",
							d.Date, d.Metric, d.Value, d.Expected, d.DeviationPercent)
					}
				}
			})
		},
	}
}

func newAnalyzeMetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Anomalies by metric category",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to := window()
			results, err := apiClient().AnalyzeByMetric(cmd.Context(), from, to)
			if err != nil {
				return err
			}

			categories := make([]string, 0, len(results))
			for category := range results {
				categories = append(categories, category)
			}
			sort.Strings(categories)

			return printOutput(results, func(w *tabwriter.Writer) {
				fmt.Fprintln(w, "CATEGORY\tANOMALIES\tAVG SEVERITY\tDOMINANT")
				for _, category := range categories {
					r := results[category]
					fmt.Fprintf(w, "%s\t%d\t%.2f\t%s\n",
						category, r.AnomalyCount, r.AvgSeverityScore, r.DominantType)
				}
			})
		},
	}
}
