package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/adaudit/adaudit/pkg/client"
)

func newAnomalyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anomaly",
		Short: "Inspect detected anomalies",
	}
	cmd.AddCommand(newAnomalyListCmd())
	cmd.AddCommand(newAnomalyGetCmd())
	cmd.AddCommand(newAnomalySummaryCmd())
	return cmd
}

func newAnomalySummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show anomaly counts by severity",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := apiClient().GetAnomalySummary(cmd.Context())
			if err != nil {
				return err
			}

			return printOutput(summary, func(w *tabwriter.Writer) {
				fmt.Fprintf(w, "TOTAL\t%d\n", summary.Total)
				for _, severity := range []string{"critical", "warning", "info"} {
					if count, ok := summary.Counts[severity]; ok {
						fmt.Fprintf(w, "%s\t%d\n", severity, count)
					}
				}
			})
		},
	}
}

func newAnomalyListCmd() *cobra.Command {
	var (
		campaignID string
		metric     string
		severity   string
		page       int
		pageSize   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List anomalies",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to := window()
			result, err := apiClient().ListAnomalies(cmd.Context(), client.AnomalyListOptions{
				CampaignID: campaignID,
				Metric:     metric,
				Severity:   severity,
				From:       from,
				To:         to,
				Page:       page,
				PageSize:   pageSize,
			})
			if err != nil {
				return err
			}

			return printOutput(result, func(w *tabwriter.Writer) {
				fmt.Fprintln(w, "ID\tCAMPAIGN\tMETRIC\tTYPE\tSEVERITY\tCHANGE\tDETECTED")
				for _, a := range result.Data {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%+.1f%%\t%s\n",
						a.ID, a.CampaignName, a.Metric, a.Type, a.Severity,
						a.ChangePercent, a.DetectedAt.Format("2006-01-02 15:04"))
				}
				fmt.Fprintf(w, "\npage %d of %d (%d total)\n",
					result.Page, result.TotalPages, result.TotalItems)
			})
		},
	}

	cmd.Flags().StringVar(&campaignID, "campaign", "", "filter by campaign ID")
	cmd.Flags().StringVar(&metric, "metric", "", "filter by metric")
	cmd.Flags().StringVar(&severity, "severity", "", "filter by severity")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "page size")
	return cmd
}

func newAnomalyGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one anomaly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := apiClient().GetAnomaly(cmd.Context(), args[0])
			if err != nil {
				if client.IsNotFound(err) {
					return fmt.Errorf("anomaly %s not found", args[0])
				}
				return err
			}

			return printOutput(a, func(w *tabwriter.Writer) {
				fmt.Fprintf(w, "ID\t%s\n", a.ID)
				fmt.Fprintf(w, "CAMPAIGN\t%s (%s)\n", a.CampaignName, a.CampaignID)
				fmt.Fprintf(w, "METRIC\t%s\n", a.Metric)
				fmt.Fprintf(w, "TYPE\t%s\n", a.Type)
				fmt.Fprintf(w, "SEVERITY\t%s\n", a.Severity)
				fmt.Fprintf(w, "CHANGE\t%+.1f%% (%.2f -> %.2f)\n", a.ChangePercent, a.PreviousValue, a.CurrentValue)
				fmt.Fprintf(w, "DETECTED\t%s\n", a.DetectedAt.Format("2006-01-02 15:04:05"))
				if a.Message != "" {
					fmt.Fprintf(w, "MESSAGE\t%s\n", a.Message)
				}
				for i, rec := range a.Recommendations {
					if i == 0 {
						fmt.Fprintf(w, "RECOMMENDATIONS\t%s\n", rec)
					} else {
						fmt.Fprintf(w, "\t%s\n", rec)
					}
				}
			})
		},
	}
}
