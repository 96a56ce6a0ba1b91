package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show server status and anomaly summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := apiClient()
			ctx := cmd.Context()

			health, err := c.Health(ctx)
			if err != nil {
				return fmt.Errorf("server unreachable: %w", err)
			}

			summary, err := c.GetAnomalySummary(ctx)
			if err != nil {
				return err
			}

			out := struct {
				Status  string         `json:"status" yaml:"status"`
				Version string         `json:"version" yaml:"version"`
				Total   int            `json:"total_anomalies" yaml:"total_anomalies"`
				Counts  map[string]int `json:"counts" yaml:"counts"`
			}{health["status"], health["version"], summary.Total, summary.Counts}

			return printOutput(out, func(w *tabwriter.Writer) {
				fmt.Fprintf(w, "STATUS\t%s\n", out.Status)
				fmt.Fprintf(w, "VERSION\t%s\n", out.Version)
				fmt.Fprintf(w, "ANOMALIES\t%d\n", out.Total)
				for _, severity := range []string{"critical", "warning", "info"} {
					if count, ok := out.Counts[severity]; ok {
						fmt.Fprintf(w, "  %s\t%d\n", severity, count)
					}
				}
			})
		},
	}
}
