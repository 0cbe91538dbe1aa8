package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show security operations summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			metrics, err := apiClient.Dashboard().Metrics(ctx)
			if err != nil {
				return fmt.Errorf("failed to get dashboard metrics: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(metrics)
			}

			fmt.Println("SafeGuard X Security Operations")
			fmt.Println(strings.Repeat("=", 40))
			fmt.Printf("  System status:  %s\n", formatStatus(metrics.SystemStatus))
			fmt.Printf("  Active threats: %d\n", metrics.ActiveThreats)
			if metrics.ActiveThreats > 0 {
				fmt.Printf("    critical: %d  high: %d  medium: %d  low: %d\n",
					metrics.ThreatLevels.Critical,
					metrics.ThreatLevels.High,
					metrics.ThreatLevels.Medium,
					metrics.ThreatLevels.Low)
			}
			fmt.Printf("  Threats today:  %d\n", metrics.TotalThreatsToday)
			fmt.Printf("  Unread alerts:  %d\n", metrics.UnreadAlerts)
			fmt.Printf("  Last updated:   %s\n", metrics.LastUpdated.Format("2006-01-02 15:04:05"))

			return nil
		},
	}
}
