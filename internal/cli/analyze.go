package cli

import (
	"context"
	"fmt"

	"github.com/safeguardx/safeguardx/pkg/client"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	var source, level string

	cmd := &cobra.Command{
		Use:   "analyze <message>",
		Short: "Submit a log event for anomaly analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			result, err := apiClient.Threats().Analyze(ctx, client.AnalyzeRequest{
				Source:  source,
				Level:   level,
				Message: args[0],
			})
			if err != nil {
				return fmt.Errorf("failed to analyze log: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(result)
			}

			fmt.Printf("Log ID:        %d\n", result.LogID)
			fmt.Printf("Anomaly score: %.3f\n", result.AnomalyScore)
			if result.ThreatDetected {
				fmt.Printf("Threat:        #%d %s (%s)\n",
					result.Threat.ID, result.Threat.Category, formatSeverity(result.Threat.Severity))
				fmt.Printf("Risk level:    %d/5\n", result.Threat.RiskLevel)
				if result.Alert != nil {
					fmt.Printf("Alert:         #%d %s\n", result.Alert.ID, result.Alert.Message)
				}
			} else {
				fmt.Println("No threat detected")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "cli", "log source identifier")
	cmd.Flags().StringVar(&level, "level", "INFO", "log level (INFO, WARN, ERROR, CRITICAL)")

	return cmd
}
