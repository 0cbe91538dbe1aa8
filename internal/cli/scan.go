package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan files for malware",
	}

	cmd.AddCommand(newScanFileCmd())
	cmd.AddCommand(newScanLookupCmd())
	cmd.AddCommand(newScanStatsCmd())

	return cmd
}

func newScanFileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "file <path>",
		Short: "Upload a file for scanning",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open file: %w", err)
			}
			defer f.Close()

			ctx := context.Background()
			result, err := apiClient.Scans().ScanFile(ctx, filepath.Base(args[0]), f)
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(result)
			}

			fmt.Printf("File:         %s (%d bytes)\n", result.FileName, result.FileSize)
			fmt.Printf("SHA-256:      %s\n", result.FileHash)
			fmt.Printf("Status:       %s\n", formatStatus(result.ScanStatus))
			fmt.Printf("Threat level: %s\n", formatSeverity(result.ThreatLevel))
			if len(result.AnalysisSummary.SuspiciousPatterns) > 0 {
				fmt.Println("Findings:")
				for _, p := range result.AnalysisSummary.SuspiciousPatterns {
					fmt.Printf("  - %s\n", p)
				}
			}
			return nil
		},
	}
}

func newScanLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <sha256>",
		Short: "Look up a file hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			result, err := apiClient.Scans().LookupHash(ctx, args[0])
			if err != nil {
				return fmt.Errorf("lookup failed: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(result)
			}

			fmt.Printf("Hash:       %s\n", result.Hash)
			fmt.Printf("Known:      %t\n", result.KnownMalware)
			fmt.Printf("Detections: %d\n", result.Detections)
			fmt.Printf("Reputation: %s\n", result.Reputation)
			return nil
		},
	}
}

func newScanStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show scanner statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			stats, err := apiClient.Scans().Stats(ctx)
			if err != nil {
				return fmt.Errorf("failed to get scanner stats: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(stats)
			}

			fmt.Printf("Total scans:      %d\n", stats.TotalScans)
			fmt.Printf("Malware detected: %d\n", stats.MalwareDetected)
			fmt.Printf("Clean files:      %d\n", stats.CleanFiles)
			fmt.Printf("Uptime:           %s\n", stats.SystemUptime)
			return nil
		},
	}
}
