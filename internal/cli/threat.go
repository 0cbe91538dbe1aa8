package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newThreatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "threat",
		Short: "Manage detected threats",
	}

	cmd.AddCommand(newThreatActiveCmd())
	cmd.AddCommand(newThreatHistoryCmd())
	cmd.AddCommand(newThreatRespondCmd())

	return cmd
}

func newThreatActiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "active",
		Short: "List active threats",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			active, err := apiClient.Threats().ListActive(ctx)
			if err != nil {
				return fmt.Errorf("failed to list active threats: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(active)
			}

			t := NewTable("ID", "SEVERITY", "CATEGORY", "SOURCE", "STATUS", "CONFIDENCE")
			for _, th := range active.Threats {
				t.AddRow(
					strconv.FormatInt(th.ID, 10),
					formatSeverity(th.Severity),
					th.Category,
					truncate(th.Source, 30),
					formatStatus(th.Status),
					fmt.Sprintf("%.1f%%", th.Confidence),
				)
			}
			t.Render()
			fmt.Printf("\n%d active threat(s)\n", active.Count)
			return nil
		},
	}
}

func newThreatHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent threats",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			history, err := apiClient.Threats().History(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list threat history: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(history)
			}

			t := NewTable("ID", "TIME", "SEVERITY", "CATEGORY", "SOURCE", "STATUS")
			for _, th := range history.Threats {
				t.AddRow(
					strconv.FormatInt(th.ID, 10),
					th.Timestamp.Format("2006-01-02 15:04:05"),
					formatSeverity(th.Severity),
					th.Category,
					truncate(th.Source, 30),
					formatStatus(th.Status),
				)
			}
			t.Render()
			fmt.Printf("\nShowing %d of %d threat(s)\n", len(history.Threats), history.Total)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum threats to show (0 = server default)")

	return cmd
}

func newThreatRespondCmd() *cobra.Command {
	var action string

	cmd := &cobra.Command{
		Use:   "respond <id>",
		Short: "Trigger automated incident response for a threat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid threat ID: %s", args[0])
			}

			ctx := context.Background()
			resp, err := apiClient.Threats().Respond(ctx, id, action)
			if err != nil {
				return fmt.Errorf("failed to initiate response: %w", err)
			}

			fmt.Printf("%s (playbook: %s)\n", resp.Message, resp.ResponseType)
			return nil
		},
	}

	cmd.Flags().StringVar(&action, "action", "", "response playbook: auto_mitigate, investigate, contain")

	return cmd
}
