package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newAlertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alert",
		Short: "Manage alerts",
	}

	cmd.AddCommand(newAlertListCmd())
	cmd.AddCommand(newAlertReadCmd())

	return cmd
}

func newAlertListCmd() *cobra.Command {
	var unreadOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			alerts, err := apiClient.Alerts().List(ctx, unreadOnly)
			if err != nil {
				return fmt.Errorf("failed to list alerts: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(alerts)
			}

			t := NewTable("ID", "THREAT", "SEVERITY", "READ", "MESSAGE")
			for _, a := range alerts.Alerts {
				read := "no"
				if a.Read {
					read = "yes"
				}
				t.AddRow(
					strconv.FormatInt(a.ID, 10),
					strconv.FormatInt(a.ThreatID, 10),
					formatSeverity(a.Severity),
					read,
					truncate(a.Message, 50),
				)
			}
			t.Render()
			fmt.Printf("\n%d unread alert(s)\n", alerts.UnreadCount)
			return nil
		},
	}

	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "show only unread alerts")

	return cmd
}

func newAlertReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark an alert as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid alert ID: %s", args[0])
			}

			ctx := context.Background()
			if _, err := apiClient.Alerts().MarkRead(ctx, id); err != nil {
				return fmt.Errorf("failed to mark alert as read: %w", err)
			}

			fmt.Printf("Alert %d marked as read\n", id)
			return nil
		},
	}
}
