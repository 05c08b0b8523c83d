package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show recent player events",
	Args:  cobra.NoArgs,
	RunE:  runEventsCmd,
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.Flags().String("since", "", "Only events at or after this RFC 3339 timestamp")
}

func runEventsCmd(cmd *cobra.Command, args []string) error {
	since, _ := cmd.Flags().GetString("since")

	client := NewClient(serverURL)
	events, err := client.Events(since)
	if err != nil {
		return fmt.Errorf("failed to fetch events: %w", err)
	}

	if jsonOutput {
		printJSON(events)
		return nil
	}

	if len(events) == 0 {
		fmt.Println("No events")
		return nil
	}

	fmt.Printf("Recent Events (%d):\n\n", len(events))
	fmt.Printf("  %-12s %-24s %s\n", "TIME", "TYPE", "CONTENT")
	fmt.Println("  " + strings.Repeat("-", 50))

	for _, e := range events {
		ago := e.OccurredAt
		if t, err := time.Parse(time.RFC3339, e.OccurredAt); err == nil {
			ago = formatTimeAgo(t)
		}
		fmt.Printf("  %-12s %-24s %s\n", ago, e.EventType, e.ContentID)
	}
	return nil
}

func formatTimeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
