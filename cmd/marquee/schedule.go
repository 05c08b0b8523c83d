package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Show or replace the content schedule",
	Args:  cobra.NoArgs,
	RunE:  runScheduleCmd,
}

var scheduleSetCmd = &cobra.Command{
	Use:   "set <file>",
	Short: "Install a schedule from a JSON file ('-' for stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error
		if args[0] == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("read schedule: %w", err)
		}

		var sched ScheduleResponse
		if err := json.Unmarshal(data, &sched); err != nil {
			return fmt.Errorf("parse schedule: %w", err)
		}

		client := NewClient(serverURL)
		resp, err := client.SetSchedule(sched)
		if err != nil {
			return fmt.Errorf("set schedule failed: %w", err)
		}
		fmt.Printf("Schedule installed (%d items)\n", len(resp.Items))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.AddCommand(scheduleSetCmd)
}

func runScheduleCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	sched, err := client.Schedule()
	if err != nil {
		return fmt.Errorf("failed to fetch schedule: %w", err)
	}

	if jsonOutput {
		printJSON(sched)
		return nil
	}

	if len(sched.Items) == 0 {
		fmt.Println("No schedule installed")
		return nil
	}

	fmt.Printf("Schedule (%d items):\n\n", len(sched.Items))
	fmt.Printf("  %-12s %-16s %-22s %-22s %s\n", "ID", "CONTENT", "START", "END", "PRIORITY")
	for _, item := range sched.Items {
		start := item.StartTime
		if start == "" {
			start = "always"
		}
		end := item.EndTime
		if end == "" {
			end = "always"
		}
		fmt.Printf("  %-12s %-16s %-22s %-22s %d\n", item.ID, item.ContentID, start, end, item.Priority)
	}
	return nil
}
