package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy-search known content by title",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearchCmd,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

var confidenceNames = []string{"none", "low", "medium", "high"}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	client := NewClient(serverURL)
	results, err := client.Search(query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if jsonOutput {
		printJSON(results)
		return nil
	}

	if len(results) == 0 {
		fmt.Println("No matches")
		return nil
	}

	fmt.Printf("Matches (%d):\n\n", len(results))
	fmt.Printf("  %-16s %-40s %-8s %s\n", "ID", "TITLE", "SCORE", "CONFIDENCE")
	for _, r := range results {
		conf := "unknown"
		if r.Confidence >= 0 && r.Confidence < len(confidenceNames) {
			conf = confidenceNames[r.Confidence]
		}
		fmt.Printf("  %-16s %-40s %-8.2f %s\n", r.ID, r.Title, r.Score, conf)
	}
	return nil
}
