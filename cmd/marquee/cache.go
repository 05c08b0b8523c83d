package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain the offline content cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache storage statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := NewClient(serverURL)
		stats, err := client.CacheStats()
		if err != nil {
			return fmt.Errorf("failed to fetch cache stats: %w", err)
		}

		if jsonOutput {
			printJSON(stats)
			return nil
		}

		fmt.Println("Cache")
		fmt.Printf("  Content rows:  %d\n", stats.ContentRows)
		fmt.Printf("  Binary assets: %d\n", stats.BinaryRows)
		fmt.Printf("  Asset bytes:   %s\n", formatBytes(stats.TotalBinarySize))
		fmt.Printf("  Average asset: %s\n", formatBytes(stats.AvgAssetSize))
		return nil
	},
}

var cacheSweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Remove expired entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := NewClient(serverURL)
		resp, err := client.CacheSweep()
		if err != nil {
			return fmt.Errorf("sweep failed: %w", err)
		}

		if jsonOutput {
			printJSON(resp)
			return nil
		}
		fmt.Printf("Removed %d expired entries\n", resp.Removed)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove everything from the cache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		confirm, _ := cmd.Flags().GetBool("yes")
		if !confirm {
			return fmt.Errorf("refusing to clear the cache without --yes")
		}

		client := NewClient(serverURL)
		if err := client.CacheClear(); err != nil {
			return fmt.Errorf("clear failed: %w", err)
		}
		fmt.Println("Cache cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatsCmd, cacheSweepCmd, cacheClearCmd)
	cacheClearCmd.Flags().BoolP("yes", "y", false, "Confirm clearing the cache")
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.1f GiB", float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
