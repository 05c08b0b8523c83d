package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Player status dashboard",
	Long: `Show the player's current state: playback, playlist, connectivity,
cache, and the preload and prefetch queues.

Examples:
  marquee status          # Human-readable dashboard
  marquee status --json   # Machine-readable`,
	Args: cobra.NoArgs,
	RunE: runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)

	st, err := client.Status()
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}

	if jsonOutput {
		printJSON(st)
		return nil
	}

	printStatus(serverURL, st)
	return nil
}

func printStatus(server string, st *StatusResponse) {
	network := "offline"
	if st.Network.Online {
		network = "online"
		if st.Network.DownlinkMbps > 0 {
			network = fmt.Sprintf("online (%.1f Mbps)", st.Network.DownlinkMbps)
		}
	}
	cache := "unavailable"
	if st.CacheDurable {
		cache = "durable"
	}

	fmt.Printf("marquee | Server: %s | Network: %s | Cache: %s\n\n", server, network, cache)

	fmt.Println("Playback")
	fmt.Printf("  Status:   %s\n", st.Playback.Status)
	if st.Playback.Current != nil {
		fmt.Printf("  Current:  %s\n", itemLabel(st.Playback.Current))
	}
	if st.Playback.Next != nil {
		fmt.Printf("  Next:     %s\n", itemLabel(st.Playback.Next))
	}
	fmt.Printf("  Position: %d of %d\n", st.Playback.Index+1, st.PlaylistSize)
	if st.Playback.LastError != "" {
		fmt.Printf("  Error:    %s (retry %d)\n", st.Playback.LastError, st.Playback.RetryCount)
	}
	fmt.Println()

	fmt.Println("Loading")
	fmt.Printf("  Preload:  %d active, %d queued\n", st.PreloadActive, st.PreloadQueued)
	fmt.Printf("  Prefetch: %d active, %d queued\n", st.PrefetchActive, st.PrefetchQueued)
}

func itemLabel(item *ContentItem) string {
	if item.Title != "" {
		return fmt.Sprintf("%s (%s, %s)", item.Title, item.ID, item.Type)
	}
	return fmt.Sprintf("%s (%s)", item.ID, item.Type)
}
