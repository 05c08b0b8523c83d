package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var playlistCmd = &cobra.Command{
	Use:   "playlist",
	Short: "Show or replace the playlist",
	Long: `Without arguments, shows the current playlist. The load and update
subcommands read a playlist JSON document from a file or stdin.

Examples:
  marquee playlist                   # Show the playlist
  marquee playlist load list.json    # Replace and restart from the top
  marquee playlist update list.json  # Replace, keeping the current position`,
	Args: cobra.NoArgs,
	RunE: runPlaylistCmd,
}

var playlistLoadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load a playlist from a JSON file ('-' for stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		startIndex, _ := cmd.Flags().GetInt("start")
		req, err := readPlaylistFile(args[0])
		if err != nil {
			return err
		}
		req.StartIndex = startIndex

		client := NewClient(serverURL)
		st, err := client.LoadPlaylist(*req)
		if err != nil {
			return fmt.Errorf("load failed: %w", err)
		}
		printPlayback(st)
		return nil
	},
}

var playlistUpdateCmd = &cobra.Command{
	Use:   "update <file>",
	Short: "Update the playlist in place, keeping the current position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := readPlaylistFile(args[0])
		if err != nil {
			return err
		}

		client := NewClient(serverURL)
		st, err := client.UpdatePlaylist(*req)
		if err != nil {
			return fmt.Errorf("update failed: %w", err)
		}
		printPlayback(st)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(playlistCmd)
	playlistCmd.AddCommand(playlistLoadCmd, playlistUpdateCmd)
	playlistLoadCmd.Flags().Int("start", 0, "Playlist index to start from")
}

func runPlaylistCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	pl, err := client.Playlist()
	if err != nil {
		return fmt.Errorf("failed to fetch playlist: %w", err)
	}

	if jsonOutput {
		printJSON(pl)
		return nil
	}

	if len(pl.Items) == 0 {
		fmt.Println("Playlist is empty")
		return nil
	}

	fmt.Printf("Playlist (%d items):\n\n", len(pl.Items))
	for i, item := range pl.Items {
		marker := " "
		if i == pl.Index {
			marker = ">"
		}
		label := item.Title
		if label == "" {
			label = item.ID
		}
		fmt.Printf(" %s %2d  %-40s %-8s %6.1fs\n",
			marker, i, label, item.Type, float64(item.Duration)/1000)
	}
	return nil
}

// readPlaylistFile accepts either a bare item array or a full request
// document with items and start_index.
func readPlaylistFile(path string) (*LoadPlaylistRequest, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read playlist: %w", err)
	}

	var req LoadPlaylistRequest
	if err := json.Unmarshal(data, &req); err == nil && len(req.Items) > 0 {
		return &req, nil
	}

	var items []ContentItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse playlist: %w", err)
	}
	return &LoadPlaylistRequest{Items: items}, nil
}
