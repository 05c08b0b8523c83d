package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var playbackCmd = &cobra.Command{
	Use:   "playback",
	Short: "Control playback",
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Resume playback",
	Args:  cobra.NoArgs,
	RunE:  func(cmd *cobra.Command, args []string) error { return playbackAction("play") },
}

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause on the current item",
	Args:  cobra.NoArgs,
	RunE:  func(cmd *cobra.Command, args []string) error { return playbackAction("pause") },
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop playback, keeping the playlist",
	Args:  cobra.NoArgs,
	RunE:  func(cmd *cobra.Command, args []string) error { return playbackAction("stop") },
}

var advanceCmd = &cobra.Command{
	Use:   "next",
	Short: "Advance to the next item",
	Args:  cobra.NoArgs,
	RunE:  func(cmd *cobra.Command, args []string) error { return playbackAction("advance") },
}

var skipCmd = &cobra.Command{
	Use:   "skip <index>",
	Short: "Jump to a playlist position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index: %s", args[0])
		}
		client := NewClient(serverURL)
		st, err := client.SkipTo(index)
		if err != nil {
			return fmt.Errorf("skip failed: %w", err)
		}
		printPlayback(st)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(playbackCmd)
	playbackCmd.AddCommand(playCmd, pauseCmd, stopCmd, advanceCmd, skipCmd)
}

func playbackAction(action string) error {
	client := NewClient(serverURL)
	st, err := client.PlaybackAction(action)
	if err != nil {
		return fmt.Errorf("%s failed: %w", action, err)
	}
	printPlayback(st)
	return nil
}

func printPlayback(st *PlaybackState) {
	if jsonOutput {
		printJSON(st)
		return
	}
	fmt.Printf("Status: %s\n", st.Status)
	if st.Current != nil {
		fmt.Printf("Current: %s\n", itemLabel(st.Current))
	}
	if st.LastError != "" {
		fmt.Printf("Error: %s (retry %d)\n", st.LastError, st.RetryCount)
	}
}
