package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Show or set the connectivity signal",
	Long: `Without arguments, shows the daemon's current connectivity status.
The set subcommand feeds a report in as an external network probe would.

Examples:
  marquee network
  marquee network set --offline
  marquee network set --downlink 2.5 --rtt 80`,
	Args: cobra.NoArgs,
	RunE: runNetworkCmd,
}

var networkSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Report a connectivity status to the daemon",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		offline, _ := cmd.Flags().GetBool("offline")
		downlink, _ := cmd.Flags().GetFloat64("downlink")
		rtt, _ := cmd.Flags().GetInt("rtt")
		tier, _ := cmd.Flags().GetString("tier")

		client := NewClient(serverURL)
		st, err := client.SetNetwork(NetworkStatus{
			Online:        !offline,
			DownlinkMbps:  downlink,
			RTTMillis:     rtt,
			EffectiveTier: tier,
		})
		if err != nil {
			return fmt.Errorf("set network failed: %w", err)
		}
		printNetwork(st)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(networkCmd)
	networkCmd.AddCommand(networkSetCmd)
	networkSetCmd.Flags().Bool("offline", false, "Report the device as offline")
	networkSetCmd.Flags().Float64("downlink", 0, "Downlink bandwidth in Mbps")
	networkSetCmd.Flags().Int("rtt", 0, "Round-trip time in milliseconds")
	networkSetCmd.Flags().String("tier", "", "Effective connection tier (e.g. 4g)")
}

func runNetworkCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	st, err := client.Network()
	if err != nil {
		return fmt.Errorf("failed to fetch network status: %w", err)
	}
	printNetwork(st)
	return nil
}

func printNetwork(st *NetworkStatus) {
	if jsonOutput {
		printJSON(st)
		return
	}
	state := "offline"
	if st.Online {
		state = "online"
	}
	fmt.Printf("Network: %s\n", state)
	if st.DownlinkMbps > 0 {
		fmt.Printf("  Downlink: %.1f Mbps\n", st.DownlinkMbps)
	}
	if st.RTTMillis > 0 {
		fmt.Printf("  RTT:      %d ms\n", st.RTTMillis)
	}
	if st.EffectiveTier != "" {
		fmt.Printf("  Tier:     %s\n", st.EffectiveTier)
	}
}
