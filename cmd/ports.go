package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-compose/midi"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List MIDI output ports",
	Run: func(cmd *cobra.Command, args []string) {
		defer midi.Close()
		ports := midi.ListPorts()
		if len(ports) == 0 {
			fmt.Println("no MIDI output ports found")
			return
		}
		for i, p := range ports {
			fmt.Printf("  %d: %s\n", i, p)
		}
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)
}
