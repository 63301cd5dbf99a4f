package cmd

import (
	"github.com/spf13/cobra"

	"go-compose/debug"
)

var debugFlag bool

var rootCmd = &cobra.Command{
	Use:   "go-compose",
	Short: "Procedural song generator with MIDI playback",
	Long: `go-compose writes a short song (chords, melody, bass, drums) by a
constrained random walk over a chord transition graph and plays it back
over a MIDI output port.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if debugFlag {
			return debug.Enable()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "log to ~/.config/go-compose/debug.log")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
