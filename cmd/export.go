package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-compose/compose"
	"go-compose/midi"
	"go-compose/sequencer"
)

var outputFlag string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Generate a song and write it to a standard MIDI file",
	RunE:  runExport,
}

func init() {
	addGenerationFlags(exportCmd)
	exportCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "output .mid path (default: go-compose-<id>.mid)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	song, rng, err := newSong()
	if err != nil {
		return err
	}

	// Unroll the arrangement the same way playback walks it, drum reroll
	// per repeat included. Each repeat's lane is copied out before the next
	// reroll overwrites it.
	var grids []*sequencer.Grid
	for _, sec := range song.Sections {
		for r := 0; r < sec.Repeats; r++ {
			if r > 0 {
				compose.RefreshRhythm(rng, sec, song.Tempo)
			}
			grids = append(grids, snapshotGrid(sec.Grid))
		}
	}

	path := outputFlag
	if path == "" {
		path = fmt.Sprintf("go-compose-%s.mid", song.ID.String()[:8])
	}

	if err := midi.Export(path, song.Tempo, grids); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%s %s, %d bpm)\n", path, song.Key.Class, song.Mode, song.Tempo)
	return nil
}

func snapshotGrid(g *sequencer.Grid) *sequencer.Grid {
	out := sequencer.NewGrid(g.Name, len(g.Steps), g.Swing)
	out.PedalChannel = g.PedalChannel
	for i := range g.Steps {
		out.Steps[i].Pedal = g.Steps[i].Pedal
		for t := range g.Steps[i].Events {
			events := make([]sequencer.NoteEvent, len(g.Steps[i].Events[t]))
			copy(events, g.Steps[i].Events[t])
			out.Steps[i].Events[t] = events
		}
	}
	return out
}
