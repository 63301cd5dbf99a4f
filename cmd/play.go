package cmd

import (
	"context"
	"fmt"
	"math/rand"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"go-compose/compose"
	"go-compose/config"
	"go-compose/midi"
	"go-compose/sequencer"
	"go-compose/tui"
)

var (
	portFlag  string
	printFlag bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Generate a song and play it over a MIDI output port",
	RunE:  runPlay,
}

func init() {
	addGenerationFlags(playCmd)
	playCmd.Flags().StringVar(&portFlag, "port", "", "MIDI output port name (empty = first available)")
	playCmd.Flags().BoolVar(&printFlag, "print", false, "print the generated song instead of playing it")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	song, rng, err := newSong()
	if err != nil {
		return err
	}

	if printFlag {
		fmt.Println(tui.RenderSong(song))
		return nil
	}

	port := portFlag
	if port == "" {
		cfg, err := config.Load()
		if err == nil {
			port = cfg.Output.PortName
		}
	}

	sink, err := midi.OpenPort(port)
	if err != nil {
		return err
	}
	defer midi.Close()

	player := sequencer.NewPlayer(sink, song.Tempo)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	prog := tea.NewProgram(tui.NewModel(song, player, cancel))
	go func() {
		playSong(ctx, player, rng, song)
		prog.Send(tui.DoneMsg{})
	}()

	_, err = prog.Run()
	return err
}

// playSong runs the whole arrangement: every section, every repeat, with the
// drum lane rerolled between repeats of the same section.
func playSong(ctx context.Context, player *sequencer.Player, rng *rand.Rand, song *compose.Song) {
	for _, sec := range song.Sections {
		for r := 0; r < sec.Repeats; r++ {
			if ctx.Err() != nil {
				return
			}
			if r > 0 {
				compose.RefreshRhythm(rng, sec, song.Tempo)
			}
			player.Play(ctx, sec.Grid)
		}
	}
}
