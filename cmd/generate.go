package cmd

import (
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"go-compose/compose"
	"go-compose/config"
	"go-compose/debug"
	"go-compose/theory"
)

// Generation flags shared by play and export. Zero values defer to the
// config file, which in turn defers to per-song randomness.
var (
	tempoFlag   int
	keyFlag     string
	minorFlag   bool
	swingFlag   string
	barsFlag    int
	repeatsFlag int
	biasFlag    float64
	seedFlag    int64
)

func addGenerationFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&tempoFlag, "tempo", 0, "beats per minute (0 = random 80-120)")
	cmd.Flags().StringVar(&keyFlag, "key", "", "key pitch class, e.g. C or F# (empty = random)")
	cmd.Flags().BoolVar(&minorFlag, "minor", false, "generate in a minor key")
	cmd.Flags().StringVar(&swingFlag, "swing", "", "swing feel: on, off or auto")
	cmd.Flags().IntVar(&barsFlag, "bars", 0, "bars per section")
	cmd.Flags().IntVar(&repeatsFlag, "repeats", 0, "times each section repeats")
	cmd.Flags().Float64Var(&biasFlag, "bias", -1, "chance a melody note leaves the chord (0-1)")
	cmd.Flags().Int64Var(&seedFlag, "seed", 0, "random seed (0 = time-based)")
}

// newSong resolves config and flags into concrete parameters and generates
// a song. Any error here aborts before playback starts.
func newSong() (*compose.Song, *rand.Rand, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	gen := cfg.Generation

	if tempoFlag != 0 {
		gen.Tempo = tempoFlag
	}
	if keyFlag != "" {
		gen.Key = keyFlag
	}
	if minorFlag {
		gen.Minor = true
	}
	if swingFlag != "" {
		gen.Swing = config.SwingSetting(swingFlag)
	}
	if barsFlag != 0 {
		gen.Bars = barsFlag
	}
	if repeatsFlag != 0 {
		gen.Repeats = repeatsFlag
	}
	if biasFlag >= 0 {
		gen.NonChordBias = biasFlag
	}

	seed := seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	if gen.Tempo == 0 {
		gen.Tempo = 80 + rng.Intn(41)
	}
	if gen.Key == "" {
		classes := theory.PitchClasses()
		gen.Key = classes[rng.Intn(len(classes))]
	}
	swing := false
	switch gen.Swing {
	case config.SwingOn:
		swing = true
	case config.SwingOff:
		swing = false
	default:
		swing = rng.Intn(2) == 1
	}

	// The generators build everything off octave 2 of the key.
	key, err := theory.ParseNote(gen.Key + "2")
	if err != nil {
		return nil, nil, err
	}
	mode := theory.Major
	if gen.Minor {
		mode = theory.Minor
	}

	debug.Log("generate", "seed=%d key=%s mode=%s tempo=%d swing=%v", seed, gen.Key, mode, gen.Tempo, swing)

	song, err := compose.GenerateSong(rng, key, mode, compose.Options{
		Tempo:        gen.Tempo,
		Swing:        swing,
		Bars:         gen.Bars,
		Repeats:      gen.Repeats,
		NonChordBias: gen.NonChordBias,
	})
	if err != nil {
		return nil, nil, err
	}
	return song, rng, nil
}
