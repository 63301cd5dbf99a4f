package compose

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"go-compose/theory"
)

// Options are the resolved generation parameters for one song.
type Options struct {
	Tempo        int
	Swing        bool
	Bars         int
	Repeats      int
	NonChordBias float64
}

// Song is one generation run: a verse and a chorus over the same key, the
// chorus's progression continuing from the verse's last chord.
type Song struct {
	ID       uuid.UUID
	Key      theory.Note
	Mode     theory.Mode
	Tempo    int
	Swing    bool
	Sections []*Section
}

// GenerateSong produces a complete song. Generation is all-or-nothing: any
// error aborts before a single note is played.
func GenerateSong(rng *rand.Rand, key theory.Note, mode theory.Mode, opts Options) (*Song, error) {
	if opts.Tempo < 1 {
		return nil, fmt.Errorf("%w: tempo must be >= 1, got %d", ErrInvalidArgument, opts.Tempo)
	}
	if opts.Repeats < 1 {
		return nil, fmt.Errorf("%w: repeats must be >= 1, got %d", ErrInvalidArgument, opts.Repeats)
	}

	verseProg, err := GenerateProgression(rng, opts.Bars, mode, "")
	if err != nil {
		return nil, err
	}
	chorusProg, err := GenerateProgression(rng, opts.Bars, mode, verseProg[len(verseProg)-1])
	if err != nil {
		return nil, err
	}

	verse, err := BuildSection(rng, "verse", key, mode, verseProg, opts)
	if err != nil {
		return nil, err
	}
	chorus, err := BuildSection(rng, "chorus", key, mode, chorusProg, opts)
	if err != nil {
		return nil, err
	}

	return &Song{
		ID:       uuid.New(),
		Key:      key,
		Mode:     mode,
		Tempo:    opts.Tempo,
		Swing:    opts.Swing,
		Sections: []*Section{verse, chorus},
	}, nil
}
