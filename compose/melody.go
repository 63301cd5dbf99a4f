package compose

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"go-compose/sequencer"
	"go-compose/theory"
)

var ErrInfeasibleDuration = errors.New("no feasible note duration")

// Melodic locality: candidate pitches are weighted by how close they sit to
// the previous note, (window - distance)^exponent, so lines move stepwise
// instead of leaping at random. Candidates outside the window get weight 0.
const (
	pitchWindow   = 36
	pitchExponent = 1.5
)

// Candidate note lengths in grid steps with their draw weights. The 1-step
// sixteenth always fits a nonempty budget, so the feasible set can only be
// empty on a zero budget.
var durationTable = []struct {
	steps  int
	weight float64
}{
	{1, 2}, // sixteenth
	{2, 4}, // eighth
	{3, 2}, // dotted eighth
	{4, 2}, // quarter
	{6, 1}, // dotted quarter
	{8, 1}, // half (a full bar)
}

// MelodyNote is one melody onset spanning Steps grid slots. The slots after
// the first are continuation, not new notes.
type MelodyNote struct {
	Pitch theory.Pitch
	Steps int
}

// GenerateMelody fills exactly one bar per chord of the progression with
// weighted-random notes. bias is the chance each note is drawn from the
// non-chord-tone pool instead of the chord tones. The step counts of the
// result always sum to StepsPerBar * len(progression).
func GenerateMelody(rng *rand.Rand, key theory.Note, mode theory.Mode, progression []theory.Symbol, bias float64) ([]MelodyNote, error) {
	total := sequencer.StepsPerBar * len(progression)
	var out []MelodyNote

	var last theory.Pitch
	haveLast := false
	used := 0

	for barIdx, sym := range progression {
		chordTones, nonChord, err := pitchPools(key, mode, sym)
		if err != nil {
			return nil, err
		}

		barEnd := (barIdx + 1) * sequencer.StepsPerBar
		for used < barEnd {
			steps, err := drawDuration(rng, total-used)
			if err != nil {
				return nil, err
			}

			pool := chordTones
			if rng.Float64() < bias {
				pool = nonChord
			}
			pitch := drawPitch(rng, pool, last, haveLast)

			out = append(out, MelodyNote{Pitch: pitch, Steps: steps})
			last = pitch
			haveLast = true
			used += steps
		}
	}
	return out, nil
}

// pitchPools builds the chord-tone and non-chord-tone candidate sets for one
// chord, each doubled an octave up.
func pitchPools(key theory.Note, mode theory.Mode, sym theory.Symbol) (chordTones, nonChord []theory.Pitch, err error) {
	root := key.Number()
	triad, err := theory.Chord(sym, root)
	if err != nil {
		return nil, nil, err
	}

	inChord := make(map[theory.Pitch]bool, len(triad))
	chordTones = make([]theory.Pitch, 0, 2*len(triad))
	for _, p := range triad {
		inChord[p] = true
		chordTones = append(chordTones, p)
	}
	for _, p := range triad {
		chordTones = append(chordTones, p+12)
	}

	scale := theory.Scale(key, mode)
	var base []theory.Pitch
	for _, p := range scale[:len(scale)-1] { // drop the octave repeat
		if !inChord[p] {
			base = append(base, p)
		}
	}
	nonChord = make([]theory.Pitch, 0, 2*len(base))
	nonChord = append(nonChord, base...)
	for _, p := range base {
		nonChord = append(nonChord, p+12)
	}
	return chordTones, nonChord, nil
}

// drawDuration samples a note length from the candidates that still fit the
// remaining whole-progression budget, proportionally to their weights.
func drawDuration(rng *rand.Rand, remaining int) (int, error) {
	var totalW float64
	for _, c := range durationTable {
		if c.steps <= remaining {
			totalW += c.weight
		}
	}
	if totalW == 0 {
		return 0, fmt.Errorf("%w: %d steps remaining", ErrInfeasibleDuration, remaining)
	}

	r := rng.Float64() * totalW
	for _, c := range durationTable {
		if c.steps > remaining {
			continue
		}
		r -= c.weight
		if r < 0 {
			return c.steps, nil
		}
	}
	// Float rounding fell off the end; the largest feasible candidate wins.
	for i := len(durationTable) - 1; i >= 0; i-- {
		if durationTable[i].steps <= remaining {
			return durationTable[i].steps, nil
		}
	}
	return 0, fmt.Errorf("%w: %d steps remaining", ErrInfeasibleDuration, remaining)
}

// drawPitch samples from the pool with the locality weighting, or uniformly
// when there is no previous note yet.
func drawPitch(rng *rand.Rand, pool []theory.Pitch, last theory.Pitch, haveLast bool) theory.Pitch {
	if !haveLast {
		return pool[rng.Intn(len(pool))]
	}

	weights := make([]float64, len(pool))
	var total float64
	for i, cand := range pool {
		d := int(last - cand)
		if d < 0 {
			d = -d
		}
		if d >= pitchWindow {
			continue
		}
		w := math.Pow(float64(pitchWindow-d), pitchExponent)
		weights[i] = w
		total += w
	}
	if total == 0 {
		// Whole pool out of range of the previous note; fall back to uniform.
		return pool[rng.Intn(len(pool))]
	}

	r := rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r < 0 {
			return pool[i]
		}
	}
	return pool[len(pool)-1]
}
