package compose

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-compose/sequencer"
	"go-compose/theory"
)

func TestMelodyFillsExactBudget(t *testing.T) {
	key := theory.MustParseNote("C2")

	for seed := int64(0); seed < 200; seed++ {
		rng := rand.New(rand.NewSource(seed))

		prog, err := GenerateProgression(rng, 4, theory.Major, "")
		if err != nil {
			t.Fatal(err)
		}
		melody, err := GenerateMelody(rng, key, theory.Major, prog, 0.9)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}

		total := 0
		for _, n := range melody {
			assert.Greater(t, n.Steps, 0)
			total += n.Steps
		}
		assert.Equal(t, 4*sequencer.StepsPerBar, total, "seed %d", seed)
	}
}

func TestMelodyBiasZeroStaysOnChordTones(t *testing.T) {
	key := theory.MustParseNote("C2")
	rng := rand.New(rand.NewSource(3))

	prog := []theory.Symbol{"I", "I", "I", "I"}
	melody, err := GenerateMelody(rng, key, theory.Major, prog, 0)
	if err != nil {
		t.Fatal(err)
	}

	chordTones, _, err := pitchPools(key, theory.Major, "I")
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range melody {
		assert.Contains(t, chordTones, n.Pitch)
	}
}

func TestDrawDurationRespectsBudget(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for remaining := 1; remaining <= 8; remaining++ {
		for i := 0; i < 200; i++ {
			steps, err := drawDuration(rng, remaining)
			if err != nil {
				t.Fatal(err)
			}
			assert.LessOrEqual(t, steps, remaining)
		}
	}

	_, err := drawDuration(rng, 0)
	assert.ErrorIs(t, err, ErrInfeasibleDuration)
}

func TestDrawPitchConvergesToWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pool := []theory.Pitch{48, 50, 52, 55, 60}
	last := theory.Pitch(52)

	// Expected distribution from the locality weighting.
	want := make(map[theory.Pitch]float64)
	var total float64
	for _, c := range pool {
		d := math.Abs(float64(last - c))
		w := math.Pow(float64(pitchWindow)-d, pitchExponent)
		want[c] = w
		total += w
	}
	for p := range want {
		want[p] /= total
	}

	const draws = 200000
	got := make(map[theory.Pitch]int)
	for i := 0; i < draws; i++ {
		got[drawPitch(rng, pool, last, true)]++
	}

	for _, p := range pool {
		freq := float64(got[p]) / draws
		assert.InDelta(t, want[p], freq, 0.01, "pitch %d", p)
	}
}

func TestDrawPitchUniformWithoutHistory(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	pool := []theory.Pitch{48, 55, 90} // 90 is far outside any window

	const draws = 60000
	got := make(map[theory.Pitch]int)
	for i := 0; i < draws; i++ {
		got[drawPitch(rng, pool, 0, false)]++
	}
	for _, p := range pool {
		assert.InDelta(t, 1.0/3.0, float64(got[p])/draws, 0.02, "pitch %d", p)
	}
}

func TestDrawPitchExcludesOutOfWindowCandidates(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	pool := []theory.Pitch{48, 48 + pitchWindow + 10}

	for i := 0; i < 500; i++ {
		got := drawPitch(rng, pool, 48, true)
		assert.Equal(t, theory.Pitch(48), got)
	}
}

func TestPitchPools(t *testing.T) {
	assert := assert.New(t)
	key := theory.MustParseNote("C2")

	chordTones, nonChord, err := pitchPools(key, theory.Major, "I")
	assert.NoError(err)

	// Triad doubled up an octave.
	assert.Equal([]theory.Pitch{48, 52, 55, 60, 64, 67}, chordTones)

	// Remaining scale tones (D E F A B minus chord tones) doubled up an octave.
	assert.Equal([]theory.Pitch{50, 53, 57, 59, 62, 65, 69, 71}, nonChord)
}
