package sequencer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSwingPairSumsToStraightEighth(t *testing.T) {
	swung := NewGrid("x", 16, true)
	straight := NewGrid("x", 16, false)

	for i := 0; i < len(swung.Steps); i += 2 {
		pair := swung.StepBeatsAt(i) + swung.StepBeatsAt(i+1)
		want := straight.StepBeatsAt(i) + straight.StepBeatsAt(i+1)
		assert.Equal(t, want, pair, "pair at step %d", i)
	}
}

func TestSwingPairSumsAtAnyTempo(t *testing.T) {
	g := NewGrid("x", 8, true)

	for _, tempo := range []int{80, 100, 120, 161, 200} {
		beat := time.Duration(float64(time.Minute) / float64(tempo))
		pair := time.Duration(g.StepBeatsAt(0)*float64(beat)) +
			time.Duration(g.StepBeatsAt(1)*float64(beat))
		eighth := time.Duration(2 * StepBeats * float64(beat))

		// Allow a nanosecond of float truncation per half.
		assert.InDelta(t, float64(eighth), float64(pair), 2, "tempo %d", tempo)
	}
}

func TestNonEighthStepsUnaffectedBySwingFlag(t *testing.T) {
	g := NewGrid("x", 8, false)
	for i := range g.Steps {
		assert.Equal(t, StepBeats, g.StepBeatsAt(i))
	}
}

func TestGridLength(t *testing.T) {
	g := NewGrid("verse", 4*StepsPerBar, false)
	assert.Len(t, g.Steps, 32)
	assert.Equal(t, 4, g.Bars())
}

func TestClearTrack(t *testing.T) {
	g := NewGrid("x", 8, false)
	g.Add(0, TrackDrums, NoteEvent{Pitch: 36, Velocity: 100, Beats: StepBeats, Channel: 2})
	g.Add(0, TrackLead, NoteEvent{Pitch: 60, Velocity: 80, Beats: 1, Channel: 4})

	g.ClearTrack(TrackDrums)

	assert.Empty(t, g.Steps[0].Events[TrackDrums])
	assert.Len(t, g.Steps[0].Events[TrackLead], 1)
}
