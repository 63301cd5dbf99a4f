package sequencer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// recordingSink captures every call with a timestamp. It deliberately does
// no locking of its own: the player is responsible for serialization, and
// the race detector will catch it if that breaks.
type recordingSink struct {
	calls []sinkCall

	failOn map[int]error // pitch -> error returned from NoteOn
}

type sinkCall struct {
	kind    string // "on", "off", "pedal"
	channel int
	pitch   int
	vel     int
	at      time.Time
}

func (s *recordingSink) NoteOn(channel, pitch, velocity int) error {
	if err := s.failOn[pitch]; err != nil {
		return err
	}
	s.calls = append(s.calls, sinkCall{"on", channel, pitch, velocity, time.Now()})
	return nil
}

func (s *recordingSink) NoteOff(channel, pitch, velocity int) error {
	s.calls = append(s.calls, sinkCall{"off", channel, pitch, velocity, time.Now()})
	return nil
}

func (s *recordingSink) Pedal(channel int, down bool) error {
	pitch := 0
	if down {
		pitch = 1
	}
	s.calls = append(s.calls, sinkCall{"pedal", channel, pitch, 0, time.Now()})
	return nil
}

func (s *recordingSink) count(kind string) int {
	n := 0
	for _, c := range s.calls {
		if c.kind == kind {
			n++
		}
	}
	return n
}

func (s *recordingSink) find(kind string, pitch int) (sinkCall, bool) {
	for _, c := range s.calls {
		if c.kind == kind && c.pitch == pitch {
			return c, true
		}
	}
	return sinkCall{}, false
}

func testGrid() *Grid {
	g := NewGrid("test", 4, false)
	g.PedalChannel = 1
	g.Steps[0].Pedal = PedalDown
	g.Add(0, TrackChord, NoteEvent{Pitch: 48, Velocity: 80, Beats: 1, Channel: 0})
	g.Add(0, TrackDrums, NoteEvent{Pitch: 36, Velocity: 100, Beats: StepBeats, Channel: 2})
	g.Add(2, TrackLead, NoteEvent{Pitch: 60, Velocity: 80, Beats: StepBeats, Channel: 4})
	g.Steps[3].Pedal = PedalUp
	return g
}

func TestPlayCompletesEveryLifecycle(t *testing.T) {
	sink := &recordingSink{}
	p := NewPlayer(sink, 480) // fast tempo keeps the test quick

	p.Play(context.Background(), testGrid())

	assert := assert.New(t)
	assert.Equal(3, sink.count("on"))
	assert.Equal(3, sink.count("off"))
	assert.Equal(2, sink.count("pedal"))

	// Every note-on has a matching note-off after it.
	for _, pitch := range []int{48, 36, 60} {
		on, okOn := sink.find("on", pitch)
		off, okOff := sink.find("off", pitch)
		assert.True(okOn, "note on for %d", pitch)
		assert.True(okOff, "note off for %d", pitch)
		assert.False(off.at.Before(on.at), "off before on for %d", pitch)
	}
}

func TestPlayStepOrdering(t *testing.T) {
	sink := &recordingSink{}
	p := NewPlayer(sink, 240)

	p.Play(context.Background(), testGrid())

	// The step 2 note-on must come after the step 0 note-ons, and the long
	// chord's note-off may interleave anywhere after its own note-on.
	lead, ok := sink.find("on", 60)
	assert.True(t, ok)
	chord, ok := sink.find("on", 48)
	assert.True(t, ok)
	assert.True(t, chord.at.Before(lead.at), "step 0 on must precede step 2 on")
}

func TestConcurrentLifecyclesOverlap(t *testing.T) {
	// Two long notes on the same step: the lock is released during the
	// hold, so both note-ons land well before either note-off.
	g := NewGrid("overlap", 1, false)
	g.Add(0, TrackChord, NoteEvent{Pitch: 50, Velocity: 80, Beats: 1, Channel: 0})
	g.Add(0, TrackChord, NoteEvent{Pitch: 54, Velocity: 80, Beats: 1, Channel: 0})

	sink := &recordingSink{}
	p := NewPlayer(sink, 240)
	p.Play(context.Background(), g)

	assert := assert.New(t)
	assert.Len(sink.calls, 4)
	assert.Equal("on", sink.calls[0].kind)
	assert.Equal("on", sink.calls[1].kind)
	assert.Equal("off", sink.calls[2].kind)
	assert.Equal("off", sink.calls[3].kind)
}

func TestSinkFailureIsolatedToOneLifecycle(t *testing.T) {
	g := NewGrid("fail", 1, false)
	g.Add(0, TrackChord, NoteEvent{Pitch: 48, Velocity: 80, Beats: StepBeats, Channel: 0})
	g.Add(0, TrackChord, NoteEvent{Pitch: 52, Velocity: 80, Beats: StepBeats, Channel: 0})

	sink := &recordingSink{failOn: map[int]error{48: errors.New("device unavailable")}}
	p := NewPlayer(sink, 240)
	p.Play(context.Background(), g)

	assert := assert.New(t)
	// The failed note never reaches note-off; the other completes.
	_, ok := sink.find("off", 48)
	assert.False(ok)
	_, ok = sink.find("on", 52)
	assert.True(ok)
	_, ok = sink.find("off", 52)
	assert.True(ok)
}

// The pedal release must not cut off notes still sounding on its own step:
// it goes out only after the step's full duration.
func TestPedalReleaseAfterStepCompletes(t *testing.T) {
	g := NewGrid("pedal", 8, false)
	g.PedalChannel = 1
	g.Steps[0].Pedal = PedalDown
	g.Steps[7].Pedal = PedalUp
	g.Add(6, TrackArp, NoteEvent{Pitch: 52, Velocity: 80, Beats: 2 * StepBeats, Channel: 1})

	sink := &recordingSink{}
	p := NewPlayer(sink, 240)
	p.Play(context.Background(), g)

	assert := assert.New(t)
	down, ok := sink.find("pedal", 1)
	assert.True(ok)
	up, ok := sink.find("pedal", 0)
	assert.True(ok)

	// Eight quarter-beat steps at 240 bpm span 500ms. Releasing at the
	// start of the final step would land around 437ms, cutting off the
	// arpeggio note that holds through the bar.
	assert.GreaterOrEqual(up.at.Sub(down.at), 490*time.Millisecond)
}

func TestCancelStopsAdvanceButFinishesNotes(t *testing.T) {
	g := NewGrid("cancel", 64, false)
	for i := 0; i < len(g.Steps); i++ {
		g.Add(i, TrackLead, NoteEvent{Pitch: 60 + i, Velocity: 80, Beats: StepBeats, Channel: 4})
	}

	sink := &recordingSink{}
	p := NewPlayer(sink, 120)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		p.Play(ctx, g)
	}()

	time.Sleep(300 * time.Millisecond)
	cancel()
	wg.Wait()

	assert := assert.New(t)
	assert.Less(sink.count("on"), len(g.Steps), "cancel should stop the walk early")
	assert.Equal(sink.count("on"), sink.count("off"), "launched notes still finish")
}
