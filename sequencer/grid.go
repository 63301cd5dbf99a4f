package sequencer

// Grid resolution: 8 sixteenth-note steps per bar, a quarter beat each.
const (
	StepsPerBar = 8
	StepBeats   = 0.25 // nominal step length in beats
)

// Swung eighth pairs split long-short instead of evenly. The pair always
// sums to the unswung half beat.
const (
	swingLongBeats  = 1.0 / 3.0
	swingShortBeats = 2*StepBeats - swingLongBeats
)

// Track identifies a voice lane within a grid step.
type Track int

const (
	TrackChord Track = iota
	TrackArp
	TrackArpBass
	TrackDrums
	TrackLead
	NumTracks
)

func (t Track) String() string {
	switch t {
	case TrackChord:
		return "chord"
	case TrackArp:
		return "arp"
	case TrackArpBass:
		return "bass"
	case TrackDrums:
		return "drums"
	case TrackLead:
		return "lead"
	}
	return "?"
}

// NoteEvent is one timed note. Duration is in beats rather than wall-clock
// seconds so a grid is tempo-independent until playback.
type NoteEvent struct {
	Pitch    int
	Velocity int
	Beats    float64
	Channel  int
}

// PedalAction is a sustain-pedal change attached to a step. PedalDown is
// dispatched at the start of its step; PedalUp only after the step's full
// duration has elapsed, so sustain covers the step's own notes.
type PedalAction int

const (
	PedalNone PedalAction = iota
	PedalDown
	PedalUp
)

// Step holds the events starting on one grid slot. An empty lane is a rest,
// not a zero-length note.
type Step struct {
	Events [NumTracks][]NoteEvent
	Pedal  PedalAction
}

// Grid is a fixed-length sequence of steps for one song section.
type Grid struct {
	Name  string
	Steps []Step
	Swing bool

	// Channel that receives sustain-pedal changes.
	PedalChannel int
}

// NewGrid allocates a grid of exactly length steps.
func NewGrid(name string, length int, swing bool) *Grid {
	return &Grid{
		Name:  name,
		Steps: make([]Step, length),
		Swing: swing,
	}
}

// StepBeatsAt returns the wall-clock length of step i in beats. With swing
// on, even steps stretch and odd steps compress.
func (g *Grid) StepBeatsAt(i int) float64 {
	if !g.Swing {
		return StepBeats
	}
	if i%2 == 0 {
		return swingLongBeats
	}
	return swingShortBeats
}

// Bars returns the section length in bars.
func (g *Grid) Bars() int {
	return len(g.Steps) / StepsPerBar
}

// ClearTrack removes every event on one lane, leaving rests.
func (g *Grid) ClearTrack(t Track) {
	for i := range g.Steps {
		g.Steps[i].Events[t] = nil
	}
}

// Add appends an event to a lane at the given step.
func (g *Grid) Add(step int, t Track, ev NoteEvent) {
	g.Steps[step].Events[t] = append(g.Steps[step].Events[t], ev)
}
