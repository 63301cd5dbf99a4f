package sequencer

import (
	"context"
	"sync"
	"time"

	"go-compose/debug"
)

// Progress reports the playhead position to observers (the TUI).
type Progress struct {
	Section string
	Step    int
	Total   int
}

// Player walks a grid at real-time pace and dispatches each note as an
// independent fire-and-forget lifecycle: note on, hold, note off. The driver
// never waits for lifecycles between steps, but Play joins them all before
// returning so playback can be awaited as a unit.
type Player struct {
	sink  Sink
	tempo int

	mu sync.Mutex // serializes all sink calls; never held across a sleep

	updates chan Progress
}

// NewPlayer creates a player for a sink at a fixed tempo in BPM.
func NewPlayer(sink Sink, tempo int) *Player {
	return &Player{
		sink:    sink,
		tempo:   tempo,
		updates: make(chan Progress, 1),
	}
}

// Updates returns the playhead progress channel. Stale positions are
// dropped rather than blocking the driver.
func (p *Player) Updates() <-chan Progress { return p.updates }

// Tempo returns the playback tempo in BPM.
func (p *Player) Tempo() int { return p.tempo }

func (p *Player) beat() time.Duration {
	return time.Duration(float64(time.Minute) / float64(p.tempo))
}

// Play executes one grid. All note-ons for a step are launched before the
// driver advances past it; note-offs of long notes interleave freely with
// later steps. Cancelling ctx stops the advance through the grid, but
// already-launched notes still complete their note-off.
func (p *Player) Play(ctx context.Context, g *Grid) {
	var wg sync.WaitGroup
	beat := p.beat()
	start := time.Now()
	var elapsed time.Duration

	debug.Log("player", "section %s: %d steps at %d bpm, swing=%v", g.Name, len(g.Steps), p.tempo, g.Swing)

	for i := range g.Steps {
		if ctx.Err() != nil {
			break
		}
		step := &g.Steps[i]

		if step.Pedal == PedalDown {
			p.sendPedal(g.PedalChannel, true)
		}

		for t := range step.Events {
			for _, ev := range step.Events[t] {
				wg.Add(1)
				go p.lifecycle(&wg, ev, beat)
			}
		}

		p.notify(Progress{Section: g.Name, Step: i, Total: len(g.Steps)})

		// Sleep against the absolute timeline so per-step jitter can't
		// accumulate into drift.
		elapsed += time.Duration(g.StepBeatsAt(i) * float64(beat))
		wait := time.Until(start.Add(elapsed))
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
			case <-timer.C:
			}
		}

		// Pedal release waits out the step so sustain covers its notes.
		if step.Pedal == PedalUp {
			p.sendPedal(g.PedalChannel, false)
		}
	}

	wg.Wait()
}

// lifecycle runs one note from on to off. A sink failure aborts only this
// note; concurrent lifecycles are unaffected.
func (p *Player) lifecycle(wg *sync.WaitGroup, ev NoteEvent, beat time.Duration) {
	defer wg.Done()

	p.mu.Lock()
	err := p.sink.NoteOn(ev.Channel, ev.Pitch, ev.Velocity)
	p.mu.Unlock()
	if err != nil {
		debug.Log("player", "note on failed ch=%d pitch=%d: %v", ev.Channel, ev.Pitch, err)
		return
	}

	time.Sleep(time.Duration(ev.Beats * float64(beat)))

	p.mu.Lock()
	err = p.sink.NoteOff(ev.Channel, ev.Pitch, ev.Velocity)
	p.mu.Unlock()
	if err != nil {
		debug.Log("player", "note off failed ch=%d pitch=%d: %v", ev.Channel, ev.Pitch, err)
	}
}

func (p *Player) sendPedal(channel int, down bool) {
	ped, ok := p.sink.(Pedaler)
	if !ok {
		return
	}
	p.mu.Lock()
	err := ped.Pedal(channel, down)
	p.mu.Unlock()
	if err != nil {
		debug.Log("player", "pedal failed ch=%d: %v", channel, err)
	}
}

func (p *Player) notify(pr Progress) {
	select {
	case p.updates <- pr:
	default:
	}
}
