package compose

import (
	"math/rand"

	"go-compose/debug"
	"go-compose/sequencer"
	"go-compose/theory"
)

// Playback channel per voice, matching a General MIDI-ish patch layout.
const (
	ChannelChord   = 0
	ChannelArp     = 1
	ChannelDrums   = 2
	ChannelArpBass = 3
	ChannelLead    = 4
)

// Percussion sounds, addressed by pitch on the drum channel.
var (
	kickPitch  = theory.MustParseNote("C1").Number()
	snarePitch = theory.MustParseNote("G1").Number()
	hihatPitch = theory.MustParseNote("C#2").Number()
)

// Hi-hat ostinato velocities: strong on the downbeat half of each pair,
// weak on the off half. The weak hat drops out above this tempo so fast
// songs don't turn into a wash of sixteenths.
const (
	hihatStrong   = 70
	hihatWeak     = 40
	hihatWeakBPM  = 110
	chordVelocity = 80
	arpVelocity   = 80
	leadVelocity  = 80
)

// BarBeats is the musical length of one bar on the grid.
const BarBeats = sequencer.StepsPerBar * sequencer.StepBeats

// Section is a named grid plus the material it was generated from. The grid
// is immutable during a repeat; only the drum lane changes between repeats.
type Section struct {
	Name        string
	Progression []theory.Symbol
	Key         theory.Note
	Mode        theory.Mode
	Grid        *sequencer.Grid
	Repeats     int

	// Hihat is flipped once per section and holds across every repeat,
	// even though the snare/kick cell rerolls.
	Hihat bool
}

// BuildSection lays a progression, its melody, and a fresh rhythm cell onto
// one time grid.
func BuildSection(rng *rand.Rand, name string, key theory.Note, mode theory.Mode, prog []theory.Symbol, opts Options) (*Section, error) {
	melody, err := GenerateMelody(rng, key, mode, prog, opts.NonChordBias)
	if err != nil {
		return nil, err
	}

	grid := sequencer.NewGrid(name, len(prog)*sequencer.StepsPerBar, opts.Swing)
	grid.PedalChannel = ChannelArp

	// One coin flip decides the hi-hat for the whole section.
	hihat := rng.Intn(2) == 1

	root := key.Number()
	for barIdx, sym := range prog {
		base := barIdx * sequencer.StepsPerBar

		tones, err := theory.Chord(sym, root)
		if err != nil {
			return nil, err
		}

		// Chord pad: the whole triad held for the bar.
		for _, p := range tones {
			grid.Add(base, sequencer.TrackChord, sequencer.NoteEvent{
				Pitch:    int(p),
				Velocity: chordVelocity,
				Beats:    BarBeats,
				Channel:  ChannelChord,
			})
		}

		// Sustain pedal rides under each chord's arpeggio.
		grid.Steps[base].Pedal = sequencer.PedalDown
		grid.Steps[base+sequencer.StepsPerBar-1].Pedal = sequencer.PedalUp

		// Arpeggio: one chord tone per pair of steps, triads repeating their
		// middle tone to fill the fourth slot. The bass doubles an octave
		// down with humanized velocity.
		arp := tones
		if len(arp) == 3 {
			arp = append(arp[:3:3], tones[1])
		}
		for i := 0; i < 4; i++ {
			at := base + i*2
			grid.Add(at, sequencer.TrackArp, sequencer.NoteEvent{
				Pitch:    int(arp[i]),
				Velocity: arpVelocity,
				Beats:    2 * sequencer.StepBeats,
				Channel:  ChannelArp,
			})
			grid.Add(at, sequencer.TrackArpBass, sequencer.NoteEvent{
				Pitch:    int(arp[i]) - 12,
				Velocity: 100 + rng.Intn(21) - 10,
				Beats:    2 * sequencer.StepBeats,
				Channel:  ChannelArpBass,
			})
		}
	}

	// Lead melody: one onset per note, continuation steps stay silent.
	pos := 0
	for _, n := range melody {
		grid.Add(pos, sequencer.TrackLead, sequencer.NoteEvent{
			Pitch:    int(n.Pitch),
			Velocity: leadVelocity,
			Beats:    float64(n.Steps) * sequencer.StepBeats,
			Channel:  ChannelLead,
		})
		pos += n.Steps
	}

	applyRhythm(grid, GenerateRhythm(rng), hihat, opts.Tempo)

	debug.Log("compose", "section %s: %v hihat=%v", name, prog, hihat)

	return &Section{
		Name:        name,
		Progression: prog,
		Key:         key,
		Mode:        mode,
		Grid:        grid,
		Repeats:     opts.Repeats,
		Hihat:       hihat,
	}, nil
}

// RefreshRhythm rerolls the snare/kick cell in place between repeats of a
// section. The section's hi-hat choice and every other lane are untouched.
func RefreshRhythm(rng *rand.Rand, sec *Section, tempo int) {
	sec.Grid.ClearTrack(sequencer.TrackDrums)
	applyRhythm(sec.Grid, GenerateRhythm(rng), sec.Hihat, tempo)
}

// applyRhythm tiles an 8-position cell across the grid's drum lane.
func applyRhythm(g *sequencer.Grid, r Rhythm, hihat bool, tempo int) {
	for s := range g.Steps {
		pos := s % 8

		if hihat {
			vel := hihatStrong
			if pos%2 == 1 {
				if tempo > hihatWeakBPM {
					vel = 0
				} else {
					vel = hihatWeak
				}
			}
			if vel > 0 {
				g.Add(s, sequencer.TrackDrums, sequencer.NoteEvent{
					Pitch:    int(hihatPitch),
					Velocity: vel,
					Beats:    sequencer.StepBeats,
					Channel:  ChannelDrums,
				})
			}
		}

		if v := r.Snare[pos]; v > 0 {
			g.Add(s, sequencer.TrackDrums, sequencer.NoteEvent{
				Pitch:    int(snarePitch),
				Velocity: v,
				Beats:    sequencer.StepBeats,
				Channel:  ChannelDrums,
			})
		}
		if v := r.Kick[pos]; v > 0 {
			g.Add(s, sequencer.TrackDrums, sequencer.NoteEvent{
				Pitch:    int(kickPitch),
				Velocity: v,
				Beats:    sequencer.StepBeats,
				Channel:  ChannelDrums,
			})
		}
	}
}
