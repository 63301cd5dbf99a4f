package midi

import (
	"fmt"
	"sort"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"go-compose/sequencer"
)

// Export writes the grids, in order, to a standard MIDI file: one track per
// playback channel plus a tempo track. Swing is baked into the event ticks,
// so an exported swung song plays back swung in any DAW.
func Export(path string, tempo int, grids []*sequencer.Grid) error {
	if len(grids) == 0 {
		return fmt.Errorf("nothing to export")
	}

	clock := smf.MetricTicks(960)
	ticksPerBeat := float64(clock.Ticks4th())

	type timedMsg struct {
		tick uint32
		msg  []byte
	}
	byChannel := make(map[int][]timedMsg)
	add := func(channel int, tick float64, msg []byte) {
		byChannel[channel] = append(byChannel[channel], timedMsg{tick: uint32(tick), msg: msg})
	}

	// Walk the grids on an absolute tick timeline, mirroring the player's
	// wall-clock walk.
	elapsed := 0.0
	for _, g := range grids {
		for i := range g.Steps {
			step := &g.Steps[i]

			stepTicks := g.StepBeatsAt(i) * ticksPerBeat

			// Pedal down lands on the step, pedal up after it, matching
			// the player's end-of-step release.
			switch step.Pedal {
			case sequencer.PedalDown:
				add(g.PedalChannel, elapsed, gomidi.ControlChange(uint8(g.PedalChannel), sustainCC, 127))
			case sequencer.PedalUp:
				add(g.PedalChannel, elapsed+stepTicks, gomidi.ControlChange(uint8(g.PedalChannel), sustainCC, 0))
			}

			for t := range step.Events {
				for _, ev := range step.Events[t] {
					length := ev.Beats * ticksPerBeat
					add(ev.Channel, elapsed, gomidi.NoteOn(uint8(ev.Channel), uint8(ev.Pitch), uint8(ev.Velocity)))
					add(ev.Channel, elapsed+length, gomidi.NoteOff(uint8(ev.Channel), uint8(ev.Pitch)))
				}
			}

			elapsed += stepTicks
		}
	}

	s := smf.New()
	s.TimeFormat = clock

	var meta smf.Track
	meta.Add(0, smf.MetaTrackSequenceName("go-compose"))
	meta.Add(0, smf.MetaTempo(float64(tempo)))
	meta.Close(0)
	if err := s.Add(meta); err != nil {
		return err
	}

	channels := make([]int, 0, len(byChannel))
	for ch := range byChannel {
		channels = append(channels, ch)
	}
	sort.Ints(channels)

	for _, ch := range channels {
		msgs := byChannel[ch]
		sort.SliceStable(msgs, func(i, j int) bool {
			return msgs[i].tick < msgs[j].tick
		})

		var tr smf.Track
		var prev uint32
		for _, m := range msgs {
			tr.Add(m.tick-prev, m.msg)
			prev = m.tick
		}
		tr.Close(0)
		if err := s.Add(tr); err != nil {
			return err
		}
	}

	return s.WriteFile(path)
}
