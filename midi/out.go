// Package midi is the boundary to the real output device: a gomidi-backed
// sink for live playback, port discovery, and SMF file export.
package midi

import (
	"errors"
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
)

var ErrDeviceUnavailable = errors.New("midi device unavailable")

// sustainCC is the MIDI sustain pedal controller number.
const sustainCC = 64

// PortSink sends note events to one MIDI output port. It does no locking of
// its own; the playback scheduler serializes all calls.
type PortSink struct {
	send func(gomidi.Message) error
	port string
}

// OpenPort opens the named output port, or the first available port when
// name is empty.
func OpenPort(name string) (*PortSink, error) {
	ports := gomidi.GetOutPorts()
	if len(ports) == 0 {
		return nil, fmt.Errorf("%w: no MIDI output ports found", ErrDeviceUnavailable)
	}
	for _, port := range ports {
		if name != "" && port.String() != name {
			continue
		}
		send, err := gomidi.SendTo(port)
		if err != nil {
			return nil, fmt.Errorf("%w: open %q: %v", ErrDeviceUnavailable, port.String(), err)
		}
		return &PortSink{send: send, port: port.String()}, nil
	}
	return nil, fmt.Errorf("%w: no output port named %q", ErrDeviceUnavailable, name)
}

// Port returns the name of the opened port.
func (s *PortSink) Port() string { return s.port }

func (s *PortSink) NoteOn(channel, pitch, velocity int) error {
	if err := s.send(gomidi.NoteOn(uint8(channel), uint8(pitch), uint8(velocity))); err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	return nil
}

func (s *PortSink) NoteOff(channel, pitch, velocity int) error {
	if err := s.send(gomidi.NoteOff(uint8(channel), uint8(pitch))); err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	return nil
}

// Pedal sends a sustain pedal change on the given channel.
func (s *PortSink) Pedal(channel int, down bool) error {
	value := uint8(0)
	if down {
		value = 127
	}
	if err := s.send(gomidi.ControlChange(uint8(channel), sustainCC, value)); err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	return nil
}

// ListPorts returns the names of all MIDI output ports.
func ListPorts() []string {
	var names []string
	for _, port := range gomidi.GetOutPorts() {
		names = append(names, port.String())
	}
	return names
}

// Close releases the MIDI driver.
func Close() {
	gomidi.CloseDriver()
}
