package sequencer

// Sink is the output device the player dispatches note events to. A Sink is
// not assumed to be internally thread-safe; the Player serializes every call
// through a single lock.
type Sink interface {
	NoteOn(channel, pitch, velocity int) error
	NoteOff(channel, pitch, velocity int) error
}

// Pedaler is an optional Sink extension for sustain-pedal changes. Sinks
// that cannot express a pedal simply don't implement it.
type Pedaler interface {
	Pedal(channel int, down bool) error
}
