package theory

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Pitch is a MIDI-style note number. Values stay within 0-127 for anything
// the generators produce, but the type itself does not clamp.
type Pitch int

var ErrInvalidNoteName = errors.New("invalid note name")

// The 12 canonical pitch classes, in semitone order within an octave.
var pitchClasses = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Alternate spellings normalize to one canonical name per pitch class.
var enharmonic = map[string]string{
	"Db": "C#",
	"Eb": "D#",
	"E#": "F",
	"Fb": "E",
	"Gb": "F#",
	"Ab": "G#",
	"Bb": "A#",
	"B#": "C",
	"Cb": "B",
}

var noteRe = regexp.MustCompile(`^([A-G][b#]?)(\d+)$`)

// Note is a parsed note name like "C#4": a pitch-class spelling plus octave.
type Note struct {
	Class  string
	Octave int
}

// Octave 0's C sits two octaves above MIDI note 0, so generated material
// lands in the low-middle register: pitch = (octave+2)*12 + class index.
const octaveOffset = 2

// ParseNote parses "<letter>[#|b]<digits>". The letter is upper-cased before
// matching, so "c#4" and "C#4" are the same note.
func ParseNote(s string) (Note, error) {
	if s == "" {
		return Note{}, fmt.Errorf("%w: empty string", ErrInvalidNoteName)
	}
	m := noteRe.FindStringSubmatch(strings.ToUpper(s[:1]) + s[1:])
	if m == nil {
		return Note{}, fmt.Errorf("%w: %q", ErrInvalidNoteName, s)
	}
	octave, err := strconv.Atoi(m[2])
	if err != nil {
		return Note{}, fmt.Errorf("%w: %q", ErrInvalidNoteName, s)
	}
	return Note{Class: m[1], Octave: octave}, nil
}

// MustParseNote is ParseNote for fixed note literals (drum kit pitches etc).
func MustParseNote(s string) Note {
	n, err := ParseNote(s)
	if err != nil {
		panic(err)
	}
	return n
}

func (n Note) String() string {
	return fmt.Sprintf("%s%d", n.Class, n.Octave)
}

// Number converts the note to its MIDI-style number. Enharmonic spellings
// collapse to the canonical pitch class first.
func (n Note) Number() Pitch {
	class := n.Class
	if canon, ok := enharmonic[class]; ok {
		class = canon
	}
	idx := 0
	for i, pc := range pitchClasses {
		if pc == class {
			idx = i
			break
		}
	}
	return Pitch((n.Octave+octaveOffset)*12 + idx)
}

// PitchClasses returns the canonical pitch-class names in semitone order.
// Callers get a fresh slice each time.
func PitchClasses() []string {
	out := make([]string, len(pitchClasses))
	copy(out, pitchClasses)
	return out
}
