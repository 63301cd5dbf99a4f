package theory

import (
	"errors"
	"fmt"
)

// Symbol is a Roman-numeral chord label. Upper case means major quality,
// lower case minor, a trailing 0 a diminished chord.
type Symbol string

var ErrUnknownChordSymbol = errors.New("unknown chord symbol")

// Semitone offsets from the chord root for each major-quality symbol.
// Never mutated after init; minor variants are derived into their own map.
var majorChords = map[Symbol][]Pitch{
	"I":    {0, 4, 7},
	"II":   {2, 6, 9},
	"III":  {4, 8, 11},
	"IV":   {5, 9, 12},
	"V":    {7, 11, 14},
	"VI":   {9, 13, 16},
	"VII":  {11, 15, 18},
	"ii0":  {1, 4, 7, 9},
	"vii0": {0, 4, 7, 10},
}

// minorChords holds the derived minor-quality triads. Each entry is a fresh
// allocation so the major table can never be corrupted through aliasing.
var minorChords = deriveMinorChords()

func deriveMinorChords() map[Symbol][]Pitch {
	pairs := map[Symbol]Symbol{
		"i":   "I",
		"ii":  "II",
		"iii": "III",
		"iv":  "IV",
		"v":   "V",
		"vi":  "VI",
		"vii": "VII",
	}
	out := make(map[Symbol][]Pitch, len(pairs))
	for minor, major := range pairs {
		base := majorChords[major]
		flattened := make([]Pitch, len(base))
		copy(flattened, base)
		flattened[1]-- // minor quality: lower the third a semitone
		out[minor] = flattened
	}
	return out
}

// Chord builds the pitches of a chord symbol on the given root.
func Chord(sym Symbol, root Pitch) ([]Pitch, error) {
	offsets, ok := majorChords[sym]
	if !ok {
		offsets, ok = minorChords[sym]
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChordSymbol, sym)
	}
	out := make([]Pitch, len(offsets))
	for i, o := range offsets {
		out[i] = root + o
	}
	return out, nil
}
