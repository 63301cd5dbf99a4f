package theory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNoteRoundTrip(t *testing.T) {
	letters := []string{"A", "B", "C", "D", "E", "F", "G"}
	accidentals := []string{"", "#", "b"}

	for _, letter := range letters {
		for _, acc := range accidentals {
			for octave := 0; octave <= 8; octave++ {
				name := fmt.Sprintf("%s%s%d", letter, acc, octave)
				n, err := ParseNote(name)
				if err != nil {
					t.Fatalf("ParseNote(%q): %v", name, err)
				}

				// Formatting and reparsing lands on the same pitch.
				again, err := ParseNote(n.String())
				if err != nil {
					t.Fatalf("ParseNote(%q): %v", n.String(), err)
				}
				if again.Number() != n.Number() {
					t.Errorf("%q: round trip %d != %d", name, again.Number(), n.Number())
				}
			}
		}
	}
}

func TestParseNoteNormalizesCase(t *testing.T) {
	assert := assert.New(t)

	lower, err := ParseNote("c#4")
	assert.NoError(err)
	upper, err := ParseNote("C#4")
	assert.NoError(err)
	assert.Equal(upper.Number(), lower.Number())
}

func TestParseNoteRejectsBadInput(t *testing.T) {
	bad := []string{"", "H4", "C", "4", "C#", "Cx4", "C#-1", "#4", "C##4"}
	for _, s := range bad {
		_, err := ParseNote(s)
		assert.ErrorIs(t, err, ErrInvalidNoteName, "input %q", s)
	}
}

func TestNoteNumberBaseOffset(t *testing.T) {
	assert := assert.New(t)

	// Octave 0's C sits two octaves up from note 0.
	assert.Equal(Pitch(24), MustParseNote("C0").Number())
	assert.Equal(Pitch(48), MustParseNote("C2").Number())
	assert.Equal(Pitch(60), MustParseNote("C3").Number())
	assert.Equal(Pitch(59), MustParseNote("B2").Number())
}

func TestNoteNumberEnharmonics(t *testing.T) {
	pairs := [][2]string{
		{"Db4", "C#4"},
		{"Eb4", "D#4"},
		{"E#4", "F4"},
		{"Fb4", "E4"},
		{"Gb4", "F#4"},
		{"Ab4", "G#4"},
		{"Bb4", "A#4"},
		{"Cb4", "B4"},
	}
	for _, p := range pairs {
		got := MustParseNote(p[0]).Number()
		want := MustParseNote(p[1]).Number()
		if got != want {
			t.Errorf("%s = %d, want %s = %d", p[0], got, p[1], want)
		}
	}

	// B# wraps to C within the same numeric octave.
	assert.Equal(t, MustParseNote("C4").Number(), MustParseNote("B#4").Number())
}

func TestScale(t *testing.T) {
	assert := assert.New(t)

	c := MustParseNote("C2")
	major := Scale(c, Major)
	minor := Scale(c, Minor)

	assert.Len(major, 8)
	assert.Len(minor, 8)
	assert.Equal([]Pitch{48, 50, 52, 53, 55, 57, 59, 60}, major)
	assert.Equal([]Pitch{48, 50, 51, 53, 55, 56, 58, 60}, minor)
}
