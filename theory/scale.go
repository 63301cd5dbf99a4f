package theory

// Mode selects major or minor harmony.
type Mode int

const (
	Major Mode = iota
	Minor
)

func (m Mode) String() string {
	if m == Minor {
		return "minor"
	}
	return "major"
}

// Semitone offsets from the scale root, octave repeat included.
var (
	majorSteps = [8]Pitch{0, 2, 4, 5, 7, 9, 11, 12}
	minorSteps = [8]Pitch{0, 2, 3, 5, 7, 8, 10, 12}
)

// Scale returns the 8 pitches of root's scale in the given mode.
func Scale(root Note, mode Mode) []Pitch {
	steps := majorSteps
	if mode == Minor {
		steps = minorSteps
	}
	base := root.Number()
	out := make([]Pitch, len(steps))
	for i, s := range steps {
		out[i] = base + s
	}
	return out
}
