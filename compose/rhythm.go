package compose

import "math/rand"

// Backbeat positions within the 8-step cell. The snare always lands there;
// the kick never does.
const (
	backbeatA        = 2
	backbeatB        = 6
	backbeatVelocity = 80
)

// Rhythm is one 8-position percussion cell, tiled across the whole grid by
// the assembler. The hi-hat is not part of the cell: it is a per-section
// choice that survives cell rerolls.
type Rhythm struct {
	Snare [8]int // velocity per position, 0 = rest
	Kick  [8]int
}

// GenerateRhythm rolls a fresh percussion cell: ghost snares on a coin flip
// at 20-50, kicks at one-in-three at 30-80 avoiding the backbeat.
func GenerateRhythm(rng *rand.Rand) Rhythm {
	var r Rhythm

	for i := 0; i < 8; i++ {
		if rng.Intn(2) == 1 {
			r.Snare[i] = 20 + rng.Intn(31)
		}
	}
	r.Snare[backbeatA] = backbeatVelocity
	r.Snare[backbeatB] = backbeatVelocity

	for i := 0; i < 8; i++ {
		if i == backbeatA || i == backbeatB {
			continue
		}
		if rng.Intn(3) == 2 {
			r.Kick[i] = 30 + rng.Intn(51)
		}
	}

	return r
}
