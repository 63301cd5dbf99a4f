package compose

import (
	"errors"
	"fmt"
	"math/rand"

	"go-compose/theory"
)

var ErrInvalidArgument = errors.New("invalid argument")

// NextChord walks one step of the transition graph. With no current chord it
// draws uniformly over every symbol in the graph; otherwise uniformly over
// the chords reachable from current. An empty transition set violates the
// graph invariant and panics rather than erroring.
func NextChord(rng *rand.Rand, current theory.Symbol, graph theory.Graph) theory.Symbol {
	if current == "" {
		keys := graph.Symbols()
		return keys[rng.Intn(len(keys))]
	}
	choices := graph[current]
	if len(choices) == 0 {
		panic(fmt.Sprintf("compose: no transitions out of %q", current))
	}
	return choices[rng.Intn(len(choices))]
}

// GenerateProgression produces bars chord symbols by a constrained random
// walk. A non-empty seed continues from a previous section's last chord.
func GenerateProgression(rng *rand.Rand, bars int, mode theory.Mode, seed theory.Symbol) ([]theory.Symbol, error) {
	if bars < 1 {
		return nil, fmt.Errorf("%w: bars must be >= 1, got %d", ErrInvalidArgument, bars)
	}
	graph := theory.Transitions(mode)
	prog := make([]theory.Symbol, 0, bars)
	prog = append(prog, NextChord(rng, seed, graph))
	for len(prog) < bars {
		prog = append(prog, NextChord(rng, prog[len(prog)-1], graph))
	}
	return prog, nil
}
