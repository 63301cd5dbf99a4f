package theory

import "slices"

// Graph maps a chord symbol to the symbols reachable from it in one step.
// Every destination other than the tonic is also a source, and every source
// has at least one outgoing edge, so a random walk can never dead-end.
type Graph map[Symbol][]Symbol

var transitionsMajor = Graph{
	"I":    {"I", "ii", "iii", "IV", "V", "vi", "vii0"},
	"ii":   {"V", "vii0"},
	"iii":  {"IV", "vi"},
	"IV":   {"I", "ii", "V", "vii0"},
	"V":    {"I", "vi"},
	"vi":   {"ii", "IV", "V"},
	"vii0": {"I"},
}

var transitionsMinor = Graph{
	"i":    {"i", "ii0", "III", "iv", "V", "VI", "VII", "vii0"},
	"ii0":  {"V", "vii0"},
	"III":  {"iv", "VI"},
	"iv":   {"i", "ii0", "V", "vii0"},
	"V":    {"i", "VI"},
	"VI":   {"ii0", "iv", "V"},
	"VII":  {"III"},
	"vii0": {"i", "V"},
}

// Transitions returns the fixed transition graph for a mode.
func Transitions(mode Mode) Graph {
	if mode == Minor {
		return transitionsMinor
	}
	return transitionsMajor
}

// Symbols returns the graph's source symbols in sorted order, so seeded
// random draws over "all keys" are reproducible.
func (g Graph) Symbols() []Symbol {
	out := make([]Symbol, 0, len(g))
	for s := range g {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}
