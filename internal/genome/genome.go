// Package genome holds the immutable named DNA sequence type shared by the
// loader and the search engine.
package genome

import "strings"

// Genome is an immutable named DNA sequence over {A, C, G, T, N}, stored
// normalised to uppercase. Two Genomes are value-equal iff their name and
// sequence match; a Genome may be freely copied.
type Genome struct {
	name     string
	sequence string
}

// New returns a Genome with sequence normalised to uppercase. It performs
// no alphabet validation: that's the loader's job (see internal/fasta).
func New(name, sequence string) Genome {
	return Genome{name: name, sequence: strings.ToUpper(sequence)}
}

// Name returns the genome's name.
func (g Genome) Name() string { return g.name }

// Length returns the number of bases in the genome.
func (g Genome) Length() int { return len(g.sequence) }

// Sequence returns the full normalised sequence.
func (g Genome) Sequence() string { return g.sequence }

// Extract returns sequence[position : position+length) and true, or ("",
// false) if position is negative or position+length runs past the end of
// the sequence. There is no partial extraction: a request that doesn't
// fully fit fails outright.
func (g Genome) Extract(position, length int) (string, bool) {
	if position < 0 || length < 0 || position+length > len(g.sequence) {
		return "", false
	}
	return g.sequence[position : position+length], true
}
