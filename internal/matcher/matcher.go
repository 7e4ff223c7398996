// Package matcher implements the indexed approximate-match genome search
// engine: a Trie-backed seed index, an extension/scoring pass that grows a
// seed hit into the longest admissible match under a one-mismatch budget,
// and a relatedness aggregator over disjoint query windows.
package matcher

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/zackeberger/genomics/internal/genome"
	"github.com/zackeberger/genomics/internal/trie"
)

// seed is the value stored in the trie: the library genome and offset a
// k-mer was read from.
type seed struct {
	genomeID int
	position int
}

// GenomeMatcher owns a library of genomes and a trie keyed on k-mers drawn
// from them, where k is minSearchLength. It is safe for concurrent readers
// as long as no writer (AddGenome) is active concurrently; AddGenome takes
// an exclusive lock.
type GenomeMatcher struct {
	k int

	mu      sync.RWMutex
	genomes []genome.Genome
	index   *trie.Trie[seed]
}

// New returns a GenomeMatcher with a fixed minimum search length k. New
// does not validate k: with k == 0 every seed is stored under the empty
// trie key, and a negative k makes AddGenome panic when slicing.
func New(k int) *GenomeMatcher {
	return &GenomeMatcher{
		k:     k,
		index: trie.New[seed](),
	}
}

// MinimumSearchLength returns k, fixed for the matcher's lifetime.
func (m *GenomeMatcher) MinimumSearchLength() int {
	return m.k
}

// AddGenome registers g in the library and inserts a seed for every
// k-length window of its sequence. Genomes shorter than k are still kept
// in the library (GenomeCount includes them) but contribute no seeds, so
// they're unreachable by query.
func (m *GenomeMatcher) AddGenome(g genome.Genome) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := len(m.genomes)
	m.genomes = append(m.genomes, g)

	seq := g.Sequence()
	for i := 0; i+m.k <= len(seq); i++ {
		m.index.Insert(seq[i:i+m.k], seed{genomeID: id, position: i})
	}
}

// GenomeCount returns the number of genomes currently in the library.
func (m *GenomeMatcher) GenomeCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.genomes)
}

// dnaMatch is the internal, genome-id-keyed representation of a match. The
// exported DNAMatch (see dnamatch.go) drops the id and keeps the name, per
// the public contract in the engine API.
type dnaMatch struct {
	genomeID   int
	genomeName string
	length     int
	position   int
}

// FindGenomesWithThisDNA reports which library genomes contain fragment
// (or a one-mismatch variant of it, unless exactOnly), each represented by
// its single longest admissible match: a seed lookup against the trie
// followed by extending each seed rightward one base at a time until the
// mismatch budget is exhausted or the fragment is consumed.
func (m *GenomeMatcher) FindGenomesWithThisDNA(ctx context.Context, fragment string, minimumLength int, exactOnly bool) ([]DNAMatch, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matches := m.findGenomesWithThisDNALocked(fragment, minimumLength, exactOnly)
	if len(matches) == 0 {
		return nil, false
	}

	out := make([]DNAMatch, len(matches))
	for i, dm := range matches {
		out[i] = DNAMatch{GenomeName: dm.genomeName, Length: dm.length, Position: dm.position}
	}
	// Unspecified order is a footgun for callers; sort deterministically.
	sort.Slice(out, func(i, j int) bool {
		if out[i].GenomeName != out[j].GenomeName {
			return out[i].GenomeName < out[j].GenomeName
		}
		return out[i].Position < out[j].Position
	})
	return out, true
}

// findGenomesWithThisDNALocked is FindGenomesWithThisDNA's core, callable
// under an already-held read lock (used directly by FindRelatedGenomes so
// its per-window fan-out doesn't need to re-acquire the lock from within a
// call that already holds it).
func (m *GenomeMatcher) findGenomesWithThisDNALocked(fragment string, minimumLength int, exactOnly bool) []dnaMatch {
	if len(fragment) < minimumLength || minimumLength < m.k {
		return nil
	}

	seedKey := fragment[:m.k]
	seeds := m.index.Find(seedKey, exactOnly)
	if len(seeds) == 0 {
		return nil
	}

	best := make(map[int]dnaMatch, len(seeds))
	for _, s := range seeds {
		g := m.genomes[s.genomeID]

		// A mismatch tolerated during the seed lookup doesn't count
		// against the extension's own budget below: the two are
		// independent, so a seed found via its one allowed mismatch can
		// still extend through a second mismatch further down the
		// fragment.
		snipped := exactOnly
		actualLength := m.k

		for actualLength < len(fragment) {
			libChar, ok := g.Extract(s.position+actualLength, 1)
			if !ok {
				break
			}
			if libChar[0] == fragment[actualLength] {
				actualLength++
				continue
			}
			if !snipped {
				snipped = true
				actualLength++
				continue
			}
			break
		}

		if actualLength < minimumLength {
			continue
		}

		candidate := dnaMatch{
			genomeID:   s.genomeID,
			genomeName: g.Name(),
			length:     actualLength,
			position:   s.position,
		}

		existing, ok := best[s.genomeID]
		if !ok || candidate.length > existing.length ||
			(candidate.length == existing.length && candidate.position < existing.position) {
			best[s.genomeID] = candidate
		}
	}

	out := make([]dnaMatch, 0, len(best))
	for _, dm := range best {
		out = append(out, dm)
	}
	return out
}

// FindRelatedGenomes chops query into disjoint windows of fragmentMatchLength
// bases, aggregates hit frequency per library genome across windows, and
// returns those exceeding thresholdPercent. Windows are searched
// concurrently (bounded by GOMAXPROCS); each window is read-only and
// independent of the others, so the result is identical to running the
// windows sequentially.
func (m *GenomeMatcher) FindRelatedGenomes(ctx context.Context, query genome.Genome, fragmentMatchLength int, exactOnly bool, thresholdPercent float64) ([]GenomeMatch, bool) {
	m.mu.RLock()
	k := m.k
	names := make([]string, len(m.genomes))
	for i, g := range m.genomes {
		names[i] = g.Name()
	}
	m.mu.RUnlock()

	if fragmentMatchLength < k {
		return nil, false
	}

	windows := query.Length() / fragmentMatchLength
	if windows == 0 {
		return nil, false
	}

	counts := make([]int64, len(names))

	workers := runtime.GOMAXPROCS(0)
	if workers > windows {
		workers = windows
	}
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	seq := query.Sequence()
	for i := 0; i < windows; i++ {
		i := i
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			piece := seq[i*fragmentMatchLength : (i+1)*fragmentMatchLength]

			m.mu.RLock()
			matches := m.findGenomesWithThisDNALocked(piece, fragmentMatchLength, exactOnly)
			m.mu.RUnlock()

			for _, dm := range matches {
				atomic.AddInt64(&counts[dm.genomeID], 1)
			}
			return nil
		})
	}
	// Only cancellation propagates as an error here; findGenomesWithThisDNALocked
	// never fails once its preconditions hold, so there's nothing else to
	// surface to the caller.
	_ = eg.Wait()

	var out []GenomeMatch
	for id, name := range names {
		percent := 100 * float64(counts[id]) / float64(windows)
		if percent > thresholdPercent {
			out = append(out, GenomeMatch{GenomeName: name, PercentMatch: percent})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].PercentMatch != out[j].PercentMatch {
			return out[i].PercentMatch > out[j].PercentMatch
		}
		return out[i].GenomeName < out[j].GenomeName
	})

	return out, len(out) > 0
}
