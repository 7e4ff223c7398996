// Package matcherapp wires a matcher.GenomeMatcher to configuration and
// structured logging. This is the layer cmd/ calls into; the CLI itself
// does no algorithmic work.
package matcherapp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/zackeberger/genomics/config"
	"github.com/zackeberger/genomics/internal/fasta"
	"github.com/zackeberger/genomics/internal/genome"
	"github.com/zackeberger/genomics/internal/matcher"
)

// App owns one GenomeMatcher for the lifetime of a CLI invocation (or a
// longer-lived host, if one is ever built on top of this package).
type App struct {
	conf    *config.Config
	log     *logrus.Logger
	matcher *matcher.GenomeMatcher
}

// New builds an App with a matcher sized from conf.Search.MinSearchLength
// and a logger at conf.Log.Level.
func New(conf *config.Config) *App {
	log := logrus.New()
	level, err := logrus.ParseLevel(conf.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return &App{
		conf:    conf,
		log:     log,
		matcher: matcher.New(conf.Search.MinSearchLength),
	}
}

// MinimumSearchLength exposes the matcher's fixed k.
func (a *App) MinimumSearchLength() int {
	return a.matcher.MinimumSearchLength()
}

// AddGenome registers a single already-loaded genome with the matcher,
// for callers (such as cmd/load.go) that read files themselves to render
// their own progress feedback.
func (a *App) AddGenome(g genome.Genome) {
	a.matcher.AddGenome(g)
}

// LoadGenomes reads every path (FASTA, transparently gzip-decompressed if
// it ends in ".gz") and registers each genome it contains with the
// matcher. The whole call fails if any single file fails to parse; no
// partial library results from a bad file among several good ones.
func (a *App) LoadGenomes(paths ...string) error {
	requestID := uuid.NewString()
	log := a.log.WithField("request_id", requestID)

	start := time.Now()
	total := 0
	var loaded [][]genome.Genome
	for _, p := range paths {
		genomes, err := fasta.Load(p)
		if err != nil {
			log.WithError(err).WithField("path", p).Error("failed to load genome file")
			return err
		}
		loaded = append(loaded, genomes)
		total += len(genomes)
		log.WithFields(logrus.Fields{"path": p, "genomes": len(genomes)}).Info("loaded genome file")
	}
	for _, genomes := range loaded {
		for _, g := range genomes {
			a.matcher.AddGenome(g)
		}
	}

	log.WithFields(logrus.Fields{
		"genomes": total,
		"elapsed": time.Since(start),
	}).Info("finished loading genomes")
	return nil
}

// Search runs FindGenomesWithThisDNA against the loaded library.
func (a *App) Search(ctx context.Context, fragment string, minimumLength int, exact bool) ([]matcher.DNAMatch, bool) {
	requestID := uuid.NewString()
	log := a.log.WithFields(logrus.Fields{
		"request_id":      requestID,
		"fragment_length": len(fragment),
		"exact":           exact,
	})

	start := time.Now()
	matches, ok := a.matcher.FindGenomesWithThisDNA(ctx, fragment, minimumLength, exact)
	log.WithFields(logrus.Fields{
		"matches": len(matches),
		"elapsed": time.Since(start),
	}).Info("search complete")
	return matches, ok
}

// Related runs FindRelatedGenomes against the loaded library.
func (a *App) Related(ctx context.Context, query genome.Genome, fragmentLength int, exact bool, threshold float64) ([]matcher.GenomeMatch, bool) {
	requestID := uuid.NewString()
	log := a.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"query":      query.Name(),
		"exact":      exact,
	})

	start := time.Now()
	matches, ok := a.matcher.FindRelatedGenomes(ctx, query, fragmentLength, exact, threshold)
	log.WithFields(logrus.Fields{
		"matches": len(matches),
		"elapsed": time.Since(start),
	}).Info("relatedness search complete")
	return matches, ok
}
