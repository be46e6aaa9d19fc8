// Package workload drives cell sets the way an elimination search does: a
// tight loop of fused set algebra per trial, with every goroutine owning the
// sets it touches.
package workload

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"
	"golang.org/x/sync/errgroup"

	"cellset/internal/cellset"
	"cellset/internal/common"
	"cellset/internal/interop"
)

// chunkSize is the number of trials run by one task. Each chunk seeds its own
// generator, so results do not depend on the number of workers.
const chunkSize = 1024

var ErrInvalidOptions = errors.New("workload: invalid options")

// Report summarizes a run.
type Report struct {
	Trials       int
	Covered      int
	FinCells     int
	Eliminations int
	// Fins holds every cell that was a fin in at least one trial.
	Fins *roaring.Bitmap
	// Overlap holds every cell shared by a base and its cover.
	Overlap *bitset.BitSet
	Elapsed time.Duration
}

// chunkResult is owned by exactly one task until Run merges it.
type chunkResult struct {
	covered      int
	finCells     int
	eliminations int
	fins         cellset.Words
	overlap      cellset.Words
}

// trialSets are the sets one task mutates; they never leave the task.
type trialSets struct {
	base, cover, cands, elims cellset.Words
	fins                      cellset.Indexed
}

// Run executes the workload.
func Run(ctx context.Context, opts ...Option) (*Report, error) {
	o := DefaultOptions
	for _, opt := range opts {
		opt(&o)
	}
	if err := validate(o); err != nil {
		return nil, err
	}

	start := time.Now()
	numChunks := (o.Trials + chunkSize - 1) / chunkSize
	results := make([]chunkResult, numChunks)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Workers)
	for c := 0; c < numChunks; c++ {
		trials := min(chunkSize, o.Trials-c*chunkSize)
		g.Go(func() error {
			rng := rand.New(rand.NewPCG(o.Seed, uint64(c)))
			return runChunk(gctx, rng, o, trials, &results[c])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Trials:  o.Trials,
		Fins:    roaring.New(),
		Overlap: bitset.New(cellset.DomainSize),
	}
	for i := range results {
		r := &results[i]
		report.Covered += r.covered
		report.FinCells += r.finCells
		report.Eliminations += r.eliminations
		report.Fins.Or(interop.ToRoaring(&r.fins))
		report.Overlap.InPlaceUnion(interop.ToBitSet(&r.overlap))
	}
	report.Elapsed = time.Since(start)

	common.LogDuration(start, "ran %d trials in %d chunks on %d workers: %d covered, %d fin cells, %d eliminations",
		report.Trials, numChunks, o.Workers, report.Covered, report.FinCells, report.Eliminations)
	return report, nil
}

func validate(o Options) error {
	switch {
	case o.Workers < 1:
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidOptions, o.Workers)
	case o.Trials < 0:
		return fmt.Errorf("%w: trials must not be negative, got %d", ErrInvalidOptions, o.Trials)
	case o.Density < 0 || o.Density > 1:
		return fmt.Errorf("%w: density must be in [0, 1], got %v", ErrInvalidOptions, o.Density)
	}
	return nil
}

func runChunk(ctx context.Context, rng *rand.Rand, o Options, trials int, res *chunkResult) error {
	var s trialSets
	for i := 0; i < trials; i++ {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		s.trial(rng, o.Density, res)
		if o.Progress != nil {
			o.Progress()
		}
	}
	return nil
}

// trial checks whether a random base is covered by a random cover set. Base
// cells outside the cover are fins; cover cells holding a candidate that are
// not part of the base are eliminations.
func (s *trialSets) trial(rng *rand.Rand, density float64, res *chunkResult) {
	randomFill(rng, &s.base, density)
	randomFill(rng, &s.cover, density)
	randomFill(rng, &s.cands, density)

	s.base.IntersectsInto(&s.cover, &res.overlap)

	s.fins.Clear()
	if s.base.IsCovered(&s.cover, &s.fins.Words) {
		res.covered++
	} else {
		n := s.fins.Size()
		for i := 0; i < n; i++ {
			res.fins.Add(s.fins.Get(i))
		}
		res.finCells += n
	}

	s.elims.Clear()
	s.elims.OrAndAnd(&s.cover, &s.cands)
	s.elims.AndNot(&s.base)
	res.eliminations += s.elims.Count()
}

// randomFill replaces s with a set holding each domain value with
// probability density.
func randomFill(rng *rand.Rand, s *cellset.Words, density float64) {
	var w [cellset.NumWords]uint64
	for v := 0; v < cellset.DomainSize; v++ {
		if rng.Float64() < density {
			w[v/cellset.WordBits] |= 1 << (v % cellset.WordBits)
		}
	}
	s.SetWords(w[0], w[1])
}
