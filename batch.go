package lzjd

import (
	"context"
	"fmt"
	"io"
	"math"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	lzjderrors "github.com/tamirms/lzjd/errors"
)

// Source is one byte-stream input for batch sketch construction. Opening
// and reading are the caller's concern; the batch engine only consumes the
// stream.
type Source interface {
	// Name returns the opaque identifier carried into the DigestRecord.
	Name() string

	// Open returns the byte stream to sketch. It is called exactly once
	// per batch and the returned reader is closed by the engine.
	Open() (io.ReadCloser, error)
}

// Result is one thresholded comparison: the two record names and their
// similarity as an integer percentage in [0, 100].
type Result struct {
	NameA      string
	NameB      string
	Similarity int
}

// String renders the result in the comparison output line format
// <name_a>|<name_b>|<similarity zero-padded to 3 digits>, without a
// trailing newline.
func (r Result) String() string {
	return fmt.Sprintf("%s|%s|%03d", r.NameA, r.NameB, r.Similarity)
}

// WriteResults writes one output line per result to w.
func WriteResults(w io.Writer, results []Result) error {
	for _, res := range results {
		if _, err := io.WriteString(w, res.String()+"\n"); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}
	return nil
}

// HashSources builds one DigestRecord per source using the streaming
// strategy and the shared hasher factory. Sources are processed
// independently across a fixed-size worker pool; the returned slice
// preserves the input order — records[i] corresponds to sources[i] by
// contract, not by accident of scheduling.
//
// The first source error aborts the batch and is returned.
func HashSources(ctx context.Context, sources []Source, newHasher BuildHasher, opts ...Option) ([]DigestRecord, error) {
	cfg := defaultBatchConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.workers < 1 {
		return nil, lzjderrors.ErrBadWorkers
	}

	records := make([]DigestRecord, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rc, err := src.Open()
			if err != nil {
				return fmt.Errorf("open %s: %w", src.Name(), err)
			}
			dict, err := Build(rc, newHasher)
			if err != nil {
				rc.Close()
				return fmt.Errorf("hash %s: %w", src.Name(), err)
			}
			if err := rc.Close(); err != nil {
				return fmt.Errorf("close %s: %w", src.Name(), err)
			}
			// Each goroutine writes only its own index; no two share
			// an element, so the slice needs no lock.
			records[i] = DigestRecord{Name: src.Name(), Dict: dict}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// CompareAll computes thresholded pairwise similarity between two digest
// collections across a fixed-size worker pool.
//
// When a and b share the same backing array — identity, not value
// equality — only the strict upper triangle is evaluated: unordered pairs
// (i, j) with i < j, no self-pairs and no mirrored duplicates. Two
// distinct collections are evaluated as the full cross product even if
// they are element-wise equal.
//
// For each evaluated pair the similarity is rounded to an integer
// percentage; a Result is emitted only when that integer is at or above
// threshold. Workers accumulate into private buffers that are concatenated
// after the pool drains, so the result set is deterministic but its order
// is not — callers needing a stable order must sort.
func CompareAll(ctx context.Context, a, b []DigestRecord, threshold int, opts ...Option) ([]Result, error) {
	if threshold < 0 || threshold > 100 {
		return nil, fmt.Errorf("%w: got %d", lzjderrors.ErrBadThreshold, threshold)
	}
	cfg := defaultBatchConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.workers < 1 {
		return nil, lzjderrors.ErrBadWorkers
	}
	if len(a) == 0 || len(b) == 0 {
		return nil, nil
	}

	same := len(a) == len(b) && &a[0] == &b[0]

	workers := cfg.workers
	if workers > len(a) {
		workers = len(a)
	}

	// Rows of a are claimed through a shared counter; everything else a
	// worker touches is either immutable (the records) or private (its
	// partial buffer).
	var nextRow atomic.Int64
	partials := make([][]Result, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			var part []Result
			for {
				i := int(nextRow.Add(1) - 1)
				if i >= len(a) {
					break
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				jStart := 0
				if same {
					jStart = i + 1
				}
				for j := jStart; j < len(b); j++ {
					similarity := int(math.Round(a[i].Dict.Similarity(b[j].Dict) * 100))
					if similarity >= threshold {
						part = append(part, Result{
							NameA:      a[i].Name,
							NameB:      b[j].Name,
							Similarity: similarity,
						})
					}
				}
			}
			partials[w] = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var results []Result
	for _, part := range partials {
		results = append(results, part...)
	}
	return results, nil
}
