package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// MeltAll melts several files concurrently with a bounded worker pool.
// Results are returned in input order. Each file gets its own melter, so
// the single-threaded core is never shared across goroutines; only the
// (mutex-guarded) cache is.
//
// opts.Progress is ignored here: interleaved per-file bars are useless.
func MeltAll(ctx context.Context, paths []string, opts Options, workers int) ([]*Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	opts.Progress = nil

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	results := make([]*Result, len(paths))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := Melt(path, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
