package async

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Map calls fn for every item on at most limit goroutines and returns the
// results in the order of items. A limit of zero or less uses the number of
// usable CPUs.
//
// Map returns only after every started call has finished. If a call returns
// an error, the context passed to calls that have not started yet is
// cancelled and the first error is returned together with the partial
// results.
//
// Example:
//
//	names, err := Map(ctx, resources, 8, func(ctx context.Context, r Resource) (string, error) {
//	    return r.Name, nil
//	})
func Map[T, R any](ctx context.Context, items []T, limit int, fn func(context.Context, T) (R, error)) ([]R, error) {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results, nil
	}

	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, item := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := fn(gctx, item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	err := g.Wait()
	return results, err
}
