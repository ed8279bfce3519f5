package spectrum

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ComputeBatch samples the law at every temperature concurrently.
// Results are returned in the same order as temps. The first sampling
// error cancels the remaining work.
func ComputeBatch(ctx context.Context, law Law, temps []float64, wavelengthsNm []float64) ([]*Series, error) {
	results := make([]*Series, len(temps))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())

	for i, tempK := range temps {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := Compute(law, tempK, wavelengthsNm)
			if err != nil {
				return err
			}
			results[i] = s
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
