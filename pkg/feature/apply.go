package feature

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"qpfeat/pkg/io"
)

var ErrNoData = errors.New("no data")

// Apply scores every row of ds with f, one batch per task and at most workers tasks at a
// time. Row i of the result always holds the vector of row i of ds.
func Apply(ctx context.Context, ds *io.DataSet, f Func, workers int) (*mat.Dense, error) {
	if ds.Size() == 0 {
		return nil, ErrNoData
	}
	if ds.BatchSize < 1 {
		return nil, fmt.Errorf("batch size must be positive, got %d", ds.BatchSize)
	}
	if workers < 1 {
		workers = 1
	}

	rows := make([]Vector, ds.Size())
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	ds.Reset()
	for start, batch := ds.Next(); len(batch) > 0; start, batch = ds.Next() {
		start, batch := start, batch
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i, p := range batch {
				rows[start+i] = f(p)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dim := len(rows[0])
	if dim == 0 {
		return nil, errors.New("feature vectors are empty")
	}
	result := mat.NewDense(len(rows), dim, nil)
	for i, row := range rows {
		if len(row) != dim {
			return nil, fmt.Errorf("row %d has %d values, expected %d", i, len(row), dim)
		}
		result.SetRow(i, row)
	}
	return result, nil
}
