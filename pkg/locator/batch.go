package locator

import (
	"context"
	"runtime"
	"sync"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// batchChunk is the number of points a worker classifies between
// cancellation checks.
const batchChunk = 256

// ClassifyAll classifies points using up to workers goroutines and returns
// the results in input order. workers <= 0 means runtime.GOMAXPROCS(0).
// If ctx is cancelled, ClassifyAll stops handing out work and returns
// ctx.Err() with a nil slice.
func (l *Locator) ClassifyAll(ctx context.Context, points []v3.Vec, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]Result, len(points))

	chunks := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for start := range chunks {
				end := min(start+batchChunk, len(points))
				for i := start; i < end; i++ {
					results[i] = l.Classify(points[i])
				}
			}
		}()
	}

	var err error
feed:
	for start := 0; start < len(points); start += batchChunk {
		// select picks randomly among ready cases; check first.
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case chunks <- start:
		}
	}
	close(chunks)
	wg.Wait()

	if err != nil {
		return nil, err
	}
	return results, nil
}
