package environment

import (
	"context"
	"fmt"
	"sync"

	"github.com/samuelfneumann/rlharness/timestep"
)

// ParallelEpisodes runs n independent episodes on workers goroutines.
//
// Each worker constructs its own Environment with construct and its own
// predictor with fork. Before episode i is run, both are re-seeded with
// seed+i, so that the returned episodes are identical regardless of the
// number of workers or scheduling. Cancellation of ctx is only observed
// between episodes.
func ParallelEpisodes(ctx context.Context, construct Constructor,
	fork Forker, n, workers int, seed uint64) ([]timestep.Episode, error) {
	if workers < 1 {
		return nil, &Error{"parallelEpisodes", fmt.Errorf("workers must "+
			"be positive\n\thave(%d)", workers)}
	}
	if workers > n {
		workers = n
	}

	episodes := make([]timestep.Episode, n)
	jobs := make(chan int, n)
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	setErr := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			env, err := construct(seed + uint64(id))
			if err != nil {
				setErr(err)
				return
			}
			p, err := fork.Fork(seed + uint64(id))
			if err != nil {
				setErr(err)
				return
			}

			for i := range jobs {
				select {
				case <-ctx.Done():
					setErr(ctx.Err())
					return
				default:
				}

				env.Seed(seed + uint64(i))
				p.Seed(seed + uint64(i))
				ep, err := GetEpisode(env, p)
				if err != nil {
					setErr(err)
					return
				}
				episodes[i] = ep
			}
		}(w)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return episodes, nil
}
