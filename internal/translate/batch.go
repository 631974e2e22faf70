package translate

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type batchFunc func(ctx context.Context, items []Item) ([]Result, error)

// batcher splits items into fixed-size batches and hands them to one
// provider request each. Providers embed it to satisfy ConcurrentTranslator.
type batcher struct {
	size     int
	progress func(done, total int)
	run      batchFunc
}

func newBatcher(opts Options, run batchFunc) batcher {
	size := opts.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}
	return batcher{size: size, progress: opts.Progress, run: run}
}

func (b batcher) split(items []Item) [][]Item {
	var batches [][]Item
	for i := 0; i < len(items); i += b.size {
		end := min(i+b.size, len(items))
		batches = append(batches, items[i:end])
	}
	return batches
}

func (b batcher) report(done, total int) {
	if b.progress != nil {
		b.progress(done, total)
	}
}

// Translate runs the batches one after another.
func (b batcher) Translate(ctx context.Context, items []Item) ([]Result, error) {
	if len(items) == 0 {
		return []Result{}, nil
	}

	batches := b.split(items)
	var all []Result
	for i, batch := range batches {
		results, err := b.run(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("batch %d failed: %w", i, err)
		}
		all = append(all, results...)
		b.report(i+1, len(batches))
	}

	sortResults(all)
	return all, nil
}

// TranslateWithConcurrency lets up to concurrency workers pull batches from
// a shared queue. The first failing batch cancels the others.
func (b batcher) TranslateWithConcurrency(
	ctx context.Context,
	items []Item,
	concurrency int,
) ([]Result, error) {
	if len(items) == 0 {
		return []Result{}, nil
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	batches := b.split(items)
	if len(batches) == 1 || concurrency == 1 {
		return b.Translate(ctx, items)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type batchResult struct {
		index   int
		results []Result
		err     error
	}

	work := make(chan int)
	out := make(chan batchResult, len(batches))

	var wg sync.WaitGroup
	for i := 0; i < concurrency && i < len(batches); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				if ctx.Err() != nil {
					return
				}
				results, err := b.run(ctx, batches[idx])
				if err != nil {
					cancel()
				}
				out <- batchResult{index: idx, results: results, err: err}
			}
		}()
	}

	go func() {
		defer close(work)
		for i := range batches {
			select {
			case <-ctx.Done():
				return
			case work <- i:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	var (
		all      []Result
		firstErr error
		done     int
	)
	for result := range out {
		if result.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("batch %d failed: %w", result.index, result.err)
			}
			continue
		}
		all = append(all, result.results...)
		done++
		b.report(done, len(batches))
	}

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil && done < len(batches) {
		return nil, err
	}

	sortResults(all)
	return all, nil
}

func sortResults(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})
}
