package pagenum

import (
	"context"
	"runtime"
	"sync"

	"github.com/MeKo-Tech/folio/internal/geometry"
)

// DefaultSearchRegion is used for pages whose region list entry is missing.
var DefaultSearchRegion = geometry.NewRectangle(0, 0, 1000, 100)

// BatchConfig holds configuration for parallel batch matching.
type BatchConfig struct {
	// MaxWorkers is the number of parallel workers (0 = runtime.NumCPU()).
	MaxWorkers int
}

// DefaultBatchConfig returns sensible defaults for batch matching.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{MaxWorkers: runtime.NumCPU()}
}

// FindPageNumbersBatch matches every page of a book against sequential
// expected numbers starting at startPageNumber. Regions are index-aligned
// with the candidate lists; missing entries fall back to
// DefaultSearchRegion. Pages are independent, so the result for any page
// does not depend on execution order.
func FindPageNumbersBatch(pageCandidates [][]Candidate, startPageNumber int, searchRegions []geometry.Rectangle) []*Match {
	return FindPageNumbersBatchContext(context.Background(), pageCandidates, startPageNumber, searchRegions, DefaultBatchConfig())
}

// FindPageNumbersBatchContext matches pages in parallel using a worker
// pool. Results are returned in page order regardless of worker count.
func FindPageNumbersBatchContext(
	ctx context.Context,
	pageCandidates [][]Candidate,
	startPageNumber int,
	searchRegions []geometry.Rectangle,
	config BatchConfig,
) []*Match {
	n := len(pageCandidates)
	if n == 0 {
		return nil
	}
	workers := config.MaxWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	results := make([]*Match, n)
	if workers == 1 {
		for i := range pageCandidates {
			results[i] = matchPage(pageCandidates, startPageNumber, searchRegions, i)
		}
		return results
	}

	jobs := make(chan int, n)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case i, ok := <-jobs:
					if !ok {
						return
					}
					results[i] = matchPage(pageCandidates, startPageNumber, searchRegions, i)
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	for i := 0; i < n; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
		}
	}
	close(jobs)
	wg.Wait()

	return results
}

// matchPage runs the fallback matcher for one page of the batch.
func matchPage(pageCandidates [][]Candidate, startPageNumber int, searchRegions []geometry.Rectangle, i int) *Match {
	region := DefaultSearchRegion
	if i < len(searchRegions) {
		region = searchRegions[i]
	}
	return FindPageNumberWithFallback(pageCandidates[i], startPageNumber+i, region)
}
