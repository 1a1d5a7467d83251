package host

import (
	"context"
	"runtime"
	"sync"

	"github.com/flanksource/commons/logger"
)

// BatchResult is the outcome of opening one file of a batch.
type BatchResult struct {
	File  string
	Panel *Panel
	Err   error
}

// OpenAll opens every file on at most concurrency workers (0 = one per CPU).
// Results are in the order of files. Files not started before ctx is
// cancelled carry the context error.
func (p *Previewer) OpenAll(ctx context.Context, files []string, concurrency int) []BatchResult {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	concurrency = min(concurrency, len(files))

	results := make([]BatchResult, len(files))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for id := 0; id < concurrency; id++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				panel, err := p.Open(files[i])
				results[i] = BatchResult{File: files[i], Panel: panel, Err: err}
			}
		}()
	}

	for i, file := range files {
		select {
		case <-ctx.Done():
			results[i] = BatchResult{File: file, Err: ctx.Err()}
			continue
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	logger.Debugf("Opened %d files on %d workers", len(files), concurrency)
	return results
}
