// =============================================================================
// Mailing Converter - Batch Processing
// =============================================================================
//
// RunAll converts several exports concurrently. Each file is processed in its
// own goroutine; a semaphore bounds how many run at once and a buffered
// channel collects the results. The files share one FileManager, which hands
// out a distinct output name to each of them.
//
// ERROR POLICY:
//   - ContinueOnError (default): a failing file does not affect the others
//   - Otherwise: after the first failure, files that have not started yet are
//     reported as skipped
//
// =============================================================================

package converter

import (
	"errors"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/ginjaninja78/mailing-converter/internal/config"
	"github.com/ginjaninja78/mailing-converter/internal/logging"
)

// ErrSkipped marks files not processed because an earlier file failed.
var ErrSkipped = errors.New("skipped after an earlier failure")

// RunAll processes files concurrently and returns one Result per file, in
// the order of files.
func RunAll(files []string, mainConfig *config.MainConfig, logger logging.Logger, opts ...Option) []Result {
	limit := mainConfig.MaxConcurrency
	if limit < 1 {
		limit = 1
	}

	logger.Info("Processing files",
		logging.F(logging.FieldCount, len(files)),
		logging.F(logging.FieldWorkers, limit))

	// One file manager for the batch, so inputs with the same name do not
	// write the same output file. Options passed by the caller still win.
	opts = append([]Option{WithFileManager(NewFileManager(mainConfig))}, opts...)

	var wg sync.WaitGroup
	var failed atomic.Bool

	sem := make(chan struct{}, limit)
	results := make(chan indexedResult, len(files))

	for i, file := range files {
		wg.Add(1)

		go func(index int, filePath string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			if failed.Load() && !mainConfig.ContinueOnError {
				results <- indexedResult{index, Result{FilePath: filePath, Error: ErrSkipped}}
				return
			}

			result := New(filePath, mainConfig, logger, opts...).Run()
			if !result.Success {
				failed.Store(true)
			}
			results <- indexedResult{index, result}
		}(i, file)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]indexedResult, 0, len(files))
	for r := range results {
		collected = append(collected, r)
	}
	sort.Slice(collected, func(a, b int) bool { return collected[a].index < collected[b].index })

	out := make([]Result, len(collected))
	for i, r := range collected {
		out[i] = r.result
	}
	return out
}

type indexedResult struct {
	index  int
	result Result
}
