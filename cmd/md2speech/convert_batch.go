package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	md2speech "github.com/alnah/go-md2speech"
)

// dirPermissions is used for output directories (rwxr-x---).
const dirPermissions = 0o750

// Sentinel errors for batch operations.
var (
	ErrConverterInit   = errors.New("failed to acquire converter")
	ErrCreateOutputDir = errors.New("failed to create output directory")
)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Unchanged  bool
	Err        error
	Duration   time.Duration
}

// batchError reports failed conversions. It unwraps to every file error so
// exitCodeFor can classify the batch.
type batchError struct {
	failed int
	errs   []error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d conversion(s) failed", e.failed)
}

func (e *batchError) Unwrap() []error { return e.errs }

// convertBatch processes files concurrently using the converter pool.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, format md2speech.Format) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv := pool.Acquire()
			if conv == nil {
				// Pool closed, mark remaining jobs as failed
				for idx := range jobs {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ErrConverterInit,
					}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], format)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv Converter, f FileToConvert, format md2speech.Format) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	if outDir := filepath.Dir(f.OutputPath); outDir != "." {
		if err := os.MkdirAll(outDir, dirPermissions); err != nil {
			result.Err = fmt.Errorf("%w: %w", ErrCreateOutputDir, err)
			result.Duration = time.Since(start)
			return result
		}
	}

	res, err := conv.ConvertFile(ctx, f.InputPath, f.OutputPath, format)
	result.Duration = time.Since(start)
	if err != nil {
		result.Err = err
		return result
	}

	result.Unchanged = res.Unchanged
	return result
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Unchanged int
	Failed    int
}

// countResults tallies conversion outcomes.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		switch {
		case r.Err != nil:
			summary.Failed++
		case r.Unchanged:
			summary.Unchanged++
			summary.Succeeded++
		default:
			summary.Succeeded++
		}
	}
	return summary
}

// printResultsWithWriter outputs conversion results using the provided writers.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			continue
		}

		if quiet {
			continue
		}

		verb := "Created"
		if r.Unchanged {
			verb = "Unchanged"
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "%s %s\n", verb, r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded (%d unchanged), %d failed\n", summary.Succeeded, summary.Unchanged, summary.Failed)
	}

	return summary.Failed
}

// resultsError returns nil when every file converted.
func resultsError(results []ConversionResult) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &batchError{failed: len(errs), errs: errs}
}
