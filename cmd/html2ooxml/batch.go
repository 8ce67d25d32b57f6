package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	html2ooxml "github.com/alnah/go-html2ooxml"
	"github.com/alnah/go-html2ooxml/internal/fileutil"
	"github.com/alnah/go-html2ooxml/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrNoInput         = errors.New("no input specified")
	ErrReadInput       = errors.New("failed to read input file")
	ErrWriteFragment   = errors.New("failed to write fragment file")
	ErrConverterInit   = errors.New("failed to initialize converter")
	ErrCreateOutputDir = errors.New("failed to create output directory")
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input html2ooxml.Input) (*html2ooxml.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*html2ooxml.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (CLIConverter, error)
	Release(CLIConverter)
	Size() int
}

// poolAdapter exposes a ConverterPool as a Pool.
type poolAdapter struct {
	pool *html2ooxml.ConverterPool
}

var _ Pool = (*poolAdapter)(nil)

func (a *poolAdapter) Acquire() (CLIConverter, error) {
	return a.pool.Acquire()
}

// Release panics if conv did not come from this pool; that is a programmer error.
func (a *poolAdapter) Release(conv CLIConverter) {
	c, ok := conv.(*html2ooxml.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", conv))
	}
	a.pool.Release(c)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	skipWrap          bool
	writeHTML         bool
	numberingStart    int  // 0 = converter default
	continueNumbering bool // thread NextNumberingID from file to file
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath       string
	OutputPath      string
	Err             error
	Duration        time.Duration
	NextNumberingID int
	Diagnostics     []html2ooxml.Diagnostic
}

// convertBatch processes files concurrently using the converter pool.
// With continueNumbering, files run in order on a single converter so each
// starts where the previous one stopped.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}
	if params.continueNumbering {
		return convertSequential(ctx, pool, files, params)
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				// Mark the jobs this worker would have taken as failed
				for idx := range jobs {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       fmt.Errorf("%w: %v", ErrConverterInit, err),
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
				results[idx] = convertFile(ctx, conv, files[idx], params, params.numberingStart)
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

// convertSequential converts files in order, threading the numbering id.
// A failed file does not advance the id.
func convertSequential(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	results := make([]ConversionResult, len(files))

	conv, err := pool.Acquire()
	if err != nil {
		for i, f := range files {
			results[i] = ConversionResult{InputPath: f.InputPath, Err: fmt.Errorf("%w: %v", ErrConverterInit, err)}
		}
		return results
	}
	defer pool.Release(conv)

	start := params.numberingStart
	for i, f := range files {
		if ctx.Err() != nil {
			results[i] = ConversionResult{InputPath: f.InputPath, Err: ctx.Err()}
			continue
		}
		results[i] = convertFile(ctx, conv, f, params, start)
		if results[i].Err == nil {
			start = results[i].NextNumberingID
		}
	}
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams, start int) ConversionResult {
	begin := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(begin)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadInput, err))
	}

	input := html2ooxml.Input{SkipWrap: params.skipWrap, NumberingStart: start}
	if f.Markdown {
		input.Markdown = string(content)
	} else {
		input.HTML = string(content)
	}

	res, err := conv.Convert(ctx, input)
	if err != nil {
		return fail(err)
	}
	result.NextNumberingID = res.NextNumberingID
	result.Diagnostics = res.Diagnostics

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("%w: %v%s", ErrCreateOutputDir, err, hints.ForOutputDirectory()))
	}

	if params.writeHTML {
		if err := fileutil.WriteFileAtomic(htmlOutputPath(f.OutputPath), []byte(res.HTML), filePermissions); err != nil {
			return fail(fmt.Errorf("failed to write HTML file: %w", err))
		}
	}

	if err := fileutil.WriteFileAtomic(f.OutputPath, []byte(res.Fragment), filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteFragment, err))
	}

	result.Duration = time.Since(begin)
	return result
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded   int
	Failed      int
	Diagnostics int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
		summary.Diagnostics += len(r.Diagnostics)
	}
	return summary
}

// reportResults logs each result and returns the failures combined with
// multierr, or nil when every file converted. Failures are not logged here;
// the caller prints the returned error.
func reportResults(results []ConversionResult, log *zap.Logger) error {
	var errs error
	deepNesting := false

	for _, r := range results {
		if r.Err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", r.InputPath, r.Err))
			continue
		}

		log.Info("Created", zap.String("output", r.OutputPath))
		log.Debug("Converted",
			zap.String("input", r.InputPath),
			zap.Duration("duration", r.Duration.Round(time.Millisecond)),
			zap.Int("next_numbering_id", r.NextNumberingID))

		for _, d := range r.Diagnostics {
			if d.Kind == html2ooxml.DiagnosticDeepNesting {
				deepNesting = true
			}
		}
	}

	if deepNesting {
		log.Warn("Some lists were nested too deep to flatten" + hints.ForDeepNesting())
	}

	if len(results) > 1 {
		summary := countResults(results)
		log.Info("Done",
			zap.Int("succeeded", summary.Succeeded),
			zap.Int("failed", summary.Failed),
			zap.Int("diagnostics", summary.Diagnostics))
	}

	return errs
}
