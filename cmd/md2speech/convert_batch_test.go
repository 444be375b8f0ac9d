package main

// Notes:
// - convertBatch: we use mockPool/mockConverter to test ordering, closed
//   pools, cancelled contexts, and output directory creation.
// - printResultsWithWriter: we test quiet, verbose, unchanged, and summary lines.

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	md2speech "github.com/alnah/go-md2speech"
)

// ---------------------------------------------------------------------------
// TestConvertBatch - Concurrency and result ordering
// ---------------------------------------------------------------------------

func TestConvertBatch(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	files := []FileToConvert{
		{InputPath: "a.md", OutputPath: filepath.Join(out, "a.txt")},
		{InputPath: "b.md", OutputPath: filepath.Join(out, "nested", "b.txt")},
		{InputPath: "c.md", OutputPath: filepath.Join(out, "c.txt")},
	}
	conv := &mockConverter{}

	results := convertBatch(context.Background(), &mockPool{conv: conv, size: 2}, files, md2speech.FormatPlain)

	if len(results) != len(files) {
		t.Fatalf("got %d results, want %d", len(results), len(files))
	}
	for i, r := range results {
		if r.InputPath != files[i].InputPath {
			t.Errorf("results[%d].InputPath = %q, want %q", i, r.InputPath, files[i].InputPath)
		}
		if r.Err != nil {
			t.Errorf("results[%d].Err = %v", i, r.Err)
		}
	}
	if len(conv.calls) != len(files) {
		t.Errorf("converter called %d times, want %d", len(conv.calls), len(files))
	}
	if !dirExists(filepath.Join(out, "nested")) {
		t.Error("nested output directory was not created")
	}
}

func TestConvertBatch_Empty(t *testing.T) {
	t.Parallel()

	if got := convertBatch(context.Background(), &mockPool{size: 1}, nil, md2speech.FormatPlain); got != nil {
		t.Errorf("convertBatch(nil) = %v, want nil", got)
	}
}

func TestConvertBatch_ClosedPool(t *testing.T) {
	t.Parallel()

	files := []FileToConvert{{InputPath: "a.md", OutputPath: "a.txt"}}
	results := convertBatch(context.Background(), &mockPool{size: 1}, files, md2speech.FormatPlain)

	if !errors.Is(results[0].Err, ErrConverterInit) {
		t.Errorf("Err = %v, want ErrConverterInit", results[0].Err)
	}
}

func TestConvertBatch_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	conv := &mockConverter{}
	files := []FileToConvert{{InputPath: "a.md", OutputPath: filepath.Join(t.TempDir(), "a.txt")}}
	results := convertBatch(ctx, &mockPool{conv: conv, size: 1}, files, md2speech.FormatPlain)

	if !errors.Is(results[0].Err, context.Canceled) {
		t.Errorf("Err = %v, want context.Canceled", results[0].Err)
	}
	if len(conv.calls) != 0 {
		t.Errorf("converter called %d times after cancel, want 0", len(conv.calls))
	}
}

func TestConvertFile_PropagatesUnchanged(t *testing.T) {
	t.Parallel()

	conv := &mockConverter{res: &md2speech.FileResult{Unchanged: true}}
	r := convertFile(context.Background(), conv, FileToConvert{InputPath: "a.md", OutputPath: "a.txt"}, md2speech.FormatPlain)

	if r.Err != nil || !r.Unchanged {
		t.Errorf("result = %+v, want unchanged without error", r)
	}
}

// ---------------------------------------------------------------------------
// TestPrintResultsWithWriter - Output modes
// ---------------------------------------------------------------------------

func TestPrintResultsWithWriter(t *testing.T) {
	t.Parallel()

	results := []ConversionResult{
		{InputPath: "a.md", OutputPath: "a.txt"},
		{InputPath: "b.md", OutputPath: "b.txt", Unchanged: true},
		{InputPath: "c.md", Err: md2speech.ErrInvalidUTF8},
	}

	tests := []struct {
		name       string
		quiet      bool
		verbose    bool
		wantStdout []string
		notStdout  []string
	}{
		{
			name:       "default",
			wantStdout: []string{"Created a.txt", "Unchanged b.txt", "2 succeeded (1 unchanged), 1 failed"},
		},
		{
			name:       "verbose",
			verbose:    true,
			wantStdout: []string{"a.md -> a.txt", "b.md -> b.txt"},
		},
		{
			name:      "quiet",
			quiet:     true,
			notStdout: []string{"Created", "succeeded"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stdout, stderr bytes.Buffer
			env := &Environment{Stdout: &stdout, Stderr: &stderr}

			failed := printResultsWithWriter(results, tt.quiet, tt.verbose, env)
			if failed != 1 {
				t.Errorf("failed = %d, want 1", failed)
			}
			for _, want := range tt.wantStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout missing %q:\n%s", want, stdout.String())
				}
			}
			for _, notWant := range tt.notStdout {
				if strings.Contains(stdout.String(), notWant) {
					t.Errorf("stdout should not contain %q:\n%s", notWant, stdout.String())
				}
			}
			if !strings.Contains(stderr.String(), "FAILED c.md") || !strings.Contains(stderr.String(), "hint:") {
				t.Errorf("stderr should report the failure with a hint:\n%s", stderr.String())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResultsError - Batch error aggregation
// ---------------------------------------------------------------------------

func TestResultsError(t *testing.T) {
	t.Parallel()

	if err := resultsError([]ConversionResult{{InputPath: "a.md"}}); err != nil {
		t.Errorf("resultsError(success) = %v, want nil", err)
	}

	err := resultsError([]ConversionResult{
		{InputPath: "a.md"},
		{InputPath: "b.md", Err: md2speech.ErrWriteOutput},
		{InputPath: "c.md", Err: md2speech.ErrReadInput},
	})
	if err == nil {
		t.Fatal("resultsError() = nil, want error")
	}
	if err.Error() != "2 conversion(s) failed" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, md2speech.ErrWriteOutput) || !errors.Is(err, md2speech.ErrReadInput) {
		t.Errorf("batch error should unwrap to every file error: %v", err)
	}
}
