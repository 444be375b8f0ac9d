package main

// Notes:
// - Shared test infrastructure: environment with captured output, a
//   scripted converter, and a pool that hands it out.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ulikunitz/xz"

	md2speech "github.com/alnah/go-md2speech"
	"github.com/alnah/go-md2speech/internal/config"
)

// testEnv returns an environment writing to buffers and using real converters.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Stdout:  &stdout,
		Stderr:  &stderr,
		Config:  config.DefaultConfig(),
		NewPool: newConverterPool,
	}
	return env, &stdout, &stderr
}

// writeFile creates a file with content under dir, making parent directories.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// readFile returns the file content or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// mockConverter records calls and returns a scripted outcome.
type mockConverter struct {
	mu    sync.Mutex
	calls []string
	err   error
	res   *md2speech.FileResult
}

func (m *mockConverter) ConvertFile(_ context.Context, inputPath, outputPath string, _ md2speech.Format) (*md2speech.FileResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, inputPath)
	if m.err != nil {
		return nil, m.err
	}
	if m.res != nil {
		return m.res, nil
	}
	return &md2speech.FileResult{InputPath: inputPath, OutputPath: outputPath}, nil
}

// mockPool hands out one shared converter; nil conv simulates a closed pool.
type mockPool struct {
	conv   Converter
	size   int
	closed bool
}

func (p *mockPool) Acquire() Converter {
	if p.conv == nil {
		return nil
	}
	return p.conv
}

func (p *mockPool) Release(Converter) {}

func (p *mockPool) Size() int { return p.size }

func (p *mockPool) Close() { p.closed = true }

// dirExists reports whether path is an existing directory.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// writeXZFile writes content xz-compressed to path.
func writeXZFile(t *testing.T, path, content string) {
	t.Helper()

	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatalf("xz.NewWriter: %v", err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("xz write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("xz close: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
}
