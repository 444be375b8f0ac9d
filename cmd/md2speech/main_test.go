package main

// Notes:
// - runMain: we test exit codes and outputs end to end with real converters
//   writing into temp directories. Relative default outputs (output.txt) are
//   avoided because tests run in parallel in the package directory.
// - Tests that set MD2SPEECH_* variables cannot run in parallel.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2speech/internal/config"
)

// ---------------------------------------------------------------------------
// TestRunMain_Convert - Successful conversions
// ---------------------------------------------------------------------------

func TestRunMain_Convert(t *testing.T) {
	t.Parallel()

	const doc = "# Hello\n\nDr. Smith has 5 cats & 50% off.\n"

	tests := []struct {
		name string
		args func(in, out string) []string
		want string
	}{
		{
			name: "implicit convert plain",
			args: func(in, out string) []string { return []string{"md2speech", in, "-o", out} },
			want: "Hello Doctor Smith has five cats andamp; fiftypercent off.",
		},
		{
			name: "explicit convert ssml",
			args: func(in, out string) []string {
				return []string{"md2speech", "convert", in, "--format", "SSML", "-o", out}
			},
			want: "<speak>Hello Doctor Smith has five cats andamp; fiftypercent off.</speak>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			in := writeFile(t, dir, "doc.md", doc)
			out := filepath.Join(dir, "speech", "doc.out")

			env, stdout, stderr := testEnv()
			if code := runMain(tt.args(in, out), env); code != ExitSuccess {
				t.Fatalf("runMain() = %d, want %d\nstderr: %s", code, ExitSuccess, stderr.String())
			}
			if got := readFile(t, out); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
			if !strings.Contains(stdout.String(), "Created "+out) {
				t.Errorf("stdout = %q, want Created line", stdout.String())
			}
		})
	}
}

func TestRunMain_ConvertDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "docs/a.md", "One")
	writeFile(t, dir, "docs/sub/b.md", "```go\nx := 1\n```")
	out := filepath.Join(dir, "out")

	env, stdout, stderr := testEnv()
	args := []string{"md2speech", filepath.Join(dir, "docs"), "-o", out, "-f", "ssml", "--code-blocks", "announce", "-w", "2", "--html"}
	if code := runMain(args, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d\nstderr: %s", code, stderr.String())
	}

	if got := readFile(t, filepath.Join(out, "a.ssml")); got != "<speak>One</speak>" {
		t.Errorf("a.ssml = %q", got)
	}
	if got := readFile(t, filepath.Join(out, "sub", "b.ssml")); got != "<speak>Go code block.</speak>" {
		t.Errorf("b.ssml = %q", got)
	}
	if _, err := os.Stat(filepath.Join(out, "a.ssml.html")); err != nil {
		t.Errorf("expected intermediate HTML: %v", err)
	}
	if !strings.Contains(stdout.String(), "2 succeeded") {
		t.Errorf("stdout missing summary:\n%s", stdout.String())
	}

	// A second run finds identical outputs
	env2, stdout2, _ := testEnv()
	if code := runMain(args, env2); code != ExitSuccess {
		t.Fatalf("second runMain() = %d", code)
	}
	if !strings.Contains(stdout2.String(), "Unchanged") {
		t.Errorf("second run should report unchanged outputs:\n%s", stdout2.String())
	}
}

func TestRunMain_CompressedInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "doc.md.xz")
	writeXZFile(t, in, "Read 7 items e.g. this one")
	out := filepath.Join(dir, "doc.txt")

	env, _, stderr := testEnv()
	if code := runMain([]string{"md2speech", in, "-o", out, "-q"}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d\nstderr: %s", code, stderr.String())
	}
	if got := readFile(t, out); got != "Read seven items for example this one" {
		t.Errorf("output = %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Errors - Exit codes for failures
// ---------------------------------------------------------------------------

func TestRunMain_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeFile(t, dir, "doc.md", "text")
	bad := writeFile(t, dir, "latin1.md", "caf\xe9")
	out := filepath.Join(dir, "out.txt")

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStderr string
	}{
		{"no args", []string{"md2speech"}, ExitUsage, "Usage:"},
		{"unknown format", []string{"md2speech", in, "-f", "mp3", "-o", out}, ExitUsage, "available: plain, ssml"},
		{"unknown flag", []string{"md2speech", in, "--nope"}, ExitUsage, "invalid arguments"},
		{"too many inputs", []string{"md2speech", in, in, "-o", out}, ExitUsage, "expected one input"},
		{"bad code blocks", []string{"md2speech", in, "--code-blocks", "mute", "-o", out}, ExitUsage, "speech.codeBlocks"},
		{"bad workers", []string{"md2speech", in, "-w", "99", "-o", out}, ExitUsage, "invalid worker count"},
		{"bad log format", []string{"md2speech", in, "--log-format", "xml", "-o", out}, ExitUsage, "logging.format"},
		{"missing config", []string{"md2speech", in, "-c", "no-such-config-xyz", "-o", out}, ExitUsage, "hint:"},
		{"missing input", []string{"md2speech", filepath.Join(dir, "nope.md"), "-o", out}, ExitIO, "no such file"},
		{"invalid utf-8", []string{"md2speech", bad, "-o", out}, ExitIO, "iconv"},
		{"unwritable output", []string{"md2speech", in, "-o", filepath.Join(in, "child.txt")}, ExitIO, "FAILED"},
		{"unsupported shell", []string{"md2speech", "completion", "tcsh"}, ExitUsage, "available: bash"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, _, stderr := testEnv()
			if code := runMain(tt.args, env); code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d\nstderr: %s", code, tt.wantCode, stderr.String())
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr missing %q:\n%s", tt.wantStderr, stderr.String())
			}
		})
	}
}

func TestRunMain_MissingInputIsLogged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "nope.md")
	out := filepath.Join(dir, "out.txt")

	env, _, stderr := testEnv()
	code := runMain([]string{"md2speech", in, "-o", out, "--log-format", "text"}, env)
	if code != ExitIO {
		t.Errorf("runMain() = %d, want %d", code, ExitIO)
	}
	for _, want := range []string{"conversion failed", "input=" + in, "FAILED " + in} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr.String())
		}
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("output should not exist, stat error = %v", err)
	}
}

func TestRunMain_NoInput(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv()
	if code := runMain([]string{"md2speech", "convert"}, env); code != ExitUsage {
		t.Errorf("runMain() = %d, want %d\nstderr: %s", code, ExitUsage, stderr.String())
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Commands - version, help, completion
// ---------------------------------------------------------------------------

func TestRunMain_Commands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args       []string
		wantStdout string
	}{
		{[]string{"md2speech", "version"}, "md2speech " + Version},
		{[]string{"md2speech", "--version"}, "md2speech " + Version},
		{[]string{"md2speech", "help"}, "Commands:"},
		{[]string{"md2speech", "help", "convert"}, "--code-blocks"},
		{[]string{"md2speech", "completion", "bash"}, "complete -F"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args[1:], " "), func(t *testing.T) {
			t.Parallel()

			env, stdout, _ := testEnv()
			if code := runMain(tt.args, env); code != ExitSuccess {
				t.Errorf("runMain() = %d, want %d", code, ExitSuccess)
			}
			if !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout missing %q:\n%s", tt.wantStdout, stdout.String())
			}
		})
	}
}

func TestRunConvert_HelpFlag(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv()
	err := runConvert(t.Context(), []string{"--help"}, env)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("runConvert(--help) error = %v, want flag.ErrHelp", err)
	}
	if !strings.Contains(stderr.String(), "Usage: md2speech") {
		t.Errorf("expected convert usage on stderr:\n%s", stderr.String())
	}
	if code := report(err, env); code != ExitSuccess {
		t.Errorf("report(ErrHelp) = %d, want %d", code, ExitSuccess)
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Settings - Config file, environment, and base config
// ---------------------------------------------------------------------------

func TestRunMain_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "docs/a.md", "Approx. 3 items")
	cfgPath := writeFile(t, dir, "speech.toml", `
[input]
defaultDir = "`+filepath.ToSlash(filepath.Join(dir, "docs"))+`"

[output]
defaultDir = "`+filepath.ToSlash(filepath.Join(dir, "out"))+`"
format = "ssml"

[[speech.abbreviations]]
from = "Approx."
to = "Approximately"
`)

	t.Setenv("MD2SPEECH_FORMAT", "plain")

	env, _, stderr := testEnv()
	if code := runMain([]string{"md2speech", "-c", cfgPath}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d\nstderr: %s", code, stderr.String())
	}

	// Env beats the file: plain output with the .txt extension
	if got := readFile(t, filepath.Join(dir, "out", "a.txt")); got != "Approximately three items" {
		t.Errorf("a.txt = %q", got)
	}
}

func TestRunMain_EnvConfigName(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "a.md", "x")
	t.Setenv("MD2SPEECH_CONFIG", filepath.Join(dir, "missing.yaml"))

	env, _, stderr := testEnv()
	if code := runMain([]string{"md2speech", in, "-o", filepath.Join(dir, "a.txt")}, env); code != ExitUsage {
		t.Errorf("runMain() = %d, want %d\nstderr: %s", code, ExitUsage, stderr.String())
	}
}

func TestRunMain_BaseConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.md", "```\ncode\n```\n\nText")

	env, _, stderr := testEnv()
	env.Config = &config.Config{
		Input:  config.InputConfig{DefaultDir: dir},
		Speech: config.SpeechConfig{CodeBlocks: "skip"},
	}

	if code := runMain([]string{"md2speech"}, env); code != ExitUsage {
		// A bare invocation prints usage; the base config only applies to convert.
		t.Fatalf("runMain(bare) = %d, want %d", code, ExitUsage)
	}
	if code := runMain([]string{"md2speech", "convert", "-q"}, env); code != ExitSuccess {
		t.Fatalf("runMain(convert) = %d\nstderr: %s", code, stderr.String())
	}
	if got := readFile(t, filepath.Join(dir, "a.txt")); got != "Text" {
		t.Errorf("a.txt = %q, want %q", got, "Text")
	}
}
