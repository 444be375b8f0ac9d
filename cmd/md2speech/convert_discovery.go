package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	md2speech "github.com/alnah/go-md2speech"
	"github.com/alnah/go-md2speech/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrNoMarkdownFiles    = errors.New("no markdown files found")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// defaultOutputFile is the destination for a single input when neither
// --output nor output.defaultDir is set.
const defaultOutputFile = "output.txt"

// markdownExtensions are matched case-insensitively during directory walks.
var markdownExtensions = []string{".md", ".markdown"}

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds the files to convert.
// A file input is taken as is, whatever its extension. A directory is
// walked for markdown files, optionally xz-compressed. An input that cannot
// be stat'ed is passed on as a single file so the converter reports and logs
// the read failure.
func discoverFiles(inputPath, output, defaultDir string, format md2speech.Format) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil || !info.IsDir() {
		return []FileToConvert{{
			InputPath:  inputPath,
			OutputPath: resolveSingleOutputPath(inputPath, output, defaultDir, format),
		}}, nil
	}

	outputDir := output
	if outputDir == "" {
		outputDir = defaultDir
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !isMarkdownPath(path) {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath, format)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoMarkdownFiles, inputPath)
	}
	return files, nil
}

// resolveSingleOutputPath picks the destination for a single input file.
func resolveSingleOutputPath(inputPath, output, defaultDir string, format md2speech.Format) string {
	if output != "" {
		return output
	}
	if defaultDir != "" {
		return resolveOutputPath(inputPath, defaultDir, "", format)
	}
	return defaultOutputFile
}

// resolveOutputPath mirrors inputPath under outputDir with the format's
// extension. An empty outputDir writes next to the source.
func resolveOutputPath(inputPath, outputDir, baseInputDir string, format md2speech.Format) string {
	base := stemOf(inputPath) + format.Extension()

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base)
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), base)
		}
	}

	return filepath.Join(outputDir, base)
}

// stemOf strips the compression and markdown extensions from a file name.
func stemOf(path string) string {
	name := filepath.Base(path)
	if strings.HasSuffix(strings.ToLower(name), fileutil.CompressedExtension) {
		name = name[:len(name)-len(fileutil.CompressedExtension)]
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// isMarkdownPath reports whether a walked file should be converted.
func isMarkdownPath(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	name = strings.TrimSuffix(name, fileutil.CompressedExtension)
	for _, ext := range markdownExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > md2speech.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, md2speech.MaxPoolSize)
	}
	return nil
}
