// Package fileutil provides file and path utility functions.
package fileutil

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"
)

// CompressedExtension marks inputs that are read through an xz decoder.
const CompressedExtension = ".xz"

// MaxReadSize limits how much a single document may expand to (64MB).
var MaxReadSize int64 = 64 << 20

// Sentinel errors for file utility operations.
var (
	ErrFileTooLarge = errors.New("file exceeds maximum size")
	ErrDecompress   = errors.New("xz decompression failed")
)

// ReadFile reads the whole file. Paths ending in .xz are decompressed.
// Open errors are returned unwrapped so callers can match *fs.PathError.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	compressed := strings.HasSuffix(strings.ToLower(path), CompressedExtension)
	if compressed {
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecompress, err)
		}
		r = xr
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxReadSize+1))
	if err != nil {
		if compressed {
			return nil, fmt.Errorf("%w: %v", ErrDecompress, err)
		}
		return nil, err
	}
	if int64(len(data)) > MaxReadSize {
		return nil, fmt.Errorf("%w: %s (max %d bytes)", ErrFileTooLarge, path, MaxReadSize)
	}
	return data, nil
}

// Digest returns the hex BLAKE3-256 digest of data.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SameContent reports whether path is a regular file holding exactly data.
// Sizes are compared before hashing.
func SameContent(path string, data []byte) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() || info.Size() != int64(len(data)) {
		return false
	}
	existing, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return false
	}
	return blake3.Sum256(existing) == blake3.Sum256(data)
}

// WriteFileAtomic writes data to a temp file in the destination directory
// and renames it over path. The destination is never left half-written.
// A symlink is followed so its target is replaced, not the link, and an
// existing file keeps its permission bits; perm applies to new files.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if target, err := filepath.EvalSymlinks(path); err == nil {
		path = target
	}
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		perm = info.Mode().Perm()
	}

	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, ".md2speech-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmpPath := tmpFile.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, writeErr := tmpFile.Write(data); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if chmodErr := os.Chmod(tmpPath, perm); chmodErr != nil {
		cleanup()
		return fmt.Errorf("setting permissions: %w", chmodErr)
	}

	if renameErr := os.Rename(tmpPath, path); renameErr != nil {
		cleanup()
		return fmt.Errorf("replacing %s: %w", path, renameErr)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "speech" -> false (name)
//   - "./speech.yaml" -> true (relative path)
//   - "/etc/md2speech.toml" -> true (absolute)
//   - "C:\config\speech.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
