package md2speech

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/alnah/go-md2speech/internal/fileutil"
)

// filePermissions is the mode of written outputs.
const filePermissions = 0o644

// utf8BOM is dropped from the start of inputs so it is not spoken.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadDocument reads a markdown file as UTF-8 text. Paths ending in .xz are
// decompressed first.
// Errors wrap ErrReadInput and the underlying error, so errors.Is also
// matches fs.ErrNotExist and fs.ErrPermission. Invalid UTF-8 additionally
// wraps ErrInvalidUTF8.
func LoadDocument(path string) (string, error) {
	data, err := fileutil.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %w: %s", ErrReadInput, ErrInvalidUTF8, path)
	}
	return string(bytes.TrimPrefix(data, utf8BOM)), nil
}

// WriteOutput writes text to path, replacing any existing file.
// The write goes through a temp file and a rename, so path never holds
// partial output. If path already holds exactly text, nothing is written and
// the result reports Unchanged.
// Errors wrap ErrWriteOutput and the underlying error.
func WriteOutput(path, text string) (FileResult, error) {
	data := []byte(text)
	res := FileResult{
		OutputPath: path,
		Digest:     fileutil.Digest(data),
		Bytes:      len(data),
	}

	if fileutil.SameContent(path, data) {
		res.Unchanged = true
		return res, nil
	}

	if err := fileutil.WriteFileAtomic(path, data, filePermissions); err != nil {
		return FileResult{}, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return res, nil
}
