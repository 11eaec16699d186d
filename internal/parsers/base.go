package parsers

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/custodia-labs/travelog/internal/core/domain"
)

// Base holds the state a format parser keeps for one file.
type Base struct {
	path string
}

// NewBase binds a parse to a file path.
func NewBase(path string) (*Base, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("file path must not be empty: %w", domain.ErrInvalidInput)
	}
	return &Base{path: path}, nil
}

// Path returns the file path.
func (b *Base) Path() string {
	return b.path
}

// CheckFile verifies the file exists and can be read.
// In mute mode a failed check returns false and no error; otherwise the
// failure is returned wrapping domain.ErrFileParsing.
func (b *Base) CheckFile(mute bool) (bool, error) {
	err := checkReadable(b.path)
	if err == nil {
		return true, nil
	}
	if mute {
		return false, nil
	}
	return false, err
}

func checkReadable(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("file %s not found: %w", path, domain.ErrFileParsing)
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w: %w", path, domain.ErrFileParsing, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory: %w", path, domain.ErrFileParsing)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%s is unreadable: %w: %w", path, domain.ErrFileParsing, err)
	}
	return f.Close()
}

// Readable reports whether path is an existing, readable regular file.
func Readable(path string) bool {
	return checkReadable(path) == nil
}

// StorageRelativePath strips the first occurrence of mediaRoot from path.
// An empty mediaRoot leaves path unchanged.
func StorageRelativePath(path, mediaRoot string) string {
	if mediaRoot == "" {
		return path
	}
	return strings.Replace(path, mediaRoot, "", 1)
}
