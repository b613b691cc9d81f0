// Package security validates user-supplied paths before they are read.
package security

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxInputFileSize caps how much of a task file is read.
const MaxInputFileSize = 10 << 20

// ErrFileTooLarge is returned when a file exceeds MaxInputFileSize.
var ErrFileTooLarge = errors.New("file too large")

// forbiddenChars never appear in a legitimate task file path.
var forbiddenChars = []string{"\x00", "\n", "\r"}

// ResolveInputFile cleans path, makes it absolute and resolves symlinks.
// The target must exist and be a regular file.
func ResolveInputFile(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("file path cannot be empty")
	}
	for _, c := range forbiddenChars {
		if strings.Contains(path, c) {
			return "", fmt.Errorf("file path contains forbidden character %q", c)
		}
	}

	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s is not a regular file", path)
	}
	return resolved, nil
}

// ReadInputFile reads a validated file, refusing anything over
// MaxInputFileSize.
func ReadInputFile(path string) ([]byte, error) {
	resolved, err := ResolveInputFile(path)
	if err != nil {
		return nil, err
	}
	// #nosec G304 - path is validated above
	f, err := os.Open(resolved)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return ReadLimited(f)
}

// ReadLimited reads r up to MaxInputFileSize.
func ReadLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxInputFileSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxInputFileSize {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, MaxInputFileSize)
	}
	return data, nil
}
