// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wsolve

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/srctools/internal/fileutil"
)

// DefaultTabWidth is the number of spaces a tab becomes.
const DefaultTabWidth = 2

// asciiSpace is the set stripped from line ends.
const asciiSpace = " \t\n\r\v\f"

// ErrBinary is returned by NormalizeFile for files that contain a NUL byte.
var ErrBinary = errors.New("binary file")

// Normalize strips trailing whitespace from every line of content, joins
// the lines with "\n" without a final newline and replaces each tab with
// tabWidth spaces. A tabWidth of zero or less uses DefaultTabWidth.
func Normalize(content string, tabWidth int) string {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	lines := splitLines(content)
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, asciiSpace)
	}
	out := strings.Join(lines, "\n")
	return strings.ReplaceAll(out, "\t", strings.Repeat(" ", tabWidth))
}

// splitLines splits s after each "\n" the way a line reader does: every
// line keeps its terminator and there is no empty element after a final
// newline.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// NormalizeFile normalizes the file at path in place. The file is only
// rewritten when its content changes; changed reports whether it was.
// Files containing a NUL byte are left alone and ErrBinary is returned.
// A symlink is resolved and its target rewritten; the link itself stays.
func NormalizeFile(path string, tabWidth int) (changed bool, err error) {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return false, fmt.Errorf("resolving %s: %w", path, err)
	}
	path = target

	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return false, ErrBinary
	}

	out := Normalize(string(data), tabWidth)
	if out == string(data) {
		return false, nil
	}

	mode, err := fileutil.FileMode(path, 0o644)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if err := fileutil.WriteFileAtomic(path, []byte(out), mode); err != nil {
		return false, err
	}
	return true, nil
}
