// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wsolve

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultIgnorePrefixes lists file name prefixes that are never rewritten.
var DefaultIgnorePrefixes = []string{"makefile", "logo.jpg", "lastemperor", "old"}

// DefaultSkipDirs lists directory names that are not walked.
var DefaultSkipDirs = []string{".git"}

// FileList walks root and returns the path of every regular file, or
// symlink to one, whose base name does not start with one of the ignore
// prefixes. Directories whose name is in skipDirs are not descended into.
// Paths are returned in lexical walk order.
func FileList(root string, ignore, skipDirs []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && slices.Contains(skipDirs, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !isRegularFile(path, d) {
			return nil
		}
		if ignored(d.Name(), ignore) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

// isRegularFile reports whether d is a regular file or a symlink to one.
// Symlinks to directories are listed by the walk but never followed.
func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func ignored(name string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
