// Package probing reads small kernel-exported files such as hwmon sensor attributes.
package probing

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"emperror.dev/errors"
)

// File reads a file and returns its content with surrounding whitespace removed.
func File(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return strings.TrimSpace(string(data)), nil
}

// FileInt reads a file and parses it as int64.
func FileInt(path string) (int64, error) {
	v, err := File(path)
	if err != nil {
		return 0, err
	}
	val, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", path)
	}
	return val, nil
}

// Glob returns the matches of pattern in lexical order.
func Glob(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	sort.Strings(matches)
	return matches, nil
}

// IsDir checks if a path is a directory
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
