// Package path provides object path normalisation utilities.
//
// Every object path passes through this package before storage or retrieval
// so that "docs/readme", "/docs/readme/" and "docs\readme" address the same
// object.
//
// Normalisation rules:
//   - Paths use forward slashes
//   - No leading or trailing slashes
//   - No "." or ".." components
//   - Empty paths are rejected
package path

import (
	"errors"
	"path"
	"strings"
)

// ErrInvalid indicates the provided object path is invalid.
var ErrInvalid = errors.New("invalid object path")

// Normalise cleans and validates an object path.
func Normalise(p string) (string, error) {
	if p == "" {
		return "", ErrInvalid
	}

	p = path.Clean(toSlash(p))
	p = strings.Trim(p, "/")

	if p == "" || p == "." || p == ".." {
		return "", ErrInvalid
	}
	if strings.Contains(p, "..") {
		return "", ErrInvalid
	}
	return p, nil
}

// Direct reports whether p is a direct child of prefix, or prefix itself.
// The prefix is normalised (backslashes converted, trailing slash removed)
// to handle raw user input.
//
// Examples (prefix="docs"):
//   - "docs/readme" -> true
//   - "docs/api/auth" -> false
//   - "docs" -> true
//
// Examples (prefix=""):
//   - "readme" -> true
//   - "docs/readme" -> false
func Direct(p, prefix string) bool {
	prefix = strings.TrimSuffix(toSlash(prefix), "/")

	if p == prefix {
		return true
	}

	var rest string
	switch {
	case prefix == "":
		rest = p
	case strings.HasPrefix(p, prefix+"/"):
		rest = p[len(prefix)+1:]
	default:
		return false
	}
	return !strings.Contains(rest, "/")
}

// toSlash converts backslashes on every platform. filepath.ToSlash leaves
// them alone on Unix, where they are legal filename characters, but object
// paths never treat them as anything other than separators.
func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
