// Package validate checks paths, tags and content before they reach the
// store. Every failure wraps one of the sentinels below.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/pubd/internal/path"
)

var (
	ErrInvalidPath     = errors.New("invalid path")
	ErrPathTooLong     = errors.New("path too long")
	ErrContentTooLarge = errors.New("content too large")
	ErrInvalidTag      = errors.New("invalid tag")
	ErrTooManyTags     = errors.New("too many tags")
)

// Path returns p in normalised form. A maxLen of 0 skips the length check,
// which lookups rely on.
func Path(p string, maxLen int) (string, error) {
	switch {
	case p == "":
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	case strings.IndexByte(p, 0) >= 0:
		return "", fmt.Errorf("%w: null byte in path", ErrInvalidPath)
	case maxLen > 0 && len(p) > maxLen:
		return "", fmt.Errorf("%w: %d bytes exceeds %d", ErrPathTooLong, len(p), maxLen)
	}
	norm, err := path.Normalise(p)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}
	return norm, nil
}

// Content enforces the body size limit. A maxLen of 0 means unlimited.
func Content(content string, maxLen int64) error {
	if maxLen > 0 && int64(len(content)) > maxLen {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrContentTooLarge, len(content), maxLen)
	}
	return nil
}

// Tag checks one tag-value: at least one element, none empty, no NUL bytes.
func Tag(t []string) error {
	if len(t) == 0 {
		return fmt.Errorf("%w: empty tag", ErrInvalidTag)
	}
	for i, s := range t {
		if s == "" {
			return fmt.Errorf("%w: element %d is empty", ErrInvalidTag, i)
		}
		if strings.IndexByte(s, 0) >= 0 {
			return fmt.Errorf("%w: null byte in element %d", ErrInvalidTag, i)
		}
	}
	return nil
}

// Tags checks a whole tag list against max entries (0 = unlimited) and
// each tag-value in it.
func Tags(ts [][]string, max int) error {
	if max > 0 && len(ts) > max {
		return fmt.Errorf("%w: %d exceeds limit of %d", ErrTooManyTags, len(ts), max)
	}
	for i, t := range ts {
		if err := Tag(t); err != nil {
			return fmt.Errorf("tag %d: %w", i, err)
		}
	}
	return nil
}
