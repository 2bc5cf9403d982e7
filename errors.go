// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifmeta

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrInvalidFormat is wrapped by every error caused by malformed input.
	ErrInvalidFormat = errors.New("exifmeta: invalid format")

	// ErrNotFound signals that the stream has neither an EXIF signature nor a
	// valid TIFF header. It is not an invalid format: there is simply no metadata.
	ErrNotFound = errors.New("exifmeta: no EXIF or TIFF header found")

	// ErrMalformedHeader is returned when the TIFF header has a bad byte order marker or magic number.
	ErrMalformedHeader = fmt.Errorf("%w: malformed TIFF header", ErrInvalidFormat)

	// ErrMalformedDirectory is returned for structural or I/O failures inside a directory.
	ErrMalformedDirectory = fmt.Errorf("%w: malformed directory", ErrInvalidFormat)

	// ErrUnknownTag is returned when a tag is missing from its namespace's table
	// and Options.SkipUnknownTags is not set.
	ErrUnknownTag = fmt.Errorf("%w: unknown tag", ErrInvalidFormat)

	// ErrUnsupportedNamespace is returned when a namespace outside the five
	// supported ones is requested.
	ErrUnsupportedNamespace = errors.New("exifmeta: unsupported namespace")

	// Internal error to signal that we should stop any further processing.
	errStop = errors.New("stop")
)

// IsInvalidFormat reports whether err was caused by malformed input.
func IsInvalidFormat(err error) bool {
	return errors.Is(err, ErrInvalidFormat)
}

// DirectoryError adds the location of a failure inside a directory.
type DirectoryError struct {
	Namespace Namespace // Namespace of the directory being parsed
	Offset    int64     // Stream offset of the directory
	Tag       uint16    // Tag of the entry being decoded, if any
	Err       error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("%s directory at offset 0x%x, tag 0x%04x: %v", e.Namespace, e.Offset, e.Tag, e.Err)
}

func (e *DirectoryError) Unwrap() error { return e.Err }

func newMalformedDirectoryErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedDirectory, fmt.Sprintf(format, args...))
}

// isInvalidFormatErrorCandidate reports whether err is a read failure that
// should be reported as a malformed directory.
func isInvalidFormatErrorCandidate(err error) bool {
	if err == nil {
		return false
	}
	return err == io.EOF || err == io.ErrUnexpectedEOF || err == errShortRead
}
