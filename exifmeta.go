// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

// Package exifmeta decodes EXIF and TIFF metadata embedded anywhere in a
// byte stream into one store of tag values per directory namespace.
package exifmeta

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
)

// Namespace identifies one of the directories of an EXIF block.
//
//go:generate stringer -type=Namespace
type Namespace int

const (
	// Primary is IFD0, the main image.
	Primary Namespace = iota
	// Thumbnail is IFD1, chained from Primary.
	Thumbnail
	// Exif is the camera settings directory, pointed to from Primary.
	Exif
	// GPS is the positioning directory, pointed to from Primary.
	GPS
	// Interop is the interoperability directory, pointed to from Exif.
	Interop
)

const namespaceCount = 5

func (ns Namespace) valid() bool {
	return ns >= 0 && ns < namespaceCount
}

// Path returns the directory path of ns, e.g. "IFD0/GPSInfoIFD".
func (ns Namespace) Path() string {
	switch ns {
	case Primary:
		return "IFD0"
	case Thumbnail:
		return "IFD1"
	case Exif:
		return "IFD0/ExifIFD"
	case GPS:
		return "IFD0/GPSInfoIFD"
	case Interop:
		return "IFD0/ExifIFD/InteroperabilityIFD"
	default:
		return ""
	}
}

// Options contains the options for the Decode function.
type Options struct {
	// The Reader (typically a *os.File) to read metadata from.
	R io.ReadSeeker

	// Start is the stream position where the search for the EXIF
	// signature or the TIFF header begins.
	Start int64

	// If set, tags missing from their namespace's table are skipped with a
	// warning. If not set, an unknown tag fails the decode with ErrUnknownTag.
	SkipUnknownTags bool

	// If set, warnings are passed to Warnf as they are found.
	// They are always available from Descriptor.Warnings.
	Warnings bool

	// If set, every directory entry is traced through Debugf.
	Debug bool

	// Warnf will be called for each warning.
	Warnf func(string, ...any)

	// Debugf will be called for each traced entry.
	Debugf func(string, ...any)

	// LimitTagSize is the maximum size in bytes of a tag value to read.
	// Tag values larger than this are skipped with a warning.
	// Default value is 1 MiB.
	LimitTagSize uint32
}

// Descriptor holds the metadata decoded from one stream.
type Descriptor struct {
	headerOffset int64
	byteOrder    binary.ByteOrder
	opts         Options
	thumbnail    ThumbnailLocation
	stores       [namespaceCount]*Store
	diag         *multierror.Error
	closed       bool
}

// DecodeFile opens filename, decodes its metadata and closes it.
func DecodeFile(filename string, opts Options) (*Descriptor, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	opts.R = f
	return Decode(opts)
}

// Decode reads the EXIF or TIFF metadata in opts.R.
// It returns ErrNotFound if the stream has neither an EXIF signature
// nor a TIFF header at opts.Start.
// No Descriptor is returned unless the whole structure could be decoded.
func Decode(opts Options) (desc *Descriptor, err error) {
	if opts.R == nil {
		return nil, errors.New("no reader provided")
	}

	const defaultLimitTagSize = 1 << 20

	if opts.LimitTagSize == 0 {
		opts.LimitTagSize = defaultLimitTagSize
	}
	if opts.Warnf == nil {
		opts.Warnf = func(string, ...any) {}
	}
	if opts.Debugf == nil {
		opts.Debugf = func(string, ...any) {}
	}

	d := &directoryDecoder{
		streamReader: newStreamReader(opts.R, binary.BigEndian),
		opts:         opts,
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		desc = nil
		if r == errStop {
			err = d.readError(d.readErr)
			return
		}
		if errp, ok := r.(error); ok {
			if isInvalidFormatErrorCandidate(errp) {
				err = d.readError(errp)
			} else {
				err = errp
			}
		} else {
			err = fmt.Errorf("unknown panic: %v", r)
		}
	}()

	if _, err := opts.R.Seek(opts.Start, io.SeekStart); err != nil {
		return nil, err
	}
	found, err := locateSignature(opts.R)
	if err != nil {
		return nil, err
	}
	if !found {
		if _, err := opts.R.Seek(opts.Start, io.SeekStart); err != nil {
			return nil, err
		}
	}

	h, err := d.readHeader()
	if err != nil {
		if found {
			return nil, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
		}
		return nil, ErrNotFound
	}
	d.header = h

	d.desc = &Descriptor{
		headerOffset: h.offset,
		byteOrder:    h.byteOrder,
		opts:         opts,
	}

	primary, next, err := d.parseDirectoryAt(Primary, h.ifd0Offset)
	if err != nil {
		return nil, err
	}
	d.desc.stores[Primary] = primary

	if next != 0 {
		thumbnail, _, err := d.parseDirectoryAt(Thumbnail, next)
		if err != nil {
			return nil, err
		}
		d.desc.stores[Thumbnail] = thumbnail
	}

	return d.desc, nil
}

// HeaderOffset returns the stream position of the TIFF header.
// All offsets in the metadata are relative to it.
func (d *Descriptor) HeaderOffset() int64 {
	return d.headerOffset
}

// ByteOrder returns the byte order declared by the TIFF header.
func (d *Descriptor) ByteOrder() binary.ByteOrder {
	return d.byteOrder
}

// Warnings returns the problems that were skipped over while decoding,
// or nil if there were none.
func (d *Descriptor) Warnings() error {
	return d.diag.ErrorOrNil()
}

// Namespaces returns the namespaces that were found, in namespace order.
func (d *Descriptor) Namespaces() []Namespace {
	var namespaces []Namespace
	for ns, s := range d.stores {
		if s != nil {
			namespaces = append(namespaces, Namespace(ns))
		}
	}
	return namespaces
}

// Store returns the store of ns, or nil if ns was not found.
func (d *Descriptor) Store(ns Namespace) *Store {
	if !ns.valid() {
		return nil
	}
	return d.stores[ns]
}

// Tags returns the tags of ns in the order they were found.
// If cmp is not nil, the tags are sorted using it.
// It returns nil if ns was not found.
func (d *Descriptor) Tags(ns Namespace, cmp func(a, b uint16) int) ([]uint16, error) {
	if !ns.valid() {
		return nil, ErrUnsupportedNamespace
	}
	return d.stores[ns].Tags(cmp), nil
}

// Value returns the value of tag in ns.
// The returned Value is shared with the Descriptor and must not be modified.
func (d *Descriptor) Value(ns Namespace, tag uint16) (Value, bool) {
	return d.Store(ns).Get(tag)
}

// Close releases all stores. It does not close the reader the
// Descriptor was decoded from.
func (d *Descriptor) Close() error {
	if d.closed {
		return nil
	}
	for i, s := range d.stores {
		if s != nil {
			s.release()
			d.stores[i] = nil
		}
	}
	d.closed = true
	return nil
}
