// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifmeta

import (
	"fmt"
	"slices"

	"github.com/hashicorp/go-multierror"
)

// Primary -> Exif -> Interop is the deepest valid nesting.
const maxDirectoryDepth = 4

// entry is a 12 byte directory entry:
//   - 2 bytes for the tag ID
//   - 2 bytes for the data type
//   - 4 bytes for the number of data values of the specified type
//   - 4 bytes for the value itself, if it fits, otherwise for an offset
//     relative to the TIFF header where the data may be found
type entry struct {
	tag   uint16
	typ   Type
	count uint32
	raw   [4]byte
}

func (e entry) size() uint64 {
	return uint64(e.count) * uint64(e.typ.Size())
}

func (e entry) inline() bool {
	return e.size() <= 4
}

type directoryDecoder struct {
	*streamReader
	opts   Options
	header tiffHeader
	desc   *Descriptor

	// Offsets of the directories currently being parsed.
	stack []int64

	// Location of the entry being decoded.
	ns        Namespace
	dirOffset int64
	tag       uint16
}

func (d *directoryDecoder) warnf(format string, args ...any) {
	err := fmt.Errorf("%s directory at offset 0x%x: %s", d.ns, d.dirOffset, fmt.Sprintf(format, args...))
	d.desc.diag = multierror.Append(d.desc.diag, err)
	if d.opts.Warnings {
		d.opts.Warnf("%s", err)
	}
}

func (d *directoryDecoder) newError(err error) error {
	return &DirectoryError{Namespace: d.ns, Offset: d.dirOffset, Tag: d.tag, Err: err}
}

// readError wraps a failed read of the stream.
func (d *directoryDecoder) readError(err error) error {
	if err == nil {
		err = errShortRead
	}
	return d.newError(fmt.Errorf("%w: %w", ErrMalformedDirectory, err))
}

// parseDirectoryAt parses the directory at the header relative offset and
// returns its store and the offset of the next directory.
func (d *directoryDecoder) parseDirectoryAt(ns Namespace, offset uint32) (*Store, uint32, error) {
	if !ns.valid() {
		return nil, 0, ErrUnsupportedNamespace
	}

	abs := d.header.offset + int64(offset)
	d.ns, d.dirOffset, d.tag = ns, abs, 0

	if slices.Contains(d.stack, abs) {
		return nil, 0, d.newError(newMalformedDirectoryErrorf("directory cycle"))
	}
	if len(d.stack) >= maxDirectoryDepth {
		return nil, 0, d.newError(newMalformedDirectoryErrorf("directory cycle: nesting deeper than %d", maxDirectoryDepth))
	}
	d.stack = append(d.stack, abs)
	defer func() {
		d.stack = d.stack[:len(d.stack)-1]
	}()

	d.seek(abs)

	return d.parseDirectory(ns)
}

// parseDirectory parses the directory at the current position.
func (d *directoryDecoder) parseDirectory(ns Namespace) (*Store, uint32, error) {
	store := newStore(ns)
	numTags := d.read2()

	for i := 0; i < int(numTags); i++ {
		e := entry{
			tag:   d.read2(),
			typ:   Type(d.read2()),
			count: d.read4(),
			raw:   d.readRaw4(),
		}
		d.tag = e.tag

		if err := d.decodeEntry(store, e); err != nil {
			return nil, 0, err
		}

		// A nested directory moves the location.
		d.ns, d.tag = ns, 0
		d.dirOffset = d.stack[len(d.stack)-1]
	}

	next := d.read4()

	return store, next, nil
}

func (d *directoryDecoder) decodeEntry(store *Store, e entry) error {
	ns := store.ns

	if d.opts.Debug {
		d.opts.Debugf("%s: tag 0x%04x type %d count %d raw % x", ns, e.tag, e.typ, e.count, e.raw[:])
	}

	if e.typ.Size() == 0 {
		return d.newError(newMalformedDirectoryErrorf("invalid type code %d", e.typ))
	}

	if target, ok := pointerTarget(ns, e.tag); ok {
		if e.typ != TypeLong || e.count != 1 {
			d.warnf("skipping %s pointer with type %s and count %d", target, e.typ, e.count)
			return nil
		}
		return d.parseNested(target, d.reinterpret32(e.raw[:]))
	}

	def, found := lookupTag(ns, e.tag)
	if !found {
		if !d.opts.SkipUnknownTags {
			return d.newError(fmt.Errorf("%w 0x%04x with type %s and count %d", ErrUnknownTag, e.tag, e.typ, e.count))
		}
		d.warnf("skipping unknown tag 0x%04x with type %s and count %d", e.tag, e.typ, e.count)
		return nil
	}

	if def.rule == ruleIgnore {
		return nil
	}

	if !def.accepts(e.typ, e.count) {
		d.warnf("skipping %s with unexpected type %s and count %d", def.name, e.typ, e.count)
		return nil
	}

	if e.size() > uint64(d.opts.LimitTagSize) {
		d.warnf("skipping %s: size %d exceeds limit %d", def.name, e.size(), d.opts.LimitTagSize)
		return nil
	}

	switch def.rule {
	case ruleThumbnailOffset:
		d.desc.thumbnail.Offset = d.reinterpret32(e.raw[:])
		d.desc.thumbnail.hasOffset = true
	case ruleThumbnailLength:
		d.desc.thumbnail.Length = d.reinterpret32(e.raw[:])
		d.desc.thumbnail.hasLength = true
	case ruleVersion:
		store.set(e.tag, d.decodeVersion(e))
	case ruleComponents:
		store.set(e.tag, d.decodeComponents(e))
	case ruleUserComment:
		store.set(e.tag, d.decodeUserComment(e))
	case ruleCFAPattern:
		if v, ok := d.decodeCFAPattern(e); ok {
			store.set(e.tag, v)
		}
	default:
		store.set(e.tag, d.decodeValues(e))
	}

	return nil
}

func (d *directoryDecoder) parseNested(ns Namespace, offset uint32) error {
	var store *Store
	err := d.preservePos(func() error {
		var err error
		store, _, err = d.parseDirectoryAt(ns, offset)
		return err
	})
	if err != nil {
		return err
	}
	d.desc.stores[ns] = store
	return nil
}
