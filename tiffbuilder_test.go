package exifmeta_test

import (
	"encoding/binary"

	"github.com/bep/exifmeta"
)

// testIFD describes a directory to be written by buildTIFF.
type testIFD struct {
	entries []testEntry
	next    *testIFD
}

type testEntry struct {
	tag   uint16
	typ   exifmeta.Type
	count uint32
	vals  any      // []uint16, []uint32, []int32 (signed rationals), []byte
	sub   *testIFD // nested directory, written as a LONG offset
}

func short(tag uint16, vals ...uint16) testEntry {
	return testEntry{tag: tag, typ: exifmeta.TypeShort, count: uint32(len(vals)), vals: vals}
}

func long(tag uint16, vals ...uint32) testEntry {
	return testEntry{tag: tag, typ: exifmeta.TypeLong, count: uint32(len(vals)), vals: vals}
}

// rational takes numerator and denominator pairs.
func rational(tag uint16, vals ...uint32) testEntry {
	return testEntry{tag: tag, typ: exifmeta.TypeRational, count: uint32(len(vals) / 2), vals: vals}
}

func srational(tag uint16, vals ...int32) testEntry {
	return testEntry{tag: tag, typ: exifmeta.TypeSRational, count: uint32(len(vals) / 2), vals: vals}
}

func asciiz(tag uint16, s string) testEntry {
	b := append([]byte(s), 0)
	return testEntry{tag: tag, typ: exifmeta.TypeASCII, count: uint32(len(b)), vals: b}
}

func undef(tag uint16, b []byte) testEntry {
	return testEntry{tag: tag, typ: exifmeta.TypeUndefined, count: uint32(len(b)), vals: b}
}

func ubytes(tag uint16, b ...byte) testEntry {
	return testEntry{tag: tag, typ: exifmeta.TypeByte, count: uint32(len(b)), vals: b}
}

func pointer(tag uint16, sub *testIFD) testEntry {
	return testEntry{tag: tag, typ: exifmeta.TypeLong, count: 1, sub: sub}
}

// rawEntry writes data as the value of an entry with any type and count.
func rawEntry(tag uint16, typ exifmeta.Type, count uint32, data []byte) testEntry {
	return testEntry{tag: tag, typ: typ, count: count, vals: data}
}

// byteOrder is implemented by binary.LittleEndian and binary.BigEndian.
type byteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

func encodeValues(order byteOrder, vals any) []byte {
	var b []byte
	switch v := vals.(type) {
	case []byte:
		b = append(b, v...)
	case []uint16:
		for _, n := range v {
			b = order.AppendUint16(b, n)
		}
	case []uint32:
		for _, n := range v {
			b = order.AppendUint32(b, n)
		}
	case []int32:
		for _, n := range v {
			b = order.AppendUint32(b, uint32(n))
		}
	}
	return b
}

type tiffBuilder struct {
	order byteOrder
	buf   []byte
}

// buildTIFF writes a TIFF header followed by root and everything it refers to.
// Values that do not fit in 4 bytes are written after their directory.
func buildTIFF(order byteOrder, root *testIFD) []byte {
	b := &tiffBuilder{order: order}
	if order == binary.LittleEndian {
		b.buf = append(b.buf, 'I', 'I')
	} else {
		b.buf = append(b.buf, 'M', 'M')
	}
	b.buf = order.AppendUint16(b.buf, 42)
	b.buf = order.AppendUint32(b.buf, 8)
	b.writeIFD(root)
	return b.buf
}

func (b *tiffBuilder) writeIFD(d *testIFD) uint32 {
	start := len(b.buf)
	b.buf = b.order.AppendUint16(b.buf, uint16(len(d.entries)))
	b.buf = append(b.buf, make([]byte, 12*len(d.entries)+4)...)

	for i, e := range d.entries {
		pos := start + 2 + 12*i
		b.order.PutUint16(b.buf[pos:], e.tag)
		b.order.PutUint16(b.buf[pos+2:], uint16(e.typ))
		b.order.PutUint32(b.buf[pos+4:], e.count)

		if e.sub != nil {
			off := b.writeIFD(e.sub)
			b.order.PutUint32(b.buf[pos+8:], off)
			continue
		}

		data := encodeValues(b.order, e.vals)
		if len(data) <= 4 {
			copy(b.buf[pos+8:pos+12], data)
			continue
		}
		off := uint32(len(b.buf))
		b.buf = append(b.buf, data...)
		if len(b.buf)%2 != 0 {
			b.buf = append(b.buf, 0)
		}
		b.order.PutUint32(b.buf[pos+8:], off)
	}

	if d.next != nil {
		off := b.writeIFD(d.next)
		b.order.PutUint32(b.buf[start+2+12*len(d.entries):], off)
	}

	return uint32(start)
}

// withSignature prefixes tiff with junk and the EXIF signature.
func withSignature(junk, tiff []byte) []byte {
	b := append([]byte{}, junk...)
	b = append(b, "Exif\x00\x00"...)
	return append(b, tiff...)
}
