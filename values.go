// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifmeta

import (
	"slices"
	"strconv"
	"strings"
)

// Type is a TIFF field type.
//
//go:generate stringer -type=Type
type Type uint16

const (
	TypeByte      Type = 1
	TypeASCII     Type = 2
	TypeShort     Type = 3
	TypeLong      Type = 4
	TypeRational  Type = 5
	TypeSByte     Type = 6
	TypeUndefined Type = 7
	TypeSShort    Type = 8
	TypeSLong     Type = 9
	TypeSRational Type = 10
	TypeFloat     Type = 11
	TypeDouble    Type = 12
)

var typeSizes = [...]uint32{
	TypeByte:      1,
	TypeASCII:     1,
	TypeShort:     2,
	TypeLong:      4,
	TypeRational:  8,
	TypeSByte:     1,
	TypeUndefined: 1,
	TypeSShort:    2,
	TypeSLong:     4,
	TypeSRational: 8,
	TypeFloat:     4,
	TypeDouble:    8,
}

// Size returns the width in bytes of one element of t,
// or 0 if t is not a valid type code.
func (t Type) Size() uint32 {
	if t < TypeByte || t > TypeDouble {
		return 0
	}
	return typeSizes[t]
}

func (t Type) mask() typeMask {
	return 1 << t
}

// typeMask is a set of types.
type typeMask uint16

func typesOf(types ...Type) typeMask {
	var m typeMask
	for _, t := range types {
		m |= t.mask()
	}
	return m
}

func (m typeMask) has(t Type) bool {
	return m&t.mask() != 0
}

// Value is a decoded tag value: a fixed length list of elements of one kind.
//
// The element kind depends on the tag: byte and undefined data are []byte,
// ASCII data is []byte including the producer's terminating NUL,
// numbers are []uint8, []int8, []uint16, []int16, []uint32 or []int32 and
// rationals are []Rat[uint32] or []Rat[int32].
// A Value is never modified after it has been stored.
type Value struct {
	typ  Type
	data any
}

// Type returns the type the value was stored as.
func (v Value) Type() Type {
	return v.typ
}

// Len returns the number of elements in v.
func (v Value) Len() int {
	switch d := v.data.(type) {
	case []byte:
		return len(d)
	case []int8:
		return len(d)
	case []uint16:
		return len(d)
	case []int16:
		return len(d)
	case []uint32:
		return len(d)
	case []int32:
		return len(d)
	case []Rat[uint32]:
		return len(d)
	case []Rat[int32]:
		return len(d)
	default:
		return 0
	}
}

// Bytes returns the bytes of a BYTE, ASCII or UNDEFINED value.
func (v Value) Bytes() []byte {
	b, _ := v.data.([]byte)
	return b
}

// Uint8s is an alias of Bytes for BYTE values.
func (v Value) Uint8s() []uint8 {
	return v.Bytes()
}

// Int8s returns the elements of an SBYTE value.
func (v Value) Int8s() []int8 {
	b, _ := v.data.([]int8)
	return b
}

// Uint16s returns the elements of a SHORT value.
func (v Value) Uint16s() []uint16 {
	b, _ := v.data.([]uint16)
	return b
}

// Int16s returns the elements of an SSHORT value.
func (v Value) Int16s() []int16 {
	b, _ := v.data.([]int16)
	return b
}

// Uint32s returns the elements of a LONG value.
func (v Value) Uint32s() []uint32 {
	b, _ := v.data.([]uint32)
	return b
}

// Int32s returns the elements of an SLONG value.
func (v Value) Int32s() []int32 {
	b, _ := v.data.([]int32)
	return b
}

// URationals returns the elements of a RATIONAL value.
func (v Value) URationals() []Rat[uint32] {
	b, _ := v.data.([]Rat[uint32])
	return b
}

// SRationals returns the elements of an SRATIONAL value.
func (v Value) SRationals() []Rat[int32] {
	b, _ := v.data.([]Rat[int32])
	return b
}

// Uint returns element i of a BYTE, SHORT or LONG value.
func (v Value) Uint(i int) (uint32, bool) {
	switch d := v.data.(type) {
	case []byte:
		if v.typ == TypeByte && i >= 0 && i < len(d) {
			return uint32(d[i]), true
		}
	case []uint16:
		if i >= 0 && i < len(d) {
			return uint32(d[i]), true
		}
	case []uint32:
		if i >= 0 && i < len(d) {
			return d[i], true
		}
	}
	return 0, false
}

// String formats v for display.
// Text is returned without its NUL terminator, numbers and rationals
// are separated by a single space.
func (v Value) String() string {
	switch d := v.data.(type) {
	case []byte:
		if v.typ == TypeByte {
			return joinInts(d)
		}
		return printableString(string(trimBytesNulls(d)))
	case []int8:
		return joinInts(d)
	case []uint16:
		return joinInts(d)
	case []int16:
		return joinInts(d)
	case []uint32:
		return joinInts(d)
	case []int32:
		return joinInts(d)
	case []Rat[uint32]:
		return joinRats(d)
	case []Rat[int32]:
		return joinRats(d)
	default:
		return ""
	}
}

func joinInts[T uint8 | int8 | uint16 | int16 | uint32 | int32](vals []T) string {
	var sb strings.Builder
	for i, n := range vals {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatInt(int64(n), 10))
	}
	return sb.String()
}

func joinRats[T int32 | uint32](vals []Rat[T]) string {
	var sb strings.Builder
	for i, r := range vals {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(r.String())
	}
	return sb.String()
}

// withValueBytes calls f with the size bytes of e's value, read from the
// raw field or from the header relative offset it holds.
// The bytes are only valid during the call.
func (d *directoryDecoder) withValueBytes(e entry, f func(b []byte)) {
	size := int(e.size())
	if e.inline() {
		f(e.raw[:size])
		return
	}

	p := getBytes(size)
	defer putBytes(p)
	offset := d.reinterpret32(e.raw[:])
	d.preservePos(func() error {
		d.seek(d.header.offset + int64(offset))
		d.readBytes(*p)
		return nil
	})
	f(*p)
}

func (d *directoryDecoder) decodeValues(e entry) Value {
	v := Value{typ: e.typ}
	n := int(e.count)
	d.withValueBytes(e, func(b []byte) {
		switch e.typ {
		case TypeSByte:
			vals := make([]int8, n)
			for i := range vals {
				vals[i] = int8(b[i])
			}
			v.data = vals
		case TypeShort:
			vals := make([]uint16, n)
			for i := range vals {
				vals[i] = d.reinterpret16(b[2*i:])
			}
			v.data = vals
		case TypeSShort:
			vals := make([]int16, n)
			for i := range vals {
				vals[i] = int16(d.reinterpret16(b[2*i:]))
			}
			v.data = vals
		case TypeLong:
			vals := make([]uint32, n)
			for i := range vals {
				vals[i] = d.reinterpret32(b[4*i:])
			}
			v.data = vals
		case TypeSLong:
			vals := make([]int32, n)
			for i := range vals {
				vals[i] = int32(d.reinterpret32(b[4*i:]))
			}
			v.data = vals
		case TypeRational:
			vals := make([]Rat[uint32], n)
			for i := range vals {
				vals[i] = rawRat(d.reinterpret32(b[8*i:]), d.reinterpret32(b[8*i+4:]))
			}
			v.data = vals
		case TypeSRational:
			vals := make([]Rat[int32], n)
			for i := range vals {
				vals[i] = rawRat(int32(d.reinterpret32(b[8*i:])), int32(d.reinterpret32(b[8*i+4:])))
			}
			v.data = vals
		default:
			// BYTE, ASCII and UNDEFINED, and the floating point types
			// which no tag table accepts.
			v.data = slices.Clone(b)
		}
	})
	return v
}

// decodeVersion keeps the 4 characters of the raw field as they are stored.
func (d *directoryDecoder) decodeVersion(e entry) Value {
	b := make([]byte, 5)
	copy(b, e.raw[:])
	return Value{typ: TypeASCII, data: b}
}

var componentNames = [...]string{1: "Y", 2: "Cb", 3: "Cr", 4: "R", 5: "G", 6: "B"}

func (d *directoryDecoder) decodeComponents(e entry) Value {
	b := make([]byte, 0, 9)
	for _, c := range e.raw[:e.count] {
		if int(c) < len(componentNames) {
			b = append(b, componentNames[c]...)
		}
	}
	b = append(b, 0)
	return Value{typ: TypeASCII, data: b}
}

// decodeUserComment stores the 8 byte character code and the text with a NUL appended.
func (d *directoryDecoder) decodeUserComment(e entry) Value {
	b := make([]byte, e.count+1)
	d.withValueBytes(e, func(vb []byte) {
		copy(b, vb)
	})
	return Value{typ: TypeUndefined, data: b}
}

var cfaColors = [...]byte{'R', 'G', 'B', 'C', 'M', 'Y', 'W'}

// decodeCFAPattern renders the color filter array as rows of color letters
// separated by commas, e.g. "RG,GB".
// Some writers store the repeat dimensions in the wrong byte order; those
// are swapped when the dimensions do not match the count.
func (d *directoryDecoder) decodeCFAPattern(e entry) (Value, bool) {
	var (
		v  Value
		ok bool
	)
	d.withValueBytes(e, func(b []byte) {
		n := e.count - 4
		hz, vt := uint32(d.reinterpret16(b[0:])), uint32(d.reinterpret16(b[2:]))
		if hz*vt != n {
			other := d.otherByteOrder()
			h, w := uint32(other.Uint16(b[0:])), uint32(other.Uint16(b[2:]))
			if h*w != n {
				d.warnf("invalid CFA repeat pattern %dx%d for %d colors", hz, vt, n)
				return
			}
			hz, vt = h, w
		}

		colors := b[4:]
		out := make([]byte, 0, (hz+1)*vt)
		for row := uint32(0); row < vt; row++ {
			for _, c := range colors[row*hz : (row+1)*hz] {
				if int(c) < len(cfaColors) {
					out = append(out, cfaColors[c])
				} else {
					out = append(out, '-')
				}
			}
			if row == vt-1 {
				out = append(out, 0)
			} else {
				out = append(out, ',')
			}
		}
		v, ok = Value{typ: TypeASCII, data: out}, true
	})
	return v, ok
}
