package exifmeta

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestStreamReader(t *testing.T) {
	c := qt.New(t)

	b := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a}

	c.Run("BigEndian", func(c *qt.C) {
		e := newStreamReader(bytes.NewReader(b), binary.BigEndian)
		c.Assert(e.read2(), qt.Equals, uint16(0x0102))
		c.Assert(e.read4(), qt.Equals, uint32(0x03040506))
		c.Assert(e.pos(), qt.Equals, int64(6))
		raw := e.readRaw4()
		c.Assert(raw, qt.Equals, [4]byte{0x07, 0x08, 0x09, 0x0a})
		c.Assert(e.reinterpret32(raw[:]), qt.Equals, uint32(0x0708090a))
		c.Assert(e.reinterpret16(raw[2:]), qt.Equals, uint16(0x090a))
		c.Assert(e.otherByteOrder(), qt.Equals, binary.ByteOrder(binary.LittleEndian))
	})

	c.Run("LittleEndian", func(c *qt.C) {
		e := newStreamReader(bytes.NewReader(b), binary.LittleEndian)
		c.Assert(e.read2(), qt.Equals, uint16(0x0201))
		c.Assert(e.read4(), qt.Equals, uint32(0x06050403))
		raw := e.readRaw4()
		c.Assert(raw, qt.Equals, [4]byte{0x07, 0x08, 0x09, 0x0a})
		c.Assert(e.reinterpret32(raw[:]), qt.Equals, uint32(0x0a090807))
		c.Assert(e.otherByteOrder(), qt.Equals, binary.ByteOrder(binary.BigEndian))
	})

	c.Run("Short read", func(c *qt.C) {
		e := newStreamReader(bytes.NewReader(b[:3]), binary.BigEndian)
		_, err := e.read4E()
		c.Assert(err, qt.Equals, io.ErrUnexpectedEOF)
		e.seek(2)
		c.Assert(func() { e.read2() }, qt.PanicMatches, "stop")
		c.Assert(e.readErr, qt.Equals, io.ErrUnexpectedEOF)
	})
}

func TestPreservePos(t *testing.T) {
	c := qt.New(t)

	e := newStreamReader(bytes.NewReader(make([]byte, 16)), binary.BigEndian)
	e.seek(4)

	err := e.preservePos(func() error {
		e.seek(10)
		e.read4()
		return nil
	})
	c.Assert(err, qt.IsNil)
	c.Assert(e.pos(), qt.Equals, int64(4))

	c.Assert(func() {
		e.preservePos(func() error {
			e.seek(14)
			e.read4()
			return nil
		})
	}, qt.PanicMatches, "stop")
	c.Assert(e.pos(), qt.Equals, int64(4))
}

func TestGetBytes(t *testing.T) {
	c := qt.New(t)

	p := getBytes(10)
	c.Assert(*p, qt.HasLen, 10)
	putBytes(p)

	p = getBytes(5000)
	c.Assert(*p, qt.HasLen, 5000)
	putBytes(p)
}
