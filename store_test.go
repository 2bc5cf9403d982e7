package exifmeta

import (
	"cmp"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestStore(t *testing.T) {
	c := qt.New(t)

	s := newStore(GPS)
	c.Assert(s.Namespace(), qt.Equals, GPS)
	c.Assert(s.Len(), qt.Equals, 0)
	c.Assert(s.Tags(nil), qt.IsNil)

	s.set(0x0000, Value{typ: TypeByte, data: []byte{2, 3, 0, 0}})
	s.set(0x0002, Value{typ: TypeShort, data: []uint16{1}})
	s.set(0x0001, Value{typ: TypeASCII, data: []byte("N\x00")})

	v, found := s.Get(0x0000)
	c.Assert(found, qt.IsTrue)
	c.Assert(v.String(), qt.Equals, "2 3 0 0")
	c.Assert(s.Tags(nil), qt.DeepEquals, []uint16{0x0000, 0x0002, 0x0001})
	c.Assert(s.Tags(cmp.Compare[uint16]), qt.DeepEquals, []uint16{0x0000, 0x0001, 0x0002})

	// Replacing moves the tag to the end.
	s.set(0x0000, Value{typ: TypeByte, data: []byte{2, 2, 0, 0}})
	c.Assert(s.Len(), qt.Equals, 3)
	c.Assert(s.Tags(nil), qt.DeepEquals, []uint16{0x0002, 0x0001, 0x0000})
	v, _ = s.Get(0x0000)
	c.Assert(v.String(), qt.Equals, "2 2 0 0")

	_, found = s.Get(0xffff)
	c.Assert(found, qt.IsFalse)

	s.release()
	c.Assert(s.Len(), qt.Equals, 0)
	_, found = s.Get(0x0002)
	c.Assert(found, qt.IsFalse)

	var nilStore *Store
	c.Assert(nilStore.Len(), qt.Equals, 0)
	c.Assert(nilStore.Tags(nil), qt.IsNil)
}

func TestTagKey(t *testing.T) {
	c := qt.New(t)

	for _, tag := range []uint16{0, 1, 0x0112, 0xffff} {
		k := keyOf(tag)
		c.Assert(k, qt.Not(qt.Equals), tagKey(0))
		c.Assert(k.tag(), qt.Equals, tag)
	}
}
