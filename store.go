package exifmeta

import (
	"slices"

	"github.com/elliotchance/orderedmap/v2"
)

// tagKey is the map key for a tag. The tag is offset by 0x10000 so the zero
// key is never used, GPSVersionID has tag number 0.
type tagKey uint32

const tagKeyOffset = 1 << 16

func keyOf(tag uint16) tagKey {
	return tagKey(tag) | tagKeyOffset
}

func (k tagKey) tag() uint16 {
	return uint16(k - tagKeyOffset)
}

// Store holds the decoded values of one namespace in the order the tags
// were first seen in the stream.
type Store struct {
	ns Namespace
	m  *orderedmap.OrderedMap[tagKey, Value]
}

func newStore(ns Namespace) *Store {
	return &Store{
		ns: ns,
		m:  orderedmap.NewOrderedMapWithCapacity[tagKey, Value](32),
	}
}

// set stores v under tag. A tag that is already present is replaced and
// moved to the end, where it was last seen.
func (s *Store) set(tag uint16, v Value) {
	k := keyOf(tag)
	s.m.Delete(k)
	s.m.Set(k, v)
}

// Namespace returns the namespace of the values in s.
func (s *Store) Namespace() Namespace {
	return s.ns
}

// Len returns the number of tags in s.
func (s *Store) Len() int {
	if s == nil || s.m == nil {
		return 0
	}
	return s.m.Len()
}

// Get returns the value stored for tag.
func (s *Store) Get(tag uint16) (Value, bool) {
	if s == nil || s.m == nil {
		return Value{}, false
	}
	return s.m.Get(keyOf(tag))
}

// Tags returns the tags in s in insertion order.
// If cmp is not nil, the tags are sorted using it.
func (s *Store) Tags(cmp func(a, b uint16) int) []uint16 {
	if s.Len() == 0 {
		return nil
	}
	tags := make([]uint16, 0, s.m.Len())
	for el := s.m.Front(); el != nil; el = el.Next() {
		tags = append(tags, el.Key.tag())
	}
	if cmp != nil {
		slices.SortStableFunc(tags, cmp)
	}
	return tags
}

// Range calls f for each tag and value in insertion order until f returns false.
func (s *Store) Range(f func(tag uint16, v Value) bool) {
	if s.Len() == 0 {
		return
	}
	for el := s.m.Front(); el != nil; el = el.Next() {
		if !f(el.Key.tag(), el.Value) {
			return
		}
	}
}

func (s *Store) release() {
	s.m = nil
}
