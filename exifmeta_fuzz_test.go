// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifmeta_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/bep/exifmeta"
)

func FuzzDecode(f *testing.F) {
	exifDir := &testIFD{entries: []testEntry{
		rational(0x829a, 1, 200),
		srational(0x9204, -1, 3),
		undef(0x9000, []byte("0232")),
		undef(0x9101, []byte{1, 2, 3, 0}),
		undef(0x9286, append([]byte("ASCII\x00\x00\x00"), "A comment"...)),
		undef(0xa302, []byte{0x00, 0x02, 0x00, 0x02, 0, 1, 1, 2}),
		pointer(0xa005, &testIFD{entries: []testEntry{asciiz(0x0001, "R98")}}),
	}}
	gpsDir := &testIFD{entries: []testEntry{
		ubytes(0x0000, 2, 3, 0, 0),
		rational(0x0002, 59, 1, 54, 1, 1234, 100),
	}}

	for _, order := range byteOrders {
		tiff := buildTIFF(order, &testIFD{
			entries: []testEntry{
				asciiz(0x010f, "Canon"),
				short(0x0112, 1),
				pointer(0x8769, exifDir),
				pointer(0x8825, gpsDir),
			},
			next: &testIFD{entries: []testEntry{
				long(0x0201, 8),
				long(0x0202, 16),
			}},
		})
		f.Add(tiff)
		f.Add(withSignature([]byte("\xff\xd8\xff\xe1\x00\x00"), tiff))
	}

	// Directory cycle.
	f.Add(buildTIFF(binary.BigEndian, &testIFD{entries: []testEntry{long(0x8769, 8)}}))

	f.Fuzz(func(t *testing.T, imageBytes []byte) {
		fuzzDecodeBytes(t, imageBytes, false)
		fuzzDecodeBytes(t, imageBytes, true)
	})
}

func fuzzDecodeBytes(t *testing.T, imageBytes []byte, skipUnknown bool) {
	desc, err := exifmeta.Decode(exifmeta.Options{R: bytes.NewReader(imageBytes), SkipUnknownTags: skipUnknown, LimitTagSize: 64 << 10})
	if err != nil {
		if desc != nil {
			t.Fatalf("got a descriptor with error %v", err)
		}
		if !exifmeta.IsInvalidFormat(err) && err != exifmeta.ErrNotFound {
			t.Fatalf("unknown error in Decode: %v %T", err, err)
		}
		return
	}
	if _, _, err := desc.UserComment(); err != nil && !exifmeta.IsInvalidFormat(err) {
		t.Fatalf("unknown error in UserComment: %v %T", err, err)
	}
	if tn, found := desc.Thumbnail(); found && tn.Length <= 64<<10 {
		if _, err := desc.ReadThumbnail(bytes.NewReader(imageBytes)); err != nil && !exifmeta.IsInvalidFormat(err) {
			t.Fatalf("unknown error in ReadThumbnail: %v %T", err, err)
		}
	}
}
