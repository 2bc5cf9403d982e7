// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifmeta

import (
	"errors"
	"io"
)

// exifSignature is the marker preceding the TIFF header in JPEG APP1 segments
// and in most other containers.
const exifSignature = "Exif\x00\x00"

const locateChunkSize = 4096

// signatureMasks is the shift-or mask table for exifSignature.
// Bit i of a byte's mask is cleared if the byte appears at position i in the
// signature. It is built once and only read afterwards.
var signatureMasks = func() [256]uint8 {
	var m [256]uint8
	for i := range m {
		m[i] = 0xff
	}
	for i := 0; i < len(exifSignature); i++ {
		m[exifSignature[i]] &^= 1 << i
	}
	return m
}()

// signatureMatchBit is set in the search state until the full signature has been seen.
const signatureMatchBit = 1 << len(exifSignature)

// locateSignature scans r from its current position for exifSignature.
// On a hit, r is positioned at the first byte after the signature and the
// returned bool is true. Reaching the end of the stream is a miss, and the
// position of r is then undefined.
func locateSignature(r io.ReadSeeker) (bool, error) {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return false, err
	}

	p := getBytes(locateChunkSize)
	defer putBytes(p)
	buf := *p

	var state uint8 = 0xfe
	chunkStart := start
	for {
		n, err := r.Read(buf)
		for i := 0; i < n; i++ {
			state |= signatureMasks[buf[i]]
			state <<= 1
			if state&signatureMatchBit == 0 {
				_, err := r.Seek(chunkStart+int64(i)+1, io.SeekStart)
				return err == nil, err
			}
		}
		chunkStart += int64(n)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, err
		}
	}
}
