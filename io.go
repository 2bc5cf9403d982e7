// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifmeta

import (
	"encoding/binary"
	"errors"
	"io"
	"sync"
)

var bytesPool = &sync.Pool{
	New: func() any {
		b := make([]byte, 1024)
		return &b
	},
}

func getBytes(length int) *[]byte {
	b := bytesPool.Get().(*[]byte)
	if length > cap(*b) {
		*b = make([]byte, length)
	}
	*b = (*b)[:length]
	return b
}

func putBytes(b *[]byte) {
	*b = (*b)[:0]
	bytesPool.Put(b)
}

var errShortRead = errors.New("short read")

func newStreamReader(r io.ReadSeeker, byteOrder binary.ByteOrder) *streamReader {
	return &streamReader{
		r:         r,
		byteOrder: byteOrder,
	}
}

// streamReader is a wrapper around a ReadSeeker that provides methods to read
// binary data in the byte order of the TIFF header.
// Note that this is not thread safe.
type streamReader struct {
	r         io.ReadSeeker
	byteOrder binary.ByteOrder

	buf []byte

	readErr error
}

func (e *streamReader) otherByteOrder() binary.ByteOrder {
	if e.byteOrder == binary.BigEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

func (e *streamReader) allocateBuf(length int) {
	if length > cap(e.buf) {
		e.buf = make([]byte, length)
	}
}

func (e *streamReader) pos() int64 {
	n, err := e.r.Seek(0, io.SeekCurrent)
	if err != nil {
		e.stop(err)
	}
	return n
}

func (e *streamReader) read2() uint16 {
	const n = 2
	e.readNIntoBuf(n)
	return e.byteOrder.Uint16(e.buf[:n])
}

func (e *streamReader) read2E() (uint16, error) {
	const n = 2
	if err := e.readNIntoBufE(n); err != nil {
		return 0, err
	}
	return e.byteOrder.Uint16(e.buf[:n]), nil
}

func (e *streamReader) read4() uint32 {
	const n = 4
	e.readNIntoBuf(n)
	return e.byteOrder.Uint32(e.buf[:n])
}

func (e *streamReader) read4E() (uint32, error) {
	const n = 4
	if err := e.readNIntoBufE(n); err != nil {
		return 0, err
	}
	return e.byteOrder.Uint32(e.buf[:n]), nil
}

// readRaw4 reads the 4 bytes of a value field without reordering them.
func (e *streamReader) readRaw4() [4]byte {
	var b [4]byte
	e.readNIntoBuf(4)
	copy(b[:], e.buf[:4])
	return b
}

func (e *streamReader) reinterpret16(b []byte) uint16 {
	return e.byteOrder.Uint16(b)
}

func (e *streamReader) reinterpret32(b []byte) uint32 {
	return e.byteOrder.Uint32(b)
}

func (e *streamReader) readBytes(b []byte) {
	if _, err := io.ReadFull(e.r, b); err != nil {
		e.stop(err)
	}
}

func (e *streamReader) readNIntoBuf(n int) {
	if err := e.readNIntoBufE(n); err != nil {
		e.stop(err)
	}
}

func (e *streamReader) readNIntoBufE(n int) error {
	e.allocateBuf(n)
	n2, err := io.ReadFull(e.r, e.buf[:n])
	if err != nil {
		return err
	}
	if n != n2 {
		return errShortRead
	}
	return nil
}

// preservePos runs f and restores the current position afterwards,
// also when f stops the decoding.
func (e *streamReader) preservePos(f func() error) error {
	pos := e.pos()
	defer func() {
		// A failing seek here must not replace the error from f.
		e.r.Seek(pos, io.SeekStart)
	}()
	return f()
}

func (e *streamReader) seek(pos int64) {
	_, err := e.r.Seek(pos, io.SeekStart)
	if err != nil {
		e.stop(err)
	}
}

func (e *streamReader) stop(err error) {
	if err != nil {
		e.readErr = err
	}
	panic(errStop)
}
