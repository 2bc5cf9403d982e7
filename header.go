package exifmeta

import (
	"encoding/binary"
	"fmt"
)

const (
	byteOrderBigEndian    = 0x4d4d // MM
	byteOrderLittleEndian = 0x4949 // II
	meaningOfLife         = 42
)

// tiffHeader is the validated 8 byte TIFF header.
type tiffHeader struct {
	offset     int64 // stream position of the byte order marker
	byteOrder  binary.ByteOrder
	ifd0Offset uint32 // relative to offset
}

// readHeader validates the TIFF header at the current position of e.
// It does not stop the decoder on failure; the caller decides
// which error to report.
func (e *streamReader) readHeader() (tiffHeader, error) {
	var h tiffHeader
	h.offset = e.pos()

	e.byteOrder = binary.BigEndian
	byteOrderTag, err := e.read2E()
	if err != nil {
		return h, err
	}
	switch byteOrderTag {
	case byteOrderBigEndian:
		h.byteOrder = binary.BigEndian
	case byteOrderLittleEndian:
		h.byteOrder = binary.LittleEndian
	default:
		return h, fmt.Errorf("invalid byte order marker 0x%04x", byteOrderTag)
	}
	e.byteOrder = h.byteOrder

	id, err := e.read2E()
	if err != nil {
		return h, err
	}
	if id != meaningOfLife {
		return h, fmt.Errorf("invalid magic number %d", id)
	}

	if h.ifd0Offset, err = e.read4E(); err != nil {
		return h, err
	}

	return h, nil
}
