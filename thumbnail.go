package exifmeta

import (
	"errors"
	"fmt"
	"io"
)

// ThumbnailLocation is the location of the JPEG thumbnail declared in IFD0 or IFD1.
type ThumbnailLocation struct {
	// Offset relative to the TIFF header.
	Offset uint32
	// Length in bytes.
	Length uint32

	hasOffset bool
	hasLength bool
}

// Thumbnail returns the thumbnail location, if both its offset and length were found.
func (d *Descriptor) Thumbnail() (ThumbnailLocation, bool) {
	t := d.thumbnail
	return t, t.hasOffset && t.hasLength && t.Length > 0
}

// ReadThumbnail reads the thumbnail bytes from r, which must be the
// stream the Descriptor was decoded from.
func (d *Descriptor) ReadThumbnail(r io.ReaderAt) ([]byte, error) {
	t, ok := d.Thumbnail()
	if !ok {
		return nil, errors.New("no thumbnail")
	}
	if t.Length > d.opts.LimitTagSize {
		return nil, fmt.Errorf("thumbnail length %d exceeds limit %d", t.Length, d.opts.LimitTagSize)
	}
	b := make([]byte, t.Length)
	sr := io.NewSectionReader(r, d.headerOffset+int64(t.Offset), int64(t.Length))
	if _, err := io.ReadFull(sr, b); err != nil {
		return nil, fmt.Errorf("%w: reading thumbnail: %w", ErrInvalidFormat, err)
	}
	return b, nil
}
