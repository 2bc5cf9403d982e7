// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package exifmeta

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// Charset is the character code of a user comment.
type Charset string

const (
	CharsetASCII     Charset = "ASCII"
	CharsetJIS       Charset = "JIS"
	CharsetUnicode   Charset = "UNICODE"
	CharsetUndefined Charset = "Undefined"
)

// UserComment is the decoded Exif UserComment tag.
type UserComment struct {
	Charset Charset
	Text    string
}

// UserComment decodes the Exif UserComment tag into UTF-8 text.
// The bool is false if the tag is not present.
func (d *Descriptor) UserComment() (UserComment, bool, error) {
	v, found := d.Value(Exif, tagUserComment)
	if !found {
		return UserComment{}, false, nil
	}
	uc, err := decodeUserCommentText(v.Bytes(), d.byteOrder)
	return uc, true, err
}

// decodeUserCommentText decodes b, the 8 byte character code followed by
// the text and the NUL terminator added when it was stored.
func decodeUserCommentText(b []byte, byteOrder binary.ByteOrder) (UserComment, error) {
	var uc UserComment
	if len(b) < 9 {
		return uc, fmt.Errorf("%w: user comment too short", ErrInvalidFormat)
	}
	code, text := b[:8], b[8:len(b)-1]

	var dec *encoding.Decoder
	switch string(bytes.TrimRight(code, "\x00 ")) {
	case "ASCII":
		uc.Charset = CharsetASCII
		if !utf8.Valid(text) {
			dec = charmap.ISO8859_1.NewDecoder()
		}
	case "JIS":
		uc.Charset = CharsetJIS
		dec = japanese.ISO2022JP.NewDecoder()
	case "UNICODE":
		uc.Charset = CharsetUnicode
		endianness := unicode.BigEndian
		if byteOrder == binary.LittleEndian {
			endianness = unicode.LittleEndian
		}
		dec = unicode.UTF16(endianness, unicode.UseBOM).NewDecoder()
		if len(text)%2 != 0 {
			text = text[:len(text)-1]
		}
	case "":
		uc.Charset = CharsetUndefined
		if !utf8.Valid(text) {
			dec = charmap.ISO8859_1.NewDecoder()
		}
	default:
		return uc, fmt.Errorf("%w: unknown user comment character code %q", ErrInvalidFormat, code)
	}

	if dec != nil {
		var err error
		if text, err = dec.Bytes(text); err != nil {
			return uc, fmt.Errorf("%w: decoding %s user comment: %w", ErrInvalidFormat, uc.Charset, err)
		}
	}

	uc.Text = strings.TrimRight(string(text), "\x00 ")
	return uc, nil
}
