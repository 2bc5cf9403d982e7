package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
)

// writeTIFF writes a little endian TIFF with Orientation 3 and an unknown tag.
func writeTIFF(c *qt.C) string {
	b := []byte{'I', 'I', 0x2a, 0x00, 0x08, 0x00, 0x00, 0x00}
	b = binary.LittleEndian.AppendUint16(b, 2)
	for _, e := range [][3]uint16{{0x0112, 3, 3}, {0xbeef, 3, 7}} {
		b = binary.LittleEndian.AppendUint16(b, e[0])
		b = binary.LittleEndian.AppendUint16(b, e[1])
		b = binary.LittleEndian.AppendUint32(b, 1)
		b = binary.LittleEndian.AppendUint32(b, uint32(e[2]))
	}
	b = binary.LittleEndian.AppendUint32(b, 0)

	filename := filepath.Join(c.TempDir(), "image.tif")
	c.Assert(os.WriteFile(filename, b, 0o644), qt.IsNil)
	return filename
}

func TestRun(t *testing.T) {
	c := qt.New(t)

	runCmd := func(args ...string) (int, string, string) {
		var stdout, stderr bytes.Buffer
		code := run(args, &stdout, &stderr)
		return code, stdout.String(), stderr.String()
	}

	c.Run("Missing argument", func(c *qt.C) {
		code, _, stderr := runCmd()
		c.Assert(code, qt.Equals, 1)
		c.Assert(stderr, qt.Contains, "expected a picture file name")
	})

	c.Run("Missing file", func(c *qt.C) {
		code, _, stderr := runCmd(filepath.Join(c.TempDir(), "nope.jpg"))
		c.Assert(code, qt.Equals, 2)
		c.Assert(stderr, qt.Contains, "failed to read exif content")
	})

	c.Run("No metadata", func(c *qt.C) {
		filename := filepath.Join(c.TempDir(), "empty.jpg")
		c.Assert(os.WriteFile(filename, []byte("no metadata here"), 0o644), qt.IsNil)
		code, _, _ := runCmd(filename)
		c.Assert(code, qt.Equals, 2)
	})

	c.Run("TIFF", func(c *qt.C) {
		code, stdout, stderr := runCmd("--warnings", writeTIFF(c))
		c.Assert(code, qt.Equals, 0)
		c.Assert(stdout, qt.Contains, "Primary tags: 0x0112\n")
		c.Assert(stdout, qt.Contains, "Primary metadata (IFD0):\n  Orientation: 3\n")
		c.Assert(stderr, qt.Contains, "exifmeta: Primary directory at offset 0x8: skipping unknown tag 0xbeef")
	})

	c.Run("Strict", func(c *qt.C) {
		code, _, stderr := runCmd("--strict", writeTIFF(c))
		c.Assert(code, qt.Equals, 2)
		c.Assert(stderr, qt.Contains, "unknown tag 0xbeef")
	})

	c.Run("Output file", func(c *qt.C) {
		out := filepath.Join(c.TempDir(), "out.txt")
		code, stdout, _ := runCmd("-o", out, writeTIFF(c))
		c.Assert(code, qt.Equals, 0)
		c.Assert(stdout, qt.Equals, "")
		b, err := os.ReadFile(out)
		c.Assert(err, qt.IsNil)
		c.Assert(string(b), qt.Contains, "Orientation: 3")
	})
}
