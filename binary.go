package tiff

import (
	"encoding/binary"
	"fmt"
	"io"
)

// cursor reads fixed-width integers sequentially from an io.Reader
// under an explicit byte order. Every read is bounds-checked by the
// underlying reader: a short read surfaces as ErrShortRead instead of
// returning garbage past the extent.
type cursor struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func newCursor(r io.Reader, order binary.ByteOrder) *cursor {
	return &cursor{r: r, order: order}
}

func (c *cursor) bytes(n int) ([]byte, error) {
	if _, err := io.ReadFull(c.r, c.buf[:n]); err != nil {
		return nil, fmt.Errorf("%w: reading %d bytes: %v", ErrShortRead, n, err)
	}
	return c.buf[:n], nil
}

func (c *cursor) uint16() (uint16, error) {
	b, err := c.bytes(2)
	if err != nil {
		return 0, err
	}
	return c.order.Uint16(b), nil
}

func (c *cursor) uint32() (uint32, error) {
	b, err := c.bytes(4)
	if err != nil {
		return 0, err
	}
	return c.order.Uint32(b), nil
}

func (c *cursor) uint64() (uint64, error) {
	b, err := c.bytes(8)
	if err != nil {
		return 0, err
	}
	return c.order.Uint64(b), nil
}

// offset reads a file offset of the given width (4 or 8 bytes).
func (c *cursor) offset(width int) (uint64, error) {
	if width == 8 {
		return c.uint64()
	}
	v, err := c.uint32()
	return uint64(v), err
}

// valueSlot reads the fixed-width inline-value slot of a directory
// entry, returning both the raw bytes (the inline value area) and
// their interpretation as an offset.
func (c *cursor) valueSlot(width int) ([]byte, uint64, error) {
	b, err := c.bytes(width)
	if err != nil {
		return nil, 0, err
	}
	raw := make([]byte, width)
	copy(raw, b)
	if width == 8 {
		return raw, c.order.Uint64(raw), nil
	}
	return raw, uint64(c.order.Uint32(raw)), nil
}

// skip discards n bytes, seeking when the reader supports it.
func skipBytes(r io.Reader, n int64) error {
	if n == 0 {
		return nil
	}
	if s, ok := r.(io.Seeker); ok {
		if _, err := s.Seek(n, io.SeekCurrent); err == nil {
			return nil
		}
	}
	if _, err := io.CopyN(io.Discard, r, n); err != nil {
		return fmt.Errorf("%w: skipping %d bytes: %v", ErrShortRead, n, err)
	}
	return nil
}
