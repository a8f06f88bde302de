package tiff

import (
	"encoding/binary"
	"fmt"
	"io"
)

// TIFF version numbers: classic (32-bit offsets) and BigTIFF (64-bit).
const (
	versionStandard = 42
	versionBig      = 43

	// Maximum value length storable inline in an entry's value slot.
	entryMaxValueLength    = 4
	entryMaxValueLengthBig = 8
)

// Header is the fixed-size TIFF file header. It is immutable and fixes
// the byte order and addressing variant for the whole file.
type Header struct {
	Order          binary.ByteOrder
	Version        int
	BigTIFF        bool
	FirstIFDOffset uint64
}

// parseHeader reads the file header from the start of r.
func parseHeader(r io.Reader) (*Header, error) {
	var marker [2]byte
	if _, err := io.ReadFull(r, marker[:]); err != nil {
		return nil, fmt.Errorf("%w: reading order markers: %v", ErrMalformedHeader, err)
	}
	if marker[0] != marker[1] {
		return nil, fmt.Errorf("%w: order marker bytes do not match (%#x, %#x)",
			ErrMalformedHeader, marker[0], marker[1])
	}

	var order binary.ByteOrder
	switch marker[0] {
	case 'I': // Intel
		order = binary.LittleEndian
	case 'M': // Motorola
		order = binary.BigEndian
	default:
		return nil, fmt.Errorf("%w: invalid order marker %#x", ErrMalformedHeader, marker[0])
	}

	c := newCursor(r, order)
	version, err := c.uint16()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}

	h := &Header{Order: order, Version: int(version)}
	switch version {
	case versionStandard:
		first, err := c.uint32()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
		}
		h.FirstIFDOffset = uint64(first)

	case versionBig:
		h.BigTIFF = true
		offsetSize, err := c.uint16()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
		}
		reserved, err := c.uint16()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
		}
		if offsetSize != 8 || reserved != 0 {
			return nil, fmt.Errorf("%w: bad BigTIFF header fields (offset size %d, reserved %d)",
				ErrMalformedHeader, offsetSize, reserved)
		}
		h.FirstIFDOffset, err = c.uint64()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
		}

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	return h, nil
}

// layout is the addressing-variant parameterization selected once per
// file after the header is parsed. It keeps the directory parser free
// of 32-vs-64-bit branching.
type layout struct {
	order          binary.ByteOrder
	entryCountSize int    // 2 or 8 bytes
	offsetSize     int    // 4 or 8 bytes
	maxInline      uint64 // 4 or 8 bytes
}

func layoutFor(h *Header) layout {
	if h.BigTIFF {
		return layout{
			order:          h.Order,
			entryCountSize: 8,
			offsetSize:     8,
			maxInline:      entryMaxValueLengthBig,
		}
	}
	return layout{
		order:          h.Order,
		entryCountSize: 2,
		offsetSize:     4,
		maxInline:      entryMaxValueLength,
	}
}
