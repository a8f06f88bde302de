package tiff

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"

	"golang.org/x/image/ccitt"
	"golang.org/x/image/tiff/lzw"
)

// DecompressedSegments expands every attached payload segment to raw
// bytes, dispatching on the directory's Compression field. Pixel
// assembly from the expanded rows is left to the caller.
func (d *Directory) DecompressedSegments() ([][]byte, error) {
	if d.ImageData == nil {
		return nil, fmt.Errorf("tiff: directory %s has no attached image data", d.Type)
	}
	segs := d.ImageData.Segments()
	out := make([][]byte, len(segs))
	for i, seg := range segs {
		expanded, err := d.decompressSegment(seg.Data, i)
		if err != nil {
			return nil, fmt.Errorf("tiff: segment %d: %w", i, err)
		}
		out[i] = expanded
	}
	return out, nil
}

func (d *Directory) decompressSegment(data []byte, index int) ([]byte, error) {
	// Writers in the wild omit the Compression field to mean "none";
	// a literal 0 is treated the same way.
	compression, ok := d.uintField(TagCompression)
	if !ok {
		compression = CompressionNone
	}

	switch compression {
	case 0, CompressionNone, CompressionUncompressed2:
		return data, nil

	case CompressionLZW:
		r := lzw.NewReader(bytes.NewReader(data), lzw.MSB, 8)
		defer r.Close()
		return io.ReadAll(r)

	case CompressionDeflateAdobe, CompressionDeflatePKZIP:
		r, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)

	case CompressionPackBits:
		return unpackBits(data)

	case CompressionCCITTGroup3, CompressionCCITTGroup4:
		return d.decompressCCITT(data, index, compression)
	}

	return nil, fmt.Errorf("%w: compression value %d", ErrUnsupportedCompression, compression)
}

func (d *Directory) decompressCCITT(data []byte, index int, compression uint64) ([]byte, error) {
	subFormat := ccitt.Group4
	if compression == CompressionCCITTGroup3 {
		subFormat = ccitt.Group3
		if opts, ok := d.uintField(TagT4Options); ok && opts&1 != 0 {
			return nil, fmt.Errorf("%w: 2-dimensional Group 3", ErrUnsupportedCompression)
		}
	}

	order := ccitt.MSB
	if fillOrder, ok := d.uintField(TagFillOrder); ok && fillOrder == 2 {
		order = ccitt.LSB
	}

	width, height := d.blockSize(index)
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: image dimensions for CCITT data", ErrMissingField)
	}

	photometric, _ := d.uintField(TagPhotometricInterpretation)
	r := ccitt.NewReader(bytes.NewReader(data), order, subFormat, width, height,
		&ccitt.Options{Invert: photometric == PhotometricBlackIsZero, Align: false})
	return io.ReadAll(r)
}

// blockSize returns the pixel dimensions of segment index: the tile
// size for tiled data, or image width by strip height (short for the
// final strip) for stripped data.
func (d *Directory) blockSize(index int) (width, height int) {
	switch imageData := d.ImageData.(type) {
	case *Tiles:
		return int(imageData.TileWidth), int(imageData.TileLength)
	case *Strips:
		w, _ := d.uintField(TagImageWidth)
		h := uint64(imageData.RowsPerStrip)
		if imageLength, ok := d.uintField(TagImageLength); ok {
			used := uint64(index) * uint64(imageData.RowsPerStrip)
			if used >= imageLength {
				return int(w), 0
			}
			if remaining := imageLength - used; h > remaining {
				h = remaining
			}
		}
		return int(w), int(h)
	}
	return 0, 0
}

// unpackBits expands PackBits run-length data (TIFF 6.0 section 9).
func unpackBits(data []byte) ([]byte, error) {
	var out []byte
	for i := 0; i < len(data); {
		n := int(int8(data[i]))
		i++
		switch {
		case n >= 0:
			// Copy the next n+1 bytes literally.
			if i+n+1 > len(data) {
				return nil, fmt.Errorf("%w: PackBits literal run", ErrShortRead)
			}
			out = append(out, data[i:i+n+1]...)
			i += n + 1
		case n > -128:
			// Repeat the next byte 1-n times.
			if i >= len(data) {
				return nil, fmt.Errorf("%w: PackBits repeat run", ErrShortRead)
			}
			for j := 0; j < 1-n; j++ {
				out = append(out, data[i])
			}
			i++
		default:
			// -128 is a no-op.
		}
	}
	return out, nil
}
