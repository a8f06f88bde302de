package tiff

import (
	"encoding/binary"
	"fmt"
)

// DirType classifies a directory by how it was reached. Directories on
// the root chain are numbered upward from zero; sub-directories
// reached through pointer tags get negative classifiers.
type DirType int

const (
	DirTypeUnknown DirType = -1
	DirTypeRoot    DirType = 0
	DirTypeExif    DirType = -2
	DirTypeGPS     DirType = -3
	DirTypeInterop DirType = -4
)

func (t DirType) String() string {
	switch t {
	case DirTypeExif:
		return "EXIF"
	case DirTypeGPS:
		return "GPS"
	case DirTypeInterop:
		return "Interoperability"
	case DirTypeUnknown:
		return "Unknown"
	}
	if t >= 0 {
		return fmt.Sprintf("IFD%d", int(t))
	}
	return fmt.Sprintf("DirType(%d)", int(t))
}

// Directory is one decoded IFD: its fields in entry order, its own
// offset, and the offset of the next directory on the root chain.
// Payload data is attached once after field decoding and the directory
// is never mutated afterwards.
type Directory struct {
	Type       DirType
	Fields     []*Field
	Offset     uint64
	NextOffset uint64
	Order      binary.ByteOrder

	// ImageData holds the strip or tile payload, when present and
	// extraction was requested.
	ImageData ImageData

	// JPEGData holds the embedded JPEG interchange payload, when
	// present and extraction was requested.
	JPEGData *JPEGImageData
}

// FindField returns the first field with the given tag, or nil.
func (d *Directory) FindField(tag uint16) *Field {
	for _, f := range d.Fields {
		if f.Tag == tag {
			return f
		}
	}
	return nil
}

// uintField returns the first element of an unsigned integer field,
// reporting whether the tag was present and decodable.
func (d *Directory) uintField(tag uint16) (uint64, bool) {
	f := d.FindField(tag)
	if f == nil {
		return 0, false
	}
	v, err := f.UintValue()
	if err != nil {
		return 0, false
	}
	return v, true
}

// HasImageData reports whether the directory describes strip- or
// tile-organized pixel data.
func (d *Directory) HasImageData() bool {
	return d.FindField(TagTileOffsets) != nil || d.FindField(TagStripOffsets) != nil
}

// ImageDataInStrips reports whether pixel data is strip-organized.
// Tiling wins when both layouts are (bogusly) declared.
func (d *Directory) ImageDataInStrips() bool {
	return d.FindField(TagTileOffsets) == nil
}

// HasJPEGData reports whether the directory carries an embedded JPEG
// interchange stream.
func (d *Directory) HasJPEGData() bool {
	return d.FindField(TagJPEGInterchangeFormat) != nil
}

// region is one not-yet-extracted payload byte range.
type region struct {
	offset uint64
	length uint64
}

// imageDataRegions enumerates the strip or tile byte ranges declared
// by the directory's offset/length field pair.
func (d *Directory) imageDataRegions() ([]region, error) {
	offsetsTag, countsTag := uint16(TagTileOffsets), uint16(TagTileByteCounts)
	if d.ImageDataInStrips() {
		offsetsTag, countsTag = TagStripOffsets, TagStripByteCounts
	}

	offsetsField := d.FindField(offsetsTag)
	countsField := d.FindField(countsTag)
	if offsetsField == nil || countsField == nil {
		return nil, fmt.Errorf("%w: image data offsets (tag %d) or byte counts (tag %d)",
			ErrMissingField, offsetsTag, countsTag)
	}
	offsets, err := offsetsField.UintValues()
	if err != nil {
		return nil, err
	}
	counts, err := countsField.UintValues()
	if err != nil {
		return nil, err
	}
	if len(offsets) != len(counts) {
		return nil, fmt.Errorf("tiff: %d image data offsets but %d byte counts",
			len(offsets), len(counts))
	}

	regions := make([]region, len(offsets))
	for i := range offsets {
		regions[i] = region{offset: offsets[i], length: counts[i]}
	}
	return regions, nil
}

// jpegDataRegion locates the embedded JPEG interchange stream.
func (d *Directory) jpegDataRegion() (region, error) {
	offsetField := d.FindField(TagJPEGInterchangeFormat)
	lengthField := d.FindField(TagJPEGInterchangeFormatLength)
	if offsetField == nil || lengthField == nil {
		return region{}, fmt.Errorf("%w: JPEG interchange format offset or length", ErrMissingField)
	}
	offset, err := offsetField.UintValue()
	if err != nil {
		return region{}, err
	}
	length, err := lengthField.UintValue()
	if err != nil {
		return region{}, err
	}
	return region{offset: offset, length: length}, nil
}
