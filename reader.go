package tiff

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Listener receives the header, fields and directories as the reader
// discovers them, and steers traversal. Returning false from
// SetHeader, AddField or AddDirectory stops the whole decode
// immediately; the entry point then returns nil.
type Listener interface {
	SetHeader(h *Header) bool
	AddField(f *Field) bool
	AddDirectory(d *Directory) bool

	// ReadImageData reports whether strip/tile/JPEG payload bytes
	// should be extracted and attached to each directory.
	ReadImageData() bool

	// ReadSubdirectories reports whether the EXIF, GPS and
	// interoperability sub-directories should be descended into.
	ReadSubdirectories() bool
}

// Reader reads the TIFF directory structure from a ByteSource. A
// Reader holds no per-file state and may be used concurrently; each
// Read call gets its own visited-offset set.
type Reader struct {
	strict bool
}

// NewReader returns a Reader. With strict enabled, every recoverable
// inconsistency (out-of-range value offsets, unreadable chain links,
// truncated embedded JPEG streams) becomes a fatal error instead of
// being skipped.
func NewReader(strict bool) *Reader {
	return &Reader{strict: strict}
}

// errStopped is the internal signal that a Listener declined to
// continue. It unwinds the whole traversal and is translated to nil at
// the entry point.
var errStopped = errors.New("tiff: listener stopped traversal")

// Read walks the file and pushes everything it finds to l.
func (r *Reader) Read(src ByteSource, l Listener) error {
	w := &walker{
		src:      src,
		listener: l,
		strict:   r.strict,
		visited:  make(map[uint64]bool),
	}
	if err := w.run(); err != nil && !errors.Is(err, errStopped) {
		return err
	}
	return nil
}

// walker is the per-call traversal state. The visited set grows
// monotonically and guarantees each directory offset is entered at
// most once, bounding the walk by the number of distinct offsets.
type walker struct {
	src      ByteSource
	listener Listener
	strict   bool
	lay      layout
	visited  map[uint64]bool
}

func (w *walker) run() error {
	header, err := parseHeader(w.src.Open())
	if err != nil {
		return err
	}
	w.lay = layoutFor(header)
	if !w.listener.SetHeader(header) {
		return errStopped
	}
	_, err = w.readDirectory(header.FirstIFDOffset, DirTypeRoot, false)
	return err
}

// subDirTags fixes the descent order: extended metadata (EXIF), then
// positioning (GPS), then interoperability, before the chain's next
// sibling. This keeps listener callback order deterministic per file.
var subDirTags = []struct {
	tag     uint16
	dirType DirType
}{
	{TagExifIFD, DirTypeExif},
	{TagGPSIFD, DirTypeGPS},
	{TagInteropIFD, DirTypeInterop},
}

// readDirectory decodes the directory at offset and everything
// reachable below it. It reports whether the directory was newly read;
// an offset already in the visited set is refused without error, which
// is the cycle guard.
func (w *walker) readDirectory(offset uint64, dirType DirType, ignoreNext bool) (bool, error) {
	if w.visited[offset] {
		return false, nil
	}
	w.visited[offset] = true

	srcSize := uint64(w.src.Size())
	if offset >= srcSize {
		// A pointer at or past EOF yields no directory but is not
		// treated as a failed read (known leniency).
		return true, nil
	}

	is := w.src.Open()
	if err := skipBytes(is, int64(offset)); err != nil {
		if w.strict {
			return false, err
		}
		return true, nil
	}
	c := newCursor(is, w.lay.order)

	entryCount, err := w.readEntryCount(c)
	if err != nil {
		if w.strict {
			return false, err
		}
		// Known leniency: an unreadable entry count terminates the
		// chain cleanly instead of flagging the directory.
		return true, nil
	}

	var fields []*Field
	for i := uint64(0); i < entryCount; i++ {
		tag, err := c.uint16()
		if err != nil {
			return false, err
		}
		typ, err := c.uint16()
		if err != nil {
			return false, err
		}
		count, err := c.offset(w.lay.offsetSize)
		if err != nil {
			return false, err
		}
		raw, valueOffset, err := c.valueSlot(w.lay.offsetSize)
		if err != nil {
			return false, err
		}

		if tag == 0 {
			// Zero tags are a known corruption marker; their declared
			// lengths are unusable, so skip silently.
			continue
		}
		fieldType := FieldType(typ)
		if !fieldType.Known() {
			// Unknown type code: the value size cannot be computed
			// safely, skip the entry and keep parsing.
			continue
		}

		elemSize := fieldType.Size()
		if count > math.MaxInt64/elemSize {
			if w.strict {
				return false, fmt.Errorf("%w: field tag %d declares %d elements of %d bytes",
					ErrOutOfRange, tag, count, elemSize)
			}
			continue
		}
		valueLength := count * elemSize

		var value []byte
		if valueLength > w.lay.maxInline {
			if valueOffset > srcSize || valueLength > srcSize-valueOffset {
				if w.strict {
					return false, fmt.Errorf("%w: field tag %d: %d bytes at offset %d, file size %d",
						ErrOutOfRange, tag, valueLength, valueOffset, srcSize)
				}
				// Corrupt field, ignore it.
				continue
			}
			value, err = w.src.ByteArray(int64(valueOffset), int64(valueLength))
			if err != nil {
				return false, err
			}
		} else {
			value = raw[:valueLength]
		}

		field := &Field{
			Tag:     tag,
			DirType: dirType,
			Type:    fieldType,
			Count:   count,
			Offset:  valueOffset,
			Value:   value,
			Order:   w.lay.order,
			Index:   int(i),
		}
		fields = append(fields, field)

		if !w.listener.AddField(field) {
			return true, errStopped
		}
	}

	next, err := c.offset(w.lay.offsetSize)
	if err != nil {
		if w.strict {
			return false, err
		}
		next = 0 // treat the chain as cleanly terminated
	}

	dir := &Directory{
		Type:       dirType,
		Fields:     fields,
		Offset:     offset,
		NextOffset: next,
		Order:      w.lay.order,
	}

	if w.listener.ReadImageData() {
		if dir.HasImageData() {
			imageData, err := w.extractImageData(dir)
			if err != nil {
				return false, err
			}
			dir.ImageData = imageData
		}
		if dir.HasJPEGData() {
			jpegData, err := w.extractJPEGData(dir)
			if err != nil {
				return false, err
			}
			dir.JPEGData = jpegData
		}
	}

	if !w.listener.AddDirectory(dir) {
		return true, errStopped
	}

	if w.listener.ReadSubdirectories() {
		for _, sub := range subDirTags {
			field := dir.FindField(sub.tag)
			if field == nil {
				continue
			}
			subRead := false
			subOffset, err := field.UintValue()
			if err == nil {
				subRead, err = w.readDirectory(subOffset, sub.dirType, true)
			}
			if err != nil {
				if errors.Is(err, errStopped) || errors.Is(err, ErrShortRead) || w.strict {
					return false, err
				}
				// Recoverable sub-directory failure: fall through so
				// the pointer field is stripped below.
			}
			if !subRead {
				// The field claimed metadata that did not actually
				// decode; do not leave it dangling.
				dir.removeField(field)
			}
		}
	}

	if !ignoreNext && dir.NextOffset > 0 {
		if _, err := w.readDirectory(dir.NextOffset, dirType+1, false); err != nil {
			return false, err
		}
	}

	return true, nil
}

func (w *walker) readEntryCount(c *cursor) (uint64, error) {
	if w.lay.entryCountSize == 8 {
		return c.uint64()
	}
	v, err := c.uint16()
	return uint64(v), err
}

// clampedRead extracts a payload region, clamping the declared length
// down to the bytes actually present rather than failing outright.
func (w *walker) clampedRead(reg region) (Segment, error) {
	srcSize := uint64(w.src.Size())
	if reg.offset >= srcSize {
		return Segment{Offset: reg.offset}, nil
	}
	length := reg.length
	if length > srcSize-reg.offset {
		length = srcSize - reg.offset
	}
	data, err := w.src.ByteArray(int64(reg.offset), int64(length))
	if err != nil {
		return Segment{}, err
	}
	return Segment{Offset: reg.offset, Length: int64(length), Data: data}, nil
}

// extractImageData materializes the strip or tile payload declared by
// a fully decoded directory.
func (w *walker) extractImageData(dir *Directory) (ImageData, error) {
	regions, err := dir.imageDataRegions()
	if err != nil {
		return nil, err
	}
	segs := make([]Segment, len(regions))
	for i, reg := range regions {
		segs[i], err = w.clampedRead(reg)
		if err != nil {
			return nil, err
		}
	}

	if dir.ImageDataInStrips() {
		// Rows-per-strip defaults to the whole image in one strip,
		// falling back to the image height when that field exists.
		rowsPerStrip := uint32(math.MaxUint32)
		if v, ok := dir.uintField(TagRowsPerStrip); ok {
			rowsPerStrip = uint32(v)
		} else if v, ok := dir.uintField(TagImageLength); ok {
			rowsPerStrip = uint32(v)
		}
		return &Strips{Segs: segs, RowsPerStrip: rowsPerStrip}, nil
	}

	tileWidthField := dir.FindField(TagTileWidth)
	if tileWidthField == nil {
		return nil, fmt.Errorf("%w: tile width", ErrMissingField)
	}
	tileWidth, err := tileWidthField.UintValue()
	if err != nil {
		return nil, err
	}
	tileLengthField := dir.FindField(TagTileLength)
	if tileLengthField == nil {
		return nil, fmt.Errorf("%w: tile length", ErrMissingField)
	}
	tileLength, err := tileLengthField.UintValue()
	if err != nil {
		return nil, err
	}
	return &Tiles{Segs: segs, TileWidth: uint32(tileWidth), TileLength: uint32(tileLength)}, nil
}

// extractJPEGData materializes an embedded JPEG interchange stream,
// verifying its EOI end marker in strict mode.
func (w *walker) extractJPEGData(dir *Directory) (*JPEGImageData, error) {
	reg, err := dir.jpegDataRegion()
	if err != nil {
		return nil, err
	}
	seg, err := w.clampedRead(reg)
	if err != nil {
		return nil, err
	}
	if w.strict {
		n := len(seg.Data)
		if n < 2 || binary.BigEndian.Uint16(seg.Data[n-2:]) != jpegEOIMarker {
			return nil, fmt.Errorf("%w: EOI marker not found at expected location", ErrTruncatedJPEG)
		}
	}
	return &JPEGImageData{Offset: seg.Offset, Length: seg.Length, Data: seg.Data}, nil
}

func (d *Directory) removeField(f *Field) {
	for i, g := range d.Fields {
		if g == f {
			d.Fields = append(d.Fields[:i], d.Fields[i+1:]...)
			return
		}
	}
}
