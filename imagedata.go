package tiff

// Segment is one extracted payload byte range (a strip or a tile).
type Segment struct {
	Offset uint64
	Length int64
	Data   []byte
}

// ImageData is the payload descriptor attached to a directory: either
// strip-organized (*Strips) or tile-organized (*Tiles).
type ImageData interface {
	// Segments returns the payload regions in file order.
	Segments() []Segment
}

// Strips is strip-organized image data.
type Strips struct {
	Segs []Segment

	// RowsPerStrip is the declared strip height. When the field is
	// absent it defaults to the image height, or to "the whole image
	// in one strip" when that is absent too.
	RowsPerStrip uint32
}

func (s *Strips) Segments() []Segment { return s.Segs }

// Tiles is tile-organized image data.
type Tiles struct {
	Segs       []Segment
	TileWidth  uint32
	TileLength uint32
}

func (t *Tiles) Segments() []Segment { return t.Segs }

// JPEGImageData is an embedded, self-delimited JPEG interchange stream
// stored verbatim in the file.
type JPEGImageData struct {
	Offset uint64
	Length int64
	Data   []byte
}
