package tiff

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"testing"
)

func shortField(tag uint16, v uint16) *Field {
	val := make([]byte, 2)
	binary.LittleEndian.PutUint16(val, v)
	return &Field{
		Tag: tag, Type: TypeShort, Count: 1,
		Value: val, Order: binary.LittleEndian,
	}
}

func stripDirectory(compression uint16, segData []byte, extra ...*Field) *Directory {
	fields := append([]*Field{shortField(TagCompression, compression)}, extra...)
	return &Directory{
		Type:   DirTypeRoot,
		Fields: fields,
		Order:  binary.LittleEndian,
		ImageData: &Strips{
			Segs:         []Segment{{Data: segData, Length: int64(len(segData))}},
			RowsPerStrip: 8,
		},
	}
}

func TestDecompressNone(t *testing.T) {
	raw := []byte{1, 2, 3, 4}
	out, err := stripDirectory(CompressionNone, raw).DecompressedSegments()
	if err != nil {
		t.Fatalf("DecompressedSegments() failed: %v", err)
	}
	if len(out) != 1 || !bytes.Equal(out[0], raw) {
		t.Errorf("segments = %v, want passthrough of %v", out, raw)
	}
}

func TestDecompressDeflate(t *testing.T) {
	raw := bytes.Repeat([]byte("row data "), 16)
	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	if _, err := zw.Write(raw); err != nil {
		t.Fatal(err)
	}
	zw.Close()

	for _, compression := range []uint16{CompressionDeflateAdobe, CompressionDeflatePKZIP} {
		out, err := stripDirectory(compression, compressed.Bytes()).DecompressedSegments()
		if err != nil {
			t.Fatalf("compression %d: DecompressedSegments() failed: %v", compression, err)
		}
		if !bytes.Equal(out[0], raw) {
			t.Errorf("compression %d: round trip mismatch", compression)
		}
	}
}

func TestDecompressPackBits(t *testing.T) {
	// Literal run "abc", then 0xFD = repeat next byte 4 times.
	packed := []byte{0x02, 'a', 'b', 'c', 0xFD, 'x'}
	out, err := stripDirectory(CompressionPackBits, packed).DecompressedSegments()
	if err != nil {
		t.Fatalf("DecompressedSegments() failed: %v", err)
	}
	if string(out[0]) != "abcxxxx" {
		t.Errorf("unpacked = %q, want abcxxxx", out[0])
	}
}

func TestUnpackBits(t *testing.T) {
	tests := []struct {
		name    string
		in      []byte
		want    string
		wantErr bool
	}{
		{"empty", nil, "", false},
		{"noop code", []byte{0x80}, "", false},
		{"literal then repeat", []byte{0x01, 'h', 'i', 0xFF, '!'}, "hi!!", false},
		{"truncated literal", []byte{0x05, 'x'}, "", true},
		{"truncated repeat", []byte{0xFE}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := unpackBits(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unpackBits() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && string(out) != tt.want {
				t.Errorf("unpackBits() = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestDecompressUnsupported(t *testing.T) {
	_, err := stripDirectory(CompressionJPEG, []byte{1}).DecompressedSegments()
	if !errors.Is(err, ErrUnsupportedCompression) {
		t.Errorf("error = %v, want ErrUnsupportedCompression", err)
	}

	// 2-dimensional Group 3 is not supported.
	dir := stripDirectory(CompressionCCITTGroup3, []byte{1},
		shortField(TagT4Options, 1),
		shortField(TagImageWidth, 8),
		shortField(TagImageLength, 8))
	if _, err := dir.DecompressedSegments(); !errors.Is(err, ErrUnsupportedCompression) {
		t.Errorf("2D G3 error = %v, want ErrUnsupportedCompression", err)
	}
}

func TestDecompressNoImageData(t *testing.T) {
	dir := &Directory{Type: DirTypeRoot, Order: binary.LittleEndian}
	if _, err := dir.DecompressedSegments(); err == nil {
		t.Error("DecompressedSegments() without image data succeeded, want error")
	}
}

func TestBlockSizeShortFinalStrip(t *testing.T) {
	dir := stripDirectory(CompressionNone, nil,
		shortField(TagImageWidth, 64),
		shortField(TagImageLength, 20))
	// RowsPerStrip is 8, image length 20: strips are 8, 8, 4 rows.
	for i, want := range []int{8, 8, 4} {
		if _, h := dir.blockSize(i); h != want {
			t.Errorf("blockSize(%d) height = %d, want %d", i, h, want)
		}
	}
	if w, _ := dir.blockSize(0); w != 64 {
		t.Errorf("blockSize(0) width = %d, want 64", w)
	}
}
