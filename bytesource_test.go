package tiff

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestBytesSource(t *testing.T) {
	src := NewBytesSource([]byte{0, 1, 2, 3, 4})
	if src.Size() != 5 {
		t.Errorf("Size() = %d, want 5", src.Size())
	}

	got, err := src.ByteArray(1, 3)
	if err != nil {
		t.Fatalf("ByteArray() failed: %v", err)
	}
	if !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Errorf("ByteArray(1,3) = %v, want [1 2 3]", got)
	}

	first, err := io.ReadAll(src.Open())
	if err != nil || len(first) != 5 {
		t.Errorf("Open() read %d bytes (%v), want 5", len(first), err)
	}
	// A second Open must be positioned at 0 again.
	second, _ := io.ReadAll(src.Open())
	if !bytes.Equal(first, second) {
		t.Error("second Open() not positioned at start")
	}
}

func TestByteSourceOutOfRange(t *testing.T) {
	sources := map[string]ByteSource{
		"bytes":    NewBytesSource([]byte{0, 1, 2, 3, 4}),
		"readerAt": NewReaderAtSource(bytes.NewReader([]byte{0, 1, 2, 3, 4}), 5),
	}
	tests := []struct {
		name           string
		offset, length int64
		ok             bool
	}{
		{"whole source", 0, 5, true},
		{"zero length at end", 5, 0, true},
		{"length past end", 3, 3, false},
		{"offset past end", 6, 1, false},
		{"negative offset", -1, 2, false},
		{"negative length", 0, -2, false},
		{"overflowing sum", 1, 1<<62 + 1, false},
	}

	for name, src := range sources {
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				_, err := src.ByteArray(tt.offset, tt.length)
				if tt.ok && err != nil {
					t.Errorf("ByteArray(%d,%d) failed: %v", tt.offset, tt.length, err)
				}
				if !tt.ok && !errors.Is(err, ErrOutOfRange) {
					t.Errorf("ByteArray(%d,%d) error = %v, want ErrOutOfRange", tt.offset, tt.length, err)
				}
			})
		}
	}
}

func TestReaderAtSourceRead(t *testing.T) {
	data := []byte("directory graph")
	src := NewReaderAtSource(bytes.NewReader(data), int64(len(data)))
	got, err := src.ByteArray(10, 5)
	if err != nil {
		t.Fatalf("ByteArray() failed: %v", err)
	}
	if string(got) != "graph" {
		t.Errorf("ByteArray(10,5) = %q, want graph", got)
	}
}
