package tiff

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// ByteSource is the random-access view of a TIFF file consumed by the
// reader. Implementations must be safe for concurrent use by multiple
// readers; the reader itself never mutates the source.
//
// Open returns a fresh sequential reader positioned at byte 0; the
// reader only ever skips forward on it. Random access happens through
// ByteArray, which must return exactly length bytes or an error
// wrapping ErrOutOfRange.
type ByteSource interface {
	Size() int64
	Open() io.Reader
	ByteArray(offset, length int64) ([]byte, error)
}

// maxChunkSize bounds a single allocation when the requested length
// comes from untrusted file data. Larger reads grow incrementally so a
// forged length cannot allocate gigabytes before the read fails.
const maxChunkSize = 10 << 20

func checkRange(offset, length, size int64) error {
	if offset < 0 || length < 0 || offset > size || length > size-offset {
		return fmt.Errorf("%w: %d bytes at offset %d, file size %d",
			ErrOutOfRange, length, offset, size)
	}
	return nil
}

// safeReadAt reads length bytes at offset without trusting length for
// a single up-front allocation.
func safeReadAt(r io.ReaderAt, offset, length int64) ([]byte, error) {
	if length < maxChunkSize {
		buf := make([]byte, length)
		if _, err := r.ReadAt(buf, offset); err != nil {
			// A SectionReader can return EOF for a zero-length
			// read at the end of the section.
			if err != io.EOF || length > 0 {
				return nil, err
			}
		}
		return buf, nil
	}

	var buf []byte
	chunk := make([]byte, maxChunkSize)
	for length > 0 {
		next := length
		if next > maxChunkSize {
			next = maxChunkSize
		}
		if _, err := r.ReadAt(chunk[:next], offset); err != nil {
			return nil, err
		}
		buf = append(buf, chunk[:next]...)
		length -= next
		offset += next
	}
	return buf, nil
}

type bytesSource struct {
	data []byte
}

// NewBytesSource returns a ByteSource backed by data. The slice is not
// copied; it must not be mutated while a reader uses the source.
func NewBytesSource(data []byte) ByteSource {
	return &bytesSource{data: data}
}

func (s *bytesSource) Size() int64 { return int64(len(s.data)) }

func (s *bytesSource) Open() io.Reader { return bytes.NewReader(s.data) }

func (s *bytesSource) ByteArray(offset, length int64) ([]byte, error) {
	if err := checkRange(offset, length, s.Size()); err != nil {
		return nil, err
	}
	buf := make([]byte, length)
	copy(buf, s.data[offset:offset+length])
	return buf, nil
}

type readerAtSource struct {
	r    io.ReaderAt
	size int64
}

// NewReaderAtSource returns a ByteSource over r, which holds size
// readable bytes starting at offset 0.
func NewReaderAtSource(r io.ReaderAt, size int64) ByteSource {
	return &readerAtSource{r: r, size: size}
}

func (s *readerAtSource) Size() int64 { return s.size }

func (s *readerAtSource) Open() io.Reader {
	return io.NewSectionReader(s.r, 0, s.size)
}

func (s *readerAtSource) ByteArray(offset, length int64) ([]byte, error) {
	if err := checkRange(offset, length, s.size); err != nil {
		return nil, err
	}
	return safeReadAt(s.r, offset, length)
}

// NewFileSource returns a ByteSource reading from f, sized by Stat.
// The caller keeps ownership of f and must not close it while the
// source is in use.
func NewFileSource(f *os.File) (ByteSource, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return NewReaderAtSource(f, fi.Size()), nil
}
