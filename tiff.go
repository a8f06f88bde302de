package tiff

import (
	"fmt"
	"image"
	"image/color"
	"io"
)

// Contents is everything a full read accumulated: the header, the
// directories in callback order, and every field in discovery order.
type Contents struct {
	Header      *Header
	Directories []*Directory
	Fields      []*Field
}

// FindField returns the first field with the given tag across all
// directories, or nil.
func (c *Contents) FindField(tag uint16) *Field {
	for _, d := range c.Directories {
		if f := d.FindField(tag); f != nil {
			return f
		}
	}
	return nil
}

// collector accumulates everything and always continues.
type collector struct {
	header        *Header
	directories   []*Directory
	fields        []*Field
	readImageData bool
}

func (cl *collector) SetHeader(h *Header) bool {
	cl.header = h
	return true
}

func (cl *collector) AddField(f *Field) bool {
	cl.fields = append(cl.fields, f)
	return true
}

func (cl *collector) AddDirectory(d *Directory) bool {
	cl.directories = append(cl.directories, d)
	return true
}

func (cl *collector) ReadImageData() bool { return cl.readImageData }

func (cl *collector) ReadSubdirectories() bool { return true }

func (cl *collector) contents() *Contents {
	return &Contents{
		Header:      cl.header,
		Directories: cl.directories,
		Fields:      cl.fields,
	}
}

// firstDirectoryCollector accumulates the first directory and then
// signals stop.
type firstDirectoryCollector struct {
	collector
}

func (cl *firstDirectoryCollector) AddDirectory(d *Directory) bool {
	cl.directories = append(cl.directories, d)
	return false
}

// ReadContents reads the whole directory graph into memory. With
// readImageData enabled, each directory's strip/tile/JPEG payload is
// extracted and attached.
func (r *Reader) ReadContents(src ByteSource, readImageData bool) (*Contents, error) {
	cl := &collector{readImageData: readImageData}
	if err := r.Read(src, cl); err != nil {
		return nil, err
	}
	return cl.contents(), nil
}

// ReadDirectories is ReadContents that fails with ErrNoDirectories
// when the file yields no directories at all.
func (r *Reader) ReadDirectories(src ByteSource, readImageData bool) (*Contents, error) {
	contents, err := r.ReadContents(src, readImageData)
	if err != nil {
		return nil, err
	}
	if len(contents.Directories) == 0 {
		return nil, ErrNoDirectories
	}
	return contents, nil
}

// ReadFirstDirectory reads only the first directory, optionally with
// its payload, and stops.
func (r *Reader) ReadFirstDirectory(src ByteSource, readImageData bool) (*Contents, error) {
	cl := &firstDirectoryCollector{collector{readImageData: readImageData}}
	if err := r.Read(src, cl); err != nil {
		return nil, err
	}
	contents := cl.contents()
	if len(contents.Directories) == 0 {
		return nil, ErrNoDirectories
	}
	return contents, nil
}

// DecodeConfig returns the dimensions and color model of the first
// image in the stream without materializing any payload.
func DecodeConfig(rd io.Reader) (image.Config, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return image.Config{}, err
	}
	contents, err := NewReader(false).ReadFirstDirectory(NewBytesSource(data), false)
	if err != nil {
		return image.Config{}, err
	}
	dir := contents.Directories[0]

	width, ok := dir.uintField(TagImageWidth)
	if !ok {
		return image.Config{}, fmt.Errorf("%w: image width", ErrMissingField)
	}
	height, ok := dir.uintField(TagImageLength)
	if !ok {
		return image.Config{}, fmt.Errorf("%w: image length", ErrMissingField)
	}

	bits, ok := dir.uintField(TagBitsPerSample)
	if !ok {
		bits = 1
	}
	photometric, _ := dir.uintField(TagPhotometricInterpretation)

	var model color.Model
	switch photometric {
	case PhotometricWhiteIsZero, PhotometricBlackIsZero:
		if bits == 16 {
			model = color.Gray16Model
		} else {
			model = color.GrayModel
		}
	default:
		if bits == 16 {
			model = color.RGBA64Model
		} else {
			model = color.RGBAModel
		}
	}

	return image.Config{
		Width:      int(width),
		Height:     int(height),
		ColorModel: model,
	}, nil
}
