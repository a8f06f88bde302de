package tiff

import "errors"

var (
	ErrMalformedHeader        = errors.New("tiff: malformed header")
	ErrUnsupportedVersion     = errors.New("tiff: unsupported version")
	ErrOutOfRange             = errors.New("tiff: byte range outside file")
	ErrShortRead              = errors.New("tiff: unexpected end of data")
	ErrMissingField           = errors.New("tiff: required field missing")
	ErrTruncatedJPEG          = errors.New("tiff: truncated embedded JPEG stream")
	ErrNoDirectories          = errors.New("tiff: no directories")
	ErrUnsupportedCompression = errors.New("tiff: unsupported compression")
)
