package tiff

// Baseline and extension tags used by this package (TIFF 6.0 p.28-41,
// EXIF 2.3 for the pointer tags).
const (
	TagImageWidth                = 256
	TagImageLength               = 257
	TagBitsPerSample             = 258
	TagCompression               = 259
	TagPhotometricInterpretation = 262
	TagFillOrder                 = 266
	TagStripOffsets              = 273
	TagSamplesPerPixel           = 277
	TagRowsPerStrip              = 278
	TagStripByteCounts           = 279
	TagT4Options                 = 292
	TagT6Options                 = 293
	TagColorMap                  = 320
	TagTileWidth                 = 322
	TagTileLength                = 323
	TagTileOffsets               = 324
	TagTileByteCounts            = 325

	TagJPEGInterchangeFormat       = 513
	TagJPEGInterchangeFormatLength = 514

	// Pointer tags whose value is the offset of a sub-directory.
	TagExifIFD    = 0x8769
	TagGPSIFD     = 0x8825
	TagInteropIFD = 0xA005
)

// Compression field values.
const (
	CompressionNone          = 1
	CompressionCCITT1D       = 2
	CompressionCCITTGroup3   = 3
	CompressionCCITTGroup4   = 4
	CompressionLZW           = 5
	CompressionJPEGObsolete  = 6
	CompressionJPEG          = 7
	CompressionDeflateAdobe  = 8
	CompressionUncompressed2 = 32771
	CompressionPackBits      = 32773
	CompressionDeflatePKZIP  = 32946
)

// PhotometricInterpretation field values.
const (
	PhotometricWhiteIsZero = 0
	PhotometricBlackIsZero = 1
	PhotometricRGB         = 2
	PhotometricPaletted    = 3
	PhotometricTransMask   = 4
	PhotometricCMYK        = 5
	PhotometricYCbCr       = 6
	PhotometricCIELab      = 8
)

// jpegEOIMarker terminates an embedded JPEG interchange stream.
const jpegEOIMarker = 0xFFD9
