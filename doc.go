// Package tiff implements a pure Go reader for the TIFF directory
// structure, including BigTIFF (64-bit) files.
//
// The reader walks the file's Image File Directories (IFDs), the
// sub-directories reachable through the EXIF, GPS and interoperability
// pointer tags, and the raw strip, tile or embedded-JPEG payload each
// directory describes. Every offset and count in the file is treated
// as untrusted: reads are bounds-checked against the byte source,
// directory offsets are tracked in a visited set so forged offset
// cycles terminate, and declared lengths never drive allocation
// without validation.
//
// Reading everything into memory:
//
//	contents, err := tiff.NewReader(false).ReadDirectories(src, true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Push-based reading with a custom Listener:
//
//	err := tiff.NewReader(true).Read(src, myListener)
//
// A Reader created with strict enabled turns every recoverable
// inconsistency (out-of-range value offsets, truncated embedded JPEG
// streams, unreadable chain links) into a fatal error instead of
// skipping it.
package tiff
