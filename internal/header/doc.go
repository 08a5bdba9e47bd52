// Package header handles parsing of the fixed Ogawa archive header.
//
// The header is the entry point for any Ogawa archive. It occupies the first
// 16 bytes of the file:
//
//	offset  size  field
//	0       5     signature "Ogawa"
//	5       1     frozen flag, 0xFF once the writer has closed the archive
//	6       2     format version (big-endian, always 1)
//	8       8     offset of the root group (little-endian)
//
// A writer streams groups and data chunks after the header and patches the
// root offset and frozen flag last. An archive whose frozen flag is not set
// was never finalized and its root offset cannot be trusted, so [Read]
// rejects it.
package header
