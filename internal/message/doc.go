// Package message parses the binary header sub-structures of an Alembic archive.
//
// The Ogawa container only knows groups and opaque data chunks. Alembic
// stores the shape of its hierarchy in a handful of packed data chunks, each
// decoded here into plain structs:
//
//   - Property headers: the last child of every compound property group.
//     One record per sub-property, led by a 32-bit info word. See
//     [ParsePropertyHeaders] and [PropertyHeader].
//   - Object headers: the last child of every object group, listing the
//     names and metadata of child objects, followed by 32 bytes of digests.
//     See [ParseObjectHeaders].
//   - Time samplings: child 4 of the root group. See [ParseTimeSamplings].
//
// # Property Info Word
//
//	bits   meaning
//	0-1    kind: 0 compound, 1 scalar, 2 or 3 array
//	2-3    size hint: following sizes are u8, u16 or u32
//	4-7    POD type
//	8      a time sampling index follows
//	9      explicit first and last changed indices follow
//	10     homogeneous array
//	11     every sample is identical
//	12-19  extent
//	20-27  metadata index, 0xFF for inline metadata
//
// Metadata is referenced by index into the archive's metadata table; this
// package only records the index (or the inline string) and leaves the
// lookup to the caller.
package message
