// Package ogawa resolves the two primitive node kinds of an Ogawa archive.
//
// An Ogawa archive is an append-only tree of opaque chunks. Every node is
// addressed by an 8-byte little-endian reference word:
//
//	bit 63     set for a data chunk, clear for a group
//	bits 0-62  file offset of the node
//
// A group stores a u64 child count followed by that many reference words. A
// data chunk stores a u64 byte length followed by the bytes. Offset zero of
// either kind, and the all-ones word, stand for an empty child: an empty
// group has no children and an empty data chunk has no bytes. Both are valid
// values.
//
// Nodes are read lazily through a [Store]. Resolved nodes are memoized by
// offset for the lifetime of the store; the archive is immutable, so nothing
// is ever evicted.
package ogawa
