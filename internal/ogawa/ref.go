package ogawa

import "fmt"

const (
	dataBit    = uint64(1) << 63
	offsetMask = dataBit - 1
)

// Ref is a tagged reference to a group or data node.
type Ref uint64

// EmptyRef is the all-ones reference some writers use for an absent child.
const EmptyRef = ^Ref(0)

// GroupRef returns a reference to the group at offset.
func GroupRef(offset uint64) Ref {
	return Ref(offset & offsetMask)
}

// DataRef returns a reference to the data chunk at offset.
func DataRef(offset uint64) Ref {
	return Ref(offset&offsetMask | dataBit)
}

// IsData reports whether the reference points at a data chunk.
func (r Ref) IsData() bool {
	return uint64(r)&dataBit != 0
}

// IsGroup reports whether the reference points at a group.
func (r Ref) IsGroup() bool {
	return !r.IsData()
}

// IsEmpty reports whether the reference denotes an empty child.
func (r Ref) IsEmpty() bool {
	return r == EmptyRef || r.Offset() == 0
}

// Offset returns the file offset of the referenced node.
func (r Ref) Offset() uint64 {
	return uint64(r) & offsetMask
}

func (r Ref) String() string {
	kind := "group"
	if r.IsData() {
		kind = "data"
	}
	if r.IsEmpty() {
		return "empty " + kind
	}
	return fmt.Sprintf("%s@%d", kind, r.Offset())
}
