package abctest

import (
	"github.com/robert-malhotra/go-alembic/internal/binary"
)

// DataBit marks a reference as a data chunk.
const DataBit = uint64(1) << 63

// EmptyGroup and EmptyData are the references conforming writers emit for
// empty children.
const (
	EmptyGroup = uint64(0)
	EmptyData  = DataBit
)

// Writer lays out an Ogawa container. Children must be written before the
// groups that reference them.
type Writer struct {
	w *binary.Writer
}

// NewWriter starts a container with a placeholder header.
func NewWriter() *Writer {
	w := binary.NewWriter()
	w.WriteString("Ogawa")
	w.WriteUint8(0xFF)
	w.WriteBytes([]byte{0x00, 0x01})
	w.WriteUint64(0)
	return &Writer{w: w}
}

// Data writes a data chunk and returns its reference.
func (w *Writer) Data(payload []byte) uint64 {
	if len(payload) == 0 {
		return EmptyData
	}
	off := uint64(w.w.Pos())
	w.w.WriteUint64(uint64(len(payload)))
	w.w.WriteBytes(payload)
	return off | DataBit
}

// Group writes a group and returns its reference.
func (w *Writer) Group(children ...uint64) uint64 {
	if len(children) == 0 {
		return EmptyGroup
	}
	off := uint64(w.w.Pos())
	w.w.WriteUint64(uint64(len(children)))
	for _, c := range children {
		w.w.WriteUint64(c)
	}
	return off
}

// Raw appends bytes verbatim and returns their offset.
func (w *Writer) Raw(b []byte) uint64 {
	off := uint64(w.w.Pos())
	w.w.WriteBytes(b)
	return off
}

// Finish points the header at root and returns the container bytes.
func (w *Writer) Finish(root uint64) []byte {
	w.w.PutUint64At(8, root)
	return w.w.Bytes()
}
