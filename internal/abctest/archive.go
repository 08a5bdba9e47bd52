package abctest

import (
	"bytes"
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/robert-malhotra/go-alembic/internal/dtype"
)

// Kind is the structural kind of a property.
type Kind uint8

const (
	Compound Kind = iota
	Scalar
	Array
)

// AcyclicTimePerCycle marks an acyclic time sampling.
const AcyclicTimePerCycle = math.MaxFloat64 / 32

// TimeSampling is one entry of the time sampling table.
type TimeSampling struct {
	MaxSample    uint32
	TimePerCycle float64
	Times        []float64
}

// Property describes one property and its samples.
type Property struct {
	Name string
	Kind Kind

	Pod    dtype.PodType
	Extent uint8

	// Metadata is written inline when set; otherwise MetadataIndex is used.
	Metadata      string
	MetadataIndex uint8

	TimeSampling uint32
	Homogeneous  bool

	// Samples are the logical sample payloads, without digests.
	Samples [][]byte
	// Dims holds per-sample array dimensions. Missing entries are written empty.
	Dims [][]uint64

	Properties []*Property
}

// Object describes one object and its subtree.
type Object struct {
	Name string

	Metadata      string
	MetadataIndex uint8

	Properties []*Property
	Children   []*Object
}

// Archive describes a complete Alembic archive.
type Archive struct {
	ArchiveVersion uint32
	LibraryVersion uint32

	// Metadata is the serialized archive metadata.
	Metadata string
	// IndexedMetadata lists table entries 1 and up.
	IndexedMetadata []string
	// TimeSamplings defaults to the identity sampling when nil.
	TimeSamplings []TimeSampling

	Top *Object
}

// Bytes serializes the archive.
func (a *Archive) Bytes() []byte {
	w := NewWriter()

	top := a.Top
	if top == nil {
		top = &Object{Name: "ABC"}
	}
	topRef := writeObject(w, top)

	ts := a.TimeSamplings
	if ts == nil {
		ts = []TimeSampling{{MaxSample: 0, TimePerCycle: 1, Times: []float64{0}}}
	}

	root := w.Group(
		w.Data(Pack(a.ArchiveVersion)),
		w.Data(Pack(a.LibraryVersion)),
		topRef,
		w.Data([]byte(a.Metadata)),
		w.Data(TimeSamplings(ts)),
		w.Data(IndexedMetadata(a.IndexedMetadata)),
	)
	return w.Finish(root)
}

func writeObject(w *Writer, o *Object) uint64 {
	children := []uint64{writeCompound(w, o.Properties)}
	for _, c := range o.Children {
		children = append(children, writeObject(w, c))
	}
	children = append(children, w.Data(ObjectHeaders(o.Children)))
	return w.Group(children...)
}

func writeCompound(w *Writer, props []*Property) uint64 {
	if len(props) == 0 {
		return EmptyGroup
	}
	children := make([]uint64, 0, len(props)+1)
	for _, p := range props {
		children = append(children, writeProperty(w, p))
	}
	children = append(children, w.Data(PropertyHeaders(props)))
	return w.Group(children...)
}

func writeProperty(w *Writer, p *Property) uint64 {
	if p.Kind == Compound {
		return writeCompound(w, p.Properties)
	}

	stored, _, _ := compress(p.Samples)
	var children []uint64
	for _, k := range stored {
		children = append(children, w.Data(Digested(p.Samples[k])))
		if p.Kind == Array {
			var dims []byte
			if k < len(p.Dims) && len(p.Dims[k]) > 0 {
				dims = Pack(p.Dims[k]...)
			}
			children = append(children, w.Data(dims))
		}
	}
	return w.Group(children...)
}

// compress returns the logical indices of the samples to store and the
// first and last changed indices.
func compress(samples [][]byte) (stored []int, first, last uint32) {
	if len(samples) == 0 {
		return nil, 0, 0
	}
	stored = []int{0}
	found := false
	for i := 1; i < len(samples); i++ {
		if bytes.Equal(samples[i], samples[i-1]) {
			continue
		}
		if !found {
			first = uint32(i)
			found = true
		}
		last = uint32(i)
	}
	if !found {
		return stored, 0, 0
	}
	for i := first; i <= last; i++ {
		stored = append(stored, int(i))
	}
	return stored, first, last
}

// Digested prefixes payload with its 16-byte digest.
func Digested(payload []byte) []byte {
	sum := md5.Sum(payload)
	return append(sum[:], payload...)
}

// Pack encodes values little-endian.
func Pack[T any](vals ...T) []byte {
	b, err := binary.Append(nil, binary.LittleEndian, vals)
	if err != nil {
		panic(fmt.Sprintf("abctest: packing %T: %v", vals, err))
	}
	return b
}

// Strings encodes NUL-terminated strings.
func Strings(vals ...string) []byte {
	var b []byte
	for _, s := range vals {
		b = append(b, s...)
		b = append(b, 0)
	}
	return b
}
