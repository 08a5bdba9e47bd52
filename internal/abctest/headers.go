package abctest

import (
	"fmt"

	"github.com/robert-malhotra/go-alembic/internal/binary"
)

const inlineMetadata = 0xFF

// PropertyHeaders encodes the headers chunk of a compound property.
func PropertyHeaders(props []*Property) []byte {
	w := binary.NewWriter()
	for _, p := range props {
		_, first, last := compress(p.Samples)
		next := uint32(len(p.Samples))

		hint := sizeHint(next, uint32(len(p.Name)), uint32(len(p.Metadata)), p.TimeSampling, first, last)
		info := uint32(p.Kind) | hint<<2

		metaIndex := uint32(p.MetadataIndex)
		if p.Metadata != "" {
			metaIndex = inlineMetadata
		}
		info |= metaIndex << 20

		explicit := false
		if p.Kind != Compound {
			info |= uint32(p.Pod) << 4
			info |= uint32(p.Extent) << 12
			if p.TimeSampling != 0 {
				info |= 1 << 8
			}
			if p.Homogeneous {
				info |= 1 << 10
			}
			switch {
			case first == 0 && last == 0:
				info |= 1 << 11
			case first != 1 || last != next-1:
				info |= 1 << 9
				explicit = true
			}
		}

		w.WriteUint32(info)
		if p.Kind != Compound {
			putSized(w, hint, next)
			if explicit {
				putSized(w, hint, first)
				putSized(w, hint, last)
			}
			if p.TimeSampling != 0 {
				putSized(w, hint, p.TimeSampling)
			}
		}
		putSized(w, hint, uint32(len(p.Name)))
		w.WriteString(p.Name)
		if metaIndex == inlineMetadata {
			putSized(w, hint, uint32(len(p.Metadata)))
			w.WriteString(p.Metadata)
		}
	}
	return w.Bytes()
}

// ObjectHeaders encodes the child headers chunk of an object, digests included.
func ObjectHeaders(children []*Object) []byte {
	w := binary.NewWriter()
	for _, c := range children {
		w.WriteUint32(uint32(len(c.Name)))
		w.WriteString(c.Name)
		if c.Metadata != "" {
			w.WriteUint8(inlineMetadata)
			w.WriteUint32(uint32(len(c.Metadata)))
			w.WriteString(c.Metadata)
		} else {
			w.WriteUint8(c.MetadataIndex)
		}
	}
	w.WriteBytes(make([]byte, 32))
	return w.Bytes()
}

// TimeSamplings encodes the time sampling table.
func TimeSamplings(ts []TimeSampling) []byte {
	w := binary.NewWriter()
	for _, t := range ts {
		w.WriteUint32(t.MaxSample)
		w.WriteFloat64(t.TimePerCycle)
		w.WriteUint32(uint32(len(t.Times)))
		for _, v := range t.Times {
			w.WriteFloat64(v)
		}
	}
	return w.Bytes()
}

// IndexedMetadata encodes table entries 1 and up.
func IndexedMetadata(entries []string) []byte {
	w := binary.NewWriter()
	for _, e := range entries {
		if len(e) > 255 {
			panic(fmt.Sprintf("abctest: indexed metadata entry of %d bytes", len(e)))
		}
		w.WriteUint8(uint8(len(e)))
		w.WriteString(e)
	}
	return w.Bytes()
}

func sizeHint(vals ...uint32) uint32 {
	var m uint32
	for _, v := range vals {
		m = max(m, v)
	}
	switch {
	case m < 1<<8:
		return 0
	case m < 1<<16:
		return 1
	default:
		return 2
	}
}

func putSized(w *binary.Writer, hint, v uint32) {
	switch hint {
	case 0:
		w.WriteUint8(uint8(v))
	case 1:
		w.WriteUint16(uint16(v))
	default:
		w.WriteUint32(v)
	}
}
