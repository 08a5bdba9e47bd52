package geom

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-alembic/alembic"
	"github.com/robert-malhotra/go-alembic/internal/abctest"
	"github.com/robert-malhotra/go-alembic/internal/dtype"
)

func openArchive(t *testing.T, a *abctest.Archive) *alembic.Archive {
	t.Helper()
	b := a.Bytes()
	arc, err := alembic.OpenReader(bytes.NewReader(b), int64(len(b)))
	require.NoError(t, err)
	t.Cleanup(func() { arc.Close() })
	return arc
}

// topProps opens an archive whose top object holds props.
func topProps(t *testing.T, props ...*abctest.Property) *alembic.CompoundProperty {
	t.Helper()
	arc := openArchive(t, &abctest.Archive{
		ArchiveVersion: 1,
		LibraryVersion: 10709,
		Top:            &abctest.Object{Name: "ABC", Properties: props},
	})
	top, err := arc.Top()
	require.NoError(t, err)
	return top.Properties()
}

func openSceneObject(t *testing.T, path string) *alembic.Object {
	t.Helper()
	arc := openArchive(t, abctest.Scene())
	obj, err := arc.OpenObject(path)
	require.NoError(t, err)
	return obj
}

func bounds(name string, vals ...float64) *abctest.Property {
	var samples [][]byte
	for i := 0; i+6 <= len(vals); i += 6 {
		samples = append(samples, abctest.Pack(vals[i:i+6]...))
	}
	return &abctest.Property{Name: name, Kind: abctest.Scalar, Pod: dtype.F64, Extent: 6, Samples: samples}
}

func compound(name string, props ...*abctest.Property) *abctest.Property {
	return &abctest.Property{Name: name, Kind: abctest.Compound, Properties: props}
}
