package alembic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-alembic/internal/abctest"
)

func TestParseMetadata(t *testing.T) {
	tests := []struct {
		in      string
		want    map[string]string
		wantErr bool
	}{
		{"", nil, false},
		{"a=1", map[string]string{"a": "1"}, false},
		{"a=1;b=2", map[string]string{"a": "1", "b": "2"}, false},
		{"a=1;", map[string]string{"a": "1"}, false},
		{";;a=1;;", map[string]string{"a": "1"}, false},
		{"expr=x=y", map[string]string{"expr": "x=y"}, false},
		{"empty=", map[string]string{"empty": ""}, false},
		{"a=1;a=2", map[string]string{"a": "2"}, false},
		{"novalue", nil, true},
		{"a=1;b", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, err := ParseMetadata(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidData)
				return
			}
			require.NoError(t, err)
			assert.True(t, NewMetadata(tt.want).Equal(m), "got %v", m)
		})
	}
}

func TestMetadataAccessors(t *testing.T) {
	m := NewMetadata(map[string]string{"b": "2", "a": "1", "c": ""})

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, []string{"a", "b", "c"}, m.Keys())
	assert.Equal(t, "a=1;b=2;c=", m.Serialize())
	assert.Equal(t, m.Serialize(), m.String())

	v, ok := m.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "2", v)
	_, ok = m.Get("z")
	assert.False(t, ok)

	var zero Metadata
	assert.Equal(t, 0, zero.Len())
	assert.Empty(t, zero.Keys())
	assert.Equal(t, "", zero.Serialize())
	assert.True(t, zero.Equal(NewMetadata(nil)))
}

func TestReadIndexedMetadataRoundTrip(t *testing.T) {
	mappings := []map[string]string{
		{"schema": "AbcGeom_PolyMesh_v1"},
		{"interpretation": "point", "geoScope": "vtx"},
		{"a": "", "b": "with spaces", "c": "ünïcödé"},
	}

	for _, pairs := range mappings {
		m := NewMetadata(pairs)
		table, err := ReadIndexedMetadata(abctest.IndexedMetadata([]string{m.Serialize()}))
		require.NoError(t, err)
		require.Len(t, table, 2)
		assert.Equal(t, 0, table[0].Len())
		assert.True(t, m.Equal(table[1]), "got %v, want %v", table[1], m)
	}
}

func TestReadIndexedMetadata(t *testing.T) {
	table, err := ReadIndexedMetadata(nil)
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Equal(t, 0, table[0].Len())

	table, err = ReadIndexedMetadata(abctest.IndexedMetadata([]string{"a=1", "", "b=2;c=3"}))
	require.NoError(t, err)
	require.Len(t, table, 4)
	assert.Equal(t, 0, table[2].Len())
	assert.Equal(t, []string{"b", "c"}, table[3].Keys())
}

func TestReadIndexedMetadataErrors(t *testing.T) {
	valid := abctest.IndexedMetadata([]string{"a=1", "b=2"})

	tests := []struct {
		name string
		data []byte
	}{
		{"truncated trailing entry", append(append([]byte{}, valid...), 5, 'c', '=')},
		{"truncated payload", valid[:len(valid)-1]},
		{"invalid utf8", []byte{3, 'a', '=', 0xff}},
		{"missing equals", append(append([]byte{}, valid...), 1, 'x')},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ReadIndexedMetadata(tt.data)
			assert.ErrorIs(t, err, ErrInvalidData)
			assert.Nil(t, table)
		})
	}
}
