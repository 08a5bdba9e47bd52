package message

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-alembic/internal/abctest"
	"github.com/robert-malhotra/go-alembic/internal/binary"
)

func TestParseTimeSamplings(t *testing.T) {
	data := abctest.TimeSamplings([]abctest.TimeSampling{
		{MaxSample: 1, TimePerCycle: 1, Times: []float64{0}},
		{MaxSample: 24, TimePerCycle: 1.0 / 24, Times: []float64{1}},
		{MaxSample: 3, TimePerCycle: abctest.AcyclicTimePerCycle, Times: []float64{0, 0.5, 2}},
	})

	ts, err := ParseTimeSamplings(data)
	require.NoError(t, err)
	require.Len(t, ts, 3)

	assert.Equal(t, uint32(24), ts[1].MaxSample)
	assert.InDelta(t, 1.0/24, ts[1].TimePerCycle, 1e-12)
	assert.Equal(t, []float64{1}, ts[1].Times)
	assert.Equal(t, []float64{0, 0.5, 2}, ts[2].Times)
}

func TestParseTimeSamplingsErrors(t *testing.T) {
	full := abctest.TimeSamplings([]abctest.TimeSampling{{MaxSample: 1, TimePerCycle: 1, Times: []float64{0, 1}}})

	w := binary.NewWriter()
	w.WriteUint32(1)
	w.WriteFloat64(1)
	w.WriteUint32(0)
	noTimes := w.Bytes()

	tests := []struct {
		name string
		data []byte
	}{
		{"truncated times", full[:len(full)-4]},
		{"truncated record", full[:6]},
		{"no stored times", noTimes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTimeSamplings(tt.data)
			require.Error(t, err)
			assert.True(t, errors.Is(err, binary.ErrInvalidData), "got %v", err)
		})
	}
}
