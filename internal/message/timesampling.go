package message

import (
	"fmt"

	"github.com/robert-malhotra/go-alembic/internal/binary"
)

// TimeSampling is one record of the archive's time sampling table.
type TimeSampling struct {
	// MaxSample is the largest number of samples written with this sampling.
	MaxSample uint32

	// TimePerCycle is the cycle length; AcyclicTimePerCycle marks acyclic samplings.
	TimePerCycle float64

	// Times are the stored sample times within one cycle.
	Times []float64
}

// ParseTimeSamplings decodes the time sampling table.
func ParseTimeSamplings(data []byte) ([]TimeSampling, error) {
	r := binary.FromBytes(data)
	var out []TimeSampling

	for r.Remaining() > 0 {
		var ts TimeSampling
		var err error

		if ts.MaxSample, err = r.ReadUint32(); err != nil {
			return nil, fmt.Errorf("time sampling %d: %w", len(out), err)
		}
		if ts.TimePerCycle, err = r.ReadFloat64(); err != nil {
			return nil, fmt.Errorf("time sampling %d: %w", len(out), err)
		}
		count, err := r.ReadUint32()
		if err != nil {
			return nil, fmt.Errorf("time sampling %d: %w", len(out), err)
		}
		if err := r.Check(int64(count) * 8); err != nil {
			return nil, fmt.Errorf("time sampling %d: %w", len(out), err)
		}
		if count == 0 {
			return nil, fmt.Errorf("%w: time sampling %d stores no times", binary.ErrInvalidData, len(out))
		}

		ts.Times = make([]float64, count)
		for i := range ts.Times {
			if ts.Times[i], err = r.ReadFloat64(); err != nil {
				return nil, fmt.Errorf("time sampling %d: %w", len(out), err)
			}
		}
		out = append(out, ts)
	}
	return out, nil
}
