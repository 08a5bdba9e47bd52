package alembic

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/robert-malhotra/go-alembic/internal/message"
)

// AcyclicTimePerCycle is the cycle length that marks an acyclic sampling.
const AcyclicTimePerCycle = math.MaxFloat64 / 32

// timeEpsilon absorbs rounding when a time lands exactly on a sample.
const timeEpsilon = 1e-9

// TimeSamplingType classifies how sample indices map to times.
type TimeSamplingType int

const (
	// Uniform samples are evenly spaced from a start time.
	Uniform TimeSamplingType = iota
	// Cyclic samples repeat a fixed pattern of times every cycle.
	Cyclic
	// Acyclic samples list every time explicitly.
	Acyclic
)

func (t TimeSamplingType) String() string {
	switch t {
	case Uniform:
		return "uniform"
	case Cyclic:
		return "cyclic"
	case Acyclic:
		return "acyclic"
	default:
		return fmt.Sprintf("TimeSamplingType(%d)", int(t))
	}
}

// TimeSampling maps sample indices to times.
type TimeSampling struct {
	kind         TimeSamplingType
	maxSample    uint32
	timePerCycle float64
	times        []float64
}

// identityTimeSampling is used when an archive stores no samplings.
func identityTimeSampling() *TimeSampling {
	return &TimeSampling{kind: Uniform, timePerCycle: 1, times: []float64{0}}
}

func newTimeSampling(rec message.TimeSampling) *TimeSampling {
	ts := &TimeSampling{
		maxSample:    rec.MaxSample,
		timePerCycle: rec.TimePerCycle,
		times:        rec.Times,
	}
	switch {
	case rec.TimePerCycle == AcyclicTimePerCycle:
		ts.kind = Acyclic
	case len(rec.Times) == 1:
		ts.kind = Uniform
	default:
		ts.kind = Cyclic
	}
	return ts
}

// Type returns the sampling kind.
func (ts *TimeSampling) Type() TimeSamplingType {
	return ts.kind
}

// TimePerCycle returns the cycle length. It is meaningless for acyclic samplings.
func (ts *TimeSampling) TimePerCycle() float64 {
	return ts.timePerCycle
}

// MaxSample returns the largest sample count written with this sampling.
func (ts *TimeSampling) MaxSample() uint32 {
	return ts.maxSample
}

// NumStoredTimes returns the number of stored times.
func (ts *TimeSampling) NumStoredTimes() int {
	return len(ts.times)
}

// StoredTimes returns a copy of the stored times.
func (ts *TimeSampling) StoredTimes() []float64 {
	return slices.Clone(ts.times)
}

// SampleTime returns the time of sample i.
func (ts *TimeSampling) SampleTime(i int) (float64, error) {
	if i < 0 {
		return 0, fmt.Errorf("%w: %d", ErrSampleOutOfRange, i)
	}
	n := len(ts.times)
	switch ts.kind {
	case Acyclic:
		if i >= n {
			return 0, fmt.Errorf("%w: %d of %d acyclic times", ErrSampleOutOfRange, i, n)
		}
		return ts.times[i], nil
	case Uniform:
		return ts.times[0] + float64(i)*ts.timePerCycle, nil
	default:
		return float64(i/n)*ts.timePerCycle + ts.times[i%n], nil
	}
}

// FloorIndex returns the last of the first numSamples samples whose time is
// not after t, along with that sample's time. Times before the first sample
// clamp to sample 0.
func (ts *TimeSampling) FloorIndex(t float64, numSamples int) (int, float64) {
	if numSamples < 1 || len(ts.times) == 0 {
		return 0, 0
	}
	if ts.kind != Acyclic && !(ts.timePerCycle > 0) {
		return 0, ts.times[0]
	}

	var idx int
	switch ts.kind {
	case Acyclic:
		n := min(numSamples, len(ts.times))
		idx = sort.Search(n, func(j int) bool { return ts.times[j] > t+timeEpsilon }) - 1
	case Uniform:
		idx = int(math.Floor((t-ts.times[0])/ts.timePerCycle + timeEpsilon))
	default:
		first := ts.times[0]
		cycle := math.Floor((t - first) / ts.timePerCycle)
		local := t - cycle*ts.timePerCycle
		j := sort.Search(len(ts.times), func(j int) bool { return ts.times[j] > local+timeEpsilon }) - 1
		idx = int(cycle)*len(ts.times) + j
	}

	idx = max(0, min(idx, numSamples-1))
	if ts.kind == Acyclic {
		idx = min(idx, len(ts.times)-1)
	}
	st, _ := ts.SampleTime(idx)
	return idx, st
}
