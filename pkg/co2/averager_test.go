package co2

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Raw samples of the default calibration, see RawToVolts.
const (
	rawValid      int16 = 3400
	rawSaturated  int16 = 3000
	rawBelowRange int16 = 3700
)

func TestAveragerUnavailable(t *testing.T) {
	a := NewAverager(8, DefaultCalibration())
	r := a.ComputeReading()
	require.Equal(t, StatusUnavailable, r.Status)
	require.False(t, r.Available())
	require.Zero(t, r.Samples)
}

func TestAveragerConstantSamples(t *testing.T) {
	cal := DefaultCalibration()
	for _, n := range []int{1, 7, 8, 100} {
		a := NewAverager(8, cal)
		for i := 0; i < n; i++ {
			a.PushSample(rawValid)
		}
		r := a.ComputeReading()
		require.Equal(t, float64(rawValid), r.Mean)
		require.Equal(t, StatusValid, r.Status)
		expected, _ := cal.Concentration(RawToVolts(float64(rawValid)))
		require.Equal(t, expected, r.PPM)
		require.True(t, r.PPM > ZeroPPM && r.PPM < MaxPPM)
		require.Equal(t, r, a.ComputeReading())
	}
}

func TestAveragerStatus(t *testing.T) {
	a := NewAverager(4, DefaultCalibration())
	a.PushSample(rawSaturated)
	r := a.ComputeReading()
	require.Equal(t, StatusSaturated, r.Status)
	require.Equal(t, MaxPPM, r.PPM)

	a.Reset()
	a.PushSample(rawBelowRange)
	require.Equal(t, StatusBelowRange, a.ComputeReading().Status)
}

func TestAveragerWindow(t *testing.T) {
	a := NewAverager(4, DefaultCalibration())
	for i := 0; i < 4; i++ {
		a.PushSample(0)
	}
	require.Equal(t, StatusSaturated, a.ComputeReading().Status)
	for i := 0; i < 4; i++ {
		a.PushSample(rawValid)
	}
	r := a.ComputeReading()
	require.Equal(t, float64(rawValid), r.Mean)
	require.Equal(t, 4, r.Samples)
	require.Equal(t, []int16{rawValid, rawValid, rawValid, rawValid}, a.Snapshot())
}

func TestAveragerRecalibrate(t *testing.T) {
	a := NewAverager(4, DefaultCalibration())
	a.PushSample(rawBelowRange)
	require.Equal(t, StatusBelowRange, a.ComputeReading().Status)

	// Zero point at the amplified output of rawBelowRange.
	mv := int(RawToVolts(float64(rawBelowRange)) * DCGain * 1000)
	cal := a.Recalibrate(mv + 1)
	require.Equal(t, cal, a.Calibration())
	r := a.ComputeReading()
	require.Equal(t, StatusValid, r.Status)
	require.InDelta(t, ZeroPPM, r.PPM, 20)

	// Readings with an explicit Calibration leave the current one.
	require.Equal(t, StatusBelowRange, a.ComputeReadingWith(DefaultCalibration()).Status)
	require.Equal(t, cal, a.Calibration())
}

func TestAveragerConcurrent(t *testing.T) {
	a := NewAverager(64, DefaultCalibration())
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 10000; i++ {
			a.PushSample(rawValid)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if r := a.ComputeReading(); r.Available() {
				assert.Equal(t, float64(rawValid), r.Mean)
			}
			if i%100 == 0 {
				a.Recalibrate(DefaultZeroMilliVolts)
			}
		}
	}()
	wg.Wait()
	require.Equal(t, 64, a.Len())
}
