package co2

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalibrationAnchors(t *testing.T) {
	cal := DefaultCalibration()
	require.InDelta(t, 2.95/DCGain, cal.ZeroVolts, 1e-12)
	require.InDelta(t, 2.55/DCGain, cal.MaxVolts, 1e-12)
	require.True(t, cal.Slope() < 0)
	require.Equal(t, DefaultZeroMilliVolts, cal.ZeroMilliVolts())

	ppm, status := cal.Concentration(cal.ZeroVolts)
	require.Equal(t, StatusValid, status)
	require.InDelta(t, ZeroPPM, ppm, 1e-6)

	ppm, status = cal.Concentration(cal.MaxVolts)
	require.Equal(t, StatusValid, status)
	require.InDelta(t, MaxPPM, ppm, 1e-6)

	// Log-linear: the middle voltage is the geometric mean.
	ppm, status = cal.Concentration((cal.ZeroVolts + cal.MaxVolts) / 2)
	require.Equal(t, StatusValid, status)
	require.InDelta(t, math.Sqrt(ZeroPPM*MaxPPM), ppm, 1e-6)
}

func TestCalibrationOutOfRange(t *testing.T) {
	cal := DefaultCalibration()

	ppm, status := cal.Concentration(cal.MaxVolts - 0.001)
	require.Equal(t, StatusSaturated, status)
	require.Equal(t, MaxPPM, ppm)
	_, status = cal.Concentration(0)
	require.Equal(t, StatusSaturated, status)

	ppm, status = cal.Concentration(cal.ZeroVolts + 0.001)
	require.Equal(t, StatusBelowRange, status)
	require.Zero(t, ppm)
}

func TestCalibrationMonotonic(t *testing.T) {
	cal := DefaultCalibration()
	prev := math.Inf(1)
	for v := cal.MaxVolts; v <= cal.ZeroVolts; v += 0.001 {
		ppm, status := cal.Concentration(v)
		require.Equal(t, StatusValid, status)
		require.True(t, ppm < prev, "%f ppm at %f V", ppm, v)
		prev = ppm
	}
}

func TestCalibrationFromMilliVolts(t *testing.T) {
	require.Equal(t, DefaultCalibration(), CalibrationFromMilliVolts(0))
	require.Equal(t, DefaultCalibration(), CalibrationFromMilliVolts(RangeMilliVolts))

	cal := CalibrationFromMilliVolts(3100)
	require.Equal(t, 3100, cal.ZeroMilliVolts())
	require.InDelta(t, 2.7/DCGain, cal.MaxVolts, 1e-12)
	ppm, _ := cal.Concentration(3.1 / DCGain)
	require.InDelta(t, ZeroPPM, ppm, 1e-6)
}

func TestNewCalibrationInvalid(t *testing.T) {
	_, err := NewCalibration(0.3, 0.3)
	require.Equal(t, ErrInvalidCalibration, err)
	_, err = NewCalibration(0.2, 0.3)
	require.Equal(t, ErrInvalidCalibration, err)
	_, err = NewCalibration(0.3, -0.1)
	require.Equal(t, ErrInvalidCalibration, err)
}

func TestRawToVolts(t *testing.T) {
	require.Zero(t, RawToVolts(0))
	require.InDelta(t, 3.32/DCGain, RawToVolts(ADCMaxCount), 1e-12)
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "below-range", StatusBelowRange.String())
	require.Equal(t, "unknown", Status(-1).String())
}
