package co2

import (
	"math"
)

// Analog front end and MG811 curve constants.
const (
	// ADCMaxCount is the full scale of the 12-bit sample domain.
	ADCMaxCount = 4096.0
	// ADCRefMilliVolts is the reference voltage of the sample domain.
	ADCRefMilliVolts = 3320.0
	// DCGain is the amplifier gain between the sensor and the ADC.
	DCGain = 8.5

	// DefaultZeroMilliVolts is the amplified output at ZeroPPM.
	DefaultZeroMilliVolts = 2950
	// RangeMilliVolts is the amplified drop from ZeroPPM to MaxPPM.
	RangeMilliVolts = 400
	// MaxZeroMilliVolts bounds the zero point accepted from operators.
	MaxZeroMilliVolts = 5000

	// ZeroPPM is the concentration at the zero point (fresh air).
	ZeroPPM = 400.0
	// MaxPPM is the concentration at the max point, readings saturate here.
	MaxPPM = 10000.0
)

// Status tells how a Reading should be interpreted.
type Status int

const (
	// StatusUnavailable means no sample is collected.
	StatusUnavailable Status = iota
	// StatusValid means the voltage is within the calibrated range.
	StatusValid
	// StatusSaturated means the concentration is at or beyond MaxPPM.
	StatusSaturated
	// StatusBelowRange means the concentration is below ZeroPPM, which is
	// under the minimum the sensor detects.
	StatusBelowRange
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusUnavailable:
		return "unavailable"
	case StatusValid:
		return "valid"
	case StatusSaturated:
		return "saturated"
	case StatusBelowRange:
		return "below-range"
	}
	return "unknown"
}

// Calibration is the pair of sensor voltages (after removing DCGain) at
// ZeroPPM and MaxPPM, with the derived slope in log10(ppm) space.
type Calibration struct {
	ZeroVolts float64
	MaxVolts  float64

	slope float64
}

// NewCalibration creates a Calibration from the voltage anchors.
func NewCalibration(zeroVolts, maxVolts float64) (Calibration, error) {
	if !(zeroVolts > maxVolts) || maxVolts < 0 {
		return Calibration{}, ErrInvalidCalibration
	}
	return Calibration{
		ZeroVolts: zeroVolts,
		MaxVolts:  maxVolts,
		slope:     (zeroVolts - maxVolts) / (math.Log10(ZeroPPM) - math.Log10(MaxPPM)),
	}, nil
}

// CalibrationFromMilliVolts creates the Calibration from the amplified
// output in mV measured at ZeroPPM. Values not above RangeMilliVolts,
// including 0 for unset, select DefaultZeroMilliVolts.
func CalibrationFromMilliVolts(zeroMilliVolts int) Calibration {
	if zeroMilliVolts <= RangeMilliVolts {
		zeroMilliVolts = DefaultZeroMilliVolts
	}
	cal, err := NewCalibration(
		float64(zeroMilliVolts)/1000/DCGain,
		float64(zeroMilliVolts-RangeMilliVolts)/1000/DCGain)
	if err != nil {
		panic(err)
	}
	return cal
}

// DefaultCalibration is the Calibration from the datasheet.
func DefaultCalibration() Calibration {
	return CalibrationFromMilliVolts(DefaultZeroMilliVolts)
}

// Slope is the voltage change per decade of concentration. It's negative
// as the output drops when CO2 rises.
func (c Calibration) Slope() float64 {
	return c.slope
}

// ZeroMilliVolts converts ZeroVolts back to the amplified output in mV.
func (c Calibration) ZeroMilliVolts() int {
	return int(math.Round(c.ZeroVolts * DCGain * 1000))
}

// Concentration converts the sensor voltage to ppm.
// The voltage is expected after removing DCGain, see RawToVolts.
func (c Calibration) Concentration(volts float64) (float64, Status) {
	switch {
	case volts < c.MaxVolts:
		return MaxPPM, StatusSaturated
	case volts > c.ZeroVolts:
		return 0, StatusBelowRange
	}
	return math.Pow(10, math.Log10(ZeroPPM)+(volts-c.ZeroVolts)/c.slope), StatusValid
}

// RawToVolts converts a value in the 12-bit sample domain to sensor volts.
func RawToVolts(raw float64) float64 {
	return raw * ADCRefMilliVolts / ADCMaxCount / 1000 / DCGain
}

// Reading is a concentration computed from the averaged samples.
type Reading struct {
	PPM    float64
	Status Status
	// Volts is the sensor voltage of Mean.
	Volts float64
	// Mean is the average raw sample.
	Mean float64
	// Samples is the number of samples averaged.
	Samples int
}

// Available tells if the reading carries a concentration.
func (r Reading) Available() bool {
	return r.Status != StatusUnavailable
}
