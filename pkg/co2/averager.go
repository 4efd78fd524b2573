package co2

import (
	"sync"
	"sync/atomic"
)

// Averager is the SampleRing shared between a sampling producer and
// consumers computing readings. The Calibration is swapped atomically.
type Averager struct {
	lock sync.Mutex
	ring *SampleRing

	calibration atomic.Value // Calibration
}

// NewAverager creates an Averager.
func NewAverager(capacity int, cal Calibration) *Averager {
	a := &Averager{ring: NewSampleRing(capacity)}
	a.calibration.Store(cal)
	return a
}

// PushSample inserts a raw sample. Failed reads must be filtered
// out by the caller.
func (a *Averager) PushSample(raw int16) {
	a.lock.Lock()
	a.ring.Push(raw)
	a.lock.Unlock()
}

// Len is the number of samples to be averaged.
func (a *Averager) Len() int {
	a.lock.Lock()
	defer a.lock.Unlock()
	return a.ring.Len()
}

// Snapshot copies the samples, oldest first.
func (a *Averager) Snapshot() []int16 {
	a.lock.Lock()
	defer a.lock.Unlock()
	return a.ring.Snapshot()
}

// Reset drops all samples.
func (a *Averager) Reset() {
	a.lock.Lock()
	a.ring.Reset()
	a.lock.Unlock()
}

// Calibration gets the current Calibration.
func (a *Averager) Calibration() Calibration {
	return a.calibration.Load().(Calibration)
}

// SetCalibration replaces the Calibration used by following readings.
func (a *Averager) SetCalibration(cal Calibration) {
	a.calibration.Store(cal)
}

// Recalibrate replaces the Calibration with one derived from the
// amplified output in mV at ZeroPPM.
func (a *Averager) Recalibrate(zeroMilliVolts int) Calibration {
	cal := CalibrationFromMilliVolts(zeroMilliVolts)
	a.SetCalibration(cal)
	return cal
}

// ComputeReading averages samples with the current Calibration.
func (a *Averager) ComputeReading() Reading {
	return a.ComputeReadingWith(a.Calibration())
}

// ComputeReadingWith averages samples with the specified Calibration.
func (a *Averager) ComputeReadingWith(cal Calibration) Reading {
	a.lock.Lock()
	mean, ok := a.ring.Mean()
	samples := a.ring.Len()
	a.lock.Unlock()
	if !ok {
		return Reading{Status: StatusUnavailable}
	}
	r := Reading{Mean: mean, Samples: samples, Volts: RawToVolts(mean)}
	r.PPM, r.Status = cal.Concentration(r.Volts)
	return r
}
