package co2

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/golang/glog"
)

// Sensor binds the sampling loop, the averaged samples and the
// calibration store of a CO2 sensor.
type Sensor struct {
	Averager *Averager
	Sampler  *Sampler
	Store    *Store
	// ADC is closed when Run returns, optional.
	ADC io.Closer

	lock   sync.RWMutex
	record Record
}

// NewSensor creates a Sensor sampling src with the persisted Record.
func NewSensor(src SampleSource, capacity int, store *Store, record Record) *Sensor {
	avg := NewAverager(capacity, record.Calibration())
	return &Sensor{
		Averager: avg,
		Sampler:  NewSampler(src, avg),
		Store:    store,
		record:   record,
	}
}

// Run implements Runnable.
func (s *Sensor) Run(ctx context.Context) error {
	if s.ADC != nil {
		defer s.ADC.Close()
	}
	return s.Sampler.Run(ctx)
}

// Reading computes the current reading.
func (s *Sensor) Reading() Reading {
	return s.Averager.ComputeReading()
}

// Record gets the calibration Record in use.
func (s *Sensor) Record() Record {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.record
}

// Calibrate persists a new zero point and applies it to following readings.
func (s *Sensor) Calibrate(zeroMilliVolts int) (Record, error) {
	if zeroMilliVolts <= RangeMilliVolts || zeroMilliVolts > MaxZeroMilliVolts {
		return Record{}, fmt.Errorf("zero point %d mV out of range (%d, %d]",
			zeroMilliVolts, RangeMilliVolts, MaxZeroMilliVolts)
	}
	rec := RecordFromMilliVolts(zeroMilliVolts)
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.Store != nil {
		if err := s.Store.Save(rec); err != nil {
			return Record{}, fmt.Errorf("save calibration: %v", err)
		}
	}
	s.record = rec
	s.Averager.SetCalibration(rec.Calibration())
	glog.Infof("calibrated: zero %d mV, max %d mV", rec.ZeroMilliVolts, rec.MaxMilliVolts)
	return rec, nil
}
