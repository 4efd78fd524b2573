package pms

import (
	"context"
	"io"
	"time"

	"github.com/golang/glog"
)

// Sensor binds a Reader to the port of a sensor and optionally drives
// the sensor in passive mode.
type Sensor struct {
	Port   io.ReadWriteCloser
	Reader *Reader

	// Passive switches the sensor to passive mode and requests a frame
	// every PollInterval instead of relying on active pushes.
	Passive      bool
	PollInterval time.Duration
}

// NewSensor creates a Sensor on an opened port.
func NewSensor(port io.ReadWriteCloser) *Sensor {
	return &Sensor{Port: port, Reader: NewReader(port), PollInterval: time.Second}
}

// Decoder gets the decoder fed by the sensor.
func (s *Sensor) Decoder() *Decoder {
	return s.Reader.Decoder
}

// Latest returns the most recently accepted measurement.
func (s *Sensor) Latest() (Measurement, bool) {
	return s.Reader.Decoder.Latest()
}

// Send writes a command to the sensor.
func (s *Sensor) Send(cmd Command) error {
	_, err := cmd.WriteTo(s.Port)
	return err
}

// Run implements Runnable. The port is closed on return.
// ErrNoData from the Reader is logged and reading resumes, the sensor may
// just be slow or sleeping.
func (s *Sensor) Run(ctx context.Context) error {
	defer s.Port.Close()
	if s.Passive {
		if err := s.Send(CmdPassiveMode); err != nil {
			return err
		}
		pollCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go s.poll(pollCtx)
	}
	for {
		err := s.Reader.Run(ctx)
		if err != ErrNoData {
			return err
		}
		glog.Warning("no data from sensor, waiting")
		s.Reader.Decoder.Reset()
	}
}

func (s *Sensor) poll(ctx context.Context) {
	interval := s.PollInterval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Send(CmdRead); err != nil {
				glog.Warningf("request frame error: %v", err)
			}
		}
	}
}
