package co2

import (
	"context"
	"time"

	"github.com/golang/glog"
)

// SampleError is the raw value reported by a SampleSource on a failed read.
// Any negative value is treated as a failure.
const SampleError int16 = -9999

// SampleSource provides raw samples in the 12-bit domain.
type SampleSource interface {
	ReadSample() (int16, error)
}

// ReadSampleFunc is func type of SampleSource.
type ReadSampleFunc func() (int16, error)

// ReadSample implements SampleSource.
func (f ReadSampleFunc) ReadSample() (int16, error) {
	return f()
}

// Sampler defaults.
const (
	DefaultSampleInterval = 10 * time.Microsecond
	DefaultErrorBackoff   = 10 * time.Millisecond
	DefaultMaxErrors      = 100
)

// Sampler pushes samples from Source into Averager.
type Sampler struct {
	Source   SampleSource
	Averager *Averager

	// Interval is the pause after a good sample.
	Interval time.Duration
	// ErrorBackoff is the pause after a failed read.
	ErrorBackoff time.Duration
	// MaxErrors is the number of consecutive failures after which
	// the Averager is cleared, so a dead sensor doesn't report a stale mean.
	MaxErrors int
}

// NewSampler creates a Sampler with defaults.
func NewSampler(src SampleSource, avg *Averager) *Sampler {
	return &Sampler{
		Source:       src,
		Averager:     avg,
		Interval:     DefaultSampleInterval,
		ErrorBackoff: DefaultErrorBackoff,
		MaxErrors:    DefaultMaxErrors,
	}
}

// Run implements Runnable. It stops when ctx is canceled, checking between samples.
func (s *Sampler) Run(ctx context.Context) error {
	var errs int
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		v, err := s.Source.ReadSample()
		if err == nil && v >= 0 {
			errs = 0
			s.Averager.PushSample(v)
			if err := sleep(ctx, s.Interval); err != nil {
				return err
			}
			continue
		}
		errs++
		if err != nil && glog.V(2) {
			glog.Infof("read sample error: %v", err)
		}
		if s.MaxErrors > 0 && errs >= s.MaxErrors {
			if errs == s.MaxErrors {
				glog.Warningf("%d consecutive sample errors, samples dropped", errs)
			}
			s.Averager.Reset()
		}
		if err := sleep(ctx, s.ErrorBackoff); err != nil {
			return err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
