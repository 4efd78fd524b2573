package pms

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/golang/glog"
)

// MeasurementHandler is called when a frame is accepted.
type MeasurementHandler interface {
	HandleMeasurement(context.Context, Measurement)
}

// HandleMeasurementFunc is func type of MeasurementHandler.
type HandleMeasurementFunc func(context.Context, Measurement)

// HandleMeasurement implements MeasurementHandler.
func (f HandleMeasurementFunc) HandleMeasurement(ctx context.Context, m Measurement) {
	f(ctx, m)
}

// RejectHandler is called when a frame is rejected.
type RejectHandler interface {
	FrameRejected(context.Context, ParseResult)
}

// FrameRejectedFunc is func type of RejectHandler.
type FrameRejectedFunc func(context.Context, ParseResult)

// FrameRejected implements RejectHandler.
func (f FrameRejectedFunc) FrameRejected(ctx context.Context, pr ParseResult) {
	f(ctx, pr)
}

// Reader feeds bytes from Source into Decoder.
type Reader struct {
	Source   io.Reader
	Decoder  *Decoder
	Handler  MeasurementHandler
	Rejected RejectHandler

	// ReadTimeout set to true if Source already supports timeout with Read.
	// An empty read or a timeout counts as a retry then.
	ReadTimeout bool
	// MaxRetries is the number of consecutive retries tolerated before
	// Run fails with ErrNoData, 0 for unlimited.
	MaxRetries int
	// RetryDelay is the pause after an empty read.
	RetryDelay time.Duration
}

// DefaultMaxRetries is the retry budget of a Reader in ReadTimeout mode.
const DefaultMaxRetries = 10

// NewReader creates a Reader with its own Decoder.
func NewReader(src io.Reader) *Reader {
	return &Reader{
		Source:     src,
		Decoder:    NewDecoder(),
		MaxRetries: DefaultMaxRetries,
	}
}

// Run reads the Source until error or ctx is canceled.
// The context is checked between bytes.
func (r *Reader) Run(ctx context.Context) error {
	if r.ReadTimeout {
		return r.runWithTimeout(ctx)
	}
	byteCh, errCh := make(chan byte), make(chan error, 1)
	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go r.readLoop(subCtx, byteCh, errCh)
	for {
		select {
		case b := <-byteCh:
			r.ingest(ctx, b)
		case err := <-errCh:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (r *Reader) runWithTimeout(ctx context.Context) error {
	buf := make([]byte, 1)
	retries := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		n, err := r.Source.Read(buf)
		if err != nil && !os.IsTimeout(err) {
			return err
		}
		if n > 0 {
			retries = 0
			r.ingest(ctx, buf[0])
			continue
		}
		retries++
		if r.MaxRetries > 0 && retries >= r.MaxRetries {
			return ErrNoData
		}
		if r.RetryDelay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(r.RetryDelay):
			}
		}
	}
}

func (r *Reader) readLoop(ctx context.Context, byteCh chan byte, errCh chan error) {
	buf := make([]byte, 1)
	for {
		n, err := r.Source.Read(buf)
		if err != nil {
			errCh <- err
			return
		}
		if n == 0 {
			continue
		}
		select {
		case byteCh <- buf[0]:
		case <-ctx.Done():
			return
		}
	}
}

func (r *Reader) ingest(ctx context.Context, b byte) {
	pr := r.Decoder.IngestByte(b)
	switch pr.Result {
	case FrameAccepted:
		if glog.V(2) {
			glog.Infof("frame accepted: %v", pr.Measurement.Fields())
		}
		if h := r.Handler; h != nil {
			h.HandleMeasurement(ctx, *pr.Measurement)
		}
	case FrameRejected:
		if h := r.Rejected; h != nil {
			h.FrameRejected(ctx, pr)
		}
	}
}

// LogRejects returns a RejectHandler logging every n-th rejected frame.
func LogRejects(n int) RejectHandler {
	var count int
	return FrameRejectedFunc(func(ctx context.Context, pr ParseResult) {
		if count%n == 0 {
			if pr.Reason == RejectChecksum {
				glog.Warningf("frame rejected (%d): %s, calc 0x%04x != 0x%04x",
					count+1, pr.Reason, pr.Checksum, pr.Expected)
			} else {
				glog.Warningf("frame rejected (%d): %s", count+1, pr.Reason)
			}
		}
		count++
	})
}
