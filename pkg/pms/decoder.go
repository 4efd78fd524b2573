package pms

import (
	"sync"
	"sync/atomic"
)

// Decoder wraps Parser for use between a producer feeding bytes
// and consumers reading the latest measurement.
type Decoder struct {
	lock   sync.Mutex
	parser Parser
	stats  Stats

	latest atomic.Value // *Measurement
}

// Stats counts frame results since the Decoder was created.
type Stats struct {
	Accepted   uint64
	Checksum   uint64
	Oversized  uint64
	Undersized uint64
}

// Rejected is the total count of rejected frames.
func (s Stats) Rejected() uint64 {
	return s.Checksum + s.Oversized + s.Undersized
}

// NewDecoder creates a Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// IngestByte consumes one byte. It never blocks beyond the short
// critical section around the parser.
func (d *Decoder) IngestByte(b byte) ParseResult {
	d.lock.Lock()
	pr := d.parser.Parse(b)
	switch pr.Result {
	case FrameAccepted:
		m := *pr.Measurement
		d.latest.Store(&m)
		d.stats.Accepted++
	case FrameRejected:
		switch pr.Reason {
		case RejectChecksum:
			d.stats.Checksum++
		case RejectOversized:
			d.stats.Oversized++
		case RejectUndersized:
			d.stats.Undersized++
		}
	}
	d.lock.Unlock()
	return pr
}

// Ingest consumes all bytes and returns the number of accepted frames.
func (d *Decoder) Ingest(p []byte) (accepted int) {
	for _, b := range p {
		if d.IngestByte(b).Result == FrameAccepted {
			accepted++
		}
	}
	return
}

// Latest returns a copy of the most recently accepted measurement.
// ok is false if no frame has been accepted yet.
func (d *Decoder) Latest() (m Measurement, ok bool) {
	if p, _ := d.latest.Load().(*Measurement); p != nil {
		return *p, true
	}
	return
}

// State gets the current sync state.
func (d *Decoder) State() SyncState {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.parser.State()
}

// Stats gets a snapshot of the frame counters.
func (d *Decoder) Stats() Stats {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.stats
}

// Reset drops the partial frame, if any. The latest measurement is kept.
func (d *Decoder) Reset() {
	d.lock.Lock()
	d.parser.Reset()
	d.lock.Unlock()
}
