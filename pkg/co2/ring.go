package co2

// DefaultCapacity is the number of samples averaged.
const DefaultCapacity = 1024

// SampleRing is a fixed capacity circular buffer of raw samples.
// The oldest samples are overwritten once the ring is full.
// It's not safe for concurrent use, see Averager.
type SampleRing struct {
	samples []int16
	next    int
	filled  int
}

// NewSampleRing creates a SampleRing, DefaultCapacity is used if
// capacity is not positive.
func NewSampleRing(capacity int) *SampleRing {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &SampleRing{samples: make([]int16, capacity)}
}

// Push inserts a sample.
func (r *SampleRing) Push(v int16) {
	r.samples[r.next] = v
	if r.next++; r.next >= len(r.samples) {
		r.next = 0
	}
	if r.filled < len(r.samples) {
		r.filled++
	}
}

// Len is the number of valid samples.
func (r *SampleRing) Len() int {
	return r.filled
}

// Cap is the capacity.
func (r *SampleRing) Cap() int {
	return len(r.samples)
}

// Full tells if the ring has wrapped.
func (r *SampleRing) Full() bool {
	return r.filled == len(r.samples)
}

// Mean is the arithmetic mean of valid samples, ok is false when empty.
func (r *SampleRing) Mean() (mean float64, ok bool) {
	if r.filled == 0 {
		return 0, false
	}
	// Before wrapping, valid samples are always at the head.
	var sum int64
	for _, v := range r.samples[:r.filled] {
		sum += int64(v)
	}
	return float64(sum) / float64(r.filled), true
}

// Snapshot copies valid samples, oldest first.
func (r *SampleRing) Snapshot() []int16 {
	out := make([]int16, 0, r.filled)
	if r.Full() {
		out = append(out, r.samples[r.next:]...)
		return append(out, r.samples[:r.next]...)
	}
	return append(out, r.samples[:r.filled]...)
}

// Reset drops all samples.
func (r *SampleRing) Reset() {
	r.next, r.filled = 0, 0
}
