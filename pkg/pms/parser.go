package pms

import "encoding/binary"

// Parser assembles frames from bytes received.
// It's not safe for concurrent use, see Decoder.
type Parser struct {
	state    SyncState
	buf      [MaxFrameLen]byte
	pos      int
	frameLen int
	sum      uint16
}

// SyncState indicates the progress toward a frame.
type SyncState int

const (
	// SyncSearching means waiting for start character 1.
	SyncSearching SyncState = iota
	// SyncStart1 means start character 1 received, waiting for start character 2.
	SyncStart1
	// SyncInFrame means the start sequence is received and the frame is being assembled.
	SyncInFrame
)

// String implements fmt.Stringer.
func (s SyncState) String() string {
	switch s {
	case SyncSearching:
		return "searching"
	case SyncStart1:
		return "start1"
	case SyncInFrame:
		return "in-frame"
	}
	return "unknown"
}

// FrameResult is the outcome of consuming one byte.
type FrameResult int

const (
	// FrameIncomplete means no frame completed with this byte.
	FrameIncomplete FrameResult = iota
	// FrameAccepted means a frame completed and the checksum matched.
	FrameAccepted
	// FrameRejected means a frame was dropped, see RejectReason.
	FrameRejected
)

// String implements fmt.Stringer.
func (r FrameResult) String() string {
	switch r {
	case FrameIncomplete:
		return "incomplete"
	case FrameAccepted:
		return "accepted"
	case FrameRejected:
		return "rejected"
	}
	return "unknown"
}

// RejectReason tells why a frame was rejected.
type RejectReason int

const (
	// RejectNone is used when the frame is not rejected.
	RejectNone RejectReason = iota
	// RejectChecksum means the calculated checksum mismatches the frame.
	RejectChecksum
	// RejectOversized means the declared length exceeds MaxFrameLen.
	RejectOversized
	// RejectUndersized means the declared length can't hold the concentrations.
	RejectUndersized
)

// String implements fmt.Stringer.
func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return "none"
	case RejectChecksum:
		return "checksum mismatch"
	case RejectOversized:
		return "oversized frame"
	case RejectUndersized:
		return "undersized frame"
	}
	return "unknown"
}

// ParseResult indicates the result after one parsing step.
type ParseResult struct {
	Result      FrameResult
	Reason      RejectReason
	Measurement *Measurement
	// Checksum and Expected are set when Reason is RejectChecksum.
	Checksum uint16
	Expected uint16
}

// State gets the current sync state.
func (p *Parser) State() SyncState {
	return p.state
}

// Reset drops any partial frame.
func (p *Parser) Reset() {
	p.state, p.pos, p.frameLen, p.sum = SyncSearching, 0, 0, 0
}

// Parse consumes one byte.
func (p *Parser) Parse(b byte) (pr ParseResult) {
	switch p.state {
	case SyncSearching:
		p.start(b)
	case SyncStart1:
		if b == StartChar2 {
			p.buf[1] = b
			p.sum += uint16(b)
			p.pos, p.frameLen = 2, 0
			p.state = SyncInFrame
			return
		}
		// b may be a new start character 1.
		p.Reset()
		p.start(b)
	case SyncInFrame:
		if p.frameLen == 0 || p.pos < p.frameLen-checksumLen {
			p.sum += uint16(b)
		}
		p.buf[p.pos] = b
		p.pos++
		if p.pos == headerLen {
			declared := int(binary.BigEndian.Uint16(p.buf[2:headerLen]))
			if declared+headerLen > MaxFrameLen {
				return p.reject(RejectOversized)
			}
			if declared < minDeclaredLen {
				return p.reject(RejectUndersized)
			}
			p.frameLen = declared + headerLen
			return
		}
		if p.frameLen > 0 && p.pos >= p.frameLen {
			return p.frameReady()
		}
	}
	return
}

func (p *Parser) start(b byte) {
	if b == StartChar1 {
		p.buf[0] = b
		p.sum, p.pos = uint16(b), 1
		p.state = SyncStart1
	}
}

func (p *Parser) reject(reason RejectReason) ParseResult {
	p.Reset()
	return ParseResult{Result: FrameRejected, Reason: reason}
}

func (p *Parser) frameReady() (pr ParseResult) {
	sum, expected := p.sum, binary.BigEndian.Uint16(p.buf[p.frameLen-checksumLen:p.frameLen])
	if sum != expected {
		pr = p.reject(RejectChecksum)
		pr.Checksum, pr.Expected = sum, expected
		return
	}
	pr.Result = FrameAccepted
	pr.Measurement = decodeMeasurement(p.buf[headerLen : p.frameLen-checksumLen])
	p.Reset()
	return
}
