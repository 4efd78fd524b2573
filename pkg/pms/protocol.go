package pms

import (
	"encoding/binary"
	"io"
)

// Protocol constants.
const (
	StartChar1 byte = 0x42
	StartChar2 byte = 0x4D

	// MaxFrameLen is the capacity of the frame buffer, the length of the
	// largest frame the family produces.
	MaxFrameLen = 32

	headerLen   = 4
	checksumLen = 2
	// minDeclaredLen covers the six concentration words plus the checksum.
	minDeclaredLen = 6*2 + checksumLen
	// countsWords is the number of data words needed for particle counts.
	countsWords = 12
)

// Concentration holds PM1.0, PM2.5 and PM10 mass concentrations in ug/m3.
type Concentration struct {
	PM1_0 uint16
	PM2_5 uint16
	PM10  uint16
}

// ParticleCounts holds the number of particles per 0.1L of air with a
// diameter beyond the given size in um.
type ParticleCounts struct {
	Over0_3 uint16
	Over0_5 uint16
	Over1_0 uint16
	Over2_5 uint16
	Over5_0 uint16
	Over10  uint16
}

// Measurement is the decoded payload of an accepted frame.
type Measurement struct {
	// Standard is measured with CF=1, standard particle.
	Standard Concentration
	// Atmospheric is measured under atmospheric environment.
	Atmospheric Concentration
	// Counts is only valid when HasCounts is set.
	Counts    ParticleCounts
	HasCounts bool
}

// Fields returns the concentration fields in protocol order: standard
// particle PM1.0, PM2.5, PM10 followed by atmospheric PM1.0, PM2.5, PM10.
func (m *Measurement) Fields() [6]uint16 {
	return [6]uint16{
		m.Standard.PM1_0, m.Standard.PM2_5, m.Standard.PM10,
		m.Atmospheric.PM1_0, m.Atmospheric.PM2_5, m.Atmospheric.PM10,
	}
}

func decodeMeasurement(data []byte) *Measurement {
	words := make([]uint16, len(data)/2)
	for n := range words {
		words[n] = binary.BigEndian.Uint16(data[n*2:])
	}
	m := &Measurement{
		Standard:    Concentration{PM1_0: words[0], PM2_5: words[1], PM10: words[2]},
		Atmospheric: Concentration{PM1_0: words[3], PM2_5: words[4], PM10: words[5]},
	}
	if len(words) >= countsWords {
		m.Counts = ParticleCounts{
			Over0_3: words[6],
			Over0_5: words[7],
			Over1_0: words[8],
			Over2_5: words[9],
			Over5_0: words[10],
			Over10:  words[11],
		}
		m.HasCounts = true
	}
	return m
}

// Command codes understood by the sensor.
const (
	CodeRead       byte = 0xe2
	CodeChangeMode byte = 0xe1
	CodeSleep      byte = 0xe4
)

// Predefined commands.
var (
	CmdRead        = Command{Code: CodeRead}
	CmdPassiveMode = Command{Code: CodeChangeMode, Data: 0}
	CmdActiveMode  = Command{Code: CodeChangeMode, Data: 1}
	CmdSleep       = Command{Code: CodeSleep, Data: 0}
	CmdWakeup      = Command{Code: CodeSleep, Data: 1}
)

// Command is a host to sensor request.
type Command struct {
	Code byte
	Data uint16
}

// Bytes returns encoded bytes for sending.
func (c Command) Bytes() []byte {
	b := make([]byte, 7)
	b[0], b[1], b[2] = StartChar1, StartChar2, c.Code
	binary.BigEndian.PutUint16(b[3:], c.Data)
	var sum uint16
	for _, v := range b[:5] {
		sum += uint16(v)
	}
	binary.BigEndian.PutUint16(b[5:], sum)
	return b
}

// WriteTo writes encoded bytes.
func (c Command) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(c.Bytes())
	return int64(n), err
}
