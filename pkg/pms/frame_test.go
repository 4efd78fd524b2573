package pms

import "encoding/binary"

// buildFrame encodes words into a frame with a valid checksum.
func buildFrame(words ...uint16) []byte {
	b := make([]byte, headerLen+len(words)*2+checksumLen)
	b[0], b[1] = StartChar1, StartChar2
	binary.BigEndian.PutUint16(b[2:], uint16(len(words)*2+checksumLen))
	for n, w := range words {
		binary.BigEndian.PutUint16(b[headerLen+n*2:], w)
	}
	var sum uint16
	for _, v := range b[:len(b)-checksumLen] {
		sum += uint16(v)
	}
	binary.BigEndian.PutUint16(b[len(b)-checksumLen:], sum)
	return b
}

// pms7003Words returns 13 data words where the concentrations and counts
// are derived from base.
func pms7003Words(base uint16) []uint16 {
	words := make([]uint16, 13)
	for n := range words[:12] {
		words[n] = base + uint16(n)
	}
	return words
}

func measurementOf(base uint16) *Measurement {
	return &Measurement{
		Standard:    Concentration{PM1_0: base, PM2_5: base + 1, PM10: base + 2},
		Atmospheric: Concentration{PM1_0: base + 3, PM2_5: base + 4, PM10: base + 5},
		Counts: ParticleCounts{
			Over0_3: base + 6,
			Over0_5: base + 7,
			Over1_0: base + 8,
			Over2_5: base + 9,
			Over5_0: base + 10,
			Over10:  base + 11,
		},
		HasCounts: true,
	}
}
