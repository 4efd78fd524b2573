// Package pms decodes the serial protocol of Plantower PMS particulate
// matter sensors (PMS3003/5003/7003 family).
package pms

// In active mode the sensor pushes one frame every 200ms-2.3s over a 9600bps
// 8N1 UART. A frame is laid out as:
//
//   0x42 0x4D | LEN(2, big-endian) | DATA(2 x n, big-endian) | CHECKSUM(2)
//
// LEN counts the data words plus the checksum, so the whole frame is
// LEN + 4 bytes. CHECKSUM is the 16-bit sum of every byte before it.
// The decoder never needs a stream restart: any corruption drops the current
// frame and the next 0x42 0x4D pair resynchronizes it.
//
// Producer: sensor UART
// Consumer: notifier polling Decoder.Latest
