package co2

import (
	"fmt"
	"io"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// MCP3008 scaling from its 10-bit range into the 12-bit sample domain,
// trimmed for the reference voltage of the board.
const (
	SPIMaxMilliVolts = 3200.0
	SPIRefMilliVolts = 3000.0
)

// MCP3008 reads a single-ended channel of an MCP3008 ADC over SPI.
type MCP3008 struct {
	Channel int

	conn   spi.Conn
	closer io.Closer
}

// NewMCP3008 creates an MCP3008 on an opened SPI port.
func NewMCP3008(port spi.Port, channel int) (*MCP3008, error) {
	if channel < 0 || channel > 7 {
		return nil, fmt.Errorf("invalid MCP3008 channel %d", channel)
	}
	conn, err := port.Connect(physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %v", port, err)
	}
	return &MCP3008{Channel: channel, conn: conn}, nil
}

// OpenMCP3008 opens the SPI bus by name, empty for the first one available.
func OpenMCP3008(bus string, channel int) (*MCP3008, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	port, err := spireg.Open(bus)
	if err != nil {
		return nil, fmt.Errorf("open SPI %q: %v", bus, err)
	}
	adc, err := NewMCP3008(port, channel)
	if err != nil {
		port.Close()
		return nil, err
	}
	adc.closer = port
	return adc, nil
}

// ReadRaw reads the 10-bit conversion result.
func (a *MCP3008) ReadRaw() (uint16, error) {
	tx := []byte{0x01, 0x80 | byte(a.Channel)<<4, 0}
	rx := make([]byte, len(tx))
	if err := a.conn.Tx(tx, rx); err != nil {
		return 0, err
	}
	return uint16(rx[1]&0x03)<<8 | uint16(rx[2]), nil
}

// ReadSample implements SampleSource.
func (a *MCP3008) ReadSample() (int16, error) {
	raw, err := a.ReadRaw()
	if err != nil {
		return SampleError, err
	}
	return int16(float64(raw) * 4 * SPIRefMilliVolts / SPIMaxMilliVolts), nil
}

// Close closes the SPI port if it's opened by OpenMCP3008.
func (a *MCP3008) Close() error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}
