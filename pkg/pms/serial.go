package pms

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// SerialConfig describes the UART the sensor is attached to.
type SerialConfig struct {
	Port        string
	BaudRate    int
	ReadTimeout time.Duration
}

// DefaultSerialConfig gets the manufacturer-specified defaults: 9600bps,
// 8 data bits, no parity, 1 stop bit.
func DefaultSerialConfig() SerialConfig {
	return SerialConfig{
		Port:        "/dev/ttyS0",
		BaudRate:    9600,
		ReadTimeout: time.Second,
	}
}

// OpenSerial opens the UART. A zero ReadTimeout leaves reads blocking.
func OpenSerial(conf SerialConfig) (serial.Port, error) {
	mode := &serial.Mode{
		BaudRate: conf.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(conf.Port, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %v", conf.Port, err)
	}
	if conf.ReadTimeout > 0 {
		if err := port.SetReadTimeout(conf.ReadTimeout); err != nil {
			port.Close()
			return nil, fmt.Errorf("set read timeout on %s: %v", conf.Port, err)
		}
	}
	return port, nil
}
