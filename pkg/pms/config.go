package pms

import (
	"flag"
	"log"
	"time"
)

// Config defines the configurations for the dust sensor.
type Config struct {
	Serial       SerialConfig
	MaxRetries   int
	Passive      bool
	PollInterval time.Duration
	LogEvery     int
}

var defaultConfig = Config{
	Serial:       DefaultSerialConfig(),
	MaxRetries:   DefaultMaxRetries,
	PollInterval: time.Second,
	LogEvery:     10,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Serial.Port, "port", defaultConfig.Serial.Port, "Serial port the sensor is attached to.")
	flag.IntVar(&defaultConfig.Serial.BaudRate, "baud", defaultConfig.Serial.BaudRate, "Serial baud rate.")
	flag.DurationVar(&defaultConfig.Serial.ReadTimeout, "read-timeout", defaultConfig.Serial.ReadTimeout, "Serial read timeout, 0 for blocking reads.")
	flag.IntVar(&defaultConfig.MaxRetries, "max-retries", defaultConfig.MaxRetries, "Consecutive empty reads tolerated, 0 for unlimited.")
	flag.BoolVar(&defaultConfig.Passive, "passive", defaultConfig.Passive, "Run the sensor in passive mode.")
	flag.DurationVar(&defaultConfig.PollInterval, "poll-interval", defaultConfig.PollInterval, "Frame request interval in passive mode.")
	flag.IntVar(&defaultConfig.LogEvery, "log-rejects", defaultConfig.LogEvery, "Log every n-th rejected frame.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewSensor opens the serial port and creates the Sensor.
func (c *Config) NewSensor() (*Sensor, error) {
	port, err := OpenSerial(c.Serial)
	if err != nil {
		return nil, err
	}
	s := NewSensor(port)
	s.Passive, s.PollInterval = c.Passive, c.PollInterval
	s.Reader.ReadTimeout = c.Serial.ReadTimeout > 0
	s.Reader.MaxRetries = c.MaxRetries
	if c.LogEvery > 0 {
		s.Reader.Rejected = LogRejects(c.LogEvery)
	}
	return s, nil
}

// MustNewSensor creates the Sensor and fails on error.
func (c *Config) MustNewSensor() *Sensor {
	s, err := c.NewSensor()
	if err != nil {
		log.Fatalln(err)
	}
	return s
}
