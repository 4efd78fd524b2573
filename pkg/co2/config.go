package co2

import (
	"flag"
	"log"
	"time"

	"github.com/golang/glog"
)

// Config defines the configurations for the CO2 sensor.
type Config struct {
	SPIBus         string
	Channel        int
	Capacity       int
	SampleInterval time.Duration
	DataDir        string
}

var defaultConfig = Config{
	Capacity:       DefaultCapacity,
	SampleInterval: DefaultSampleInterval,
	DataDir:        ".",
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.SPIBus, "spi", defaultConfig.SPIBus, "SPI bus of the ADC, empty for the first one.")
	flag.IntVar(&defaultConfig.Channel, "adc-channel", defaultConfig.Channel, "ADC channel the sensor is attached to.")
	flag.IntVar(&defaultConfig.Capacity, "samples", defaultConfig.Capacity, "Number of samples averaged.")
	flag.DurationVar(&defaultConfig.SampleInterval, "sample-interval", defaultConfig.SampleInterval, "Pause between samples.")
	flag.StringVar(&defaultConfig.DataDir, "data-dir", defaultConfig.DataDir, "Directory of the calibration file.")
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

// NewSensor loads the calibration, opens the ADC and creates the Sensor.
func (c *Config) NewSensor() (*Sensor, error) {
	store := NewStore(c.DataDir)
	rec, err := store.LoadOrDefault()
	if err != nil {
		return nil, err
	}
	glog.Infof("calibration %s: %s", store.Path, rec)
	adc, err := OpenMCP3008(c.SPIBus, c.Channel)
	if err != nil {
		return nil, err
	}
	s := NewSensor(adc, c.Capacity, store, rec)
	s.ADC = adc
	s.Sampler.Interval = c.SampleInterval
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
