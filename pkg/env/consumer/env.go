// Package consumer sets up the connection of tools to sensor devices.
package consumer

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"

	"github.com/robotalks/airsense/pkg/notify"
	"github.com/robotalks/airsense/pkg/notify/mqtt"
)

// Config provides common options to setup Connectors.
type Config struct {
	Ref notify.DeviceRef

	// BrokerURL specifies where devices are discovered.
	// e.g. mqtt://host:port/topic-prefix
	BrokerURL string
}

var defaultConfig = Config{
	BrokerURL: mqtt.DefaultBrokerURL,
}

func init() {
	if val := os.Getenv("AIRSENSE_TYPE"); val != "" {
		defaultConfig.Ref.Type = val
	}
	if val := os.Getenv("AIRSENSE_ID"); val != "" {
		defaultConfig.Ref.ID = val
	}
	if val := os.Getenv("AIRSENSE_MQTT_URL"); val != "" {
		defaultConfig.BrokerURL = val
	}
}

// SetupFlags sets up command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Ref.Type, "device-type", defaultConfig.Ref.Type, "Device type to connect.")
	flag.StringVar(&defaultConfig.Ref.ID, "device-id", defaultConfig.Ref.ID, "Device ID to connect.")
	flag.StringVar(&defaultConfig.BrokerURL, "mqtt", defaultConfig.BrokerURL, "MQTT broker URL.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewConnector creates a Connector using current config.
func (c *Config) NewConnector() (*mqtt.Connector, error) {
	parsedURL, err := url.Parse(c.BrokerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid broker URL: %v", err)
	}
	switch parsedURL.Scheme {
	case "mqtt", "mqtts", "tcp", "ssl", "ws", "wss":
		return mqtt.NewConnector(c.BrokerURL)
	default:
		return nil, fmt.Errorf("unknown broker URL scheme: %q", parsedURL.Scheme)
	}
}

// MustNewConnector creates a Connector and fails on error.
func (c *Config) MustNewConnector() *mqtt.Connector {
	conn, err := c.NewConnector()
	if err != nil {
		log.Fatalln(err)
	}
	return conn
}

// Connect directly connects to the configured device.
func (c *Config) Connect(ctx context.Context) (*mqtt.Conn, error) {
	if !c.Ref.IsValid() {
		return nil, fmt.Errorf("device type and id must be specified")
	}
	connector, err := c.NewConnector()
	if err != nil {
		return nil, err
	}
	conn, err := connector.Connect(ctx, c.Ref)
	if err != nil {
		return nil, err
	}
	return conn.(*mqtt.Conn), nil
}
