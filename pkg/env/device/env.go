// Package device sets up the env of a sensor daemon: its identity, where
// its events are published and how commands reach it.
package device

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/robotalks/airsense/pkg/env"
	fx "github.com/robotalks/airsense/pkg/framework"
	"github.com/robotalks/airsense/pkg/notify"
	"github.com/robotalks/airsense/pkg/notify/mqtt"
	"github.com/robotalks/airsense/pkg/notify/websocket"
)

// Config provides common options of a sensor daemon.
type Config struct {
	Info notify.DeviceInfo

	// MQTTBrokerURL specifies the MQTT broker to use, empty to disable.
	// e.g. mqtt://host:port/topic-prefix
	MQTTBrokerURL string
	// WebsocketAddr is the listen address of the websocket hub,
	// empty to disable.
	WebsocketAddr string
	// NotifyInterval overrides the notify interval of the sensor if set.
	NotifyInterval time.Duration
}

var defaultConfig = Config{
	MQTTBrokerURL: mqtt.DefaultBrokerURL,
}

func init() {
	if val := os.Getenv("AIRSENSE_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
	if val := os.Getenv("AIRSENSE_TYPE"); val != "" {
		defaultConfig.Info.Ref.Type = val
	}
	if val := os.Getenv("AIRSENSE_ID"); val != "" {
		defaultConfig.Info.Ref.ID = val
	} else {
		defaultConfig.Info.Ref.ID = env.MachineID()
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Info.Ref.Type, "type", defaultConfig.Info.Ref.Type, "Device type")
	flag.StringVar(&defaultConfig.Info.Ref.ID, "id", defaultConfig.Info.Ref.ID, "Device ID")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL, empty to disable")
	flag.StringVar(&defaultConfig.WebsocketAddr, "ws", defaultConfig.WebsocketAddr, "Websocket listen address, empty to disable")
	flag.DurationVar(&defaultConfig.NotifyInterval, "notify-interval", defaultConfig.NotifyInterval, "Notify interval, 0 for the sensor default")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// SetDeviceType should be called in init with basic info about the device.
func SetDeviceType(typ string, meta notify.DeviceMeta) {
	if defaultConfig.Info.Ref.Type == "" {
		defaultConfig.Info.Ref.Type = typ
	}
	defaultConfig.Info.Meta = meta
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Env is the env of a sensor daemon.
type Env struct {
	Config    *Config
	Publisher *notify.PublisherMux
	MQTT      *mqtt.Endpoint
	Websocket *websocket.Hub
}

// NewEnv creates Env from config.
func (c *Config) NewEnv() (*Env, error) {
	if !c.Info.Ref.IsValid() {
		return nil, fmt.Errorf("device type and id must be specified")
	}
	e := &Env{Config: c, Publisher: &notify.PublisherMux{}}
	if c.MQTTBrokerURL != "" {
		ep, err := mqtt.NewEndpoint(c.MQTTBrokerURL, c.Info)
		if err != nil {
			return nil, fmt.Errorf("create MQTT endpoint error: %v", err)
		}
		e.MQTT = ep
		e.Publisher.Add(ep)
	}
	if c.WebsocketAddr != "" {
		e.Websocket = websocket.NewHub(c.WebsocketAddr)
		e.Publisher.Add(e.Websocket)
	}
	if len(e.Publisher.Publishers) == 0 {
		return nil, fmt.Errorf("at least one of MQTT and websocket is required")
	}
	return e, nil
}

// MustNewEnv creates Env and fails on error.
func (c *Config) MustNewEnv() *Env {
	e, err := c.NewEnv()
	if err != nil {
		log.Fatalln(err)
	}
	return e
}

// NewNotifier creates a Notifier publishing events of src. The configured
// notify interval takes precedence over interval.
func (e *Env) NewNotifier(src notify.Source, interval time.Duration) *notify.Notifier {
	if e.Config.NotifyInterval > 0 {
		interval = e.Config.NotifyInterval
	}
	return notify.NewNotifier(e.Publisher, src, interval)
}

// AddToLoop adds publishers and the fallback command controller to loop.
func (e *Env) AddToLoop(loop *fx.Loop) {
	loop.Add(e.Publisher)
	loop.Add(&notify.UnsupportedCommands{})
}
