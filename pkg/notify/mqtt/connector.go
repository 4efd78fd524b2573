package mqtt

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"github.com/robotalks/airsense/pkg/notify"
)

// Connector implements notify.Connector using MQTT.
type Connector struct {
	DiscoverTimeout time.Duration

	options     *paho.ClientOptions
	topicPrefix string
}

// DefaultDiscoverTimeout defines the default timeout value of discovery.
const DefaultDiscoverTimeout = 500 * time.Millisecond

// NewConnector creates a Connector.
func NewConnector(brokerURL string) (*Connector, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	return &Connector{
		DiscoverTimeout: DefaultDiscoverTimeout,
		options:         opts,
		topicPrefix:     topicPrefix,
	}, nil
}

// NewQueue creates a Queue with the options of the Connector.
func (c *Connector) NewQueue() *Queue {
	return NewQueue(c.options, c.topicPrefix)
}

// ParseMetaTopic extracts the device from a meta topic.
func ParseMetaTopic(topic string) (ref notify.DeviceRef, ok bool) {
	items := strings.Split(topic, "/")
	if len(items) != 3 || items[2] != MetaTopic {
		return
	}
	ref = notify.DeviceRef{Type: items[0], ID: items[1]}
	return ref, ref.IsValid()
}

// Discover implements notify.Connector. Devices are found by their retained
// meta messages, an empty meta means the device went offline.
func (c *Connector) Discover(ctx context.Context) (res []notify.DeviceInfo, err error) {
	q := c.NewQueue()
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	defer q.Close()
	resCh := make(chan notify.DeviceInfo, 16)
	sub := q.Sub("+/+/"+MetaTopic, func(topic string, payload []byte) {
		ref, ok := ParseMetaTopic(topic)
		if !ok || len(payload) == 0 {
			return
		}
		info := notify.DeviceInfo{Ref: ref}
		if err := json.Unmarshal(payload, &info.Meta); err != nil {
			glog.Warningf("invalid meta of %s: %v", ref.Name(), err)
		}
		select {
		case resCh <- info:
		case <-time.After(time.Second):
		}
	})
	defer sub.Close()

	dur := c.DiscoverTimeout
	if dur <= 0 {
		dur = DefaultDiscoverTimeout
	}
	timeout := time.After(dur)
	for {
		select {
		case info := <-resCh:
			res = append(res, info)
		case <-timeout:
			return
		case <-ctx.Done():
			err = ctx.Err()
			return
		}
	}
}

// Connect implements notify.Connector.
func (c *Connector) Connect(ctx context.Context, ref notify.DeviceRef) (notify.DeviceConn, error) {
	conn := &Conn{Ref: ref, Queue: c.NewQueue()}
	rw := NewPacketReadWriter(conn.Queue).ForConsumer(ref)
	conn.Init(rw)
	if token := conn.Queue.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	if token := rw.Subscribe(); token.Wait() && token.Error() != nil {
		conn.Queue.Close()
		return nil, token.Error()
	}
	return conn, nil
}

// Conn implements notify.DeviceConn using MQTT. It must be added to a Loop
// to receive events and replies.
type Conn struct {
	notify.Conn
	Ref   notify.DeviceRef
	Queue *Queue
}

// Close disconnects from the broker.
func (c *Conn) Close() error {
	return c.Queue.Close()
}
