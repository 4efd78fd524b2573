package mqtt

import (
	"context"
	"io"
	"sync"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/robotalks/airsense/pkg/notify"
)

// Topic names under a device.
const (
	MetaTopic = "meta"
	MsgTopic  = "msg"
	CmdTopic  = "cmd"
)

// DeviceTopic returns the topic of a device, without the queue prefix.
func DeviceTopic(ref notify.DeviceRef, name string) string {
	return ref.Name() + "/" + name
}

// ReadWriter implements notify.PacketReadWriter on a pair of topics.
// Packets are received after Subscribe until Close.
type ReadWriter struct {
	Queue    *Queue
	SubTopic string
	PubTopic string

	packetCh  chan []byte
	done      chan struct{}
	subOnce   sync.Once
	sub       *Subscription
	closeOnce sync.Once
}

// NewPacketReadWriter creates the ReadWriter.
func NewPacketReadWriter(q *Queue) *ReadWriter {
	return &ReadWriter{
		Queue:    q,
		packetCh: make(chan []byte, 16),
		done:     make(chan struct{}),
	}
}

// WithTopics specifies the topics.
func (p *ReadWriter) WithTopics(sub, pub string) *ReadWriter {
	p.SubTopic, p.PubTopic = sub, pub
	return p
}

// ForConsumer subscribes msg and publishes to cmd of the device.
func (p *ReadWriter) ForConsumer(ref notify.DeviceRef) *ReadWriter {
	return p.WithTopics(DeviceTopic(ref, MsgTopic), DeviceTopic(ref, CmdTopic))
}

// ForDevice subscribes cmd and publishes to msg of the device.
func (p *ReadWriter) ForDevice(ref notify.DeviceRef) *ReadWriter {
	return p.WithTopics(DeviceTopic(ref, CmdTopic), DeviceTopic(ref, MsgTopic))
}

// ReadPacket implements PacketReader.
func (p *ReadWriter) ReadPacket() ([]byte, error) {
	select {
	case pkt := <-p.packetCh:
		return pkt, nil
	case <-p.done:
		return nil, io.EOF
	}
}

// WritePacket implements PacketWriter.
func (p *ReadWriter) WritePacket(pkt []byte) error {
	token := p.Queue.Pub(p.PubTopic, pkt)
	token.Wait()
	return token.Error()
}

// Subscribe subscribes SubTopic, only the first call takes effect.
func (p *ReadWriter) Subscribe() paho.Token {
	p.subOnce.Do(func() {
		p.sub = p.Queue.Sub(p.SubTopic, p.handleMsg)
	})
	if token := p.sub.Token; token != nil {
		return token
	}
	return &paho.DummyToken{}
}

// Close stops ReadPacket and unsubscribes.
func (p *ReadWriter) Close() (err error) {
	p.closeOnce.Do(func() {
		close(p.done)
		if p.sub != nil {
			err = p.sub.Close()
		}
	})
	return
}

// Run implements Runnable.
func (p *ReadWriter) Run(ctx context.Context) error {
	p.Subscribe()
	defer p.Close()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.done:
		return nil
	}
}

func (p *ReadWriter) handleMsg(_ string, payload []byte) {
	select {
	case p.packetCh <- payload:
	case <-p.done:
	}
}
