package mqtt

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/golang/glog"

	fx "github.com/robotalks/airsense/pkg/framework"
	"github.com/robotalks/airsense/pkg/notify"
)

// Endpoint is the device side over MQTT. It announces the device with a
// retained meta message, publishes events and receives commands.
type Endpoint struct {
	Queue *Queue
	Info  notify.DeviceInfo

	metaJSON []byte
	endpoint notify.Endpoint
}

// NewEndpoint creates an Endpoint.
func NewEndpoint(brokerURL string, info notify.DeviceInfo) (*Endpoint, error) {
	meta, err := json.Marshal(&info.Meta)
	if err != nil {
		return nil, err
	}
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	metaTopic := DeviceTopic(info.Ref, MetaTopic)
	opts.SetBinaryWill(topicPrefix+metaTopic, nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("airsense:" + info.Ref.Name())
	}
	e := &Endpoint{
		Queue:    NewQueue(opts, topicPrefix),
		Info:     info,
		metaJSON: meta,
	}
	e.Queue.OnConnect = func(*Queue) { e.announce(e.metaJSON) }
	e.endpoint.Init(NewPacketReadWriter(e.Queue).ForDevice(info.Ref))
	return e, nil
}

// Publish implements notify.Publisher.
func (e *Endpoint) Publish(ctx context.Context, msg fx.Message) error {
	return e.endpoint.Publish(ctx, msg)
}

// AddToLoop implements LoopAdder.
func (e *Endpoint) AddToLoop(loop *fx.Loop) {
	loop.Add(&e.endpoint)
	loop.AddRunnable(e)
}

// Run implements Runnable. The device is announced offline on exit.
func (e *Endpoint) Run(ctx context.Context) error {
	if token := e.Queue.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt connect %s: %v", e.Info.Ref.Name(), token.Error())
	}
	<-ctx.Done()
	if e.Queue.Client.IsConnected() {
		e.announce(nil)
	}
	return e.Queue.Close()
}

func (e *Endpoint) announce(meta []byte) {
	token := e.Queue.PubWith(DeviceTopic(e.Info.Ref, MetaTopic), meta, 1, true)
	token.Wait()
	if err := token.Error(); err != nil {
		glog.Errorf("announce %s: %v", e.Info.Ref.Name(), err)
	}
}
