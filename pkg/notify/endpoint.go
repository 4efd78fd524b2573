package notify

import (
	"context"

	fx "github.com/robotalks/airsense/pkg/framework"
	"github.com/robotalks/airsense/pkg/msgs"
)

// Endpoint is the device side of a Pipe. It publishes events and posts
// received commands into the Loop.
type Endpoint struct {
	pipe Pipe
}

// NewEndpoint creates an Endpoint.
func NewEndpoint(rw PacketReadWriter) *Endpoint {
	e := &Endpoint{}
	e.Init(rw)
	return e
}

// Init initializes the Endpoint.
func (e *Endpoint) Init(rw PacketReadWriter) {
	e.pipe.ReadWriter = rw
	e.pipe.Handler = msgs.HandleTypedMsgFunc(e.handleTypedMsg)
}

// Publish implements Publisher.
func (e *Endpoint) Publish(ctx context.Context, msg fx.Message) error {
	return e.pipe.SendEventMsg(msg)
}

// Run runs the underlying Pipe. ctx must come from a Loop.
func (e *Endpoint) Run(ctx context.Context) error {
	return e.pipe.Run(ctx)
}

// Close closes the underlying Pipe.
func (e *Endpoint) Close() error {
	return e.pipe.Close()
}

// AddToLoop implements LoopAdder.
func (e *Endpoint) AddToLoop(loop *fx.Loop) {
	loop.Add(&e.pipe)
}

func (e *Endpoint) handleTypedMsg(ctx context.Context, msg fx.Message, typed *msgs.Typed) error {
	if !typed.IsCommand() || typed.IsReply() {
		return nil
	}
	loopCtl := fx.LoopCtlFrom(ctx)
	loopCtl.PostMessage(&CommandMsg{Command: &command{seq: typed.Sequence, msg: msg, pipe: &e.pipe}})
	loopCtl.TriggerNext()
	return nil
}

type command struct {
	seq  uint32
	msg  fx.Message
	pipe *Pipe
}

func (c *command) Msg() fx.Message {
	return c.msg
}

func (c *command) Done(msg fx.Message) error {
	return c.pipe.SendCommandMsg(msg, c.seq)
}

// PublisherMux publishes to multiple Publishers.
type PublisherMux struct {
	Publishers []Publisher
}

// Publish implements Publisher.
func (m *PublisherMux) Publish(ctx context.Context, msg fx.Message) error {
	var errs fx.AggregatedError
	for _, pub := range m.Publishers {
		errs.Add(pub.Publish(ctx, msg))
	}
	return errs.Aggregate()
}

// AddToLoop implements LoopAdder.
func (m *PublisherMux) AddToLoop(l *fx.Loop) {
	for _, pub := range m.Publishers {
		if adder, ok := pub.(fx.LoopAdder); ok {
			l.Add(adder)
		}
	}
}

// Add adds more publishers.
func (m *PublisherMux) Add(pubs ...Publisher) {
	m.Publishers = append(m.Publishers, pubs...)
}

// UnsupportedCommands replies left-over commands with CommandErr.
type UnsupportedCommands struct {
}

// Control implements Controller.
func (c *UnsupportedCommands) Control(cc fx.ControlContext) error {
	var errs fx.AggregatedError
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mc fx.MessageProcessingContext) {
		if cmdMsg, ok := mc.CurrentMessage().(*CommandMsg); ok {
			mc.MessageTaken()
			errs.Add(cmdMsg.Command.Done(msgs.NewCommandErr(msgs.ErrUnknownCommand)))
		}
	}))
	return errs.Aggregate()
}

// AddToLoop implements LoopAdder.
func (c *UnsupportedCommands) AddToLoop(loop *fx.Loop) {
	loop.AddController(fx.PrLvIdle, c)
}
