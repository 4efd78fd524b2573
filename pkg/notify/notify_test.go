package notify

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	fx "github.com/robotalks/airsense/pkg/framework"
	"github.com/robotalks/airsense/pkg/msgs"
)

type testControlContext struct {
	ctx      context.Context
	now      time.Time
	messages []fx.Message
}

func newTestControlContext(now time.Time, messages ...fx.Message) *testControlContext {
	return &testControlContext{ctx: context.Background(), now: now, messages: messages}
}

func (c *testControlContext) Context() context.Context  { return c.ctx }
func (c *testControlContext) Time() time.Time           { return c.now }
func (c *testControlContext) PriorityLevel() int        { return fx.PrLvCommand }
func (c *testControlContext) Messages() fx.MessageStore { return c }
func (c *testControlContext) PostMessage(fx.Message)    {}
func (c *testControlContext) TriggerNext()              {}

type testMessageContext struct {
	msg   fx.Message
	taken bool
}

func (c *testMessageContext) CurrentMessage() fx.Message { return c.msg }
func (c *testMessageContext) MessageTaken()              { c.taken = true }
func (c *testMessageContext) StopProcessing()            {}

func (c *testControlContext) ProcessMessages(proc fx.MessageProcessor) {
	var remains []fx.Message
	for _, msg := range c.messages {
		mc := &testMessageContext{msg: msg}
		proc.ProcessMessage(mc)
		if !mc.taken {
			remains = append(remains, msg)
		}
	}
	c.messages = remains
}

type testCommand struct {
	msg   fx.Message
	reply fx.Message
}

func (c *testCommand) Msg() fx.Message { return c.msg }

func (c *testCommand) Done(reply fx.Message) error {
	c.reply = reply
	return nil
}

func commandMsg(msg fx.Message) (*CommandMsg, *testCommand) {
	cmd := &testCommand{msg: msg}
	return &CommandMsg{Command: cmd}, cmd
}

type testPublisher struct {
	lock   sync.Mutex
	events []fx.Message
	err    error
}

func (p *testPublisher) Publish(ctx context.Context, msg fx.Message) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.events = append(p.events, msg)
	return p.err
}

func (p *testPublisher) Events() []fx.Message {
	p.lock.Lock()
	defer p.lock.Unlock()
	return append([]fx.Message(nil), p.events...)
}

type testSource struct {
	event    fx.Message
	zeroMV   int32
	failWith error
}

func (s *testSource) Event() (fx.Message, bool) {
	return s.event, s.event != nil
}

func (s *testSource) ReportStatus(status *msgs.Status) {
	status.ZeroMilliVolts = s.zeroMV
}

func (s *testSource) HandleCommand(ctx context.Context, cmd fx.Message) (fx.Message, error) {
	m, ok := cmd.(*msgs.Calibrate)
	if !ok {
		return nil, msgs.ErrUnknownCommand
	}
	if s.failWith != nil {
		return nil, s.failWith
	}
	s.zeroMV = m.ZeroMilliVolts
	return &msgs.CommandOK{}, nil
}

var errTest = errors.New("test error")

// packetPipe is one end of an in-memory PacketReadWriter pair.
type packetPipe struct {
	in     <-chan []byte
	out    chan<- []byte
	closed chan struct{}
	once   sync.Once
}

func newPacketPipes() (*packetPipe, *packetPipe) {
	a2b, b2a := make(chan []byte, 16), make(chan []byte, 16)
	return &packetPipe{in: b2a, out: a2b, closed: make(chan struct{})},
		&packetPipe{in: a2b, out: b2a, closed: make(chan struct{})}
}

func (p *packetPipe) ReadPacket() ([]byte, error) {
	select {
	case pkt := <-p.in:
		return pkt, nil
	case <-p.closed:
		return nil, io.EOF
	}
}

func (p *packetPipe) WritePacket(pkt []byte) error {
	select {
	case p.out <- pkt:
		return nil
	case <-p.closed:
		return io.ErrClosedPipe
	}
}

func (p *packetPipe) Close() error {
	p.once.Do(func() { close(p.closed) })
	return nil
}

// Run closes the pipe when ctx is done.
func (p *packetPipe) Run(ctx context.Context) error {
	<-ctx.Done()
	p.Close()
	return ctx.Err()
}
