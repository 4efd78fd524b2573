package notify

import (
	"context"
	"sync"
	"time"

	fx "github.com/robotalks/airsense/pkg/framework"
	"github.com/robotalks/airsense/pkg/msgs"
)

// DefaultCommandExpiration is how long a command waits for the reply.
const DefaultCommandExpiration = time.Second

// Conn is the consumer side of a Pipe implementing DeviceConn.
// Events are posted into the Loop, replies complete CommandFutures, and
// commands without reply fail with context.DeadlineExceeded after
// Expiration.
type Conn struct {
	Expiration time.Duration

	pipe    Pipe
	lock    sync.Mutex
	lastSeq uint32
	// queue is ordered by expiration, as all commands share Expiration.
	queue   []*commandFuture
	pending map[uint32]*commandFuture
}

// Init initializes Conn with defaults.
func (c *Conn) Init(rw PacketReadWriter) {
	c.Expiration = DefaultCommandExpiration
	c.pipe.ReadWriter = rw
	c.pipe.Handler = msgs.HandleTypedMsgFunc(c.handleTypedMsg)
	c.pending = make(map[uint32]*commandFuture)
}

// DoCommand implements DeviceConn.
func (c *Conn) DoCommand(msg fx.Message) CommandFuture {
	c.lock.Lock()
	defer c.lock.Unlock()
	// 0 is never used so a reply without sequence matches nothing.
	if c.lastSeq++; c.lastSeq == 0 {
		c.lastSeq = 1
	}
	f := newCommandFuture(c.lastSeq, time.Now().Add(c.Expiration))
	if err := c.pipe.SendCommandMsg(msg, f.seq); err != nil {
		f.resolve(Result{Err: err})
		return f
	}
	c.queue = append(c.queue, f)
	c.pending[f.seq] = f
	return f
}

// Pending returns the number of commands waiting for replies.
func (c *Conn) Pending() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return len(c.pending)
}

// AddToLoop implements LoopAdder.
func (c *Conn) AddToLoop(l *fx.Loop) {
	l.Add(&c.pipe)
	l.AddController(fx.PrLvIdle, fx.ControlFunc(c.expire))
}

func (c *Conn) handleTypedMsg(ctx context.Context, msg fx.Message, typed *msgs.Typed) error {
	switch {
	case typed.IsEvent():
		ctl := fx.LoopCtlFrom(ctx)
		ctl.PostMessage(msg)
		ctl.TriggerNext()
	case typed.IsReply():
		c.lock.Lock()
		f := c.pending[typed.Sequence]
		delete(c.pending, typed.Sequence)
		c.lock.Unlock()
		if f != nil {
			result := Result{Msg: msg}
			if cmdErr, ok := msg.(*msgs.CommandErr); ok {
				result.Err = cmdErr
			}
			f.resolve(result)
		}
	}
	return nil
}

// expire fails commands past the expiration. Replied commands are
// still in queue and skipped here.
func (c *Conn) expire(cc fx.ControlContext) error {
	now := cc.Time()
	c.lock.Lock()
	defer c.lock.Unlock()
	n := 0
	for ; n < len(c.queue) && !c.queue[n].expireAt.After(now); n++ {
		f := c.queue[n]
		if c.pending[f.seq] == f {
			delete(c.pending, f.seq)
			f.resolve(Result{Err: context.DeadlineExceeded})
		}
		c.queue[n] = nil
	}
	c.queue = c.queue[n:]
	return nil
}

type commandFuture struct {
	seq      uint32
	expireAt time.Time
	result   chan Result
	once     sync.Once
}

func newCommandFuture(seq uint32, expireAt time.Time) *commandFuture {
	return &commandFuture{seq: seq, expireAt: expireAt, result: make(chan Result, 1)}
}

func (f *commandFuture) resolve(r Result) {
	f.once.Do(func() {
		f.result <- r
		close(f.result)
	})
}

// ResultChan implements CommandFuture.
func (f *commandFuture) ResultChan() <-chan Result {
	return f.result
}
