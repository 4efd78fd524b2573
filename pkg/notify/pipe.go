package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	fx "github.com/robotalks/airsense/pkg/framework"
	"github.com/robotalks/airsense/pkg/msgs"
)

// Pipe exchanges Typed messages over a PacketReadWriter.
type Pipe struct {
	ReadWriter PacketReadWriter
	Handler    msgs.TypedMsgHandler

	writeLock sync.Mutex
}

// NewPipe creates a Pipe with given PacketReadWriter.
func NewPipe(rw PacketReadWriter) *Pipe {
	return &Pipe{ReadWriter: rw}
}

// SendCommandMsg sends a command or a command reply with the sequence.
func (p *Pipe) SendCommandMsg(msg fx.Message, seq uint32) error {
	return p.send(msg, seq, (*msgs.Typed).IsCommand, "command")
}

// SendEventMsg sends an event.
func (p *Pipe) SendEventMsg(msg fx.Message) error {
	return p.send(msg, 0, (*msgs.Typed).IsEvent, "event")
}

func (p *Pipe) send(msg fx.Message, seq uint32, isKind func(*msgs.Typed) bool, kind string) error {
	typed, err := msgs.TypedFrom(msg)
	if err != nil {
		return err
	}
	if !isKind(typed) {
		return fmt.Errorf("%s is not %s", msgs.Describe(msg), kind)
	}
	typed.Sequence = seq
	return p.SendTyped(typed)
}

// SendTyped encodes and writes a Typed message.
func (p *Pipe) SendTyped(typed *msgs.Typed) error {
	pkt, err := typed.Encode()
	if err != nil {
		return err
	}
	p.writeLock.Lock()
	defer p.writeLock.Unlock()
	return p.ReadWriter.WritePacket(pkt)
}

// Run implements Runnable. It returns when reading fails, the
// PacketReadWriter is closed then.
func (p *Pipe) Run(ctx context.Context) error {
	defer p.Close()
	for {
		pkt, err := p.ReadWriter.ReadPacket()
		if err == nil {
			err = p.receive(ctx, pkt)
		}
		if err != nil {
			return err
		}
	}
}

// receive drops undecodable packets, except a command which gets
// a CommandErr so the sender doesn't wait for the expiration.
func (p *Pipe) receive(ctx context.Context, pkt []byte) error {
	msg, typed, err := msgs.DecodeMessage(pkt)
	switch {
	case err == nil:
	case typed != nil && typed.IsCommand() && !typed.IsReply():
		return p.SendCommandMsg(msgs.NewCommandErr(err), typed.Sequence)
	default:
		return nil
	}
	if p.Handler == nil {
		return nil
	}
	return p.Handler.HandleTypedMsg(ctx, msg, typed)
}

// Close implements io.Closer.
func (p *Pipe) Close() error {
	if closer, ok := p.ReadWriter.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// AddToLoop implements LoopAdder. The PacketReadWriter is added as well
// if it needs to run.
func (p *Pipe) AddToLoop(loop *fx.Loop) {
	switch rw := p.ReadWriter.(type) {
	case fx.LoopAdder:
		loop.Add(rw)
	case fx.Runnable:
		loop.AddRunnable(rw)
	}
	loop.AddRunnable(p)
}
