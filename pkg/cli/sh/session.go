package sh

import (
	"context"
	"io"

	fx "github.com/robotalks/airsense/pkg/framework"
	"github.com/robotalks/airsense/pkg/msgs"
	"github.com/robotalks/airsense/pkg/notify"
)

// Session is a connected device with the Loop receiving its messages.
type Session struct {
	Ref  notify.DeviceRef
	Conn notify.DeviceConn
	Loop *fx.Loop

	cancel func()
	// onEvent is called from the Loop for every event received.
	onEvent func(fx.Message)
}

// Open connects to the device and starts the Loop.
func Open(ctx context.Context, connector notify.Connector, ref notify.DeviceRef, onEvent func(fx.Message)) (*Session, error) {
	conn, err := connector.Connect(ctx, ref)
	if err != nil {
		return nil, err
	}
	s := &Session{Ref: ref, Conn: conn, Loop: fx.NewLoop(), onEvent: onEvent}
	if adder, ok := conn.(fx.LoopAdder); ok {
		s.Loop.Add(adder)
	}
	s.Loop.AddController(fx.PrLvNotify, fx.ControlFunc(s.dispatchEvents))
	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.Loop.Run(runCtx)
	return s, nil
}

// Exec sends a command and waits for the result.
func (s *Session) Exec(cmd fx.Message) notify.Result {
	return <-s.Conn.DoCommand(cmd).ResultChan()
}

// Close stops the Loop and closes the connection.
func (s *Session) Close() error {
	s.cancel()
	if closer, ok := s.Conn.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (s *Session) dispatchEvents(cc fx.ControlContext) error {
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mc fx.MessageProcessingContext) {
		msg := mc.CurrentMessage()
		if _, ok := msg.(msgs.SerializableMessage); !ok {
			return
		}
		mc.MessageTaken()
		if s.onEvent != nil {
			s.onEvent(msg)
		}
	}))
	return nil
}
